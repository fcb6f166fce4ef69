// Package main provides the containerq binary: a client for finding lab
// containers in an Owlery-hosted container ontology.
package main

import (
	"fmt"
	"os"

	"github.com/containerq/backend/config"
	"github.com/containerq/backend/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	Version = "1.0.0"
	appName = "containerq"
)

// app holds state shared by all subcommands once the root command has run
type app struct {
	v       *viper.Viper
	verbose bool
	cfg     *config.Config
	logger  *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Find laboratory containers matching an OWL class expression",
		Long: `containerq queries an Owlery reasoning server for instances of a
Manchester-syntax class expression, e.g. every clear SLAS plate with wells
of at least 200 microlitres, and extracts vendor catalog IDs from the
returned instance URIs.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := cmd.PersistentFlags()
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	flags.String("base-url", "", "Owlery server root (default from config)")
	flags.String("kb", "", "Knowledgebase to query (default from config)")
	_ = a.v.BindPFlag("owlery.base_url", flags.Lookup("base-url"))
	_ = a.v.BindPFlag("owlery.kb_name", flags.Lookup("kb"))

	cmd.AddCommand(
		newServeCmd(a),
		newMatchCmd(a),
		newStrateosIDCmd(a),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			// version needs no configuration or logger
			PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
			},
		},
	)

	return cmd
}

// init loads configuration and builds the logger
func (a *app) init() error {
	if a.verbose {
		a.v.Set("log.level", "debug")
	}

	cfg, err := config.LoadWith(a.v)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	a.cfg = cfg

	logger, err := logging.New(cfg.Log.Level, cfg.Server.Environment)
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}
