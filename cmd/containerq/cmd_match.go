package main

import (
	"fmt"
	"strings"

	"github.com/containerq/backend/internal/domain"
	"github.com/containerq/backend/internal/infrastructure/owlery"
	"github.com/containerq/backend/internal/usecase"
	"github.com/spf13/cobra"
)

type matchOptions struct {
	expression  string
	and         string
	atStrateos  bool
	prefixes    []string
	strateosIDs bool
}

func newMatchCmd(a *app) *cobra.Command {
	opts := &matchOptions{}

	cmd := &cobra.Command{
		Use:   "match",
		Short: "List containers matching a class expression",
		Long: `Queries the reasoner for every instance (direct or inferred, including
deprecated terms) of the given Manchester-syntax class expression.

Example:
  containerq match --expr 'cont:ClearPlate and cont:SLAS-4-2004' --at-strateos --strateos-ids`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.match(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.expression, "expr", "e", "", "Manchester-syntax class expression (required)")
	cmd.Flags().StringVar(&opts.and, "and", "", "Additional condition conjoined onto the expression")
	cmd.Flags().BoolVar(&opts.atStrateos, "at-strateos", false, "Only containers available at Strateos")
	cmd.Flags().StringArrayVarP(&opts.prefixes, "prefix", "p", nil, "Prefix mapping as name=uri (repeatable; defaults to cont and om)")
	cmd.Flags().BoolVar(&opts.strateosIDs, "strateos-ids", false, "Also print the Strateos ID of each instance")
	_ = cmd.MarkFlagRequired("expr")

	return cmd
}

func (a *app) match(cmd *cobra.Command, opts *matchOptions) error {
	prefixes, err := parsePrefixes(opts.prefixes)
	if err != nil {
		return err
	}

	addl := opts.and
	if opts.atStrateos {
		addl = usecase.JoinConditions(addl, domain.StrateosAvailability)
	}

	client := owlery.NewClient(a.cfg.Owlery.BaseURL, a.logger)
	if a.cfg.Owlery.Timeout > 0 {
		client.SetTimeout(a.cfg.Owlery.Timeout)
	}
	service := usecase.NewContainerService(client, a.logger, usecase.ContainerServiceConfig{
		DefaultKBName: a.cfg.Owlery.KBName,
	})

	outcome := service.MatchingContainers(cmd.Context(), &domain.MatchRequest{
		Spec:           domain.NewClassExpressionSpec(opts.expression, prefixes),
		AddlConditions: addl,
	})
	instances, err := outcome.Result()
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, inst := range instances {
		if !opts.strateosIDs {
			fmt.Fprintln(out, inst)
			continue
		}
		id, err := usecase.StrateosID(string(inst))
		if err != nil {
			fmt.Fprintf(out, "%s\t(%v)\n", inst, err)
			continue
		}
		fmt.Fprintf(out, "%s\t%s\n", inst, id)
	}
	return nil
}

// parsePrefixes turns name=uri pairs into a prefix map
func parsePrefixes(pairs []string) (domain.PrefixMap, error) {
	if len(pairs) == 0 {
		return domain.DefaultPrefixes(), nil
	}

	prefixes := make(domain.PrefixMap, len(pairs))
	for _, pair := range pairs {
		name, uri, ok := strings.Cut(pair, "=")
		if !ok || name == "" || uri == "" {
			return nil, fmt.Errorf("invalid prefix %q, want name=uri", pair)
		}
		prefixes[name] = uri
	}
	return prefixes, nil
}
