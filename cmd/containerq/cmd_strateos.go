package main

import (
	"fmt"

	"github.com/containerq/backend/internal/usecase"
	"github.com/spf13/cobra"
)

func newStrateosIDCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "strateos-id URI...",
		Short: "Extract the Strateos catalog ID from instance URIs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := 0
			for _, uri := range args {
				id, err := usecase.StrateosID(uri)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%v\n", err)
					failed++
					continue
				}
				fmt.Fprintln(out, id)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d URIs had no strateos ID", failed, len(args))
			}
			return nil
		},
	}
}
