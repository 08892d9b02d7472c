package main

import (
	"fmt"

	"mergington-activities/internal/seed"

	"github.com/spf13/cobra"
)

func newCatalogCmd() *cobra.Command {
	var seedFile string
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Validate and print the seed activity catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := seed.Load(seedFile)
			if err != nil {
				return fmt.Errorf("load catalog: %w", err)
			}
			for _, a := range catalog {
				fmt.Fprintf(cmd.OutOrStdout(), "%-20s %2d/%-2d  %2d free  %s\n",
					a.Name, len(a.Participants), a.MaxParticipants, a.SpotsLeft(), a.Schedule)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&seedFile, "seed-file", "", "YAML catalog to check instead of the built-in one")
	return cmd
}
