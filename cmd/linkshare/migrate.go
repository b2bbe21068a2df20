package main

import (
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, database, err := openStore(cmd.Context(), false)
			if err != nil {
				return err
			}
			return database.Close()
		},
	}
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert missing categories from the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, database, err := openStore(ctx, false)
			if err != nil {
				return err
			}
			defer database.Close()

			return seedCategories(ctx, cfg, database)
		},
	}
}
