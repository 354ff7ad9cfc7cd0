package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"atomizer/internal/storage/postgres"
	"atomizer/migrations"
)

func newMigrateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			db, err := a.openDB(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			applied, err := postgres.Migrate(ctx, db, migrations.FS)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(applied) == 0 {
				fmt.Fprintln(out, "Schema is up to date")
				return nil
			}
			for _, v := range applied {
				fmt.Fprintf(out, "Applied %s\n", v)
			}
			return nil
		},
	}
}
