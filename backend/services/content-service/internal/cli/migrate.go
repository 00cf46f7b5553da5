package cli

import (
	"github.com/spf13/cobra"

	"sitecms/backend/migrations"
)

func newMigrateCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				db, err := rt.open(cmd.Context())
				if err != nil {
					return err
				}
				defer db.Close()
				return migrations.Up(cmd.Context(), db.DB, rt.logger)
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				db, err := rt.open(cmd.Context())
				if err != nil {
					return err
				}
				defer db.Close()
				return migrations.Down(cmd.Context(), db.DB, rt.logger)
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Print applied and pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				db, err := rt.open(cmd.Context())
				if err != nil {
					return err
				}
				defer db.Close()
				return migrations.Status(cmd.Context(), db.DB)
			},
		},
	)
	return cmd
}
