package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"novella/internal/adapters/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the Postgres schema",
}

func migrateStep(use, short string, run func(*postgres.Migrator) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := rt.Migrator()
			if err != nil {
				return err
			}
			err = run(m)
			if errors.Is(err, postgres.ErrNoChange) {
				fmt.Println("Schema already up to date")
				return nil
			}
			if err != nil {
				return err
			}
			version, dirty, err := m.Version()
			if err != nil {
				return err
			}
			if dirty {
				fmt.Printf("Schema at version %d (dirty)\n", version)
				return nil
			}
			fmt.Printf("Schema at version %d\n", version)
			return nil
		},
	}
}

func init() {
	migrateCmd.AddCommand(migrateStep("up", "Apply all pending migrations", (*postgres.Migrator).Up))
	migrateCmd.AddCommand(migrateStep("down", "Roll back the last migration", (*postgres.Migrator).Down))
	migrateCmd.AddCommand(migrateStep("version", "Show the schema version", func(*postgres.Migrator) error { return nil }))
	rootCmd.AddCommand(migrateCmd)
}
