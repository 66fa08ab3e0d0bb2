package cli

import (
	"FaceAttendance/database/postgres"
	"FaceAttendance/internal/config"
	"fmt"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()

		db, err := postgres.New(cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()

		applied, err := postgres.Migrate(cmd.Context(), db)
		if err != nil {
			return err
		}

		if len(applied) == 0 {
			fmt.Println("Database is up to date")
			return nil
		}
		for _, name := range applied {
			fmt.Printf("Applied %s\n", name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
