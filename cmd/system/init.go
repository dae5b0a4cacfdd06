package system

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Alijeyrad/taadol_backend/internal/repo"
	"github.com/Alijeyrad/taadol_backend/internal/schema"
	"github.com/Alijeyrad/taadol_backend/pkg/database"
)

// NewInitCommand prepares an empty database: indexes plus a zero system
// percentage record so commission reads have a baseline.
func NewInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := readConfig(cmd)
			if err != nil {
				return err
			}
			db, err := database.NewMongo(cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close(context.Background())

			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Initializing database...")
			if err := database.EnsureIndexes(ctx, db); err != nil {
				return fmt.Errorf("failed to ensure indexes: %w", err)
			}

			client := repo.NewClient(db.Database())
			_, err = client.Percentages.Latest(ctx)
			switch {
			case repo.IsNotFound(err):
				if _, err := client.Percentages.Save(ctx, schema.SystemPercentages{}); err != nil {
					return fmt.Errorf("failed to seed system percentages: %w", err)
				}
				fmt.Fprintln(out, "Seeded zero system percentages.")
			case err != nil:
				return fmt.Errorf("failed to read system percentages: %w", err)
			}

			fmt.Fprintln(out, "Database initialized successfully.")
			return nil
		},
	}

	return cmd
}
