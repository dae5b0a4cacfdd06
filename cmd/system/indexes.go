package system

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Alijeyrad/taadol_backend/pkg/database"
)

func NewIndexesCommand() *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "indexes",
		Short: "Create missing MongoDB indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if list {
				for _, spec := range database.Indexes() {
					fmt.Fprintf(out, "%s: %d index(es)\n", spec.Collection, len(spec.Models))
				}
				return nil
			}

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

			fmt.Fprintf(out, "Ensuring indexes on %s...\n", cfg.Database.Name)
			if err := database.EnsureIndexes(ctx, db); err != nil {
				return err
			}
			fmt.Fprintln(out, "Indexes are up to date.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&list, "list", false, "Print the index plan without connecting")

	return cmd
}
