package commission

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/Alijeyrad/taadol_backend/config"
	core "github.com/Alijeyrad/taadol_backend/internal/commission"
	"github.com/Alijeyrad/taadol_backend/internal/report"
	"github.com/Alijeyrad/taadol_backend/internal/repo"
	svc "github.com/Alijeyrad/taadol_backend/internal/service/commission"
	"github.com/Alijeyrad/taadol_backend/pkg/database"
)

func NewMemberCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "member <member-id>",
		Short: "Print a member's commission lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, err := cmd.Root().PersistentFlags().GetString("config")
			if err != nil {
				return err
			}
			cfg, err := config.ReadConfig(filepath.Dir(cfgPath))
			if err != nil {
				return err
			}

			db, err := database.NewMongo(cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close(context.Background())

			client := repo.NewClient(db.Database())
			agg := core.NewAggregator(repo.NewCommissionSource(client), core.WithLogger(slog.Default()))
			service := svc.New(client, agg, svc.Limits{})

			r, err := service.Member(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			renderMember(cmd.OutOrStdout(), r)
			return nil
		},
	}

	return cmd
}

func renderMember(w io.Writer, r *svc.MemberReport) {
	if r.Member != nil {
		fmt.Fprintf(w, "%s (%s)\n", r.Member.FullName, r.Member.Position)
	}

	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Project", "Section", "Item", "Field", "Weight", "System %", "Commission"})
	table.SetFooter([]string{"", "", "", "", "", "Total", report.Amount(float64(r.Total))})

	for _, l := range r.Lines {
		table.Append([]string{
			l.ProjectName,
			l.SectionName,
			l.ItemName,
			l.FieldName,
			strconv.FormatFloat(l.Weight, 'f', 2, 64),
			strconv.FormatFloat(l.SystemPercent, 'f', 1, 64),
			report.Amount(float64(l.Commission)),
		})
	}
	table.Render()
}
