package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	commissioncmd "github.com/Alijeyrad/taadol_backend/cmd/commission"
	httpcmd "github.com/Alijeyrad/taadol_backend/cmd/http"
	systemcmd "github.com/Alijeyrad/taadol_backend/cmd/system"
)

var (
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "taadol",
	Short: "Taadol team commission and payroll backend.",
	Long: `Taadol tracks projects, their sections and the team members assigned to
each field, and turns project income into per-member commissions, payslips
and tax shares.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global config flag, available for all commands.
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")

	// Attach top-level command trees.
	rootCmd.AddCommand(systemcmd.NewSystemCommand())
	rootCmd.AddCommand(httpcmd.NewHTTPCommand())
	rootCmd.AddCommand(commissioncmd.NewCommissionCommand())
}
