package commission

import "github.com/spf13/cobra"

func NewCommissionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commission",
		Short: "Inspect computed commissions",
	}

	cmd.AddCommand(NewMemberCommand())

	return cmd
}
