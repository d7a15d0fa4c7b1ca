package cmd

import "github.com/spf13/cobra"

// NewClaimCmd drives Settlement Claim's claim operation (spec §4.2).
func NewClaimCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "claim [order-id-hex]",
		Short: "Claim a finalized order's fill or refund",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString(flagAddr)
			caller, _ := cmd.Flags().GetString("trader")

			out, err := newHTTPClient(addr).do("POST", "/v1/orders/"+args[0]+"/claim", map[string]interface{}{
				"caller": caller,
			})
			if err != nil {
				return err
			}
			printResult(out)
			return nil
		},
	}
	cmd.Flags().String("trader", "", "caller identity, must be the order's trader")
	return cmd
}
