package cmd

import (
	"strconv"

	"github.com/spf13/cobra"
)

// NewCreateMarketCmd mirrors x/orderbook/client/cli/tx.go's
// CmdPlaceOrder positional-arg parsing style.
func NewCreateMarketCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-market [kind] [base-or-collateral] [quote-or-oracle] [batch-duration-secs]",
		Short: "Create a market (admin only)",
		Long: `Create a new spot or perp market.

Examples:
  dfbad create-market spot btc usdc 2 --caller dfba/admin
  dfbad create-market perp usdc oracle-btc 2 --caller dfba/admin`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString(flagAddr)
			caller, _ := cmd.Flags().GetString("caller")

			batchDuration, err := strconv.ParseInt(args[3], 10, 64)
			if err != nil {
				return err
			}

			out, err := newHTTPClient(addr).do("POST", "/v1/markets", map[string]interface{}{
				"caller":              caller,
				"kind":                args[0],
				"base_or_collateral":  args[1],
				"quote_or_oracle":     args[2],
				"batch_duration_secs": batchDuration,
			})
			if err != nil {
				return err
			}
			printResult(out)
			return nil
		},
	}
	cmd.Flags().String("caller", "", "caller identity (must be the engine's admin)")
	return cmd
}
