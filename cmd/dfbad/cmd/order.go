package cmd

import (
	"strconv"

	"github.com/spf13/cobra"
)

// NewSubmitOrderCmd mirrors x/orderbook/client/cli/tx.go's CmdPlaceOrder.
func NewSubmitOrderCmd() *cobra.Command {
	var expiry int64
	cmd := &cobra.Command{
		Use:   "submit-order [market-id] [side] [flow] [price-tick] [qty] [nonce]",
		Short: "Submit an order to the current batch",
		Long: `Submit an order.

Examples:
  dfbad submit-order 1 buy maker 100 10 1 --trader alice
  dfbad submit-order 1 sell taker 0 5 2 --trader bob`,
		Args: cobra.ExactArgs(6),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString(flagAddr)
			trader, _ := cmd.Flags().GetString("trader")

			marketID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return err
			}
			priceTick, err := strconv.ParseInt(args[3], 10, 32)
			if err != nil {
				return err
			}

			out, err := newHTTPClient(addr).do("POST", "/v1/orders", map[string]interface{}{
				"trader":     trader,
				"market_id":  marketID,
				"side":       args[1],
				"flow":       args[2],
				"price_tick": int32(priceTick),
				"qty":        args[4],
				"nonce":      args[5],
				"expiry":     expiry,
			})
			if err != nil {
				return err
			}
			printResult(out)
			return nil
		},
	}
	cmd.Flags().String("trader", "", "trader identity")
	cmd.Flags().Int64Var(&expiry, "expiry", 0, "unix-seconds expiry, 0 for none")
	return cmd
}

// NewCancelOrderCmd mirrors x/orderbook/client/cli/tx.go's CmdCancelOrder.
func NewCancelOrderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cancel-order [order-id-hex]",
		Short: "Cancel a resting order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString(flagAddr)
			caller, _ := cmd.Flags().GetString("trader")

			out, err := newHTTPClient(addr).do("DELETE", "/v1/orders/"+args[0], map[string]interface{}{
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
