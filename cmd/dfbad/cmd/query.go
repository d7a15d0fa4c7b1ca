package cmd

import "github.com/spf13/cobra"

// GetQueryCmd groups the read-only subcommands, mirroring
// x/orderbook/client/cli/query.go's GetQueryCmd grouping.
func GetQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Aliases: []string{"q"},
		Short: "Querying subcommands",
	}
	cmd.AddCommand(
		cmdQueryMarket(),
		cmdQueryOrder(),
		cmdQueryBatch(),
	)
	return cmd
}

func cmdQueryMarket() *cobra.Command {
	return &cobra.Command{
		Use:   "market [market-id]",
		Short: "Look up a market",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString(flagAddr)
			out, err := newHTTPClient(addr).do("GET", "/v1/markets/"+args[0], nil)
			if err != nil {
				return err
			}
			printResult(out)
			return nil
		},
	}
}

func cmdQueryOrder() *cobra.Command {
	return &cobra.Command{
		Use:   "order [order-id-hex]",
		Short: "Look up an order and its state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString(flagAddr)
			out, err := newHTTPClient(addr).do("GET", "/v1/orders/"+args[0], nil)
			if err != nil {
				return err
			}
			printResult(out)
			return nil
		},
	}
}

func cmdQueryBatch() *cobra.Command {
	return &cobra.Command{
		Use:   "batch [market-id] [batch-id]",
		Short: "Look up a batch's phase and clearing results",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString(flagAddr)
			out, err := newHTTPClient(addr).do("GET", "/v1/batches/"+args[0]+"/"+args[1], nil)
			if err != nil {
				return err
			}
			printResult(out)
			return nil
		},
	}
}
