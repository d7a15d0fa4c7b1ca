package cmd

import "github.com/spf13/cobra"

// NewSetPriceCmd pushes a mark price into the in-memory oracle feeding
// the perp settlement path (spec §6, perp only).
func NewSetPriceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-price [market-id] [price]",
		Short: "Set a market's oracle mark price (18-decimal fixed point)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString(flagAddr)
			out, err := newHTTPClient(addr).do("POST", "/v1/oracle/"+args[0], map[string]interface{}{
				"price": args[1],
			})
			if err != nil {
				return err
			}
			printResult(out)
			return nil
		},
	}
}
