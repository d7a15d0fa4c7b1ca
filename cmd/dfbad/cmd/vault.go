package cmd

import (
	"strconv"

	"github.com/spf13/cobra"
)

// NewDepositCmd credits a user's internal vault balance, modeling the
// external collaborator's real-funds-in entrypoint (spec §6).
func NewDepositCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deposit [user] [token] [amount]",
		Short: "Credit a user's internal vault balance",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString(flagAddr)
			out, err := newHTTPClient(addr).do("POST", "/v1/vault/deposit", map[string]interface{}{
				"user":   args[0],
				"token":  args[1],
				"amount": args[2],
			})
			if err != nil {
				return err
			}
			printResult(out)
			return nil
		},
	}
}

// NewSetFeesCmd installs a market's maker/taker fee schedule (spec §6
// FeeModel).
func NewSetFeesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-fees [market-id] [taker-bps] [maker-bps] [recipient]",
		Short: "Install a market's fee schedule",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString(flagAddr)
			takerBps, err := strconv.ParseUint(args[1], 10, 16)
			if err != nil {
				return err
			}
			makerBps, err := strconv.ParseUint(args[2], 10, 16)
			if err != nil {
				return err
			}
			out, err := newHTTPClient(addr).do("POST", "/v1/fees/"+args[0], map[string]interface{}{
				"taker_fee_bps": takerBps,
				"maker_fee_bps": makerBps,
				"fee_recipient": args[3],
			})
			if err != nil {
				return err
			}
			printResult(out)
			return nil
		},
	}
}
