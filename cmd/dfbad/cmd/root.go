// Package cmd implements dfbad's cobra command tree: a `serve` command
// that hosts one app.Engine behind HTTP, and client subcommands that
// drive it over that HTTP surface. Grounded on cmd/perpdexd/cmd/root.go's
// NewRootCmd/initRootCmd split and x/orderbook/client/cli/tx.go's
// positional-arg parsing, replacing tx broadcast (GenerateOrBroadcastTxCLI)
// with a plain HTTP POST since there is no chain to sign against.
package cmd

import (
	"github.com/spf13/cobra"
)

const flagAddr = "addr"

// NewRootCmd builds the dfbad command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dfbad",
		Short: "DFBA Core - Discrete Frequent Batch Auction exchange core",
		Long: `dfbad runs and drives the DFBA exchange core: the Auction House
(order intake, tick-bitmap indexing, batch clearing) and Settlement Claim
(collateral lock, payout, position accounting).`,
	}
	rootCmd.PersistentFlags().String(flagAddr, "http://localhost:8080", "dfbad serve address to talk to")

	rootCmd.AddCommand(
		NewServeCmd(),
		NewCreateMarketCmd(),
		NewSubmitOrderCmd(),
		NewCancelOrderCmd(),
		NewStepFinalizeCmd(),
		NewClaimCmd(),
		NewSetPriceCmd(),
		NewDepositCmd(),
		NewSetFeesCmd(),
		GetQueryCmd(),
	)
	return rootCmd
}
