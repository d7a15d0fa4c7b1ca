// Command dfbad is a single-process runner for the DFBA exchange core:
// the long-running `serve` subcommand hosts one in-memory Engine (spec §1,
// app.Engine) behind HTTP, and the other subcommands drive that running
// process over its HTTP surface. Grounded on cmd/perpdexd/main.go's
// single-purpose entrypoint; unlike perpdexd there is no CometBFT node
// to start, since DFBA Core clears batches in-process rather than over
// consensus (spec §1 Non-goals).
package main

import (
	"fmt"
	"os"

	"github.com/dfba-labs/dfba-core/cmd/dfbad/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
