package cmd

import "github.com/spf13/cobra"

// NewStepFinalizeCmd drives a bounded slice of spec §4.2's
// step_finalize phase machine.
func NewStepFinalizeCmd() *cobra.Command {
	var maxSteps int
	cmd := &cobra.Command{
		Use:   "step-finalize [market-id] [batch-id]",
		Short: "Advance a batch's finalization by a bounded number of steps",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString(flagAddr)
			out, err := newHTTPClient(addr).do("POST", "/v1/batches/"+args[0]+"/"+args[1]+"/finalize", map[string]interface{}{
				"max_steps": maxSteps,
			})
			if err != nil {
				return err
			}
			printResult(out)
			return nil
		},
	}
	cmd.Flags().IntVar(&maxSteps, "max-steps", 64, "maximum tick-bitmap steps to scan in this call")
	return cmd
}
