package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tensorkeg/ggcontainer"
	"github.com/tensorkeg/ggcontainer/validate"
)

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Decode every tensor and report failures",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			meta, tensors, err := ggcontainer.Read(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			report, err := validate.Validate(meta, tensors)
			for _, name := range report.Skipped {
				fmt.Fprintf(out, "skip: %s (unrecognized type code)\n", name)
			}
			if err != nil {
				fmt.Fprintf(out, "failed: %d/%d tensors checked\n", report.Checked, report.Checked+len(report.Skipped))
				return err
			}
			fmt.Fprintf(out, "ok: %d tensor(s) checked, %d skipped\n", report.Checked, len(report.Skipped))
			return nil
		},
	}
	return cmd
}
