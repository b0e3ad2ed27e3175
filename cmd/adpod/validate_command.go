package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"adpod/internal/compat"
	"adpod/internal/pod"
)

func newValidateCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:         "validate <cpl.xml> [cpl.xml...]",
		Short:       "Check a CPL set for pod compatibility",
		Args:        cobra.MinimumNArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ws := pod.NewWorkset()
			for _, arg := range args {
				fileName, meta, err := readCPL(arg)
				if err != nil {
					return err
				}
				ws.Add(fileName, meta)
			}

			result := compat.Validate(ws.Items())

			if jsonOutput {
				return writeJSON(cmd, result)
			}

			out := cmd.OutOrStdout()
			if result.Valid {
				fmt.Fprintf(out, "Compatible: %d CPLs can be stitched into one pod\n", ws.Len())
				return nil
			}
			for _, message := range result.Errors {
				fmt.Fprintf(out, "  - %s\n", message)
			}
			return fmt.Errorf("%d compatibility issue(s) found", len(result.Errors))
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the validation result as JSON")
	return cmd
}
