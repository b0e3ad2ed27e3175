package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"adpod/internal/cpl"
)

type inspectedCPL struct {
	FileName string       `json:"fileName"`
	Source   string       `json:"source"`
	Metadata cpl.Metadata `json:"metadata"`
}

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:         "inspect <cpl.xml> [cpl.xml...]",
		Short:       "Extract and display CPL metadata",
		Args:        cobra.MinimumNArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			inspected := make([]inspectedCPL, 0, len(args))
			for _, arg := range args {
				fileName, meta, err := readCPL(arg)
				if err != nil {
					return err
				}
				inspected = append(inspected, inspectedCPL{
					FileName: fileName,
					Source:   displaySource(fileName),
					Metadata: meta,
				})
			}

			if jsonOutput {
				return writeJSON(cmd, inspected)
			}

			rows := make([][]string, 0, len(inspected))
			for _, item := range inspected {
				assets := 0
				for _, reel := range item.Metadata.Reels {
					assets += len(reel.Assets)
				}
				rows = append(rows, []string{
					item.Source,
					item.Metadata.ContentTitle,
					item.Metadata.UUID,
					item.Metadata.EditRate,
					string(item.Metadata.Aspect),
					yesNo(item.Metadata.Encrypted),
					strconv.Itoa(len(item.Metadata.Reels)),
					strconv.Itoa(assets),
				})
			}
			table := renderTable(
				[]string{"Source", "Title", "UUID", "Edit Rate", "Aspect", "Encrypted", "Reels", "Assets"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight},
			)
			fmt.Fprintln(cmd.OutOrStdout(), table)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit metadata as JSON")
	return cmd
}
