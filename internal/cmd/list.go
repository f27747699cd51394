package cmd

import (
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newListCmd(params *rootParams) *cobra.Command {
	var filter matrixFilter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the build matrix",
		RunE: func(cmd *cobra.Command, args []string) error {
			descriptors, err := params.assemble()
			if err != nil {
				return err
			}
			if descriptors, err = filter.apply(descriptors); err != nil {
				return err
			}

			table := tablewriter.NewTable(cmd.OutOrStdout())
			table.Header("Package", "Target", "Format", "Output", "Externals")

			for _, d := range descriptors {
				output := d.Output.Dir
				if output == "" {
					output = d.Output.File
				}
				if err := table.Append(d.Package, string(d.Target), string(d.Output.Format), output, strings.Join(d.Externals, ", ")); err != nil {
					return err
				}
			}

			return table.Render()
		},
	}

	filter.register(cmd)
	return cmd
}
