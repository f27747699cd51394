package cmd

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/lumajs/buildplane/pkg/plan"
)

// descriptorView is the serialized form of a build descriptor. Plugin steps
// carry their kind explicitly so the emitted plan is self-describing.
type descriptorView struct {
	plan.BuildDescriptor
	Plugins []pluginView `json:"plugins"`
}

type pluginView struct {
	Plugin  string    `json:"plugin"`
	Options plan.Step `json:"options,omitempty"`
}

func newGenerateCmd(params *rootParams) *cobra.Command {
	var (
		filter matrixFilter
		output string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Emit the build matrix as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			descriptors, err := params.assemble()
			if err != nil {
				return err
			}
			if descriptors, err = filter.apply(descriptors); err != nil {
				return err
			}

			views := make([]descriptorView, len(descriptors))
			for i, d := range descriptors {
				views[i] = descriptorView{BuildDescriptor: d}
				for _, step := range d.Plugins {
					views[i].Plugins = append(views[i].Plugins, pluginView{
						Plugin:  step.StepName(),
						Options: step,
					})
				}
			}

			out := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}

			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(views)
		},
	}

	filter.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the plan to a file instead of stdout")
	return cmd
}
