package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lumajs/buildplane/internal/config"
	"github.com/lumajs/buildplane/pkg/plan"
)

func newValidateCmd(params *rootParams) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the manifest and the assembled matrix",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(params.configFiles) == 0 {
				return errors.New("validate requires at least one --config manifest")
			}

			bs, err := config.Merge(params.configFiles, true)
			if err != nil {
				return err
			}
			root, err := config.Parse(bs)
			if err != nil {
				return err
			}

			// Schema validation catches shape errors; assembly catches the
			// cross-package invariants (duplicate names, duplicate stems).
			descriptors, err := plan.Assemble(root.Specs())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d packages, %d build descriptors, manifest OK\n", len(root.Packages), len(descriptors))
			return nil
		},
	}
}
