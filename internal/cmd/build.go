package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lumajs/buildplane/internal/bundler"
	"github.com/lumajs/buildplane/internal/progress"
	"github.com/lumajs/buildplane/internal/service"
)

func newBuildCmd(params *rootParams) *cobra.Command {
	var (
		filter      matrixFilter
		parallelism int
		quiet       bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Run the build matrix through esbuild",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := params.logger()
			if err != nil {
				return err
			}

			descriptors, err := params.assemble()
			if err != nil {
				return err
			}
			if descriptors, err = filter.apply(descriptors); err != nil {
				return err
			}
			log.Debugf("Assembled %d build descriptors.", len(descriptors))

			bar := progress.New(cmd.ErrOrStderr(), len(descriptors), quiet)

			results, err := service.NewBuildWorker(descriptors, bundler.New()).
				WithParallelism(parallelism).
				WithLogger(log).
				WithProgress(bar).
				Execute(cmd.Context())
			if err != nil {
				return err
			}

			for _, result := range results {
				log.Infof("Built %q (%s).", result.Package, result.Target)
			}
			return nil
		},
	}

	filter.register(cmd)
	cmd.Flags().IntVar(&parallelism, "parallelism", 0, "maximum concurrent builds (0 means the default)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress the progress bar")
	return cmd
}
