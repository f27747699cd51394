package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lumajs/buildplane/internal/bundler"
	"github.com/lumajs/buildplane/internal/logging"
	"github.com/lumajs/buildplane/internal/progress"
	"github.com/lumajs/buildplane/pkg/plan"
)

const defaultParallelism = 4

// BuildWorker runs an assembled build matrix through the bundling
// collaborator. Descriptors have no data dependency on one another, so they
// are built concurrently up to the configured parallelism; results keep the
// matrix order regardless of completion order.
type BuildWorker struct {
	descriptors []plan.BuildDescriptor
	bundler     bundler.Bundler
	parallelism int
	log         *logging.Logger
	bar         *progress.Bar
}

func NewBuildWorker(descriptors []plan.BuildDescriptor, b bundler.Bundler) *BuildWorker {
	return &BuildWorker{
		descriptors: descriptors,
		bundler:     b,
		parallelism: defaultParallelism,
		log:         logging.NewNop(),
	}
}

// WithParallelism bounds concurrent builds. Values below one fall back to
// the default; a negative limit would lift the bound entirely.
func (w *BuildWorker) WithParallelism(n int) *BuildWorker {
	if n < 1 {
		n = defaultParallelism
	}
	w.parallelism = n
	return w
}

func (w *BuildWorker) WithLogger(log *logging.Logger) *BuildWorker {
	w.log = log
	return w
}

func (w *BuildWorker) WithProgress(bar *progress.Bar) *BuildWorker {
	w.bar = bar
	return w
}

// Execute builds every descriptor. The first build failure cancels the
// remaining builds and is returned exactly as the collaborator reported it;
// the planner has already guaranteed the descriptors themselves are valid.
func (w *BuildWorker) Execute(ctx context.Context) ([]bundler.Result, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(w.parallelism)

	results := make([]bundler.Result, len(w.descriptors))
	for i, d := range w.descriptors {
		g.Go(func() error {
			defer w.bar.Add(1)

			started := time.Now()
			result, err := w.bundler.Build(ctx, d)
			if err != nil {
				w.log.Warnf("failed to build %q (%s): %v", d.Package, d.Target, err)
				return err
			}

			for _, warning := range result.Warnings {
				w.log.Warnf("%s (%s): %s", d.Package, d.Target, warning)
			}
			w.log.Debugf("Built %q (%s) in %s.", d.Package, d.Target, time.Since(started).Round(time.Millisecond))

			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
