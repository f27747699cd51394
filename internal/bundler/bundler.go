// Package bundler executes build descriptors through esbuild. It is the
// boundary to the external bundling collaborator: the planner's descriptors
// are translated into esbuild invocations here, and whatever esbuild reports
// is surfaced unmodified.
package bundler

import (
	"context"

	"github.com/lumajs/buildplane/pkg/plan"
)

// Bundler consumes one build descriptor and writes the corresponding
// artifacts.
type Bundler interface {
	Build(ctx context.Context, d plan.BuildDescriptor) (Result, error)
}

// Result summarizes one completed bundling invocation.
type Result struct {
	Package string
	Target  plan.Target

	// Outputs lists the files written, relative to the working directory.
	Outputs []string

	// Warnings carries the collaborator's formatted warnings verbatim.
	Warnings []string
}
