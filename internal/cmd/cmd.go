// Package cmd wires the buildplane CLI. Commands only parse flags, load the
// manifest and delegate to the planner, the bundler and the build worker.
package cmd

import (
	"fmt"
	"os"

	"github.com/gobwas/glob"
	"github.com/spf13/cobra"
	"github.com/thediveo/enumflag/v2"

	"github.com/lumajs/buildplane/internal/config"
	"github.com/lumajs/buildplane/internal/logging"
	"github.com/lumajs/buildplane/pkg/plan"
)

type rootParams struct {
	configFiles []string
	logLevel    string
	logFormat   string
}

// New returns the buildplane root command.
func New() *cobra.Command {
	var params rootParams

	root := &cobra.Command{
		Use:           "buildplane",
		Short:         "Plan and run the bundler build matrix for the Luma distribution",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringSliceVarP(&params.configFiles, "config", "c", nil, "manifest file or directory (repeatable, fragments are merged)")
	root.PersistentFlags().StringVar(&params.logLevel, "log-level", logging.LevelInfo, "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&params.logFormat, "log-format", "pretty", "log format (pretty, json)")

	root.AddCommand(
		newGenerateCmd(&params),
		newListCmd(&params),
		newBuildCmd(&params),
		newValidateCmd(&params),
	)

	return root
}

func (p *rootParams) logger() (*logging.Logger, error) {
	return logging.NewLogger(logging.Config{Level: p.logLevel, Format: p.logFormat})
}

// manifest loads and merges the configured manifest fragments, falling back
// to the compiled-in production package set when none are given.
func (p *rootParams) manifest() (*config.Root, error) {
	if len(p.configFiles) == 0 {
		return config.Default(), nil
	}

	bs, err := config.Merge(p.configFiles, true)
	if err != nil {
		return nil, err
	}
	return config.Parse(bs)
}

// assemble expands the manifest into the full build matrix.
func (p *rootParams) assemble() ([]plan.BuildDescriptor, error) {
	root, err := p.manifest()
	if err != nil {
		return nil, err
	}
	return plan.Assemble(root.Specs())
}

// targetMode is the --target flag enumeration.
type targetMode enumflag.Flag

const (
	targetESM targetMode = iota
	targetCJS
	targetUMDDev
	targetUMDProd
)

var targetModeIDs = map[targetMode][]string{
	targetESM:     {"esm"},
	targetCJS:     {"cjs"},
	targetUMDDev:  {"umd-dev"},
	targetUMDProd: {"umd-prod"},
}

var targetOf = map[targetMode]plan.Target{
	targetESM:     plan.TargetESM,
	targetCJS:     plan.TargetCJS,
	targetUMDDev:  plan.TargetUMDDev,
	targetUMDProd: plan.TargetUMDProd,
}

// matrixFilter narrows which descriptors a command operates on. The matrix
// itself is always assembled in full first; filtering happens at the tool
// layer only.
type matrixFilter struct {
	targets     []targetMode
	packageGlob string
}

func (f *matrixFilter) register(cmd *cobra.Command) {
	cmd.Flags().VarP(
		enumflag.NewSlice(&f.targets, "target", targetModeIDs, enumflag.EnumCaseInsensitive),
		"target", "t", "build targets to include (esm, cjs, umd-dev, umd-prod; repeatable, default all)")
	cmd.Flags().StringVarP(&f.packageGlob, "package", "p", "", "glob on package names (e.g. 'luma-*')")
}

func (f *matrixFilter) apply(descriptors []plan.BuildDescriptor) ([]plan.BuildDescriptor, error) {
	var matchPackage glob.Glob
	if f.packageGlob != "" {
		var err error
		if matchPackage, err = glob.Compile(f.packageGlob); err != nil {
			return nil, fmt.Errorf("invalid package glob %q: %w", f.packageGlob, err)
		}
	}

	wanted := map[plan.Target]bool{}
	for _, mode := range f.targets {
		wanted[targetOf[mode]] = true
	}

	var filtered []plan.BuildDescriptor
	for _, d := range descriptors {
		if len(wanted) > 0 && !wanted[d.Target] {
			continue
		}
		if matchPackage != nil && !matchPackage.Match(d.Package) {
			continue
		}
		filtered = append(filtered, d)
	}
	return filtered, nil
}

// Main executes the root command and exits non-zero on failure. It exists so
// the e2e tests can run the CLI in-process.
func Main() int {
	if err := New().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}
