package bundler

import (
	"context"
	"fmt"
	"strings"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/lumajs/buildplane/pkg/plan"
)

// ESBuild runs descriptors through the esbuild API.
type ESBuild struct {
	workingDir     string
	templatePlugin *api.Plugin
}

// New returns an esbuild-backed bundler.
func New() *ESBuild {
	return &ESBuild{}
}

// WithWorkingDir sets the directory relative paths resolve against.
func (e *ESBuild) WithWorkingDir(dir string) *ESBuild {
	e.workingDir = dir
	return e
}

// WithTemplatePlugin supplies the UI-framework template compiler as an
// esbuild plugin. The planner only schedules the compiler step; the compiler
// itself is an external collaborator handed in by the caller. Without one,
// template-compiler steps are skipped and sources are bundled as plain
// modules.
func (e *ESBuild) WithTemplatePlugin(p api.Plugin) *ESBuild {
	e.templatePlugin = &p
	return e
}

// Build translates the descriptor and invokes esbuild. Build failures are
// returned exactly as esbuild formats them.
func (e *ESBuild) Build(ctx context.Context, d plan.BuildDescriptor) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	opts, err := e.Translate(d)
	if err != nil {
		return Result{}, err
	}

	result := api.Build(opts)
	if len(result.Errors) > 0 {
		msgs := api.FormatMessages(result.Errors, api.FormatMessagesOptions{Kind: api.ErrorMessage})
		return Result{}, fmt.Errorf("bundle %s (%s):\n%s", d.Package, d.Target, strings.Join(msgs, ""))
	}

	if err := writeReports(d, result.Metafile); err != nil {
		return Result{}, err
	}

	res := Result{
		Package:  d.Package,
		Target:   d.Target,
		Warnings: api.FormatMessages(result.Warnings, api.FormatMessagesOptions{Kind: api.WarningMessage}),
	}
	for _, f := range result.OutputFiles {
		res.Outputs = append(res.Outputs, f.Path)
	}
	return res, nil
}

// Translate maps one descriptor onto esbuild build options. It is pure and
// total over the closed set of plugin step kinds; unknown kinds cannot occur
// because the planner seals the Step interface.
func (e *ESBuild) Translate(d plan.BuildDescriptor) (api.BuildOptions, error) {
	opts := api.BuildOptions{
		AbsWorkingDir: e.workingDir,
		EntryPoints:   []string{d.Input},
		Bundle:        true,
		Write:         true,
		LogLevel:      api.LogLevelSilent,
		Banner:        map[string]string{"js": d.Output.Banner},
	}

	if d.Output.Sourcemap {
		opts.Sourcemap = api.SourceMapLinked
	}

	switch d.Output.Format {
	case plan.FormatESM:
		opts.Format = api.FormatESModule
		opts.Outdir = d.Output.Dir
		// Module-mirroring output is approximated with code splitting, which
		// keeps the graph tree-shakeable by downstream bundlers.
		opts.Splitting = true
	case plan.FormatCJS:
		opts.Format = api.FormatCommonJS
		opts.Outdir = d.Output.Dir
	case plan.FormatUMD:
		opts.Format = api.FormatIIFE
		opts.Outfile = d.Output.File
		opts.GlobalName = d.Output.Name
	default:
		return api.BuildOptions{}, fmt.Errorf("unknown output format %q", d.Output.Format)
	}

	// The browser platform (esbuild's default) substitutes
	// process.env.NODE_ENV on its own, even without a Define entry. ESM and
	// CJS outputs must hand that choice to the consumer, so the directory
	// layouts build on the neutral platform. UMD keeps the browser default;
	// its Replace step pins the value explicitly.
	if d.Output.Format != plan.FormatUMD {
		opts.Platform = api.PlatformNeutral
	}

	if d.Output.Dir != "" && d.Output.Stem != "" {
		opts.EntryNames = d.Output.Stem
	}

	// Single-file bundles resolve their externals to runtime globals; the
	// directory layouts leave them as plain imports for the consumer.
	if d.Output.Format == plan.FormatUMD {
		opts.Plugins = append(opts.Plugins, globalsPlugin(d))
	} else {
		opts.Plugins = append(opts.Plugins, externalPlugin(d))
	}

	for _, step := range d.Plugins {
		switch step := step.(type) {
		case plan.TemplateCompiler:
			if e.templatePlugin != nil {
				opts.Plugins = append(opts.Plugins, *e.templatePlugin)
			}
		case plan.Transpiler:
			// esbuild transpiles reachable sources natively; the include and
			// exclude patterns need no translation because dependency files
			// are externalized or resolved, never re-transpiled.
		case plan.Resolver:
			opts.ResolveExtensions = step.Extensions
		case plan.Replace:
			if opts.Define == nil {
				opts.Define = map[string]string{}
			}
			opts.Define[step.Pattern] = step.Replacement
		case plan.Minify:
			opts.MinifyIdentifiers = step.MangleNames
			opts.MinifySyntax = step.Compress
			opts.MinifyWhitespace = step.Compress
		case plan.VisualReport, plan.SizeReport:
			opts.Metafile = true
		default:
			return api.BuildOptions{}, fmt.Errorf("unknown plugin step %q", step.StepName())
		}
	}

	return opts, nil
}

// externalPlugin leaves every declared external unresolved. Classification
// is exact: subpath imports of an external are still bundled unless declared
// themselves.
func externalPlugin(d plan.BuildDescriptor) api.Plugin {
	return api.Plugin{
		Name: "declared-externals",
		Setup: func(build api.PluginBuild) {
			build.OnResolve(api.OnResolveOptions{Filter: `.*`}, func(args api.OnResolveArgs) (api.OnResolveResult, error) {
				if !d.External(args.Path) {
					return api.OnResolveResult{}, nil
				}
				return api.OnResolveResult{Path: args.Path, External: true}, nil
			})
		},
	}
}

// globalsPlugin resolves each declared external to a stub module reading the
// configured global variable, which is how a UMD bundle consumes its peer
// dependencies in a non-module environment.
func globalsPlugin(d plan.BuildDescriptor) api.Plugin {
	return api.Plugin{
		Name: "umd-globals",
		Setup: func(build api.PluginBuild) {
			build.OnResolve(api.OnResolveOptions{Filter: `.*`}, func(args api.OnResolveArgs) (api.OnResolveResult, error) {
				if !d.External(args.Path) {
					return api.OnResolveResult{}, nil
				}
				return api.OnResolveResult{Path: args.Path, Namespace: "umd-global"}, nil
			})
			build.OnLoad(api.OnLoadOptions{Filter: `.*`, Namespace: "umd-global"}, func(args api.OnLoadArgs) (api.OnLoadResult, error) {
				global, ok := d.Output.Globals[args.Path]
				if !ok {
					return api.OnLoadResult{}, fmt.Errorf("no global binding for external %q", args.Path)
				}
				contents := fmt.Sprintf("module.exports = globalThis[%q];", global)
				return api.OnLoadResult{Contents: &contents, Loader: api.LoaderJS}, nil
			})
		},
	}
}
