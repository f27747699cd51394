package plan

import (
	"maps"
	"path/filepath"
	"slices"
)

// Report filenames written for the production UMD target. They live under
// each package's own build directory so concurrent package builds never
// clobber one another's reports.
const (
	visualReportFile = "stats-html.html"
	sizeReportFile   = "stats-react.json"
)

// sharedSteps is the plugin prefix common to all four targets: template
// compilation, transpilation of the package's own sources, and module
// resolution scoped to source-file extensions.
func sharedSteps(hydratable bool) []Step {
	return []Step{
		TemplateCompiler{Hydratable: hydratable},
		Transpiler{
			Include: []string{"src/**"},
			Exclude: []string{"node_modules/**"},
		},
		Resolver{Extensions: []string{".js", ".jsx", ".ts", ".tsx"}},
	}
}

// ESM builds the ES-module descriptor: one output file per source module so
// downstream bundlers can tree-shake the module graph, with hydratable
// template output enabled.
func ESM(opts ResolvedOptions) BuildDescriptor {
	return BuildDescriptor{
		Package:   opts.Package,
		Target:    TargetESM,
		Input:     opts.AbsoluteInput,
		Externals: slices.Clone(opts.Externals),
		Output: OutputSpec{
			Format:          FormatESM,
			Dir:             filepath.Join(opts.PackageDir, "build", "esm"),
			Stem:            opts.OutputFileStem,
			Sourcemap:       true,
			PreserveModules: true,
			Banner:          opts.Banner,
		},
		Plugins: sharedSteps(true),
	}
}

// CJS builds the CommonJS descriptor: module-mirroring layout like ESM, in
// named exports mode.
func CJS(opts ResolvedOptions) BuildDescriptor {
	return BuildDescriptor{
		Package:   opts.Package,
		Target:    TargetCJS,
		Input:     opts.AbsoluteInput,
		Externals: slices.Clone(opts.Externals),
		Output: OutputSpec{
			Format:          FormatCJS,
			Dir:             filepath.Join(opts.PackageDir, "build", "cjs"),
			Stem:            opts.OutputFileStem,
			Sourcemap:       true,
			PreserveModules: true,
			Exports:         "named",
			Banner:          opts.Banner,
		},
		Plugins: sharedSteps(false),
	}
}

// UMDDev builds the development UMD descriptor: a single bundled file with
// the environment sentinel resolved to "development".
func UMDDev(opts ResolvedOptions) BuildDescriptor {
	d := umd(opts, "index.development.js")
	d.Target = TargetUMDDev
	d.Plugins = append(d.Plugins, replaceStep(EnvDevelopment))
	return d
}

// UMDProd builds the production UMD descriptor: the only artifact shipped to
// non-bundler consumers without further processing, so it alone is minified
// and analyzed.
func UMDProd(opts ResolvedOptions) BuildDescriptor {
	d := umd(opts, "index.production.js")
	d.Target = TargetUMDProd
	d.Plugins = append(d.Plugins,
		replaceStep(EnvProduction),
		Minify{MangleNames: true, Compress: true},
		VisualReport{File: filepath.Join(opts.PackageDir, "build", visualReportFile)},
		SizeReport{File: filepath.Join(opts.PackageDir, "build", sizeReportFile)},
	)
	return d
}

// umd assembles the fields the two UMD targets share.
func umd(opts ResolvedOptions, filename string) BuildDescriptor {
	return BuildDescriptor{
		Package:   opts.Package,
		Input:     opts.AbsoluteInput,
		Externals: slices.Clone(opts.Externals),
		Output: OutputSpec{
			Format:    FormatUMD,
			File:      filepath.Join(opts.PackageDir, "build", "umd", filename),
			Stem:      opts.OutputFileStem,
			Sourcemap: true,
			Name:      opts.JSGlobalName,
			Globals:   maps.Clone(opts.Globals),
			Banner:    opts.Banner,
		},
		Plugins: sharedSteps(false),
	}
}
