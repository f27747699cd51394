package plan

import (
	"maps"
	"slices"
)

// Target identifies one of the four build outputs produced for every package.
type Target string

const (
	TargetESM     Target = "esm"
	TargetCJS     Target = "cjs"
	TargetUMDDev  Target = "umd-dev"
	TargetUMDProd Target = "umd-prod"
)

// Targets returns all targets in the order they are expanded for a package.
func Targets() []Target {
	return []Target{TargetESM, TargetCJS, TargetUMDDev, TargetUMDProd}
}

// Format is the module format of a build output.
type Format string

const (
	FormatESM Format = "esm"
	FormatCJS Format = "cjs"
	FormatUMD Format = "umd"
)

// PackageSpec declares one published package of the distribution.
type PackageSpec struct {
	// Name is the published package name (required, unique).
	Name string

	// PackageDir is the package root directory; build output is written
	// beneath it.
	PackageDir string

	// DisplayName is the human-readable name embedded in the license banner
	// and used to derive the UMD global name.
	DisplayName string

	// OutputFileStem names the root output chunk of the directory-based
	// layouts (required, unique across the distribution).
	OutputFileStem string

	// EntryFilePath is the build entry point, relative to PackageDir.
	EntryFilePath string

	// Globals maps each peer-dependency import specifier to the global
	// variable name the UMD builds expect it under. The key set is exactly
	// the set of externals for this package.
	Globals map[string]string
}

// OutputSpec describes where and in which shape a build writes its output.
// Exactly one of Dir and File is set: Dir for module-mirroring layouts,
// File for single-file bundles.
type OutputSpec struct {
	Format    Format `json:"format"`
	Dir       string `json:"dir,omitempty"`
	File      string `json:"file,omitempty"`
	Stem      string `json:"stem,omitempty"`
	Sourcemap bool   `json:"sourcemap,omitempty"`

	// PreserveModules keeps the output directory mirroring the input module
	// structure instead of bundling into a single file.
	PreserveModules bool `json:"preserve_modules,omitempty"`

	// Exports selects the export mode for CommonJS output ("named").
	Exports string `json:"exports,omitempty"`

	// Name is the global variable the UMD bundle assigns itself to.
	Name string `json:"name,omitempty"`

	// Globals carries the UMD global-variable bindings for each external.
	Globals map[string]string `json:"globals,omitempty"`

	Banner string `json:"banner,omitempty"`
}

// BuildDescriptor fully describes one bundling invocation and is
// self-contained. Descriptors are immutable values: they compare by
// value and are consumed exactly once by the bundling collaborator.
type BuildDescriptor struct {
	Package   string     `json:"package"`
	Target    Target     `json:"target"`
	Input     string     `json:"input"`
	Externals []string   `json:"externals,omitempty"` // sorted
	Output    OutputSpec `json:"output"`
	Plugins   []Step     `json:"-"`
}

// External reports whether the given import specifier must be left
// unbundled. It is a pure function of the descriptor and may be called
// concurrently and arbitrarily many times.
func (d BuildDescriptor) External(specifier string) bool {
	return IsExternal(specifier, d.Externals)
}

// Equal returns true if two descriptors are structurally identical.
func (d BuildDescriptor) Equal(other BuildDescriptor) bool {
	return d.Package == other.Package &&
		d.Target == other.Target &&
		d.Input == other.Input &&
		slices.Equal(d.Externals, other.Externals) &&
		d.Output.Equal(other.Output) &&
		slices.EqualFunc(d.Plugins, other.Plugins, stepEqual)
}

// Equal returns true if two output specs are structurally identical.
func (o OutputSpec) Equal(other OutputSpec) bool {
	return o.Format == other.Format &&
		o.Dir == other.Dir &&
		o.File == other.File &&
		o.Stem == other.Stem &&
		o.Sourcemap == other.Sourcemap &&
		o.PreserveModules == other.PreserveModules &&
		o.Exports == other.Exports &&
		o.Name == other.Name &&
		maps.Equal(o.Globals, other.Globals) &&
		o.Banner == other.Banner
}
