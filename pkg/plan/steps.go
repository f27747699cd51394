package plan

import "slices"

// Step is one plugin invocation in a descriptor's plugin sequence. The set
// of step kinds is closed: the bundling collaborator translates each kind
// into the corresponding bundler plugin and rejects nothing at this layer.
type Step interface {
	// StepName identifies the plugin kind for logs and listings.
	StepName() string
}

// TemplateCompiler compiles UI-framework templates ahead of transpilation.
// It leads every target's plugin sequence; the ES-module target enables
// hydratable output so server-rendered markup can be re-attached.
type TemplateCompiler struct {
	Hydratable bool `json:"hydratable,omitempty"`
}

// Transpiler lowers source syntax. It is restricted to the package's own
// source files; dependency files are excluded.
type Transpiler struct {
	Include []string `json:"include,omitempty"`
	Exclude []string `json:"exclude,omitempty"`
}

// Resolver resolves bare import specifiers, scoped to the package's own
// source-file extensions.
type Resolver struct {
	Extensions []string `json:"extensions,omitempty"`
}

// Replace rewrites every textual occurrence of Pattern with Replacement.
// It is a literal substitution, not a templating step: the planner emits
// exactly one rule, for the runtime-environment sentinel.
type Replace struct {
	Pattern     string `json:"pattern"`
	Replacement string `json:"replacement"`
}

// Minify enables production minification.
type Minify struct {
	MangleNames bool `json:"mangle_names,omitempty"`
	Compress    bool `json:"compress,omitempty"`
}

// VisualReport writes a human-readable bundle-analysis report.
type VisualReport struct {
	File string `json:"file"`
}

// SizeReport writes a machine-readable bundle-size report.
type SizeReport struct {
	File string `json:"file"`
}

func (TemplateCompiler) StepName() string { return "template-compiler" }
func (Transpiler) StepName() string       { return "transpiler" }
func (Resolver) StepName() string         { return "resolver" }
func (Replace) StepName() string          { return "replace" }
func (Minify) StepName() string           { return "minify" }
func (VisualReport) StepName() string     { return "visual-report" }
func (SizeReport) StepName() string       { return "size-report" }

func stepEqual(a, b Step) bool {
	switch a := a.(type) {
	case Transpiler:
		b, ok := b.(Transpiler)
		return ok && slices.Equal(a.Include, b.Include) && slices.Equal(a.Exclude, b.Exclude)
	case Resolver:
		b, ok := b.(Resolver)
		return ok && slices.Equal(a.Extensions, b.Extensions)
	default:
		// The remaining kinds carry only comparable fields.
		return a == b
	}
}
