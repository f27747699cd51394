package config

import (
	"cmp"
	"fmt"
	"maps"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/lumajs/buildplane/pkg/plan"
)

// Internal configuration data structures for the buildplane manifest.

// Root is the top-level manifest structure. Packages are declared as a list
// because their declaration order fixes the order of the generated build
// matrix.
type Root struct {
	Packages []*Package `json:"packages,omitempty"`

	_ struct{} `additionalProperties:"false"`
}

// Package declares one published package of the distribution.
type Package struct {
	Name           string  `json:"name"`
	Directory      string  `json:"directory,omitempty"`
	DisplayName    string  `json:"display_name,omitempty"`
	OutputFileStem string  `json:"output_file_stem,omitempty"`
	Entry          string  `json:"entry,omitempty"`
	Globals        Globals `json:"globals,omitempty"`

	_ struct{} `additionalProperties:"false"`
}

// Globals maps peer-dependency import specifiers to UMD global variable
// names. Its key set is exactly the package's external set.
type Globals map[string]string

// UnmarshalYAML implements the yaml.Unmarshaler interface for the Root
// struct. It applies the manifest defaults: a package's directory defaults
// to packages/<name>, its display name and output file stem default to its
// name, and its entry file defaults to src/index.ts.
func (r *Root) UnmarshalYAML(bs []byte) error {
	type rawRoot Root // avoid recursive calls to UnmarshalYAML by type aliasing
	var raw rawRoot

	if err := yaml.Unmarshal(bs, &raw); err != nil {
		return fmt.Errorf("failed to decode manifest: %w", err)
	}

	*r = Root(raw)
	r.applyDefaults()
	return nil
}

func (r *Root) applyDefaults() {
	for i := range r.Packages {
		r.Packages[i] = cmp.Or(r.Packages[i], &Package{})
		p := r.Packages[i]
		p.Directory = cmp.Or(p.Directory, "packages/"+p.Name)
		p.DisplayName = cmp.Or(p.DisplayName, p.Name)
		p.OutputFileStem = cmp.Or(p.OutputFileStem, p.Name)
		p.Entry = cmp.Or(p.Entry, "src/index.ts")
	}
}

// Specs converts the manifest into the planner's package list, preserving
// declaration order.
func (r *Root) Specs() []plan.PackageSpec {
	specs := make([]plan.PackageSpec, len(r.Packages))
	for i, p := range r.Packages {
		specs[i] = plan.PackageSpec{
			Name:           p.Name,
			PackageDir:     p.Directory,
			DisplayName:    p.DisplayName,
			OutputFileStem: p.OutputFileStem,
			EntryFilePath:  p.Entry,
			Globals:        maps.Clone(p.Globals),
		}
	}
	return specs
}

// Equal returns true if two manifests declare the same packages in the same
// order.
func (r *Root) Equal(other *Root) bool {
	if len(r.Packages) != len(other.Packages) {
		return false
	}
	for i := range r.Packages {
		if !r.Packages[i].Equal(other.Packages[i]) {
			return false
		}
	}
	return true
}

// Equal returns true if two package declarations are identical.
func (p *Package) Equal(other *Package) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.Name == other.Name &&
		p.Directory == other.Directory &&
		p.DisplayName == other.DisplayName &&
		p.OutputFileStem == other.OutputFileStem &&
		p.Entry == other.Entry &&
		maps.Equal(p.Globals, other.Globals)
}

// Default returns the production package set of the distribution. It is a
// fresh value on every call so callers may extend it without affecting
// others.
func Default() *Root {
	root := Root{
		Packages: []*Package{
			{
				Name:        "luma",
				DisplayName: "Luma",
			},
			{
				Name:        "luma-element",
				DisplayName: "Luma Element",
				Globals: Globals{
					"luma": "Luma",
				},
			},
			{
				Name:        "luma-react",
				DisplayName: "Luma React",
				Globals: Globals{
					"luma":      "Luma",
					"react":     "React",
					"react-dom": "ReactDOM",
				},
			},
			{
				Name:        "luma-router",
				DisplayName: "Luma Router",
				Globals: Globals{
					"luma": "Luma",
				},
			},
		},
	}
	root.applyDefaults()
	return &root
}

// Validate checks a manifest document against the embedded JSON schema
// before it is unmarshaled.
func Validate(data []byte) error {
	var manifest any
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return err
	}

	return rootSchema.Validate(manifest)
}

// ParseFile reads, validates and parses a manifest file.
func ParseFile(filename string) (*Root, error) {
	bs, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", filename, err)
	}

	return Parse(bs)
}

// Parse validates the manifest against the embedded schema and unmarshals
// it.
func Parse(bs []byte) (*Root, error) {
	if err := Validate(bs); err != nil {
		return nil, err
	}

	var root Root
	if err := yaml.Unmarshal(bs, &root); err != nil {
		return nil, fmt.Errorf("failed to unmarshal manifest: %w", err)
	}

	return &root, nil
}
