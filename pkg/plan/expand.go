package plan

import (
	"fmt"
	"maps"
	"path/filepath"
	"strings"
	"unicode"
)

// ResolvedOptions is the shared options bundle the four target builders
// consume. It is derived once per package and owned by that package's
// expansion; nothing is shared or mutated across packages.
type ResolvedOptions struct {
	Package        string
	AbsoluteInput  string
	Externals      []string
	Banner         string
	JSGlobalName   string
	OutputFileStem string
	PackageDir     string
	Globals        map[string]string
}

// Resolve derives the options bundle for one package: the entry file
// resolved to an absolute path, the sorted external set, the banner and the
// UMD global name.
func Resolve(spec PackageSpec) (ResolvedOptions, error) {
	input, err := filepath.Abs(filepath.Join(spec.PackageDir, spec.EntryFilePath))
	if err != nil {
		return ResolvedOptions{}, fmt.Errorf("resolve entry %q of package %q: %w", spec.EntryFilePath, spec.Name, err)
	}

	return ResolvedOptions{
		Package:        spec.Name,
		AbsoluteInput:  input,
		Externals:      ExternalsOf(spec.Globals),
		Banner:         Banner(spec.DisplayName),
		JSGlobalName:   JSGlobalName(spec.DisplayName),
		OutputFileStem: spec.OutputFileStem,
		PackageDir:     spec.PackageDir,
		Globals:        maps.Clone(spec.Globals),
	}, nil
}

// JSGlobalName derives the UMD global variable name from a display name by
// dropping every rune that is not a letter or digit ("Luma React" becomes
// "LumaReact").
func JSGlobalName(displayName string) string {
	var b strings.Builder
	for _, r := range displayName {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Expand produces the four build descriptors of one package, in the fixed
// order ESM, CJS, UMD-dev, UMD-prod. The order matters only for output
// determinism; each descriptor is independently consumable.
func Expand(spec PackageSpec) ([]BuildDescriptor, error) {
	opts, err := Resolve(spec)
	if err != nil {
		return nil, err
	}

	return []BuildDescriptor{
		ESM(opts),
		CJS(opts),
		UMDDev(opts),
		UMDProd(opts),
	}, nil
}
