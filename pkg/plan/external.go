package plan

import (
	"maps"
	"slices"
)

// IsExternal reports whether specifier must be left unbundled. A specifier
// is external iff it exactly matches an entry of externals: no prefix or
// substring matching, no path resolution. In particular a subpath import
// like "react/jsx-runtime" is not external when only "react" is declared.
func IsExternal(specifier string, externals []string) bool {
	return slices.Contains(externals, specifier)
}

// ExternalsOf returns the sorted external set of a package, which is exactly
// the key set of its globals map.
func ExternalsOf(globals map[string]string) []string {
	return slices.Sorted(maps.Keys(globals))
}
