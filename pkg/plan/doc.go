// Package plan derives bundler build descriptors for a multi-package library
// distribution.
//
// For every published package the planner produces four descriptors: an
// ES-module build, a CommonJS build, a development UMD build and a minified
// production UMD build. Each carries its external-dependency set, its
// output layout and its ordered plugin sequence. The package is purely
// computational: it performs no I/O and holds no state, so the same package
// list always expands to the same descriptor sequence.
//
// # Basic Usage
//
//	import "github.com/lumajs/buildplane/pkg/plan"
//
//	descriptors, err := plan.Assemble([]plan.PackageSpec{{
//	    Name:           "luma-react",
//	    PackageDir:     "packages/luma-react",
//	    DisplayName:    "Luma React",
//	    OutputFileStem: "luma-react",
//	    EntryFilePath:  "src/index.ts",
//	    Globals:        map[string]string{"react": "React"},
//	}})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Each descriptor is a plain immutable value meant to be consumed exactly
// once by a bundling collaborator (see internal/bundler for the esbuild
// translation). Descriptor construction cannot fail beyond package-list
// validation; all real failure modes (missing entry files, syntax errors,
// unresolved imports) belong to the collaborator.
//
// # Externals
//
// A package's Globals map declares its peer dependencies: keys are the
// import specifiers the bundler must leave unresolved, values are the
// global variable names the UMD builds bind them to. Classification is
// exact set membership: "react/jsx-runtime" is not external just because
// "react" is.
package plan
