package plan_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lumajs/buildplane/pkg/plan"
)

func testPackages() []plan.PackageSpec {
	return []plan.PackageSpec{
		{
			Name:           "core",
			PackageDir:     "packages/core",
			DisplayName:    "Luma",
			OutputFileStem: "luma",
			EntryFilePath:  "src/index.ts",
			Globals:        map[string]string{},
		},
		{
			Name:           "react-adapter",
			PackageDir:     "packages/react-adapter",
			DisplayName:    "Luma React",
			OutputFileStem: "luma-react",
			EntryFilePath:  "src/index.ts",
			Globals: map[string]string{
				"react":     "React",
				"react-dom": "ReactDOM",
			},
		},
	}
}

func TestAssembleMatrix(t *testing.T) {
	descriptors, err := plan.Assemble(testPackages())
	if err != nil {
		t.Fatal(err)
	}

	if exp, got := 8, len(descriptors); exp != got {
		t.Fatalf("expected %d descriptors, got %d", exp, got)
	}

	// Every package contributes exactly the four targets, in expansion order.
	for i, d := range descriptors {
		if exp := plan.Targets()[i%4]; d.Target != exp {
			t.Errorf("descriptor %d: expected target %v, got %v", i, exp, d.Target)
		}
	}
	for i, spec := range testPackages() {
		seen := map[plan.Target]int{}
		for _, d := range descriptors[i*4 : i*4+4] {
			if d.Package != spec.Name {
				t.Errorf("expected package %q, got %q", spec.Name, d.Package)
			}
			seen[d.Target]++
		}
		for _, target := range plan.Targets() {
			if seen[target] != 1 {
				t.Errorf("package %q: target %v appears %d times", spec.Name, target, seen[target])
			}
		}
	}
}

func TestAssembleIdempotent(t *testing.T) {
	first, err := plan.Assemble(testPackages())
	if err != nil {
		t.Fatal(err)
	}
	second, err := plan.Assemble(testPackages())
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("assemblies differ (-first +second):\n%s", diff)
	}
	for i := range first {
		if !first[i].Equal(second[i]) {
			t.Errorf("descriptor %d: Equal reports difference between identical assemblies", i)
		}
	}
}

func TestAssembleRejectsMalformedSpecs(t *testing.T) {
	valid := func() plan.PackageSpec {
		return plan.PackageSpec{
			Name:           "core",
			PackageDir:     "packages/core",
			DisplayName:    "Luma",
			OutputFileStem: "luma",
			EntryFilePath:  "src/index.ts",
		}
	}

	cases := []struct {
		note     string
		packages func() []plan.PackageSpec
		expError string
	}{
		{
			note: "empty name",
			packages: func() []plan.PackageSpec {
				spec := valid()
				spec.Name = ""
				return []plan.PackageSpec{spec}
			},
			expError: "has no name",
		},
		{
			note: "empty output file stem",
			packages: func() []plan.PackageSpec {
				spec := valid()
				spec.OutputFileStem = ""
				return []plan.PackageSpec{spec}
			},
			expError: "has no output file stem",
		},
		{
			note: "empty entry file",
			packages: func() []plan.PackageSpec {
				spec := valid()
				spec.EntryFilePath = ""
				return []plan.PackageSpec{spec}
			},
			expError: "has no entry file",
		},
		{
			note: "duplicate package name",
			packages: func() []plan.PackageSpec {
				a, b := valid(), valid()
				b.OutputFileStem = "other"
				return []plan.PackageSpec{a, b}
			},
			expError: `duplicate package name "core"`,
		},
		{
			note: "duplicate output file stem",
			packages: func() []plan.PackageSpec {
				a, b := valid(), valid()
				b.Name = "other"
				return []plan.PackageSpec{a, b}
			},
			expError: `share output file stem "luma"`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.note, func(t *testing.T) {
			descriptors, err := plan.Assemble(tc.packages())
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.expError) {
				t.Fatalf("expected error containing %q, got %q", tc.expError, err)
			}
			// All-or-nothing: nothing is handed out on failure.
			if descriptors != nil {
				t.Fatalf("expected no descriptors, got %d", len(descriptors))
			}
		})
	}
}
