package plan_test

import (
	"strings"
	"testing"

	"github.com/lumajs/buildplane/pkg/plan"
)

func TestIsExternal(t *testing.T) {
	cases := []struct {
		note      string
		specifier string
		externals []string
		exp       bool
	}{
		{
			note:      "exact match",
			specifier: "react",
			externals: []string{"react"},
			exp:       true,
		},
		{
			note:      "no prefix matching",
			specifier: "react-dom",
			externals: []string{"react"},
			exp:       false,
		},
		{
			note:      "no subpath matching",
			specifier: "react/jsx-runtime",
			externals: []string{"react"},
			exp:       false,
		},
		{
			note:      "no substring matching",
			specifier: "act",
			externals: []string{"react"},
			exp:       false,
		},
		{
			note:      "empty set",
			specifier: "react",
			externals: nil,
			exp:       false,
		},
		{
			note:      "one of several",
			specifier: "react-dom",
			externals: []string{"react", "react-dom"},
			exp:       true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.note, func(t *testing.T) {
			if got := plan.IsExternal(tc.specifier, tc.externals); got != tc.exp {
				t.Fatalf("IsExternal(%q, %v) = %v, expected %v", tc.specifier, tc.externals, got, tc.exp)
			}
		})
	}
}

func TestExternalsOfSorted(t *testing.T) {
	globals := map[string]string{
		"react-dom": "ReactDOM",
		"luma":      "Luma",
		"react":     "React",
	}
	got := plan.ExternalsOf(globals)
	exp := []string{"luma", "react", "react-dom"}
	if len(got) != len(exp) {
		t.Fatalf("expected %v, got %v", exp, got)
	}
	for i := range exp {
		if got[i] != exp[i] {
			t.Fatalf("expected %v, got %v", exp, got)
		}
	}
}

func TestEmptyGlobalsMeansNothingExternal(t *testing.T) {
	descriptors, err := plan.Expand(plan.PackageSpec{
		Name:           "core",
		PackageDir:     "packages/core",
		DisplayName:    "Luma",
		OutputFileStem: "luma",
		EntryFilePath:  "src/index.ts",
		Globals:        map[string]string{},
	})
	if err != nil {
		t.Fatal(err)
	}

	probes := []string{"react", "react-dom", "", "luma", "src/index.ts"}
	for _, d := range descriptors {
		for _, probe := range probes {
			if d.External(probe) {
				t.Errorf("%v descriptor: %q classified external with empty globals", d.Target, probe)
			}
		}
	}
}

func TestBanner(t *testing.T) {
	if plan.Banner("Luma") != plan.Banner("Luma") {
		t.Fatal("banner is not deterministic")
	}

	a, b := plan.Banner("Luma"), plan.Banner("Luma React")
	if a == b {
		t.Fatal("banners for different display names are identical")
	}
	// Banners differ only in the embedded display name.
	if strings.ReplaceAll(b, "Luma React", "Luma") != a {
		t.Fatalf("banners differ beyond the display name:\n%s\n%s", a, b)
	}
	if !strings.Contains(a, "Luma") || !strings.HasPrefix(a, "/**") {
		t.Fatalf("unexpected banner format:\n%s", a)
	}
}

func TestSubstitutions(t *testing.T) {
	for _, env := range []plan.Env{plan.EnvDevelopment, plan.EnvProduction} {
		rules := plan.Substitutions(env)
		if len(rules) != 1 {
			t.Fatalf("expected exactly one substitution rule, got %d", len(rules))
		}
		if exp, got := `"`+string(env)+`"`, rules["process.env.NODE_ENV"]; got != exp {
			t.Fatalf("expected replacement %q, got %q", exp, got)
		}
	}
}

func TestJSGlobalName(t *testing.T) {
	cases := []struct {
		note, in, exp string
	}{
		{"single word", "Luma", "Luma"},
		{"space removed", "Luma React", "LumaReact"},
		{"punctuation removed", "Luma/Router v2", "LumaRouterv2"},
	}
	for _, tc := range cases {
		t.Run(tc.note, func(t *testing.T) {
			if got := plan.JSGlobalName(tc.in); got != tc.exp {
				t.Fatalf("JSGlobalName(%q) = %q, expected %q", tc.in, got, tc.exp)
			}
		})
	}
}
