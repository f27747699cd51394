package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/lumajs/buildplane/internal/bundler"
	"github.com/lumajs/buildplane/internal/config"
	"github.com/lumajs/buildplane/internal/service"
	"github.com/lumajs/buildplane/pkg/plan"
)

type fakeBundler struct {
	mu   sync.Mutex
	seen map[string]int
	fail string // package name whose builds fail
	errs error
}

func (f *fakeBundler) Build(ctx context.Context, d plan.BuildDescriptor) (bundler.Result, error) {
	if err := ctx.Err(); err != nil {
		return bundler.Result{}, err
	}

	f.mu.Lock()
	if f.seen == nil {
		f.seen = map[string]int{}
	}
	f.seen[d.Package+"/"+string(d.Target)]++
	f.mu.Unlock()

	if f.fail == d.Package {
		return bundler.Result{}, f.errs
	}
	return bundler.Result{Package: d.Package, Target: d.Target}, nil
}

func assemble(t *testing.T) []plan.BuildDescriptor {
	t.Helper()
	descriptors, err := plan.Assemble(config.Default().Specs())
	if err != nil {
		t.Fatal(err)
	}
	return descriptors
}

func TestExecuteBuildsEveryDescriptorOnce(t *testing.T) {
	descriptors := assemble(t)
	fake := &fakeBundler{}

	results, err := service.NewBuildWorker(descriptors, fake).WithParallelism(3).Execute(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if len(results) != len(descriptors) {
		t.Fatalf("expected %d results, got %d", len(descriptors), len(results))
	}
	for i, d := range descriptors {
		// Results keep matrix order.
		if results[i].Package != d.Package || results[i].Target != d.Target {
			t.Errorf("result %d: expected %s/%s, got %s/%s", i, d.Package, d.Target, results[i].Package, results[i].Target)
		}
		if n := fake.seen[d.Package+"/"+string(d.Target)]; n != 1 {
			t.Errorf("descriptor %s/%s built %d times", d.Package, d.Target, n)
		}
	}
}

// gaugeBundler records the peak number of concurrent Build calls.
type gaugeBundler struct {
	mu       sync.Mutex
	inFlight int
	peak     int
}

func (g *gaugeBundler) Build(_ context.Context, d plan.BuildDescriptor) (bundler.Result, error) {
	g.mu.Lock()
	g.inFlight++
	if g.inFlight > g.peak {
		g.peak = g.inFlight
	}
	g.mu.Unlock()

	time.Sleep(time.Millisecond)

	g.mu.Lock()
	g.inFlight--
	g.mu.Unlock()
	return bundler.Result{Package: d.Package, Target: d.Target}, nil
}

func TestParallelismStaysBounded(t *testing.T) {
	descriptors := assemble(t)

	cases := []struct {
		note        string
		parallelism int
		bound       int
	}{
		{"explicit bound", 2, 2},
		{"zero falls back to the default", 0, 4},
		{"negative falls back to the default", -1, 4},
	}
	for _, tc := range cases {
		t.Run(tc.note, func(t *testing.T) {
			gauge := &gaugeBundler{}
			worker := service.NewBuildWorker(descriptors, gauge).WithParallelism(tc.parallelism)
			if _, err := worker.Execute(context.Background()); err != nil {
				t.Fatal(err)
			}
			if gauge.peak > tc.bound {
				t.Fatalf("observed %d concurrent builds, limit was %d", gauge.peak, tc.bound)
			}
		})
	}
}

func TestExecuteSurfacesCollaboratorError(t *testing.T) {
	descriptors := assemble(t)
	buildErr := errors.New("entry point not found")
	fake := &fakeBundler{fail: "luma-react", errs: buildErr}

	results, err := service.NewBuildWorker(descriptors, fake).WithParallelism(1).Execute(context.Background())
	if !errors.Is(err, buildErr) {
		t.Fatalf("expected the collaborator's error unmodified, got %v", err)
	}
	if results != nil {
		t.Fatalf("expected no results on failure, got %d", len(results))
	}
}
