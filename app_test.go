package main

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chazu/dioptra/pkg/kernel"
	"github.com/chazu/dioptra/pkg/kernel/sdfx"
)

// TestE2EBenchExample exercises the full pipeline: scene source → engine →
// description → optics → tessellate → polylines. This is the same path the
// Evaluate binding takes.
func TestE2EBenchExample(t *testing.T) {
	app := NewApp()

	source, err := os.ReadFile("examples/bench.dioptra")
	if err != nil {
		t.Fatalf("failed to read bench.dioptra: %v", err)
	}

	result := app.Evaluate(string(source))

	// No errors expected.
	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			t.Errorf("eval error (line %d): %s", e.Line, e.Message)
		}
		t.FailNow()
	}

	if result.Stats.Seeds != 11 {
		t.Errorf("expected 11 seeds, got %d", result.Stats.Seeds)
	}
	if result.Stats.Reflections == 0 || result.Stats.Refractions == 0 {
		t.Errorf("expected reflections and refractions, got %+v", result.Stats)
	}
	if len(result.Rays) != result.Stats.Rays {
		t.Errorf("rays %d disagree with stats %d", len(result.Rays), result.Stats.Rays)
	}

	// Three surfaces (two lens faces and the mirror) followed by one
	// polyline per ray.
	if len(result.Polylines) != 3+len(result.Rays) {
		t.Fatalf("expected %d polylines, got %d", 3+len(result.Rays), len(result.Polylines))
	}

	wantSurfaces := []string{"l1/0", "l1/1", "m1"}
	for i, name := range wantSurfaces {
		pl := result.Polylines[i]
		if pl.Name != name {
			t.Errorf("surface %d named %q, want %q", i, pl.Name, name)
		}
		if len(pl.Points) == 0 {
			t.Errorf("surface %q: no points", name)
		}
	}
	if result.Polylines[2].Layer != string(kernel.LayerMirror) {
		t.Errorf("m1 layer = %q", result.Polylines[2].Layer)
	}

	for _, pl := range result.Polylines {
		// Must have a color assigned.
		if pl.Color == "" {
			t.Errorf("polyline %q: no color assigned", pl.Name)
		}
	}

	for _, r := range result.Rays {
		if r.Parent < 0 && r.Surface != "" {
			t.Errorf("source ray %d has surface %q", r.Index, r.Surface)
		}
		if r.Parent >= 0 && r.Surface == "" {
			t.Errorf("ray %d has no spawning surface", r.Index)
		}
	}
}

// TestE2EMirrorFocus checks that the mirror example focuses between the
// paraxial focus at 7.5 and the marginal crossing R/(2·cos α) ≈ 7.96.
func TestE2EMirrorFocus(t *testing.T) {
	app := NewApp()
	source, err := os.ReadFile("examples/mirror.dioptra")
	if err != nil {
		t.Fatalf("failed to read mirror.dioptra: %v", err)
	}

	result := app.Evaluate(string(source))
	if len(result.Errors) > 0 {
		t.Fatalf("eval errors: %v", result.Errors)
	}
	if result.Stats.Reflections != 21 {
		t.Errorf("expected 21 reflections, got %d", result.Stats.Reflections)
	}

	// Every reflected ray crosses the axis close to the focus.
	for _, r := range result.Rays {
		dx := r.End[0] - r.Origin[0]
		dy := r.End[1] - r.Origin[1]
		if r.Parent < 0 || math.Abs(dy) < 1e-9 {
			continue
		}
		cross := r.Origin[0] - r.Origin[1]*dx/dy
		if cross < 7.49 || cross > 7.96 {
			t.Errorf("ray %d crosses the axis at %f", r.Index, cross)
		}
	}
}

// TestE2EDioptreExample ensures the single-face example refracts every ray.
func TestE2EDioptreExample(t *testing.T) {
	app := NewApp()
	source, err := os.ReadFile("examples/dioptre.dioptra")
	if err != nil {
		t.Fatalf("failed to read dioptre.dioptra: %v", err)
	}

	result := app.Evaluate(string(source))
	if len(result.Errors) > 0 {
		t.Fatalf("eval errors: %v", result.Errors)
	}
	if result.Stats.Seeds != 9 {
		t.Errorf("expected 9 seeds, got %d", result.Stats.Seeds)
	}
	if result.Polylines[0].Layer != string(kernel.LayerInterface) || result.Polylines[0].Name != "face" {
		t.Errorf("first polyline = %q (%s)", result.Polylines[0].Name, result.Polylines[0].Layer)
	}
}

// TestE2EEmptySource ensures the pipeline handles empty input gracefully.
func TestE2EEmptySource(t *testing.T) {
	app := NewApp()
	result := app.Evaluate("")

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors for empty source: %v", result.Errors)
	}
	if len(result.Polylines) != 0 {
		t.Errorf("expected 0 polylines for empty source, got %d", len(result.Polylines))
	}
}

// TestE2ESyntaxError ensures eval errors are reported, not fatal errors.
func TestE2ESyntaxError(t *testing.T) {
	app := NewApp()
	result := app.Evaluate(`(mirror "m"`)

	if len(result.Errors) == 0 {
		t.Fatal("expected eval errors for syntax error")
	}
	if len(result.Polylines) != 0 {
		t.Errorf("expected 0 polylines on error, got %d", len(result.Polylines))
	}
}

// TestE2ERenderSVG writes the bench to an SVG file through the sdfx sink.
func TestE2ERenderSVG(t *testing.T) {
	app := NewApp()
	source, err := os.ReadFile("examples/bench.dioptra")
	if err != nil {
		t.Fatal(err)
	}

	rec := &kernel.Recorder{}
	result, err := app.Render(string(source), rec)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if len(rec.Lines) != len(result.Polylines) {
		t.Errorf("sink got %d polylines, result has %d", len(rec.Lines), len(result.Polylines))
	}
	if !rec.Closed() {
		t.Error("sink was not closed")
	}

	path := filepath.Join(t.TempDir(), "bench.svg")
	if _, err := app.Render(string(source), sdfx.NewSVGSink(path, "")); err != nil {
		t.Fatalf("Render to SVG failed: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("SVG not written: %v", err)
	}
	if !strings.Contains(string(b), "<svg") {
		t.Error("output is not an SVG document")
	}
}

// TestE2ERenderSkipsSinkOnError leaves the sink untouched when evaluation
// fails.
func TestE2ERenderSkipsSinkOnError(t *testing.T) {
	app := NewApp()
	rec := &kernel.Recorder{}
	result, err := app.Render(`(lens "bad" :center 0)`, rec)
	if err != nil {
		t.Fatalf("unexpected sink error: %v", err)
	}
	if len(result.Errors) == 0 {
		t.Fatal("expected eval errors")
	}
	if len(rec.Lines) != 0 || rec.Closed() {
		t.Error("sink should not be used when evaluation fails")
	}
}

// TestE2ERenderEmptySceneSkipsSink leaves the sink untouched when the scene
// produces no polylines, so an SVG render of an empty scene succeeds
// without writing a file.
func TestE2ERenderEmptySceneSkipsSink(t *testing.T) {
	for _, source := range []string{"", "(+ 1 2)", "(settings :reach 30)"} {
		app := NewApp()
		rec := &kernel.Recorder{}
		result, err := app.Render(source, rec)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", source, err)
		}
		if len(result.Errors) != 0 || len(result.Polylines) != 0 {
			t.Fatalf("%q: errors %v polylines %d", source, result.Errors, len(result.Polylines))
		}
		if len(rec.Lines) != 0 || rec.Closed() {
			t.Errorf("%q: sink should not be used for an empty scene", source)
		}

		path := filepath.Join(t.TempDir(), "empty.svg")
		if _, err := app.Render(source, sdfx.NewSVGSink(path, "")); err != nil {
			t.Errorf("%q: SVG render of empty scene failed: %v", source, err)
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("%q: expected no SVG file, stat err = %v", source, err)
		}
	}
}
