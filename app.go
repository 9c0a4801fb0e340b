package main

import (
	"fmt"
	"log"

	"github.com/chazu/dioptra/pkg/engine"
	"github.com/chazu/dioptra/pkg/kernel"
	"github.com/chazu/dioptra/pkg/optics"
	"github.com/chazu/dioptra/pkg/scene"
	"github.com/chazu/dioptra/pkg/tessellate"
)

// colorPalette is a default palette used to assign distinct colors to
// surfaces and light paths.
var colorPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// App is the evaluation backend. It exposes one binding that runs scene
// source through the whole pipeline.
type App struct {
	engine *engine.Engine
}

// PolylineData is the JSON-serializable polyline format sent to callers.
type PolylineData struct {
	Name   string       `json:"name"`
	Layer  string       `json:"layer"`
	Points [][2]float64 `json:"points"`
	Color  string       `json:"color"`
}

// RayData is the JSON-serializable form of one traced ray.
type RayData struct {
	Index       int        `json:"index"`
	Parent      int        `json:"parent"`
	Surface     string     `json:"surface,omitempty"` // label of the spawning surface
	Origin      [2]float64 `json:"origin"`
	End         [2]float64 `json:"end"`
	Angle       float64    `json:"angle"`
	Depth       int        `json:"depth"`
	Termination string     `json:"termination"`
}

// EvalErrorData is a JSON-serializable eval error or warning.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// EvalResult is the full result returned to callers.
type EvalResult struct {
	Polylines []PolylineData  `json:"polylines"`
	Rays      []RayData       `json:"rays"`
	Errors    []EvalErrorData `json:"errors"`
	Warnings  []EvalErrorData `json:"warnings"`
	Stats     optics.Stats    `json:"stats"`
}

// NewApp creates a new App with a fresh engine.
func NewApp() *App {
	return &App{
		engine: engine.NewEngine(),
	}
}

// Evaluate takes scene source and returns polylines, rays and errors.
// This is the primary binding.
func (a *App) Evaluate(source string) EvalResult {
	result, _ := a.run(source)
	return result
}

// Render evaluates source and draws the resulting polylines to sink. The
// sink is only touched when evaluation succeeds and there is something to
// draw.
func (a *App) Render(source string, sink kernel.Sink) (EvalResult, error) {
	result, lines := a.run(source)
	if len(result.Errors) > 0 {
		return result, nil
	}
	if !drawable(lines) {
		log.Printf("Render: scene has nothing to draw")
		return result, nil
	}
	if err := kernel.Render(sink, lines); err != nil {
		log.Printf("Render error: %v", err)
		return result, err
	}
	return result, nil
}

// drawable reports whether any polyline has a segment to draw.
func drawable(lines []*kernel.Polyline) bool {
	for _, p := range lines {
		if p != nil && !p.IsEmpty() {
			return true
		}
	}
	return false
}

// run executes the pipeline and returns the result with the kernel
// polylines it was built from.
func (a *App) run(source string) (EvalResult, []*kernel.Polyline) {
	result := EvalResult{
		Polylines: []PolylineData{},
		Rays:      []RayData{},
		Errors:    []EvalErrorData{},
		Warnings:  []EvalErrorData{},
	}
	fail := func(msg string) (EvalResult, []*kernel.Polyline) {
		result.Errors = append(result.Errors, EvalErrorData{Message: msg})
		return result, nil
	}

	// Step 1: Evaluate the source into a validated scene description.
	full := a.engine.EvaluateFull(source)
	if len(full.Errors) > 0 {
		for _, e := range full.Errors {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result, nil
	}
	d := full.Description
	if d == nil || d.Len() == 0 {
		// An empty scene has nothing to trace or warn about.
		return result, nil
	}
	for _, w := range full.Warnings {
		result.Warnings = append(result.Warnings, EvalErrorData{
			Line:    w.Line,
			Col:     w.Col,
			Message: w.Message,
		})
	}

	// Step 2: Build the optical scene.
	s, sources, err := scene.Build(d)
	if err != nil {
		log.Printf("Build error: %v", err)
		return fail("build failed: " + err.Error())
	}

	// Step 3: Trace every source.
	traced, err := s.Trace(sources...)
	if err != nil {
		log.Printf("Trace error: %v", err)
		return fail("trace failed: " + err.Error())
	}
	result.Stats = traced.Stats

	labels := scene.SurfaceLabels(d)
	for _, ev := range traced.Events {
		if ev.Err != nil {
			result.Warnings = append(result.Warnings, EvalErrorData{
				Message: fmt.Sprintf("ray %d: no refracted ray at %s (%.4g, %.4g)",
					ev.Ray, labelOf(labels, ev.Surface), ev.Point.X, ev.Point.Y),
			})
		}
	}

	// Step 4: Tessellate surfaces and rays into polylines.
	lines, err := tessellate.Tessellate(s, traced, tessellate.Options{Labels: labels})
	if err != nil {
		log.Printf("Tessellate error: %v", err)
		return fail("tessellation failed: " + err.Error())
	}

	// Step 5: Convert to the JSON formats. Surfaces cycle through the
	// palette; rays take the color of their seed.
	seed := -1
	rayColors := make([]string, len(traced.Rays))
	for i, r := range traced.Rays {
		if r.Parent < 0 {
			seed++
		}
		rayColors[i] = colorPalette[seed%len(colorPalette)]
		result.Rays = append(result.Rays, RayData{
			Index:       r.Index,
			Parent:      r.Parent,
			Surface:     labelOf(labels, r.Surface),
			Origin:      [2]float64{r.Origin.X, r.Origin.Y},
			End:         [2]float64{r.End().X, r.End().Y},
			Angle:       r.Angle,
			Depth:       r.Depth,
			Termination: r.Termination.String(),
		})
	}

	surfaces := s.Len()
	for i, l := range lines {
		color := colorPalette[i%len(colorPalette)]
		if i >= surfaces {
			color = rayColors[i-surfaces]
		}
		result.Polylines = append(result.Polylines, polylineData(l, color))
	}

	return result, lines
}

func polylineData(l *kernel.Polyline, color string) PolylineData {
	pts := make([][2]float64, len(l.Points))
	for i, p := range l.Points {
		pts[i] = [2]float64{p.X, p.Y}
	}
	return PolylineData{
		Name:   l.Name,
		Layer:  string(l.Layer),
		Points: pts,
		Color:  color,
	}
}

// labelOf names a surface, or returns "" for source rays.
func labelOf(labels []string, id optics.SurfaceID) string {
	if id == optics.NoSurface {
		return ""
	}
	if int(id) < len(labels) {
		return labels[id]
	}
	return fmt.Sprintf("surface-%d", id)
}
