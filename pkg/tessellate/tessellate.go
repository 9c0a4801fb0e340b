// Package tessellate walks a traced scene and produces drawable polylines:
// one sampled arc per surface and one segment (or one chained path) per ray.
package tessellate

import (
	"fmt"
	"math"

	"github.com/chazu/dioptra/pkg/kernel"
	"github.com/chazu/dioptra/pkg/optics"
	v2 "github.com/deadsy/sdfx/vec/v2"
	"gonum.org/v1/gonum/floats"
)

// DefaultArcPoints is the number of samples per surface arc.
const DefaultArcPoints = 64

// Options controls tessellation.
type Options struct {
	// ArcPoints is the number of samples per surface arc. Values below 2
	// select DefaultArcPoints.
	ArcPoints int

	// Labels names surfaces by SurfaceID. Missing entries fall back to
	// "surface-<id>".
	Labels []string

	// MergePaths draws each seed's whole light path as one polyline instead
	// of one segment per ray.
	MergePaths bool
}

func (o Options) arcPoints() int {
	if o.ArcPoints < 2 {
		return DefaultArcPoints
	}
	return o.ArcPoints
}

func (o Options) label(id int) string {
	if id < len(o.Labels) && o.Labels[id] != "" {
		return o.Labels[id]
	}
	return fmt.Sprintf("surface-%d", id)
}

// Tessellate produces the surface arcs of s followed by the rays of res.
// Either argument may be nil. The tessellator is read-only and never
// mutates the scene or the result.
func Tessellate(s *optics.Scene, res *optics.Result, opts Options) ([]*kernel.Polyline, error) {
	var lines []*kernel.Polyline

	if s != nil {
		for i, surf := range s.Surfaces() {
			pl, err := surfacePolyline(surf, opts.arcPoints())
			if err != nil {
				return nil, fmt.Errorf("tessellate: surface %d: %w", i, err)
			}
			pl.Name = opts.label(i)
			lines = append(lines, pl)
		}
	}

	if res != nil {
		if opts.MergePaths {
			lines = append(lines, pathPolylines(res)...)
		} else {
			lines = append(lines, rayPolylines(res)...)
		}
	}

	return lines, nil
}

// surfacePolyline samples the arc of a surface.
func surfacePolyline(surf optics.Surface, n int) (*kernel.Polyline, error) {
	switch sf := surf.(type) {
	case *optics.Mirror:
		return &kernel.Polyline{
			Layer:  kernel.LayerMirror,
			Points: arc(sf.Center(), sf.Radius, -sf.HalfAperture, sf.HalfAperture, n),
		}, nil
	case *optics.Interface:
		return &kernel.Polyline{
			Layer:  kernel.LayerInterface,
			Points: arc(sf.Center, sf.Radius, sf.ThetaMin, sf.ThetaMax, n),
		}, nil
	default:
		return nil, fmt.Errorf("unsupported surface type %T", surf)
	}
}

// arc samples x = cx + r·cos t, y = r·sin t for n values of t in [t0, t1].
func arc(cx, r, t0, t1 float64, n int) []v2.Vec {
	ts := floats.Span(make([]float64, n), t0, t1)
	pts := make([]v2.Vec, n)
	for i, t := range ts {
		pts[i] = v2.Vec{X: cx + r*math.Cos(t), Y: r * math.Sin(t)}
	}
	return pts
}

// rayPolylines returns one segment per ray, in trace order.
func rayPolylines(res *optics.Result) []*kernel.Polyline {
	lines := make([]*kernel.Polyline, 0, len(res.Rays))
	for _, r := range res.Rays {
		lines = append(lines, &kernel.Polyline{
			Name:   fmt.Sprintf("ray-%d", r.Index),
			Layer:  kernel.LayerRay,
			Points: []v2.Vec{r.Origin, r.End()},
		})
	}
	return lines
}

// pathPolylines returns one polyline per seed, joining each ray of its path.
func pathPolylines(res *optics.Result) []*kernel.Polyline {
	seeds := res.Seeds()
	lines := make([]*kernel.Polyline, 0, len(seeds))
	for _, seed := range seeds {
		path := res.Path(seed)
		pts := make([]v2.Vec, 0, len(path)+1)
		for _, r := range path {
			pts = append(pts, r.Origin)
		}
		pts = append(pts, path[len(path)-1].End())
		lines = append(lines, &kernel.Polyline{
			Name:   fmt.Sprintf("path-%d", seed),
			Layer:  kernel.LayerRay,
			Points: pts,
		})
	}
	return lines
}
