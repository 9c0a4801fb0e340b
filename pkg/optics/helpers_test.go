package optics

import (
	"math"
	"testing"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	"gonum.org/v1/gonum/floats/scalar"
)

const tol = 1e-9

func near(a, b, eps float64) bool {
	return scalar.EqualWithinAbs(a, b, eps)
}

// assertOnCircle checks p against the signed distance field of the circle
// of the given radius centered at (cx, 0).
func assertOnCircle(t *testing.T, p v2.Vec, cx, radius float64) {
	t.Helper()
	c, err := sdf.Circle2D(math.Abs(radius))
	if err != nil {
		t.Fatalf("Circle2D: %v", err)
	}
	c = sdf.Transform2D(c, sdf.Translate2d(v2.Vec{X: cx, Y: 0}))
	if d := c.Evaluate(p); math.Abs(d) > 1e-6 {
		t.Errorf("point (%.6f, %.6f) is %.3g away from circle (c=%.3f, r=%.3f)", p.X, p.Y, d, cx, radius)
	}
}

func mustMirror(t *testing.T, vertex, radius, aperture float64) *Mirror {
	t.Helper()
	m, err := NewMirror(vertex, radius, aperture)
	if err != nil {
		t.Fatalf("NewMirror(%v, %v, %v): %v", vertex, radius, aperture, err)
	}
	return m
}

func mustInterface(t *testing.T, spec InterfaceSpec) *Interface {
	t.Helper()
	f, err := NewInterface(spec)
	if err != nil {
		t.Fatalf("NewInterface(%+v): %v", spec, err)
	}
	return f
}

func mustLens(t *testing.T, center, radius, sep, index float64, shape LensShape) *Lens {
	t.Helper()
	l, err := NewLens(center, radius, sep, index, shape)
	if err != nil {
		t.Fatalf("NewLens: %v", err)
	}
	return l
}
