package optics

import (
	"fmt"
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Mirror is a reflective spherical arc.
//
// The arc passes through (Vertex, 0) and its circle is centered at
// (Vertex - Radius, 0). A positive radius puts the center left of the vertex,
// so the mirror is concave for light arriving from the left; a negative
// radius makes it convex.
type Mirror struct {
	Vertex       float64
	Radius       float64
	HalfAperture float64 // radians, the arc spans [-HalfAperture, +HalfAperture]

	bounds Bounds
}

// NewMirror validates the parameters and returns a mirror.
func NewMirror(vertex, radius, halfAperture float64) (*Mirror, error) {
	if !finite(vertex, radius, halfAperture) {
		return nil, fmt.Errorf("%w: mirror parameters must be finite", ErrDegenerateGeometry)
	}
	if radius == 0 {
		return nil, fmt.Errorf("%w: mirror radius must be non-zero", ErrDegenerateGeometry)
	}
	if halfAperture <= 0 || halfAperture >= math.Pi {
		return nil, fmt.Errorf("%w: mirror half aperture %.4g outside (0, π)", ErrDegenerateGeometry, halfAperture)
	}
	m := &Mirror{Vertex: vertex, Radius: radius, HalfAperture: halfAperture}
	m.bounds = arcBounds(m.Center(), radius, -halfAperture, halfAperture)
	return m, nil
}

// NewMirrorOfKind builds a mirror from the magnitude of its radius and
// whether it is concave or convex as seen from the left.
func NewMirrorOfKind(vertex, radius, halfAperture float64, kind MirrorKind) (*Mirror, error) {
	r := math.Abs(radius)
	switch kind {
	case Concave:
	case Convex:
		r = -r
	default:
		return nil, fmt.Errorf("%w: unknown mirror kind %v", ErrDegenerateGeometry, kind)
	}
	return NewMirror(vertex, r, halfAperture)
}

// Center returns the x coordinate of the mirror's circle center.
func (m *Mirror) Center() float64 { return m.Vertex - m.Radius }

// Focus returns the paraxial focal point, halfway between vertex and center.
// For a convex mirror the focus is virtual and lies behind the surface.
func (m *Mirror) Focus() float64 { return m.Vertex - m.Radius/2 }

// MirrorKind reports whether the mirror is concave or convex from the left.
func (m *Mirror) MirrorKind() MirrorKind {
	if m.Radius > 0 {
		return Concave
	}
	return Convex
}

func (m *Mirror) Kind() SurfaceKind { return SurfaceMirror }

func (m *Mirror) Bounds() Bounds { return m.bounds }

// Contact implements Surface.
func (m *Mirror) Contact(r Ray) (v2.Vec, bool) {
	a, b, delta := lineCircle(r.Origin.X, r.Origin.Y, r.Angle, m.Center(), m.Radius)
	if delta < 0 {
		return v2.Vec{}, false
	}

	var x float64
	if m.Radius > 0 {
		x = upperRoot(a, b, delta)
	} else {
		x = lowerRoot(a, b, delta)
	}
	if round1(x) == round1(r.Origin.X) {
		return v2.Vec{}, false
	}
	y := r.YAt(x)

	if !(y > m.bounds.YMin && y < m.bounds.YMax) {
		return v2.Vec{}, false
	}
	if !m.facing(r) {
		return v2.Vec{}, false
	}
	if rx := round1(x); rx < round1(m.bounds.XMin) || rx > round1(m.bounds.XMax) {
		return v2.Vec{}, false
	}
	if !r.ahead(x, true) {
		return v2.Vec{}, false
	}
	return v2.Vec{X: x, Y: y}, true
}

// facing reports whether the ray starts on the side of the vertex it is
// travelling away from.
func (m *Mirror) facing(r Ray) bool {
	if r.Travel == Forward {
		return r.Origin.X < m.Vertex
	}
	return r.Origin.X > m.Vertex
}

// Redirect implements Surface. Reflection never fails.
func (m *Mirror) Redirect(r Ray, p v2.Vec) (Redirection, error) {
	normal := math.Asin(clampUnit(p.Y / m.Radius))
	angle := wrapAngle(-math.Pi + 2*normal - r.Angle)

	travel := Forward
	if math.Abs(angle) > halfPi {
		travel = Backward
	}
	return Redirection{
		Angle:     angle,
		Travel:    travel,
		Normal:    normal,
		Incidence: wrapAngle(r.Angle + math.Pi - normal),
		Outgoing:  wrapAngle(angle - normal),
	}, nil
}
