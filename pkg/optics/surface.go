package optics

import (
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// SurfaceID is the registration index of a surface within its Scene.
// It never keeps the surface alive; it is only meaningful for the Scene
// that issued it.
type SurfaceID int

// NoSurface tags rays emitted directly by a source.
const NoSurface SurfaceID = -1

// Redirection is the outcome of bending a ray at a contact point.
type Redirection struct {
	Angle     float64 // outgoing ray angle
	Travel    Travel  // outgoing travel sign
	Normal    float64 // local normal angle used for the computation
	Incidence float64 // incidence angle measured against the normal
	Outgoing  float64 // reflected or refracted angle measured against the normal
}

// Surface is a reflective or refractive boundary a ray can strike.
type Surface interface {
	// Kind reports whether the surface reflects or refracts.
	Kind() SurfaceKind

	// Bounds is the extent of the surface arc.
	Bounds() Bounds

	// Contact returns the point where r meets the surface ahead of its
	// current extent. The boolean is false when there is no valid contact.
	Contact(r Ray) (v2.Vec, bool)

	// Redirect computes the outgoing direction for r arriving at p.
	// Refractive surfaces return ErrUndefinedRefraction when Snell's law has
	// no solution.
	Redirect(r Ray, p v2.Vec) (Redirection, error)
}

// Compile-time interface checks.
var (
	_ Surface = (*Mirror)(nil)
	_ Surface = (*Interface)(nil)
)
