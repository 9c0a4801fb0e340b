package optics

import (
	"fmt"
	"math"
	"strings"
)

// Travel is the direction a ray's extent grows along the x axis.
type Travel int

const (
	Forward  Travel = iota // extent increases in x
	Backward               // extent decreases in x
)

func (t Travel) String() string {
	switch t {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return fmt.Sprintf("Travel(%d)", int(t))
	}
}

// sign returns +1 for Forward and -1 for Backward.
func (t Travel) sign() float64 {
	if t == Backward {
		return -1
	}
	return 1
}

// TravelFor returns the travel sign matching a ray angle in radians:
// Backward when the angle points into the left half plane.
func TravelFor(angle float64) Travel {
	if math.Abs(wrapAngle(angle)) > halfPi {
		return Backward
	}
	return Forward
}

// Side selects which half of an interface circle is the physical surface.
// Left faces sit on the left of their center and use the smaller root of the
// intersection quadratic; Right faces use the larger root.
type Side int

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("Side(%d)", int(s))
	}
}

// ParseSide converts "left" or "right" to a Side.
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(s) {
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	}
	return 0, fmt.Errorf("invalid side %q, expected left or right", s)
}

// LensShape is the two-valued lens profile.
type LensShape int

const (
	Convergent LensShape = iota // biconvex
	Divergent                   // biconcave
)

func (s LensShape) String() string {
	switch s {
	case Convergent:
		return "convergent"
	case Divergent:
		return "divergent"
	default:
		return fmt.Sprintf("LensShape(%d)", int(s))
	}
}

// ParseLensShape converts a shape tag to a LensShape. Unknown tags fail with
// ErrInvalidLensShape.
func ParseLensShape(s string) (LensShape, error) {
	switch strings.ToLower(s) {
	case "convergent":
		return Convergent, nil
	case "divergent":
		return Divergent, nil
	}
	return 0, fmt.Errorf("%w: %q is not a valid lens type", ErrInvalidLensShape, s)
}

// MirrorKind describes a mirror as seen from the left.
type MirrorKind int

const (
	Concave MirrorKind = iota // positive radius, center left of the vertex
	Convex                    // negative radius, center right of the vertex
)

func (k MirrorKind) String() string {
	switch k {
	case Concave:
		return "concave"
	case Convex:
		return "convex"
	default:
		return fmt.Sprintf("MirrorKind(%d)", int(k))
	}
}

// ParseMirrorKind converts "concave" or "convex" to a MirrorKind.
func ParseMirrorKind(s string) (MirrorKind, error) {
	switch strings.ToLower(s) {
	case "concave":
		return Concave, nil
	case "convex":
		return Convex, nil
	}
	return 0, fmt.Errorf("invalid mirror kind %q, expected concave or convex", s)
}

// SurfaceKind enumerates the registered surface types.
type SurfaceKind int

const (
	SurfaceMirror SurfaceKind = iota
	SurfaceInterface
)

func (k SurfaceKind) String() string {
	switch k {
	case SurfaceMirror:
		return "mirror"
	case SurfaceInterface:
		return "interface"
	default:
		return "unknown"
	}
}

// SourceMode selects how a Source spreads its rays.
type SourceMode int

const (
	Point    SourceMode = iota // fan of angles from one point
	Parallel                   // parallel bundle from infinity
)

func (m SourceMode) String() string {
	switch m {
	case Point:
		return "point"
	case Parallel:
		return "parallel"
	default:
		return fmt.Sprintf("SourceMode(%d)", int(m))
	}
}

// ParseSourceMode converts "point" or "parallel" to a SourceMode.
func ParseSourceMode(s string) (SourceMode, error) {
	switch strings.ToLower(s) {
	case "point":
		return Point, nil
	case "parallel", "infinity":
		return Parallel, nil
	}
	return 0, fmt.Errorf("invalid source mode %q, expected point or parallel", s)
}

// Termination records why a ray's chain stopped at that ray.
type Termination int

const (
	Exited              Termination = iota // no contact; the ray leaves the scene
	Redirected                             // a child ray continues the chain
	UndefinedRefraction                    // Snell's law had no solution
	DepthLimited                           // contact found but the depth cap was reached
)

func (t Termination) String() string {
	switch t {
	case Exited:
		return "exited"
	case Redirected:
		return "redirected"
	case UndefinedRefraction:
		return "undefined-refraction"
	case DepthLimited:
		return "depth-limited"
	default:
		return "unknown"
	}
}

// EventKind is the kind of redirection at a contact.
type EventKind int

const (
	Reflection EventKind = iota
	Refraction
)

func (k EventKind) String() string {
	switch k {
	case Reflection:
		return "reflection"
	case Refraction:
		return "refraction"
	default:
		return "unknown"
	}
}
