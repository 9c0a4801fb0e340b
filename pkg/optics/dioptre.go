package optics

import (
	"fmt"
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// InterfaceSpec holds the parameters of one refractive face.
type InterfaceSpec struct {
	Center   float64 // x of the circle center
	Radius   float64
	ThetaMin float64 // arc span, radians
	ThetaMax float64
	NLeft    float64 // refractive index left of the face
	NRight   float64 // refractive index right of the face
	Side     Side
}

// Interface is a spherical refractive boundary (a dioptre) between two media.
type Interface struct {
	InterfaceSpec
	bounds Bounds
}

// NewInterface validates spec and returns the interface.
func NewInterface(spec InterfaceSpec) (*Interface, error) {
	if !finite(spec.Center, spec.Radius, spec.ThetaMin, spec.ThetaMax, spec.NLeft, spec.NRight) {
		return nil, fmt.Errorf("%w: interface parameters must be finite", ErrDegenerateGeometry)
	}
	if spec.Radius <= 0 {
		return nil, fmt.Errorf("%w: interface radius %.4g must be positive", ErrDegenerateGeometry, spec.Radius)
	}
	if spec.ThetaMin >= spec.ThetaMax || spec.ThetaMax-spec.ThetaMin >= 2*math.Pi {
		return nil, fmt.Errorf("%w: interface span [%.4g, %.4g] is empty or a full circle",
			ErrDegenerateGeometry, spec.ThetaMin, spec.ThetaMax)
	}
	if spec.NLeft <= 0 || spec.NRight <= 0 {
		return nil, fmt.Errorf("%w: refractive indices must be positive", ErrDegenerateGeometry)
	}
	if spec.Side != Left && spec.Side != Right {
		return nil, fmt.Errorf("%w: unknown side %v", ErrDegenerateGeometry, spec.Side)
	}
	return &Interface{
		InterfaceSpec: spec,
		bounds:        arcBounds(spec.Center, spec.Radius, spec.ThetaMin, spec.ThetaMax),
	}, nil
}

func (f *Interface) Kind() SurfaceKind { return SurfaceInterface }

func (f *Interface) Bounds() Bounds { return f.bounds }

// Contact implements Surface.
func (f *Interface) Contact(r Ray) (v2.Vec, bool) {
	a, b, delta := lineCircle(r.Origin.X, r.Origin.Y, r.Angle, f.Center, f.Radius)
	if delta < 0 {
		return v2.Vec{}, false
	}

	var x float64
	if f.Side == Left {
		x = lowerRoot(a, b, delta)
	} else {
		x = upperRoot(a, b, delta)
	}
	if round1(x) == round1(r.Origin.X) {
		return v2.Vec{}, false
	}
	y := r.YAt(x)

	if !(y > f.bounds.YMin && y < f.bounds.YMax) {
		return v2.Vec{}, false
	}
	if !(x > f.bounds.XMin && x < f.bounds.XMax) {
		return v2.Vec{}, false
	}
	if !r.ahead(x, false) {
		return v2.Vec{}, false
	}
	return v2.Vec{X: x, Y: y}, true
}

// normal returns the angle of the face's normal at p.
func (f *Interface) normal(p v2.Vec) float64 {
	if f.Side == Left {
		return math.Pi - math.Atan(p.Y/(f.Center-p.X))
	}
	return math.Atan(p.Y / (p.X - f.Center))
}

// Redirect implements Surface using Snell's law with the indices taken as
// NLeft on the incident side and NRight on the transmitted side.
func (f *Interface) Redirect(r Ray, p v2.Vec) (Redirection, error) {
	normal := f.normal(p)
	beta := math.Pi - normal + r.Angle

	s := math.Sin(beta) * f.NLeft / f.NRight
	if math.Abs(s) > 1 || math.IsNaN(s) {
		return Redirection{Normal: normal, Incidence: beta, Travel: r.Travel},
			fmt.Errorf("%w: sin argument %.6g at (%.4g, %.4g)", ErrUndefinedRefraction, s, p.X, p.Y)
	}
	alpha := math.Asin(s)

	var angle float64
	if (r.Travel == Forward && f.Side == Left) || (r.Travel == Backward && f.Side == Right) {
		angle = normal + alpha - math.Pi
	} else {
		angle = normal - alpha
	}
	return Redirection{
		Angle:     angle,
		Travel:    r.Travel,
		Normal:    normal,
		Incidence: beta,
		Outgoing:  alpha,
	}, nil
}
