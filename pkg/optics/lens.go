package optics

import (
	"fmt"
	"math"
)

// ambientIndex is the refractive index of the medium around a lens.
const ambientIndex = 1.0

// Lens is a pair of spherical interfaces of equal radius.
type Lens struct {
	Center     float64 // x of the lens center
	Radius     float64 // radius of both faces
	Separation float64 // distance from the lens center to each face's vertex
	Index      float64 // refractive index of the lens material
	Shape      LensShape

	faces [2]*Interface
}

// NewLens builds both faces of the lens. Convergent lenses bulge outward
// from the center (biconvex), divergent lenses curve inward (biconcave).
func NewLens(center, radius, separation, index float64, shape LensShape) (*Lens, error) {
	if shape != Convergent && shape != Divergent {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLensShape, shape)
	}
	if !finite(center, radius, separation, index) {
		return nil, fmt.Errorf("%w: lens parameters must be finite", ErrDegenerateGeometry)
	}
	if radius <= 0 {
		return nil, fmt.Errorf("%w: lens radius %.4g must be positive", ErrDegenerateGeometry, radius)
	}
	if separation <= 0 || separation > radius {
		return nil, fmt.Errorf("%w: lens separation %.4g outside (0, %.4g]", ErrDegenerateGeometry, separation, radius)
	}
	if index <= 0 {
		return nil, fmt.Errorf("%w: lens index %.4g must be positive", ErrDegenerateGeometry, index)
	}

	half := math.Acos((radius - separation) / radius)
	right := [2]float64{-half, half}
	left := [2]float64{math.Pi - half, math.Pi + half}

	var specs [2]InterfaceSpec
	switch shape {
	case Convergent:
		specs[0] = InterfaceSpec{
			Center: center + radius - separation, Radius: radius,
			ThetaMin: left[0], ThetaMax: left[1],
			NLeft: ambientIndex, NRight: index, Side: Left,
		}
		specs[1] = InterfaceSpec{
			Center: center + separation - radius, Radius: radius,
			ThetaMin: right[0], ThetaMax: right[1],
			NLeft: index, NRight: ambientIndex, Side: Right,
		}
	case Divergent:
		specs[0] = InterfaceSpec{
			Center: center - separation - radius, Radius: radius,
			ThetaMin: right[0], ThetaMax: right[1],
			NLeft: ambientIndex, NRight: index, Side: Right,
		}
		specs[1] = InterfaceSpec{
			Center: center + separation + radius, Radius: radius,
			ThetaMin: left[0], ThetaMax: left[1],
			NLeft: index, NRight: ambientIndex, Side: Left,
		}
	}

	l := &Lens{Center: center, Radius: radius, Separation: separation, Index: index, Shape: shape}
	for i, spec := range specs {
		f, err := NewInterface(spec)
		if err != nil {
			return nil, fmt.Errorf("lens face %d: %w", i, err)
		}
		l.faces[i] = f
	}
	return l, nil
}

// Interfaces returns the two faces in left-to-right order.
func (l *Lens) Interfaces() [2]*Interface {
	return l.faces
}

// Aperture returns the half height of the lens.
func (l *Lens) Aperture() float64 {
	return l.faces[0].bounds.YMax
}
