package optics

import (
	"fmt"
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
	"gonum.org/v1/gonum/floats"
)

// MaxSourceRays bounds the ray count of a single source.
const MaxSourceRays = 100000

// Source emits a fixed bundle of forward-travelling rays.
type Source struct {
	Origin    v2.Vec
	HalfAngle float64 // Point mode: half opening angle of the fan
	Count     int
	Mode      SourceMode
	Height    float64 // Parallel mode: total height of the bundle, centered on y = 0
}

// Validate checks the emission parameters.
func (s *Source) Validate() error {
	if s.Count < 1 {
		return fmt.Errorf("%w: ray count %d must be at least 1", ErrInvalidSource, s.Count)
	}
	if s.Count > MaxSourceRays {
		return fmt.Errorf("%w: ray count %d exceeds %d", ErrInvalidSource, s.Count, MaxSourceRays)
	}
	if !finite(s.Origin.X, s.Origin.Y, s.HalfAngle, s.Height) {
		return fmt.Errorf("%w: parameters must be finite", ErrInvalidSource)
	}
	switch s.Mode {
	case Point:
		if s.HalfAngle < 0 || s.HalfAngle >= halfPi {
			return fmt.Errorf("%w: half angle %.4g outside [0, π/2)", ErrInvalidSource, s.HalfAngle)
		}
	case Parallel:
		if s.Height < 0 {
			return fmt.Errorf("%w: bundle height %.4g must not be negative", ErrInvalidSource, s.Height)
		}
	default:
		return fmt.Errorf("%w: unknown mode %v", ErrInvalidSource, s.Mode)
	}
	return nil
}

// Emit returns exactly Count rays reaching reach units along x. Parallel
// rays start at Origin.X with heights spread over [-Height/2, Height/2];
// Origin.Y is ignored. A single ray takes the low end of the range.
func (s *Source) Emit(reach float64) []Ray {
	rays := make([]Ray, 0, s.Count)
	switch s.Mode {
	case Parallel:
		for _, dy := range spread(s.Height/2, s.Count) {
			origin := v2.Vec{X: s.Origin.X, Y: dy}
			rays = append(rays, NewRay(origin, 0, Forward, reach))
		}
	default:
		for _, angle := range spread(s.HalfAngle, s.Count) {
			rays = append(rays, NewRay(s.Origin, angle, Forward, reach))
		}
	}
	return rays
}

// spread returns n values evenly spaced over [-half, half], starting at
// -half.
func spread(half float64, n int) []float64 {
	if n == 1 {
		return []float64{-math.Abs(half)}
	}
	return floats.Span(make([]float64, n), -math.Abs(half), math.Abs(half))
}
