package optics

import (
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// DefaultReach is how far a ray extends along x before any contact is found.
const DefaultReach = 20.0

// Extent is the x interval a ray covers, from its origin to its end.
// Start is always the origin's x. End is less than Start for Backward rays.
type Extent struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Lo returns the smaller bound of the extent.
func (e Extent) Lo() float64 { return math.Min(e.Start, e.End) }

// Hi returns the larger bound of the extent.
func (e Extent) Hi() float64 { return math.Max(e.Start, e.End) }

// Ray is one straight segment of a light path.
type Ray struct {
	Index       int         `json:"index"`
	Parent      int         `json:"parent"`  // index of the ray that spawned this one, -1 for source rays
	Surface     SurfaceID   `json:"surface"` // surface that spawned this ray, NoSurface for source rays
	Origin      v2.Vec      `json:"origin"`
	Angle       float64     `json:"angle"` // radians from the +x axis
	Travel      Travel      `json:"travel"`
	Extent      Extent      `json:"extent"`
	Depth       int         `json:"depth"`
	Termination Termination `json:"termination"`
}

// NewRay returns a source ray reaching reach units along x in its travel
// direction.
func NewRay(origin v2.Vec, angle float64, travel Travel, reach float64) Ray {
	return Ray{
		Index:   -1,
		Parent:  -1,
		Surface: NoSurface,
		Origin:  origin,
		Angle:   angle,
		Travel:  travel,
		Extent:  Extent{Start: origin.X, End: origin.X + travel.sign()*reach},
	}
}

// YAt returns the y coordinate of the ray's supporting line at x.
func (r Ray) YAt(x float64) float64 {
	return (x-r.Origin.X)*math.Tan(r.Angle) + r.Origin.Y
}

// End returns the last point of the ray's visible segment.
func (r Ray) End() v2.Vec {
	return v2.Vec{X: r.Extent.End, Y: r.YAt(r.Extent.End)}
}

// Direction returns the unit vector along the ray's angle.
func (r Ray) Direction() v2.Vec {
	return v2.Vec{X: math.Cos(r.Angle), Y: math.Sin(r.Angle)}
}

// Length returns the length of the visible segment.
func (r Ray) Length() float64 {
	return r.End().Sub(r.Origin).Length()
}

// Sample returns n points evenly spaced in x along the visible segment.
func (r Ray) Sample(n int) []v2.Vec {
	if n < 2 {
		n = 2
	}
	pts := make([]v2.Vec, n)
	step := (r.Extent.End - r.Extent.Start) / float64(n-1)
	for i := range pts {
		x := r.Extent.Start + float64(i)*step
		pts[i] = v2.Vec{X: x, Y: r.YAt(x)}
	}
	return pts
}

// ahead reports whether x lies inside the ray's extent. When inclusive is
// false both bounds are excluded.
func (r Ray) ahead(x float64, inclusive bool) bool {
	lo, hi := r.Extent.Lo(), r.Extent.Hi()
	if inclusive {
		return x >= lo && x <= hi
	}
	return x > lo && x < hi
}

// truncate fixes the ray's end at x.
func (r *Ray) truncate(x float64) {
	r.Extent.End = x
}
