package optics

import (
	"math"
)

const halfPi = math.Pi / 2

// Bounds is the axis-aligned extent of a surface arc.
type Bounds struct {
	XMin, XMax float64
	YMin, YMax float64
}

// arcBounds returns the extent of the arc x = cx + r·cos t, y = r·sin t for
// t in [t0, t1]. The extrema of sin and cos sit at multiples of π/2, so only
// the endpoints and those angles need to be visited. r may be negative.
func arcBounds(cx, r, t0, t1 float64) Bounds {
	b := Bounds{
		XMin: math.Inf(1), XMax: math.Inf(-1),
		YMin: math.Inf(1), YMax: math.Inf(-1),
	}
	visit := func(t float64) {
		x := cx + r*math.Cos(t)
		y := r * math.Sin(t)
		b.XMin = math.Min(b.XMin, x)
		b.XMax = math.Max(b.XMax, x)
		b.YMin = math.Min(b.YMin, y)
		b.YMax = math.Max(b.YMax, y)
	}
	visit(t0)
	visit(t1)
	for k := math.Ceil(t0 / halfPi); k*halfPi < t1; k++ {
		visit(k * halfPi)
	}
	return b
}

// lineCircle solves for the x coordinates where the line through (x0, y0) at
// angle theta meets the circle of radius r centered at (c, 0). It returns the
// quadratic's A and B coefficients and its discriminant.
func lineCircle(x0, y0, theta, c, r float64) (a, b, delta float64) {
	t := math.Tan(theta)
	a = 1 + t*t
	b = -2*c - 2*x0*t*t + 2*y0*t
	cc := c*c + x0*x0*t*t - 2*y0*x0*t + y0*y0 - r*r
	delta = b*b - 4*a*cc
	return a, b, delta
}

// lowerRoot and upperRoot pick one root of the quadratic from lineCircle.
func lowerRoot(a, b, delta float64) float64 { return (-b - math.Sqrt(delta)) / (2 * a) }
func upperRoot(a, b, delta float64) float64 { return (-b + math.Sqrt(delta)) / (2 * a) }

// round1 rounds to one decimal place.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// wrapAngle normalizes an angle into (-π, π].
func wrapAngle(theta float64) float64 {
	a := math.Mod(theta+math.Pi, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	a -= math.Pi
	if a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// clampUnit keeps asin arguments inside [-1, 1] against rounding drift.
func clampUnit(x float64) float64 {
	return math.Max(-1, math.Min(1, x))
}

func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
