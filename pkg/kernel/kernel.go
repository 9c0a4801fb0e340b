// Package kernel defines the drawing backend interface. Implementations
// (sdfx) turn the polylines of a traced scene into an output format. The
// kernel abstraction allows swapping backends without changing the rest of
// the system.
package kernel

import (
	"errors"
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Layer classifies a polyline for styling.
type Layer string

const (
	LayerMirror    Layer = "mirror"
	LayerInterface Layer = "interface"
	LayerRay       Layer = "ray"
)

// Polyline is an open chain of points suitable for drawing.
type Polyline struct {
	Name   string   `json:"name"`  // element or ray label
	Layer  Layer    `json:"layer"` // what the polyline depicts
	Points []v2.Vec `json:"points"`
}

// VertexCount returns the number of points.
func (p *Polyline) VertexCount() int {
	return len(p.Points)
}

// SegmentCount returns the number of line segments.
func (p *Polyline) SegmentCount() int {
	if len(p.Points) < 2 {
		return 0
	}
	return len(p.Points) - 1
}

// IsEmpty returns true if the polyline has nothing to draw.
func (p *Polyline) IsEmpty() bool {
	return len(p.Points) < 2
}

// Length returns the total length of the chain.
func (p *Polyline) Length() float64 {
	var l float64
	for i := 1; i < len(p.Points); i++ {
		l += p.Points[i].Sub(p.Points[i-1]).Length()
	}
	return l
}

// Extent returns the bounding box of a set of polylines. ok is false when
// there are no points.
func Extent(lines []*Polyline) (min, max v2.Vec, ok bool) {
	min = v2.Vec{X: math.Inf(1), Y: math.Inf(1)}
	max = v2.Vec{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, l := range lines {
		for _, p := range l.Points {
			min = v2.Vec{X: math.Min(min.X, p.X), Y: math.Min(min.Y, p.Y)}
			max = v2.Vec{X: math.Max(max.X, p.X), Y: math.Max(max.Y, p.Y)}
			ok = true
		}
	}
	return min, max, ok
}

// Sink is the abstract drawing backend.
type Sink interface {
	// Draw adds one polyline to the output.
	Draw(p *Polyline) error

	// Close flushes the output. No Draw calls may follow.
	Close() error
}

// ErrClosed is returned when drawing to a closed sink.
var ErrClosed = errors.New("kernel: sink closed")

// Render draws every non-empty polyline to s and closes it.
func Render(s Sink, lines []*Polyline) error {
	for _, l := range lines {
		if l == nil || l.IsEmpty() {
			continue
		}
		if err := s.Draw(l); err != nil {
			s.Close()
			return err
		}
	}
	return s.Close()
}

// Recorder is an in-memory Sink that keeps what it is given.
type Recorder struct {
	Lines  []*Polyline
	closed bool
}

// Draw implements Sink.
func (r *Recorder) Draw(p *Polyline) error {
	if r.closed {
		return ErrClosed
	}
	r.Lines = append(r.Lines, p)
	return nil
}

// Close implements Sink.
func (r *Recorder) Close() error {
	r.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (r *Recorder) Closed() bool { return r.closed }

// Compile-time interface check.
var _ Sink = (*Recorder)(nil)
