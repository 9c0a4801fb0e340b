// Package sdfx implements the kernel.Sink interface using the SVG renderer
// of the github.com/deadsy/sdfx CAD library.
package sdfx

import (
	"errors"
	"fmt"

	"github.com/chazu/dioptra/pkg/kernel"
	"github.com/deadsy/sdfx/render"
)

// Compile-time interface check.
var _ kernel.Sink = (*SVGSink)(nil)

// DefaultLineStyle is the SVG style used when none is given.
const DefaultLineStyle = "fill:none;stroke:black;stroke-width:0.05"

// errNothingDrawn is returned by Close when no segment was drawn; sdfx
// cannot size an empty drawing.
var errNothingDrawn = errors.New("sdfx: nothing drawn")

// SVGSink writes polylines as line segments to an SVG file.
type SVGSink struct {
	filename string
	svg      *render.SVG
	segments int
	closed   bool
}

// NewSVGSink returns a sink writing to filename. The file is created on
// Close.
func NewSVGSink(filename, lineStyle string) *SVGSink {
	if lineStyle == "" {
		lineStyle = DefaultLineStyle
	}
	return &SVGSink{
		filename: filename,
		svg:      render.NewSVG(filename, lineStyle),
	}
}

// Draw adds every segment of p.
func (s *SVGSink) Draw(p *kernel.Polyline) error {
	if s.closed {
		return kernel.ErrClosed
	}
	for i := 1; i < len(p.Points); i++ {
		s.svg.Line(p.Points[i-1], p.Points[i])
		s.segments++
	}
	return nil
}

// Segments returns the number of segments drawn so far.
func (s *SVGSink) Segments() int { return s.segments }

// Close writes the SVG file.
func (s *SVGSink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.segments == 0 {
		return fmt.Errorf("%s: %w", s.filename, errNothingDrawn)
	}
	if err := s.svg.Save(); err != nil {
		return fmt.Errorf("sdfx: save %s: %w", s.filename, err)
	}
	return nil
}
