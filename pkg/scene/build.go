package scene

import (
	"fmt"

	"github.com/chazu/dioptra/pkg/optics"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Mirror converts the payload to an optics.Mirror.
func (m MirrorData) Mirror() (*optics.Mirror, error) {
	if m.Kind == "" {
		return optics.NewMirror(m.Vertex, m.Radius, m.Aperture)
	}
	kind, err := optics.ParseMirrorKind(m.Kind)
	if err != nil {
		return nil, err
	}
	return optics.NewMirrorOfKind(m.Vertex, m.Radius, m.Aperture, kind)
}

// Lens converts the payload to an optics.Lens.
func (l LensData) Lens() (*optics.Lens, error) {
	shape, err := optics.ParseLensShape(l.Shape)
	if err != nil {
		return nil, err
	}
	return optics.NewLens(l.Center, l.Radius, l.Separation, l.Index, shape)
}

// Interface converts the payload to an optics.Interface.
func (f InterfaceData) Interface() (*optics.Interface, error) {
	side, err := optics.ParseSide(f.Side)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", optics.ErrDegenerateGeometry, err)
	}
	return optics.NewInterface(optics.InterfaceSpec{
		Center:   f.Center,
		Radius:   f.Radius,
		ThetaMin: f.ThetaMin,
		ThetaMax: f.ThetaMax,
		NLeft:    f.NLeft,
		NRight:   f.NRight,
		Side:     side,
	})
}

// Source converts the payload to a validated optics.Source.
func (s SourceData) Source() (*optics.Source, error) {
	mode, err := optics.ParseSourceMode(s.Mode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", optics.ErrInvalidSource, err)
	}
	src := &optics.Source{
		Origin:    v2.Vec{X: s.X, Y: s.Y},
		HalfAngle: s.HalfAngle,
		Count:     s.Rays,
		Mode:      mode,
		Height:    s.Height,
	}
	if err := src.Validate(); err != nil {
		return nil, err
	}
	return src, nil
}

// Build registers every surface element with a new optics.Scene, in
// description order, and converts every source element. It fails on the
// first element that cannot be built; run ValidateAll first to collect every
// problem at once.
func Build(d *Description) (*optics.Scene, []*optics.Source, error) {
	s := optics.NewScene(
		optics.WithReach(d.Defaults.Reach),
		optics.WithMaxDepth(d.Defaults.MaxDepth),
	)
	var sources []*optics.Source

	for _, e := range d.Elements {
		if e == nil {
			continue
		}
		if err := buildElement(s, &sources, e); err != nil {
			return nil, nil, fmt.Errorf("%s %q: %w", e.Kind, e.Name, err)
		}
	}
	return s, sources, nil
}

func buildElement(s *optics.Scene, sources *[]*optics.Source, e *Element) error {
	switch data := e.Data.(type) {
	case MirrorData:
		m, err := data.Mirror()
		if err != nil {
			return err
		}
		s.AddMirror(m)
	case LensData:
		l, err := data.Lens()
		if err != nil {
			return err
		}
		s.AddLens(l)
	case InterfaceData:
		f, err := data.Interface()
		if err != nil {
			return err
		}
		s.AddInterface(f)
	case SourceData:
		src, err := data.Source()
		if err != nil {
			return err
		}
		*sources = append(*sources, src)
	default:
		return fmt.Errorf("unknown element data %T", e.Data)
	}
	return nil
}

// SurfaceLabels returns one label per surface registered by Build, indexed
// by optics.SurfaceID. Lens faces are labelled "<name>/0" and "<name>/1".
func SurfaceLabels(d *Description) []string {
	var labels []string
	for _, e := range d.Elements {
		if e == nil {
			continue
		}
		name := e.Name
		if name == "" {
			name = e.Kind.String() + "-" + e.ID.Short()
		}
		switch e.Data.(type) {
		case MirrorData, InterfaceData:
			labels = append(labels, name)
		case LensData:
			labels = append(labels, name+"/0", name+"/1")
		}
	}
	return labels
}
