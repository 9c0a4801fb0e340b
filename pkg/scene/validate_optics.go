package scene

import (
	"fmt"
	"math"

	"github.com/chazu/dioptra/pkg/optics"
)

// ---------------------------------------------------------------------------
// Tier 2: optical parameters (errors)
// ---------------------------------------------------------------------------

// validateOptics builds every element on its own and reports the ones the
// optics constructors reject.
func validateOptics(d *Description) []ValidationError {
	var errs []ValidationError

	for _, e := range d.Elements {
		if e == nil || e.Data == nil {
			continue // reported by Tier 1
		}
		var err error
		switch data := e.Data.(type) {
		case MirrorData:
			_, err = data.Mirror()
		case LensData:
			_, err = data.Lens()
		case InterfaceData:
			_, err = data.Interface()
		case SourceData:
			_, err = data.Source()
		}
		if err != nil {
			errs = append(errs, ValidationError{
				ElementID: e.ID,
				Message:   fmt.Sprintf("%s %q: %v", e.Kind, e.Name, err),
				Severity:  SeverityError,
			})
		}
	}

	return errs
}

// ---------------------------------------------------------------------------
// Tier 3: layout (warnings)
// ---------------------------------------------------------------------------

// WarnSourceRays is the ray count above which a source draws a warning.
// Counts above optics.MaxSourceRays are rejected by tier 2.
const WarnSourceRays = 1000

// validateLayout reports scenes that will trace but are probably not what
// the author meant.
func validateLayout(d *Description) []ValidationWarning {
	var warnings []ValidationWarning

	sources := d.Sources()
	surfaces := d.Surfaces()

	if len(sources) == 0 {
		warnings = append(warnings, ValidationWarning{Message: "scene has no sources; nothing will be traced"})
	}
	if len(surfaces) == 0 {
		warnings = append(warnings, ValidationWarning{Message: "scene has no surfaces; every ray exits unchanged"})
	}

	for _, e := range sources {
		sd, ok := e.Data.(SourceData)
		if !ok {
			continue
		}
		if sd.Rays > WarnSourceRays {
			warnings = append(warnings, ValidationWarning{
				ElementID: e.ID,
				Message:   fmt.Sprintf("source %q emits %d rays (more than %d)", e.Name, sd.Rays, WarnSourceRays),
			})
		}
	}

	// Sources emit forward, so a source right of every surface hits nothing.
	if right, ok := rightmostSurface(surfaces); ok {
		for _, e := range sources {
			sd, ok := e.Data.(SourceData)
			if !ok {
				continue
			}
			if sd.X >= right {
				warnings = append(warnings, ValidationWarning{
					ElementID: e.ID,
					Message:   fmt.Sprintf("source %q at x=%.4g is right of every surface", e.Name, sd.X),
				})
			}
		}
	}

	return warnings
}

// rightmostSurface returns the largest x reached by any buildable surface.
func rightmostSurface(surfaces []*Element) (float64, bool) {
	right := math.Inf(-1)
	found := false
	extend := func(b optics.Bounds) {
		right = math.Max(right, b.XMax)
		found = true
	}

	for _, e := range surfaces {
		switch data := e.Data.(type) {
		case MirrorData:
			if m, err := data.Mirror(); err == nil {
				extend(m.Bounds())
			}
		case LensData:
			if l, err := data.Lens(); err == nil {
				for _, f := range l.Interfaces() {
					extend(f.Bounds())
				}
			}
		case InterfaceData:
			if f, err := data.Interface(); err == nil {
				extend(f.Bounds())
			}
		}
	}
	return right, found
}
