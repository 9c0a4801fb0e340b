package optics

import "errors"

var (
	// ErrInvalidLensShape is returned when a lens is built from an unknown shape tag.
	ErrInvalidLensShape = errors.New("optics: invalid lens shape")

	// ErrDegenerateGeometry is returned for zero or negative radii, empty
	// apertures and non-finite parameters.
	ErrDegenerateGeometry = errors.New("optics: degenerate geometry")

	// ErrInvalidSource is returned by Source.Validate and Scene.Trace.
	ErrInvalidSource = errors.New("optics: invalid source")

	// ErrUndefinedRefraction reports that Snell's law has no solution at a
	// contact (total internal reflection). The branch ends at that contact.
	ErrUndefinedRefraction = errors.New("optics: undefined refraction")
)
