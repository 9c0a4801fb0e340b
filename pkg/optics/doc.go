// Package optics is the 2-D ray engine for dioptra.
//
// Rays travel in straight lines until they meet a spherical mirror or one
// face of a lens. At each contact a single child ray is spawned in the
// reflected or refracted direction. A Scene owns the registered surfaces and
// produces a Result holding every resolved ray; it never mutates state
// outside the values it returns.
package optics
