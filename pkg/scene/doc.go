// Package scene defines the scene description for dioptra.
// A Description is the immutable, ordered list of mirrors, lenses, loose
// interfaces and sources produced by evaluating a scene file. It is validated
// in tiers and then built into an optics.Scene for tracing.
package scene
