// Package geometry defines the solid interface the matching engine computes
// with, plus a built-in axis-aligned kernel used by the synthetic element
// store and the test suite. Host applications adapt their own geometry
// kernel behind the same interface.
package geometry

// Solid is a volumetric representation of one element.
//
// Release frees any kernel resources the solid holds and must be safe to
// call more than once. The built-in kernel is garbage-collected and its
// Release is a no-op; adapters over unmanaged kernels free their handles
// here.
type Solid interface {
	// Volume returns the solid's volume in cubic model units.
	Volume() float64

	// Intersect computes the boolean intersection with other. ok is false
	// when the solids do not overlap or the kernel cannot perform the
	// operation on the given pair; both are expected outcomes of a
	// matching scan, not errors.
	Intersect(other Solid) (result Solid, ok bool)

	// Union combines the solid with other into a single solid. A failed
	// union returns an error and leaves both inputs untouched.
	Union(other Solid) (Solid, error)

	Release()
}
