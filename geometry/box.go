package geometry

import "fmt"

// Box is an axis-aligned box solid, the primitive of the built-in kernel.
// Min and Max are opposite corners in model units; a box whose extent is not
// positive on every axis has zero volume.
type Box struct {
	Min [3]float64 `json:"min"`
	Max [3]float64 `json:"max"`
}

// NewBox returns a box spanning the two given corners, normalizing them so
// Min <= Max on every axis.
func NewBox(a, b [3]float64) *Box {
	box := &Box{Min: a, Max: b}
	for i := 0; i < 3; i++ {
		if box.Min[i] > box.Max[i] {
			box.Min[i], box.Max[i] = box.Max[i], box.Min[i]
		}
	}
	return box
}

// Volume returns the box volume, or 0 for a degenerate box.
func (b *Box) Volume() float64 {
	v := 1.0
	for i := 0; i < 3; i++ {
		ext := b.Max[i] - b.Min[i]
		if ext <= 0 {
			return 0
		}
		v *= ext
	}
	return v
}

// Intersect computes the boolean intersection with another built-in solid.
// Disjoint boxes and solids from a foreign kernel both report ok == false.
func (b *Box) Intersect(other Solid) (Solid, bool) {
	switch o := other.(type) {
	case *Box:
		overlap, ok := boxOverlap(b, o)
		if !ok {
			return nil, false
		}
		return overlap, true
	case *Compound:
		return o.Intersect(b)
	default:
		return nil, false
	}
}

// Union combines the box with another built-in solid into a compound.
// Fragments are assumed disjoint, as produced by per-element geometry
// extraction.
func (b *Box) Union(other Solid) (Solid, error) {
	switch o := other.(type) {
	case *Box:
		return &Compound{fragments: []Box{*b, *o}}, nil
	case *Compound:
		return o.Union(b)
	default:
		return nil, fmt.Errorf("geometry: cannot union box with %T", other)
	}
}

// Release is a no-op for the built-in kernel.
func (b *Box) Release() {}

// boxOverlap returns the overlap of two boxes, or false when the overlap has
// no positive volume.
func boxOverlap(a, b *Box) (*Box, bool) {
	var out Box
	for i := 0; i < 3; i++ {
		out.Min[i] = a.Min[i]
		if b.Min[i] > out.Min[i] {
			out.Min[i] = b.Min[i]
		}
		out.Max[i] = a.Max[i]
		if b.Max[i] < out.Max[i] {
			out.Max[i] = b.Max[i]
		}
		if out.Max[i]-out.Min[i] <= 0 {
			return nil, false
		}
	}
	return &out, true
}
