package geometry

import "fmt"

// Compound is a multi-fragment solid: the union of pairwise-disjoint boxes.
// The disjointness assumption matches what per-element extraction produces;
// overlapping fragments would double-count volume.
type Compound struct {
	fragments []Box
	released  bool
}

// NewCompound builds a compound from the given disjoint fragments.
func NewCompound(fragments ...Box) *Compound {
	return &Compound{fragments: append([]Box(nil), fragments...)}
}

// Fragments returns the compound's fragments.
func (c *Compound) Fragments() []Box {
	return c.fragments
}

// Volume returns the summed volume of all fragments.
func (c *Compound) Volume() float64 {
	total := 0.0
	for i := range c.fragments {
		total += c.fragments[i].Volume()
	}
	return total
}

// Intersect computes the boolean intersection with another built-in solid by
// intersecting every fragment pair. ok is false when nothing overlaps or the
// other solid comes from a foreign kernel.
func (c *Compound) Intersect(other Solid) (Solid, bool) {
	var otherFragments []Box
	switch o := other.(type) {
	case *Box:
		otherFragments = []Box{*o}
	case *Compound:
		otherFragments = o.fragments
	default:
		return nil, false
	}

	var overlaps []Box
	for i := range c.fragments {
		for j := range otherFragments {
			if overlap, ok := boxOverlap(&c.fragments[i], &otherFragments[j]); ok {
				overlaps = append(overlaps, *overlap)
			}
		}
	}
	if len(overlaps) == 0 {
		return nil, false
	}
	return &Compound{fragments: overlaps}, true
}

// Union appends the other solid's fragments, returning a new compound.
func (c *Compound) Union(other Solid) (Solid, error) {
	switch o := other.(type) {
	case *Box:
		merged := append(append([]Box(nil), c.fragments...), *o)
		return &Compound{fragments: merged}, nil
	case *Compound:
		merged := append(append([]Box(nil), c.fragments...), o.fragments...)
		return &Compound{fragments: merged}, nil
	default:
		return nil, fmt.Errorf("geometry: cannot union compound with %T", other)
	}
}

// Release drops the fragment storage. Safe to call more than once.
func (c *Compound) Release() {
	c.fragments = nil
	c.released = true
}
