// Package extraction turns host element geometry into single solids the
// matcher can compare.
package extraction

import (
	"fmt"
	"log"

	"github.com/hbaltazar/go-match-engine/config"
	"github.com/hbaltazar/go-match-engine/geometry"
	"github.com/hbaltazar/go-match-engine/model"
	"github.com/hbaltazar/go-match-engine/services"
)

// minPrimitiveVolume rejects degenerate fragments: slivers and zero-volume
// leftovers the host kernel sometimes reports.
const minPrimitiveVolume = 1e-9

// Provider extracts one solid per element from a geometry source. It is
// read-only with respect to the host model.
type Provider struct {
	source services.GeometrySource
	opts   config.GeometryOptions
}

// NewProvider creates a new extraction Provider.
func NewProvider(source services.GeometrySource, opts config.GeometryOptions) (*Provider, error) {
	if source == nil {
		return nil, fmt.Errorf("geometry source cannot be nil")
	}
	return &Provider{source: source, opts: opts}, nil
}

// GetSolid returns the element's volumetric representation, or nil when the
// element has no qualifying geometry.
//
// Every primitive above the volume epsilon is collected; multiple fragments
// are unioned pairwise into a single solid. A union failure drops that one
// fragment and extraction continues with the rest, so a single bad fragment
// never loses the whole element.
func (p *Provider) GetSolid(el model.Element) geometry.Solid {
	primitives := p.source.ResolveGeometry(el, p.opts)

	var combined geometry.Solid
	for _, primitive := range primitives {
		if primitive == nil {
			continue
		}
		if primitive.Volume() <= minPrimitiveVolume {
			primitive.Release()
			continue
		}
		if combined == nil {
			combined = primitive
			continue
		}
		merged, err := combined.Union(primitive)
		if err != nil {
			log.Printf("Union failed for element %s, fragment dropped: %v", el.ID, err)
			primitive.Release()
			continue
		}
		combined = merged
	}
	return combined
}
