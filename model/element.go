package model

import (
	"github.com/hbaltazar/go-match-engine/geometry"
)

// Element is a non-owning handle to one model element. The engine only ever
// holds the identifying fields; geometry and scalar attributes are resolved
// on demand through the host collaborator interfaces, and the engine never
// mutates host state.
type Element struct {
	ID        string `json:"id"`
	Category  string `json:"category,omitempty"`
	TypeLabel string `json:"type_label,omitempty"`
}

// ElementRecord is the payload used to load an element into an ElementStore:
// the element handle plus the synthetic data the store resolves for it.
// Primitives are the element's own solid fragments; NestedPrimitives belong
// to nested instances and are only resolved when the geometry options ask
// for nested traversal.
type ElementRecord struct {
	Element          Element            `json:"element"`
	Attributes       map[string]float64 `json:"attributes,omitempty"`
	Primitives       []geometry.Box     `json:"primitives,omitempty"`
	NestedPrimitives []geometry.Box     `json:"nested_primitives,omitempty"`
}
