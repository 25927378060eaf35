package store

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"strings"
	"sync"

	"github.com/hbaltazar/go-match-engine/config"
	"github.com/hbaltazar/go-match-engine/geometry"
	"github.com/hbaltazar/go-match-engine/model"
)

// ElementStore is an in-memory host model: a collection of elements with
// synthetic box geometry, scalar attributes and type labels. It implements
// the services.GeometrySource and services.AttributeSource surfaces and
// stands in for the CAD document in the server, the CLI and the test suite.
//
// Element order is preserved: matching scans elements in load order, and the
// matcher's tie-break depends on candidate order being stable.
type ElementStore struct {
	Mu                     sync.RWMutex
	Records                map[uint32]model.ElementRecord // Internal ID to full record
	ExternalIDtoInternalID map[string]uint32              // User-provided ID to internal uint32 ID
	Order                  []uint32                       // Internal IDs in load order
	NextID                 uint32
}

// NewElementStore creates an empty, initialized store.
func NewElementStore() *ElementStore {
	return &ElementStore{
		Records:                make(map[uint32]model.ElementRecord),
		ExternalIDtoInternalID: make(map[string]uint32),
		Order:                  make([]uint32, 0),
	}
}

// ensureInitialized initializes nil maps, e.g. after decoding an empty file.
func (es *ElementStore) ensureInitialized() {
	if es.Records == nil {
		es.Records = make(map[uint32]model.ElementRecord)
	}
	if es.ExternalIDtoInternalID == nil {
		es.ExternalIDtoInternalID = make(map[string]uint32)
	}
}

// Add loads a batch of element records. A record whose element ID already
// exists replaces the previous record and keeps its position in the load
// order.
func (es *ElementStore) Add(records []model.ElementRecord) error {
	es.Mu.Lock()
	defer es.Mu.Unlock()
	es.ensureInitialized()

	for _, record := range records {
		id := record.Element.ID
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("element ID cannot be empty or whitespace-only")
		}
		if internalID, exists := es.ExternalIDtoInternalID[id]; exists {
			es.Records[internalID] = record
			continue
		}
		internalID := es.NextID
		es.NextID++
		es.ExternalIDtoInternalID[id] = internalID
		es.Records[internalID] = record
		es.Order = append(es.Order, internalID)
	}
	return nil
}

// Elements returns the element handles in load order.
func (es *ElementStore) Elements() []model.Element {
	es.Mu.RLock()
	defer es.Mu.RUnlock()

	elements := make([]model.Element, 0, len(es.Order))
	for _, internalID := range es.Order {
		if record, ok := es.Records[internalID]; ok {
			elements = append(elements, record.Element)
		}
	}
	return elements
}

// Get returns the full record for an element ID.
func (es *ElementStore) Get(elementID string) (model.ElementRecord, bool) {
	es.Mu.RLock()
	defer es.Mu.RUnlock()

	internalID, ok := es.ExternalIDtoInternalID[elementID]
	if !ok {
		return model.ElementRecord{}, false
	}
	record, ok := es.Records[internalID]
	return record, ok
}

// Len returns the number of elements in the store.
func (es *ElementStore) Len() int {
	es.Mu.RLock()
	defer es.Mu.RUnlock()
	return len(es.Records)
}

// DeleteAll removes every element from the store.
func (es *ElementStore) DeleteAll() {
	es.Mu.Lock()
	defer es.Mu.Unlock()

	es.Records = make(map[uint32]model.ElementRecord)
	es.ExternalIDtoInternalID = make(map[string]uint32)
	es.Order = make([]uint32, 0)
	es.NextID = 0
}

// ResolveGeometry returns the element's primitive solids. Nested primitives
// are included only when the geometry options ask for nested traversal.
// Unknown elements resolve to no geometry.
func (es *ElementStore) ResolveGeometry(el model.Element, opts config.GeometryOptions) []geometry.Solid {
	record, ok := es.Get(el.ID)
	if !ok {
		return nil
	}

	solids := make([]geometry.Solid, 0, len(record.Primitives)+len(record.NestedPrimitives))
	for i := range record.Primitives {
		box := record.Primitives[i]
		solids = append(solids, &box)
	}
	if opts.IncludeNested {
		for i := range record.NestedPrimitives {
			box := record.NestedPrimitives[i]
			solids = append(solids, &box)
		}
	}
	return solids
}

// ResolveScalarAttribute returns the named scalar attribute of an element.
func (es *ElementStore) ResolveScalarAttribute(el model.Element, name string) (float64, bool) {
	record, ok := es.Get(el.ID)
	if !ok || record.Attributes == nil {
		return 0, false
	}
	value, ok := record.Attributes[name]
	return value, ok
}

// ResolveTypeLabel returns the element's type label, if it has one.
func (es *ElementStore) ResolveTypeLabel(el model.Element) (string, bool) {
	record, ok := es.Get(el.ID)
	if !ok || record.Element.TypeLabel == "" {
		return "", false
	}
	return record.Element.TypeLabel, true
}

// gobElementStoreData is a helper struct for Gob encoding/decoding
// ElementStore data. It excludes the mutex.
type gobElementStoreData struct {
	Records                map[uint32]model.ElementRecord
	ExternalIDtoInternalID map[string]uint32
	Order                  []uint32
	NextID                 uint32
}

// GobEncode implements the gob.GobEncoder interface for ElementStore.
func (es *ElementStore) GobEncode() ([]byte, error) {
	es.Mu.RLock()
	defer es.Mu.RUnlock()

	dataToEncode := gobElementStoreData{
		Records:                es.Records,
		ExternalIDtoInternalID: es.ExternalIDtoInternalID,
		Order:                  es.Order,
		NextID:                 es.NextID,
	}

	var buf bytes.Buffer
	encoder := gob.NewEncoder(&buf)
	if err := encoder.Encode(dataToEncode); err != nil {
		return nil, fmt.Errorf("failed to gob encode element store data: %w", err)
	}
	return buf.Bytes(), nil
}

// GobDecode implements the gob.GobDecoder interface for ElementStore.
func (es *ElementStore) GobDecode(data []byte) error {
	decodedData := gobElementStoreData{}

	buf := bytes.NewBuffer(data)
	decoder := gob.NewDecoder(buf)
	if err := decoder.Decode(&decodedData); err != nil {
		return fmt.Errorf("failed to gob decode element store data: %w", err)
	}

	es.Mu.Lock()
	defer es.Mu.Unlock()

	es.Records = decodedData.Records
	es.ExternalIDtoInternalID = decodedData.ExternalIDtoInternalID
	es.Order = decodedData.Order
	es.NextID = decodedData.NextID
	es.ensureInitialized()

	return nil
}
