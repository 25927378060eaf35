// Package cache holds the precomputed candidate solids for one matching run.
package cache

import (
	"log"

	"github.com/hbaltazar/go-match-engine/geometry"
	"github.com/hbaltazar/go-match-engine/internal/extraction"
	"github.com/hbaltazar/go-match-engine/model"
)

// Entry pairs a candidate element with its extracted solid. An entry exists
// only when extraction succeeded with a positive volume.
type Entry struct {
	Element model.Element
	Solid   geometry.Solid
}

// CandidateCache owns the solid representation of every candidate element
// for the lifetime of one matching run. Entries keep the candidate input
// order: the matcher's tie-break selects the first-seen candidate, so scan
// order is part of the engine's observable behavior.
type CandidateCache struct {
	entries  []Entry
	released bool
}

// Build extracts a solid for every candidate element and caches the ones
// that produced geometry. Candidates that yield no solid are silently
// excluded from the pool; they can never be matched to.
func Build(provider *extraction.Provider, candidates []model.Element) *CandidateCache {
	entries := make([]Entry, 0, len(candidates))
	for _, el := range candidates {
		solid := provider.GetSolid(el)
		if solid == nil {
			continue
		}
		entries = append(entries, Entry{Element: el, Solid: solid})
	}
	log.Printf("Candidate cache built: %d of %d candidates usable", len(entries), len(candidates))
	return &CandidateCache{entries: entries}
}

// Size returns the number of cached candidates.
func (c *CandidateCache) Size() int {
	return len(c.entries)
}

// Entries returns the cached entries in candidate input order. The returned
// slice is owned by the cache and becomes invalid after Release.
func (c *CandidateCache) Entries() []Entry {
	return c.entries
}

// Release drops all held solids and their kernel resources. It must run on
// every exit path of a run, including cancellation; calling it more than
// once is safe, and the cache must not be used afterwards.
func (c *CandidateCache) Release() {
	if c.released {
		return
	}
	for i := range c.entries {
		c.entries[i].Solid.Release()
	}
	c.entries = nil
	c.released = true
}
