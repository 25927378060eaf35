package matching

import (
	"github.com/hbaltazar/go-match-engine/cache"
	"github.com/hbaltazar/go-match-engine/geometry"
	"github.com/hbaltazar/go-match-engine/model"
)

// FindBest scans every cached candidate and returns the one with the
// largest intersection volume against the source solid, together with that
// volume. It returns (nil, 0) when no candidate qualifies.
//
// The scan is a deliberate brute-force pass in candidate order, with no
// bounding-box pre-filter: a candidate replaces the running best only when
// its intersection volume is strictly greater than both the current maximum
// and the volume threshold, so equal volumes keep the first-seen candidate.
// Changing the scan order or adding spatial pruning changes which near-tie
// candidate wins under floating-point noise and is a behavior change, not an
// optimization.
func FindBest(source geometry.Solid, c *cache.CandidateCache, volumeThreshold float64) (*model.Element, float64) {
	var best *model.Element
	bestVolume := 0.0

	entries := c.Entries()
	for i := range entries {
		// A failed boolean operation means a disjoint or degenerate pair:
		// an expected outcome, scored as zero overlap.
		overlap, ok := source.Intersect(entries[i].Solid)
		if !ok {
			continue
		}
		volume := overlap.Volume()
		overlap.Release()

		if volume > bestVolume && volume > volumeThreshold {
			bestVolume = volume
			el := entries[i].Element
			best = &el
		}
	}

	if best == nil {
		return nil, 0.0
	}
	return best, bestVolume
}
