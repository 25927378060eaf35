package model

import "math"

// SectionKind tags the two cross-section shapes the dimension validator
// distinguishes.
type SectionKind string

const (
	SectionSquare      SectionKind = "square"
	SectionRectangular SectionKind = "rectangular"
)

// SectionProfile is the cross-section record compared during dimension
// validation. Side is set for square profiles, Width and Height for
// rectangular ones. All values are in the model's native length unit.
type SectionProfile struct {
	Kind   SectionKind `json:"kind"`
	Side   float64     `json:"side,omitempty"`
	Width  float64     `json:"width,omitempty"`
	Height float64     `json:"height,omitempty"`
}

// ClassifySection builds a SectionProfile from two scalar dimensions.
// Dimensions equal within eps classify as a square section; the width value
// becomes the side.
func ClassifySection(width, height, eps float64) SectionProfile {
	if math.Abs(width-height) <= eps {
		return SectionProfile{Kind: SectionSquare, Side: width}
	}
	return SectionProfile{Kind: SectionRectangular, Width: width, Height: height}
}

// MatchResult pairs one source element with its best-overlapping candidate.
// Matched is nil when no candidate cleared the volume threshold, or when a
// geometric match was demoted by dimension validation; the measured
// intersection volume is kept either way. Mark is the numeric code extracted
// from the matched candidate's type label, when one exists.
type MatchResult struct {
	Source              Element  `json:"source"`
	Matched             *Element `json:"matched,omitempty"`
	IntersectionVolume  float64  `json:"intersection_volume"`
	DimensionsValidated bool     `json:"dimensions_validated"`
	Mark                string   `json:"mark,omitempty"`
}

// MatchSet is the outcome of one full matching run. Results appear in the
// same order as the source elements were supplied. The set is assembled once
// per run and not modified after the run completes.
type MatchSet struct {
	RunID                string        `json:"run_id"`
	Results              []MatchResult `json:"results"`
	SourceCount          int           `json:"source_count"`
	CandidateCount       int           `json:"candidate_count"`
	CachedCandidateCount int           `json:"cached_candidate_count"`
	MatchedCount         int           `json:"matched_count"`
	MatchRate            float64       `json:"match_rate"`
	CacheBuildSeconds    float64       `json:"cache_build_seconds"`
	MatchLoopSeconds     float64       `json:"match_loop_seconds"`
	TotalSeconds         float64       `json:"total_seconds"`
	ReclaimPasses        int           `json:"reclaim_passes"`
	Cancelled            bool          `json:"cancelled"`
}
