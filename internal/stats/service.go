// Package stats derives aggregate statistics from match run reports. All
// functions are pure; the HTTP layer and the CLI both render from the same
// summaries.
package stats

import (
	"sort"

	"github.com/hbaltazar/go-match-engine/model"
)

// RunSummary aggregates a single match run into reportable counters.
type RunSummary struct {
	RunID                string  `json:"run_id"`
	SourceCount          int     `json:"source_count"`
	CandidateCount       int     `json:"candidate_count"`
	CachedCandidateCount int     `json:"cached_candidate_count"`
	MatchedCount         int     `json:"matched_count"`
	UnmatchedCount       int     `json:"unmatched_count"`
	DemotedCount         int     `json:"demoted_count"` // Overlap found, dimension check failed
	ValidatedCount       int     `json:"validated_count"`
	MarkedCount          int     `json:"marked_count"`
	MatchRate            float64 `json:"match_rate"`
	CacheBuildSeconds    float64 `json:"cache_build_seconds"`
	MatchLoopSeconds     float64 `json:"match_loop_seconds"`
	TotalSeconds         float64 `json:"total_seconds"`
	ItemsPerSecond       float64 `json:"items_per_second"`
	ReclaimPasses        int     `json:"reclaim_passes"`
	Cancelled            bool    `json:"cancelled"`
}

// MarkCount is one entry of a mark histogram.
type MarkCount struct {
	Mark  string `json:"mark"`
	Count int    `json:"count"`
}

// ProjectStats combines element counts with the latest run summary.
type ProjectStats struct {
	ProjectName       string      `json:"project_name"`
	DesignElements    int         `json:"design_elements"`
	ReferenceElements int         `json:"reference_elements"`
	LastRun           *RunSummary `json:"last_run,omitempty"`
}

// Summarize reduces a match set to its run summary.
func Summarize(set model.MatchSet) RunSummary {
	summary := RunSummary{
		RunID:                set.RunID,
		SourceCount:          set.SourceCount,
		CandidateCount:       set.CandidateCount,
		CachedCandidateCount: set.CachedCandidateCount,
		MatchedCount:         set.MatchedCount,
		MatchRate:            set.MatchRate,
		CacheBuildSeconds:    set.CacheBuildSeconds,
		MatchLoopSeconds:     set.MatchLoopSeconds,
		TotalSeconds:         set.TotalSeconds,
		ReclaimPasses:        set.ReclaimPasses,
		Cancelled:            set.Cancelled,
	}

	for _, result := range set.Results {
		switch {
		case result.Matched != nil:
			if result.DimensionsValidated {
				summary.ValidatedCount++
			}
			if result.Mark != "" {
				summary.MarkedCount++
			}
		case result.IntersectionVolume > 0:
			summary.DemotedCount++
			summary.UnmatchedCount++
		default:
			summary.UnmatchedCount++
		}
	}

	if set.MatchLoopSeconds > 0 {
		summary.ItemsPerSecond = float64(len(set.Results)) / set.MatchLoopSeconds
	}
	return summary
}

// MarkHistogram counts matched results per extracted mark, most frequent
// first; equally frequent marks sort alphabetically for stable output.
func MarkHistogram(set model.MatchSet) []MarkCount {
	counts := make(map[string]int)
	for _, result := range set.Results {
		if result.Matched != nil && result.Mark != "" {
			counts[result.Mark]++
		}
	}

	histogram := make([]MarkCount, 0, len(counts))
	for mark, count := range counts {
		histogram = append(histogram, MarkCount{Mark: mark, Count: count})
	}
	sort.Slice(histogram, func(i, j int) bool {
		if histogram[i].Count != histogram[j].Count {
			return histogram[i].Count > histogram[j].Count
		}
		return histogram[i].Mark < histogram[j].Mark
	})
	return histogram
}

// ForProject assembles project-level stats. lastRun may be nil when the
// project has not been run yet.
func ForProject(name string, designElements, referenceElements int, lastRun *model.MatchSet) ProjectStats {
	projectStats := ProjectStats{
		ProjectName:       name,
		DesignElements:    designElements,
		ReferenceElements: referenceElements,
	}
	if lastRun != nil {
		summary := Summarize(*lastRun)
		projectStats.LastRun = &summary
	}
	return projectStats
}
