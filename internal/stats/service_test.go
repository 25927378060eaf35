package stats

import (
	"testing"

	"github.com/hbaltazar/go-match-engine/model"
)

func sampleSet() model.MatchSet {
	return model.MatchSet{
		RunID:          "run-42",
		SourceCount:    4,
		CandidateCount: 3,
		MatchedCount:   2,
		MatchRate:      0.5,
		Results: []model.MatchResult{
			{Source: model.Element{ID: "s1"}, Matched: &model.Element{ID: "r1"}, IntersectionVolume: 1.0, DimensionsValidated: true, Mark: "40"},
			{Source: model.Element{ID: "s2"}, Matched: &model.Element{ID: "r2"}, IntersectionVolume: 0.5, Mark: "40"},
			{Source: model.Element{ID: "s3"}, IntersectionVolume: 0.25}, // demoted
			{Source: model.Element{ID: "s4"}},
		},
		MatchLoopSeconds: 2.0,
	}
}

func TestSummarize(t *testing.T) {
	summary := Summarize(sampleSet())

	if summary.RunID != "run-42" {
		t.Errorf("RunID = %q, want %q", summary.RunID, "run-42")
	}
	if summary.MatchedCount != 2 {
		t.Errorf("MatchedCount = %d, want 2", summary.MatchedCount)
	}
	if summary.UnmatchedCount != 2 {
		t.Errorf("UnmatchedCount = %d, want 2", summary.UnmatchedCount)
	}
	if summary.DemotedCount != 1 {
		t.Errorf("DemotedCount = %d, want 1", summary.DemotedCount)
	}
	if summary.ValidatedCount != 1 {
		t.Errorf("ValidatedCount = %d, want 1", summary.ValidatedCount)
	}
	if summary.MarkedCount != 2 {
		t.Errorf("MarkedCount = %d, want 2", summary.MarkedCount)
	}
	if summary.ItemsPerSecond != 2.0 {
		t.Errorf("ItemsPerSecond = %v, want 2.0", summary.ItemsPerSecond)
	}
}

func TestSummarize_EmptySet(t *testing.T) {
	summary := Summarize(model.MatchSet{RunID: "empty"})
	if summary.UnmatchedCount != 0 || summary.MatchedCount != 0 || summary.ItemsPerSecond != 0 {
		t.Errorf("empty set summary has non-zero counters: %+v", summary)
	}
}

func TestMarkHistogram(t *testing.T) {
	set := sampleSet()
	set.Results = append(set.Results, model.MatchResult{
		Source:  model.Element{ID: "s5"},
		Matched: &model.Element{ID: "r3"},
		Mark:    "12",
	})

	histogram := MarkHistogram(set)
	if len(histogram) != 2 {
		t.Fatalf("histogram length = %d, want 2", len(histogram))
	}
	if histogram[0].Mark != "40" || histogram[0].Count != 2 {
		t.Errorf("histogram[0] = %+v, want {40 2}", histogram[0])
	}
	if histogram[1].Mark != "12" || histogram[1].Count != 1 {
		t.Errorf("histogram[1] = %+v, want {12 1}", histogram[1])
	}
}

func TestForProject(t *testing.T) {
	set := sampleSet()
	projectStats := ForProject("viaduct", 4, 3, &set)

	if projectStats.ProjectName != "viaduct" {
		t.Errorf("ProjectName = %q, want %q", projectStats.ProjectName, "viaduct")
	}
	if projectStats.DesignElements != 4 || projectStats.ReferenceElements != 3 {
		t.Errorf("element counts = %d/%d, want 4/3", projectStats.DesignElements, projectStats.ReferenceElements)
	}
	if projectStats.LastRun == nil || projectStats.LastRun.RunID != "run-42" {
		t.Errorf("LastRun = %+v, want summary of run-42", projectStats.LastRun)
	}

	noRuns := ForProject("fresh", 0, 0, nil)
	if noRuns.LastRun != nil {
		t.Errorf("LastRun = %+v, want nil for project without runs", noRuns.LastRun)
	}
}
