package main

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/hbaltazar/go-match-engine/internal/stats"
	"github.com/hbaltazar/go-match-engine/model"
)

func printRunSummary(label string, set model.MatchSet) {
	summary := stats.Summarize(set)

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle(fmt.Sprintf("Matching %s %s", label, summary.RunID))
	t.AppendRows([]table.Row{
		{"Source elements", summary.SourceCount},
		{"Candidate elements", summary.CandidateCount},
		{"Cached candidates", summary.CachedCandidateCount},
		{"Matched", summary.MatchedCount},
		{"Unmatched", summary.UnmatchedCount},
		{"Demoted by dimensions", summary.DemotedCount},
		{"Match rate", fmt.Sprintf("%.1f%%", summary.MatchRate*100)},
		{"Cache build", fmt.Sprintf("%.3fs", summary.CacheBuildSeconds)},
		{"Match loop", fmt.Sprintf("%.3fs", summary.MatchLoopSeconds)},
		{"Total", fmt.Sprintf("%.3fs", summary.TotalSeconds)},
	})
	if summary.Cancelled {
		t.AppendRow(table.Row{"Cancelled", "yes (partial results)"})
	}
	t.Render()
}

func printMarkHistogram(set model.MatchSet) {
	histogram := stats.MarkHistogram(set)
	if len(histogram) == 0 {
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("Marks")
	t.AppendHeader(table.Row{"Mark", "Matches"})
	for _, entry := range histogram {
		t.AppendRow(table.Row{entry.Mark, entry.Count})
	}
	t.Render()
}

func printResults(set model.MatchSet) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("Results")
	t.AppendHeader(table.Row{"Source", "Matched", "Volume", "Validated", "Mark"})
	for _, result := range set.Results {
		matchedID := "-"
		if result.Matched != nil {
			matchedID = result.Matched.ID
		}
		t.AppendRow(table.Row{
			result.Source.ID,
			matchedID,
			fmt.Sprintf("%.6g", result.IntersectionVolume),
			result.DimensionsValidated,
			result.Mark,
		})
	}
	t.Render()
}
