package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/hbaltazar/go-match-engine/config"
	"github.com/hbaltazar/go-match-engine/internal/matching"
	"github.com/hbaltazar/go-match-engine/internal/persistence"
	"github.com/hbaltazar/go-match-engine/model"
	"github.com/hbaltazar/go-match-engine/store"
)

var runFlags struct {
	designPath    string
	referencePath string
	settingsPath  string
	outputPath    string
	bidirectional bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a matching pass between two scene files",
	RunE:  runMatch,
}

func init() {
	runCmd.Flags().StringVar(&runFlags.designPath, "design", "", "Design scene JSON file (required)")
	runCmd.Flags().StringVar(&runFlags.referencePath, "reference", "", "Reference scene JSON file (required)")
	runCmd.Flags().StringVar(&runFlags.settingsPath, "settings", "", "Match settings TOML file")
	runCmd.Flags().StringVar(&runFlags.outputPath, "output", "", "Write the full report to this gob file")
	runCmd.Flags().BoolVar(&runFlags.bidirectional, "bidirectional", false, "Also run the reverse pass")
	_ = runCmd.MarkFlagRequired("design")
	_ = runCmd.MarkFlagRequired("reference")
}

func runMatch(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(runFlags.settingsPath)
	if err != nil {
		return err
	}

	designStore, err := loadScene(runFlags.designPath)
	if err != nil {
		return fmt.Errorf("failed to load design scene: %w", err)
	}
	referenceStore, err := loadScene(runFlags.referencePath)
	if err != nil {
		return fmt.Errorf("failed to load reference scene: %w", err)
	}

	matcher, err := matching.NewService(designStore, referenceStore)
	if err != nil {
		return err
	}

	// Ctrl-C cancels cooperatively; the partial report is still printed.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if runFlags.bidirectional {
		result, err := matcher.RunBidirectional(ctx, designStore.Elements(), referenceStore.Elements(), settings)
		if err != nil {
			return err
		}
		printRunSummary("forward", result.Forward)
		printRunSummary("reverse", result.Reverse)
		if runFlags.outputPath != "" {
			return persistence.SaveGob(runFlags.outputPath, result)
		}
		return nil
	}

	set, err := matcher.Run(ctx, designStore.Elements(), referenceStore.Elements(), settings)
	if err != nil {
		return err
	}
	printRunSummary("run", set)
	printMarkHistogram(set)
	if runFlags.outputPath != "" {
		return persistence.SaveGob(runFlags.outputPath, set)
	}
	return nil
}

var reportInputPath string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the summary of a previously saved report",
	RunE: func(cmd *cobra.Command, args []string) error {
		var set model.MatchSet
		if err := persistence.LoadGob(reportInputPath, &set); err != nil {
			return fmt.Errorf("failed to load report: %w", err)
		}
		printRunSummary("run", set)
		printMarkHistogram(set)
		printResults(set)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportInputPath, "input", "", "Report gob file (required)")
	_ = reportCmd.MarkFlagRequired("input")
}

// loadSettings reads match settings from a TOML file, or returns defaults
// when no path is given.
func loadSettings(path string) (config.MatchSettings, error) {
	var settings config.MatchSettings
	settings.Name = "local"

	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304 -- path comes from the operator's flag
		if err != nil {
			return settings, fmt.Errorf("failed to read settings file: %w", err)
		}
		if err := toml.Unmarshal(data, &settings); err != nil {
			return settings, fmt.Errorf("failed to parse settings file: %w", err)
		}
	}

	settings.ApplyDefaults()
	if problems := settings.Validate(); len(problems) > 0 {
		return settings, fmt.Errorf("invalid settings: %v", problems)
	}
	return settings, nil
}

// loadScene reads element records from a JSON file into a fresh store.
func loadScene(path string) (*store.ElementStore, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the operator's flag
	if err != nil {
		return nil, err
	}

	var records []model.ElementRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	elementStore := store.NewElementStore()
	if err := elementStore.Add(records); err != nil {
		return nil, err
	}
	return elementStore, nil
}
