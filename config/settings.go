// Package config provides configuration structures for the matching engine.
// It defines per-project match settings, geometry extraction options, and
// their validation and defaulting rules.
package config

import (
	"fmt"
	"strings"
)

// Geometry detail levels accepted by GeometryOptions.DetailLevel.
const (
	DetailCoarse = "coarse"
	DetailMedium = "medium"
	DetailFine   = "fine"
)

// GeometryOptions controls how element geometry is resolved into solids:
// the representation detail the host resolves against, and whether geometry
// inside nested instances (sub-components) is traversed.
type GeometryOptions struct {
	DetailLevel   string `json:"detail_level" toml:"detail_level"`
	IncludeNested bool   `json:"include_nested" toml:"include_nested"`
}

// MatchSettings contains all configuration options for one matching project.
//
// All lengths and volumes are expressed in the model's native unit. Callers
// working in another unit (e.g. millimeter tolerances against a foot-based
// model) convert before filling these fields; the engine itself performs no
// unit conversion.
type MatchSettings struct {
	Name string `json:"name" toml:"name"` // Unique name for the project

	// VolumeThreshold is the minimum intersection volume a candidate must
	// strictly exceed to be accepted as a match.
	VolumeThreshold float64 `json:"volume_threshold" toml:"volume_threshold"`

	Geometry GeometryOptions `json:"geometry" toml:"geometry"`

	// ValidateDimensions enables the secondary cross-section check on
	// geometrically matched pairs.
	ValidateDimensions bool `json:"validate_dimensions" toml:"validate_dimensions"`

	// DimensionTolerance is the allowed per-dimension deviation for the
	// cross-section check, in model length units. It also serves as the
	// epsilon that classifies a section as square.
	DimensionTolerance float64 `json:"dimension_tolerance" toml:"dimension_tolerance"`

	// WidthAttribute and HeightAttribute name the two scalar attributes the
	// cross-section profiles are derived from.
	WidthAttribute  string `json:"width_attribute" toml:"width_attribute"`
	HeightAttribute string `json:"height_attribute" toml:"height_attribute"`

	// GCIntervalItems is the number of processed source elements between
	// resource-reclamation passes. Zero disables the passes.
	GCIntervalItems int `json:"gc_interval_items" toml:"gc_interval_items"`
}

// Validate checks the settings for problems and returns a description of
// each one found.
func (settings *MatchSettings) Validate() []string {
	var problems []string

	if settings.VolumeThreshold < 0 {
		problems = append(problems, fmt.Sprintf("volume_threshold must not be negative, got %g", settings.VolumeThreshold))
	}
	if settings.DimensionTolerance < 0 {
		problems = append(problems, fmt.Sprintf("dimension_tolerance must not be negative, got %g", settings.DimensionTolerance))
	}
	if settings.GCIntervalItems < 0 {
		problems = append(problems, fmt.Sprintf("gc_interval_items must not be negative, got %d", settings.GCIntervalItems))
	}
	switch settings.Geometry.DetailLevel {
	case "", DetailCoarse, DetailMedium, DetailFine:
	default:
		problems = append(problems, "geometry.detail_level must be one of 'coarse', 'medium' or 'fine'")
	}
	if settings.ValidateDimensions {
		if strings.TrimSpace(settings.WidthAttribute) == "" {
			problems = append(problems, "width_attribute cannot be empty when dimension validation is enabled")
		}
		if strings.TrimSpace(settings.HeightAttribute) == "" {
			problems = append(problems, "height_attribute cannot be empty when dimension validation is enabled")
		}
	}

	return problems
}

// ApplyDefaults applies default values to unset (zero-valued) settings.
func (settings *MatchSettings) ApplyDefaults() {
	if settings.VolumeThreshold == 0 {
		settings.VolumeThreshold = 0.0001
	}
	if settings.DimensionTolerance == 0 {
		settings.DimensionTolerance = 0.01
	}
	if settings.Geometry.DetailLevel == "" {
		settings.Geometry.DetailLevel = DetailFine
	}
	if settings.WidthAttribute == "" {
		settings.WidthAttribute = "width"
	}
	if settings.HeightAttribute == "" {
		settings.HeightAttribute = "height"
	}
	if settings.GCIntervalItems == 0 {
		settings.GCIntervalItems = 100
	}
}
