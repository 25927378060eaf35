// Package matching implements the geometric correspondence engine: given two
// independently authored models of the same structure, it finds for each
// source element the reference element with the greatest volumetric overlap,
// optionally validates cross-section dimensions, and assembles the ordered
// result set with timing statistics.
package matching

import (
	"context"
	"fmt"
	"log"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hbaltazar/go-match-engine/cache"
	"github.com/hbaltazar/go-match-engine/config"
	"github.com/hbaltazar/go-match-engine/internal/dimension"
	"github.com/hbaltazar/go-match-engine/internal/errors"
	"github.com/hbaltazar/go-match-engine/internal/extraction"
	"github.com/hbaltazar/go-match-engine/internal/marks"
	"github.com/hbaltazar/go-match-engine/model"
	"github.com/hbaltazar/go-match-engine/services"
)

// Service drives full matching runs between a design model (source side) and
// a reference model (candidate side). It fulfills the services.Matcher
// interface.
//
// Runs are strictly sequential: the candidate cache is built once, then
// sources are processed one at a time in input order. The only suspension
// point is the cancellation check between source items.
type Service struct {
	design    services.HostModel
	reference services.HostModel
	progress  services.ProgressFunc
}

// NewService creates a new matching Service.
func NewService(designModel, referenceModel services.HostModel) (*Service, error) {
	if designModel == nil {
		return nil, fmt.Errorf("design model cannot be nil")
	}
	if referenceModel == nil {
		return nil, fmt.Errorf("reference model cannot be nil")
	}
	return &Service{design: designModel, reference: referenceModel}, nil
}

// SetProgressFunc installs a per-source-item progress callback.
func (s *Service) SetProgressFunc(fn services.ProgressFunc) {
	s.progress = fn
}

// Run performs one full matching pass. Results appear in source input
// order. Cancellation through ctx is cooperative and takes effect at the
// next source-item boundary; results computed so far are preserved and the
// candidate cache is released on every exit path.
func (s *Service) Run(ctx context.Context, sources, candidates []model.Element, settings config.MatchSettings) (model.MatchSet, error) {
	startTime := time.Now()
	set := model.MatchSet{
		RunID:          uuid.New().String(),
		SourceCount:    len(sources),
		CandidateCount: len(candidates),
	}

	if problems := settings.Validate(); len(problems) > 0 {
		return set, errors.NewValidationError("settings", strings.Join(problems, "; "))
	}
	if len(sources) == 0 || len(candidates) == 0 {
		set.TotalSeconds = time.Since(startTime).Seconds()
		return set, nil
	}

	sourceProvider, err := extraction.NewProvider(s.design, settings.Geometry)
	if err != nil {
		return set, err
	}
	candidateProvider, err := extraction.NewProvider(s.reference, settings.Geometry)
	if err != nil {
		return set, err
	}

	cacheStart := time.Now()
	candidateCache := cache.Build(candidateProvider, candidates)
	defer candidateCache.Release()
	set.CacheBuildSeconds = time.Since(cacheStart).Seconds()
	set.CachedCandidateCount = candidateCache.Size()

	loopStart := time.Now()
	set.Results = make([]model.MatchResult, 0, len(sources))
	processed := 0
	for _, source := range sources {
		if ctx.Err() != nil {
			set.Cancelled = true
			log.Printf("Matching run %s cancelled after %d of %d sources", set.RunID, processed, len(sources))
			break
		}

		result := s.matchOne(source, sourceProvider, candidateCache, settings)
		set.Results = append(set.Results, result)
		if result.Matched != nil {
			set.MatchedCount++
		}

		processed++
		if s.progress != nil {
			s.progress(processed, len(sources))
		}
		if settings.GCIntervalItems > 0 && processed%settings.GCIntervalItems == 0 {
			s.reclaim()
			set.ReclaimPasses++
		}
	}
	set.MatchLoopSeconds = time.Since(loopStart).Seconds()

	if len(set.Results) > 0 {
		set.MatchRate = float64(set.MatchedCount) / float64(len(set.Results))
	}
	set.TotalSeconds = time.Since(startTime).Seconds()
	return set, nil
}

// matchOne processes a single source element: extract its solid, scan the
// candidate cache, and apply the optional dimension check.
func (s *Service) matchOne(source model.Element, provider *extraction.Provider, candidateCache *cache.CandidateCache, settings config.MatchSettings) model.MatchResult {
	result := model.MatchResult{Source: source}

	solid := provider.GetSolid(source)
	if solid == nil {
		// No usable geometry on the source side; recorded as unmatched.
		return result
	}
	// Source solids are extracted on demand and never cached; the candidate
	// set is reused across every source, the source set is scanned once.
	defer solid.Release()

	matched, volume := FindBest(solid, candidateCache, settings.VolumeThreshold)
	result.IntersectionVolume = volume
	if matched == nil {
		return result
	}

	if settings.ValidateDimensions {
		sourceProfile, okSource := s.sectionProfile(s.design, source, settings)
		candidateProfile, okCandidate := s.sectionProfile(s.reference, *matched, settings)
		if !okSource || !okCandidate ||
			!dimension.Validate(sourceProfile, candidateProfile, settings.DimensionTolerance) {
			// Demoted: the geometric match stands down, the measured volume
			// stays on the record.
			return result
		}
		result.DimensionsValidated = true
	}

	result.Matched = matched
	if label, ok := s.reference.ResolveTypeLabel(*matched); ok {
		if mark, found := marks.Extract(label); found {
			result.Mark = mark
		}
	}
	return result
}

// sectionProfile derives the cross-section record for an element from its
// two configured scalar attributes. Missing attributes fail conservatively.
func (s *Service) sectionProfile(attrs services.AttributeSource, el model.Element, settings config.MatchSettings) (model.SectionProfile, bool) {
	width, okWidth := attrs.ResolveScalarAttribute(el, settings.WidthAttribute)
	height, okHeight := attrs.ResolveScalarAttribute(el, settings.HeightAttribute)
	if !okWidth || !okHeight {
		return model.SectionProfile{}, false
	}
	return model.ClassifySection(width, height, settings.DimensionTolerance), true
}

// reclaim runs one resource-reclamation pass. Sustained boolean operations
// can accumulate unmanaged kernel memory, so host models may hook their own
// reclamation in addition to the Go collector.
func (s *Service) reclaim() {
	if reclaimer, ok := s.reference.(services.ResourceReclaimer); ok {
		reclaimer.Reclaim()
	}
	if reclaimer, ok := s.design.(services.ResourceReclaimer); ok {
		reclaimer.Reclaim()
	}
	runtime.GC()
}
