package matching

import (
	"context"
	"time"

	"github.com/hbaltazar/go-match-engine/config"
	"github.com/hbaltazar/go-match-engine/model"
)

// BidirectionalResult holds the two match sets of a round-trip run.
type BidirectionalResult struct {
	Forward      model.MatchSet `json:"forward"`
	Reverse      model.MatchSet `json:"reverse"`
	TotalSeconds float64        `json:"total_seconds"`
}

// RunBidirectional performs a forward pass (design sources against reference
// candidates) followed by a reverse pass with the roles swapped, under the
// same settings. Comparing both directions surfaces one-sided
// correspondences that a single pass hides.
func (s *Service) RunBidirectional(ctx context.Context, sources, candidates []model.Element, settings config.MatchSettings) (*BidirectionalResult, error) {
	startTime := time.Now()

	forward, err := s.Run(ctx, sources, candidates, settings)
	if err != nil {
		return nil, err
	}

	reversed := &Service{design: s.reference, reference: s.design, progress: s.progress}
	reverse, err := reversed.Run(ctx, candidates, sources, settings)
	if err != nil {
		return nil, err
	}

	return &BidirectionalResult{
		Forward:      forward,
		Reverse:      reverse,
		TotalSeconds: time.Since(startTime).Seconds(),
	}, nil
}
