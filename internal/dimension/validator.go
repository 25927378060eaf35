// Package dimension implements the secondary cross-section check applied to
// geometrically matched pairs, rejecting overlapping but dimensionally
// inconsistent matches.
package dimension

import (
	"math"

	"github.com/hbaltazar/go-match-engine/model"
)

// Validate reports whether two section profiles agree: the kinds must match
// and every corresponding scalar must lie within tol (model length units).
// It is a pure function; profiles for elements with missing attributes are
// never built, so a caller that cannot produce both profiles treats the
// pair as failed.
func Validate(source, candidate model.SectionProfile, tol float64) bool {
	if source.Kind != candidate.Kind {
		return false
	}

	switch source.Kind {
	case model.SectionSquare:
		return within(source.Side, candidate.Side, tol)
	case model.SectionRectangular:
		return within(source.Width, candidate.Width, tol) &&
			within(source.Height, candidate.Height, tol)
	default:
		return false
	}
}

func within(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}
