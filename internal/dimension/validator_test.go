package dimension

import (
	"testing"

	"github.com/hbaltazar/go-match-engine/model"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name         string
		srcW, srcH   float64
		candW, candH float64
		tol          float64
		want         bool
	}{
		{"identical squares", 300, 300, 300, 300, 0.01, true},
		{"near-equal squares within tolerance", 300, 300, 300.005, 299.995, 0.01, true},
		{"near-equal squares outside tolerance", 300, 300, 300.005, 299.995, 0.001, false},
		{"matching rectangles", 300, 500, 300.004, 500.008, 0.01, true},
		{"rectangle width off", 300, 500, 300.05, 500, 0.01, false},
		{"rectangle height off", 300, 500, 300, 500.05, 0.01, false},
		{"square against rectangle", 300, 300, 300, 500, 0.01, false},
		{"zero tolerance exact match", 300, 300, 300, 300, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := model.ClassifySection(tt.srcW, tt.srcH, tt.tol)
			cand := model.ClassifySection(tt.candW, tt.candH, tt.tol)
			if got := Validate(src, cand, tt.tol); got != tt.want {
				t.Errorf("Validate(%+v, %+v, %v) = %v, want %v", src, cand, tt.tol, got, tt.want)
			}
		})
	}
}

func TestClassifySection(t *testing.T) {
	square := model.ClassifySection(300, 300.005, 0.01)
	if square.Kind != model.SectionSquare {
		t.Errorf("ClassifySection kind = %v, want square", square.Kind)
	}
	if square.Side != 300 {
		t.Errorf("square side = %v, want 300 (width value)", square.Side)
	}

	rect := model.ClassifySection(300, 500, 0.01)
	if rect.Kind != model.SectionRectangular {
		t.Errorf("ClassifySection kind = %v, want rectangular", rect.Kind)
	}
	if rect.Width != 300 || rect.Height != 500 {
		t.Errorf("rectangle dims = %v x %v, want 300 x 500", rect.Width, rect.Height)
	}
}
