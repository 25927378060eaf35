package extraction

import (
	"math"
	"testing"

	"github.com/hbaltazar/go-match-engine/config"
	"github.com/hbaltazar/go-match-engine/geometry"
	"github.com/hbaltazar/go-match-engine/model"
)

// fakeSource returns a fixed primitive list per element ID.
type fakeSource struct {
	primitives map[string][]geometry.Solid
}

func (f *fakeSource) ResolveGeometry(el model.Element, _ config.GeometryOptions) []geometry.Solid {
	return f.primitives[el.ID]
}

func box(origin, size float64) *geometry.Box {
	return geometry.NewBox(
		[3]float64{origin, origin, origin},
		[3]float64{origin + size, origin + size, origin + size},
	)
}

func TestNewProvider(t *testing.T) {
	if _, err := NewProvider(nil, config.GeometryOptions{}); err == nil {
		t.Error("NewProvider(nil) should fail")
	}
	if _, err := NewProvider(&fakeSource{}, config.GeometryOptions{}); err != nil {
		t.Errorf("NewProvider() error = %v", err)
	}
}

func TestGetSolid(t *testing.T) {
	source := &fakeSource{primitives: map[string][]geometry.Solid{
		"single":     {box(0, 1)},
		"fragments":  {box(0, 1), box(5, 1), box(10, 1)},
		"degenerate": {geometry.NewBox([3]float64{0, 0, 0}, [3]float64{1, 1, 0})},
		"mixed":      {geometry.NewBox([3]float64{0, 0, 0}, [3]float64{1, 1, 0}), box(0, 1)},
		"empty":      {},
		"nil entry":  {nil, box(0, 1)},
	}}
	provider, err := NewProvider(source, config.GeometryOptions{})
	if err != nil {
		t.Fatalf("NewProvider() error = %v", err)
	}

	tests := []struct {
		name       string
		elementID  string
		wantNil    bool
		wantVolume float64
	}{
		{"single primitive", "single", false, 1.0},
		{"fragments are unioned", "fragments", false, 3.0},
		{"degenerate primitive rejected", "degenerate", true, 0},
		{"degenerate dropped, real fragment kept", "mixed", false, 1.0},
		{"no geometry", "empty", true, 0},
		{"unknown element", "unknown", true, 0},
		{"nil primitive skipped", "nil entry", false, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			solid := provider.GetSolid(model.Element{ID: tt.elementID})
			if tt.wantNil {
				if solid != nil {
					t.Fatalf("GetSolid() = %v, want nil", solid)
				}
				return
			}
			if solid == nil {
				t.Fatal("GetSolid() = nil, want a solid")
			}
			if got := solid.Volume(); math.Abs(got-tt.wantVolume) > 1e-12 {
				t.Errorf("solid volume = %v, want %v", got, tt.wantVolume)
			}
		})
	}
}

// failingSolid cannot participate in unions, standing in for a fragment the
// kernel rejects.
type failingSolid struct{ geometry.Solid }

func (f failingSolid) Volume() float64 { return 1.0 }
func (f failingSolid) Release()        {}

func TestGetSolidUnionFailure(t *testing.T) {
	source := &fakeSource{primitives: map[string][]geometry.Solid{
		"el": {box(0, 1), failingSolid{}, box(5, 1)},
	}}
	provider, err := NewProvider(source, config.GeometryOptions{})
	if err != nil {
		t.Fatalf("NewProvider() error = %v", err)
	}

	solid := provider.GetSolid(model.Element{ID: "el"})
	if solid == nil {
		t.Fatal("GetSolid() = nil, want remaining fragments")
	}
	if got := solid.Volume(); math.Abs(got-2.0) > 1e-12 {
		t.Errorf("solid volume = %v, want 2.0 (failed fragment dropped)", got)
	}
}
