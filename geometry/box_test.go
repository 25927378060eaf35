package geometry

import (
	"math"
	"testing"
)

func unitCube(origin float64) *Box {
	return NewBox(
		[3]float64{origin, origin, origin},
		[3]float64{origin + 1, origin + 1, origin + 1},
	)
}

func TestBoxVolume(t *testing.T) {
	tests := []struct {
		name string
		box  *Box
		want float64
	}{
		{"unit cube", unitCube(0), 1.0},
		{"flat box", NewBox([3]float64{0, 0, 0}, [3]float64{1, 1, 0}), 0},
		{"swapped corners are normalized", NewBox([3]float64{2, 2, 2}, [3]float64{0, 0, 0}), 8.0},
		{"half cube", NewBox([3]float64{0, 0, 0}, [3]float64{1, 1, 0.5}), 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.box.Volume(); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Volume() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBoxIntersect(t *testing.T) {
	t.Run("identical cubes overlap fully", func(t *testing.T) {
		overlap, ok := unitCube(0).Intersect(unitCube(0))
		if !ok {
			t.Fatal("Intersect() ok = false, want true")
		}
		if got := overlap.Volume(); math.Abs(got-1.0) > 1e-12 {
			t.Errorf("overlap volume = %v, want 1.0", got)
		}
	})

	t.Run("half overlap", func(t *testing.T) {
		overlap, ok := unitCube(0).Intersect(unitCube(0.5))
		if !ok {
			t.Fatal("Intersect() ok = false, want true")
		}
		if got := overlap.Volume(); math.Abs(got-0.125) > 1e-12 {
			t.Errorf("overlap volume = %v, want 0.125", got)
		}
	})

	t.Run("disjoint cubes", func(t *testing.T) {
		if _, ok := unitCube(0).Intersect(unitCube(5)); ok {
			t.Error("Intersect() ok = true for disjoint cubes, want false")
		}
	})

	t.Run("touching faces do not count as overlap", func(t *testing.T) {
		if _, ok := unitCube(0).Intersect(unitCube(1)); ok {
			t.Error("Intersect() ok = true for face-touching cubes, want false")
		}
	})

	t.Run("symmetry", func(t *testing.T) {
		a, b := unitCube(0), unitCube(0.5)
		ab, _ := a.Intersect(b)
		ba, _ := b.Intersect(a)
		if ab.Volume() != ba.Volume() {
			t.Errorf("intersection volume not symmetric: %v vs %v", ab.Volume(), ba.Volume())
		}
	})
}

func TestCompound(t *testing.T) {
	t.Run("union of boxes sums volume", func(t *testing.T) {
		merged, err := unitCube(0).Union(unitCube(5))
		if err != nil {
			t.Fatalf("Union() error = %v", err)
		}
		if got := merged.Volume(); math.Abs(got-2.0) > 1e-12 {
			t.Errorf("union volume = %v, want 2.0", got)
		}
	})

	t.Run("compound intersects each fragment", func(t *testing.T) {
		merged, err := unitCube(0).Union(unitCube(5))
		if err != nil {
			t.Fatalf("Union() error = %v", err)
		}
		overlap, ok := merged.Intersect(unitCube(0.5))
		if !ok {
			t.Fatal("Intersect() ok = false, want true")
		}
		if got := overlap.Volume(); math.Abs(got-0.125) > 1e-12 {
			t.Errorf("overlap volume = %v, want 0.125", got)
		}
	})

	t.Run("compound with no overlap", func(t *testing.T) {
		merged, _ := unitCube(0).Union(unitCube(1))
		if _, ok := merged.Intersect(unitCube(10)); ok {
			t.Error("Intersect() ok = true for disjoint compound, want false")
		}
	})

	t.Run("release is idempotent", func(t *testing.T) {
		c := NewCompound(*unitCube(0), *unitCube(5))
		c.Release()
		c.Release()
		if got := c.Volume(); got != 0 {
			t.Errorf("Volume() after Release() = %v, want 0", got)
		}
	})
}

type foreignSolid struct{}

func (foreignSolid) Volume() float64               { return 1 }
func (foreignSolid) Intersect(Solid) (Solid, bool) { return nil, false }
func (foreignSolid) Union(Solid) (Solid, error)    { return nil, nil }
func (foreignSolid) Release()                      {}

func TestForeignKernel(t *testing.T) {
	if _, ok := unitCube(0).Intersect(foreignSolid{}); ok {
		t.Error("Intersect() with foreign solid should report ok = false")
	}
	if _, err := unitCube(0).Union(foreignSolid{}); err == nil {
		t.Error("Union() with foreign solid should fail")
	}
}
