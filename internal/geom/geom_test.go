package geom

import (
	"math"
	"testing"
)

func TestOverlaps(t *testing.T) {
	// Overlapping circles
	if !Overlaps(0, 0, 10, 15, 0, 10) {
		t.Error("circles should overlap")
	}

	// Touching circles are not a hit
	if Overlaps(0, 0, 10, 20, 0, 10) {
		t.Error("touching circles should not overlap")
	}

	// Non-overlapping circles
	if Overlaps(0, 0, 10, 25, 0, 10) {
		t.Error("circles should not overlap")
	}

	// Same position
	if !Overlaps(5, 5, 1, 5, 5, 1) {
		t.Error("same position should overlap")
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(-5, 0, 10); got != 0 {
		t.Errorf("expected 0, got %f", got)
	}
	if got := Clamp(15, 0, 10); got != 10 {
		t.Errorf("expected 10, got %f", got)
	}
	if got := Clamp(4, 0, 10); got != 4 {
		t.Errorf("expected 4, got %f", got)
	}
}

func TestNormalizeMin(t *testing.T) {
	x, y := NormalizeMin(3, 4, 1)
	if math.Abs(x-0.6) > 1e-12 || math.Abs(y-0.8) > 1e-12 {
		t.Errorf("expected (0.6, 0.8), got (%f, %f)", x, y)
	}

	// Short vectors are divided by the floor, not stretched
	x, y = NormalizeMin(0.3, 0.4, 1)
	if x != 0.3 || y != 0.4 {
		t.Errorf("expected (0.3, 0.4), got (%f, %f)", x, y)
	}

	x, y = NormalizeMin(0, 0, 1)
	if x != 0 || y != 0 {
		t.Errorf("expected zero vector, got (%f, %f)", x, y)
	}
}

func TestClampLength(t *testing.T) {
	x, y := ClampLength(30, 40, 10)
	if math.Abs(Hypot(x, y)-10) > 1e-9 {
		t.Errorf("expected length 10, got %f", Hypot(x, y))
	}
	x, y = ClampLength(3, 4, 10)
	if x != 3 || y != 4 {
		t.Errorf("short vector should be unchanged, got (%f, %f)", x, y)
	}
}

func TestDistance(t *testing.T) {
	if got := Distance(0, 0, 3, 4); got != 5 {
		t.Errorf("expected 5, got %f", got)
	}
	if got := DistanceSq(1, 1, 4, 5); got != 25 {
		t.Errorf("expected 25, got %f", got)
	}
}
