package geo

import (
	"math"
	"testing"
)

func TestHaversineKm(t *testing.T) {
	// Jakarta (-6.2, 106.816) to Bandung (-6.9175, 107.6191) ~ 115-120 km
	d := HaversineKm(-6.2, 106.816, -6.9175, 107.6191)
	if d < 100 || d > 140 {
		t.Fatalf("unexpected distance: %v", d)
	}
	if HaversineKm(51.5, -0.09, 51.5, -0.09) != 0 {
		t.Fatalf("expected zero distance for same point")
	}
}

func TestValid(t *testing.T) {
	if !Valid(51.5, -0.09) {
		t.Fatalf("expected valid coords")
	}
	if Valid(91, 0) || Valid(0, 181) {
		t.Fatalf("expected out of range coords to be invalid")
	}
	if Valid(math.NaN(), 0) {
		t.Fatalf("expected NaN to be invalid")
	}
}
