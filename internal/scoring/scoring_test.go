package scoring

import (
	"testing"
	"time"
)

func TestPointsBoundaries(t *testing.T) {
	tests := []struct {
		elapsed time.Duration
		correct bool
		want    int
	}{
		{0, true, 100},
		{5 * time.Second, true, 100},
		{5*time.Second + 10*time.Millisecond, true, 75},
		{10 * time.Second, true, 75},
		{10*time.Second + time.Millisecond, true, 50},
		{20 * time.Second, true, 50},
		{30 * time.Second, true, 25},
		{30*time.Second + 10*time.Millisecond, true, 5},
		{5 * time.Minute, true, 5},
		{0, false, -10},
		{time.Hour, false, -10},
	}
	for _, tc := range tests {
		if got := Points(tc.elapsed, tc.correct); got != tc.want {
			t.Errorf("Points(%v,%v)=%d want %d", tc.elapsed, tc.correct, got, tc.want)
		}
	}
}

func TestPreviewMatchesCorrectScoring(t *testing.T) {
	// The live preview must use the identical tier table as final scoring.
	for elapsed := time.Duration(0); elapsed <= 35*time.Second; elapsed += 250 * time.Millisecond {
		if Preview(elapsed) != Points(elapsed, true) {
			t.Fatalf("preview diverges from scoring at %v", elapsed)
		}
	}
}

func TestTimeLeft(t *testing.T) {
	if got := TimeLeft(0); got != 30*time.Second {
		t.Fatalf("TimeLeft(0)=%v", got)
	}
	if got := TimeLeft(12 * time.Second); got != 18*time.Second {
		t.Fatalf("TimeLeft(12s)=%v", got)
	}
	if got := TimeLeft(31 * time.Second); got != 0 {
		t.Fatalf("TimeLeft past countdown=%v, want 0", got)
	}
}
