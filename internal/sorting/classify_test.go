package sorting

import (
	"testing"

	"github.com/trashquiz/trashquiz/internal/catalog"
)

func rule(cleanliness, shape, bin string) catalog.Rule {
	return catalog.Rule{If: catalog.RulePredicate{Cleanliness: cleanliness, Shape: shape}, Bin: bin}
}

func TestClassifyFirstMatchWins(t *testing.T) {
	item := catalog.Item{
		Name: "Paper Towel",
		Rules: []catalog.Rule{
			rule("Food-Soiled", "", "Trash"),
			rule("Food-Soiled", "", "Compost"),
		},
		DefaultBin: "Compost",
	}
	if got := Classify(item, "Food-Soiled", ""); got != BinTrash {
		t.Fatalf("expected first matching rule to win (trash), got %q", got)
	}
}

func TestClassifySkipConditionsIgnoresSupplied(t *testing.T) {
	item := catalog.Item{
		Name:           "Aluminum Can",
		SkipConditions: true,
		DefaultBin:     "Recycle",
		Rules:          []catalog.Rule{rule("Food-Soiled", "", "Trash")},
	}
	if got := Classify(item, "Food-Soiled", "Flat"); got != BinRecycle {
		t.Fatalf("skipConditions item must use defaultBin, got %q", got)
	}
}

func TestClassifySkipConditionsNoDefaultFallsToTrash(t *testing.T) {
	item := catalog.Item{Name: "Chip Bag", SkipConditions: true}
	if got := Classify(item, "", ""); got != BinTrash {
		t.Fatalf("expected trash fallback, got %q", got)
	}
}

func TestClassifyNoMatchFallsBackToDefault(t *testing.T) {
	item := catalog.Item{
		Name:       "Pizza Box",
		Rules:      []catalog.Rule{rule("Clean", "", "Recycle")},
		DefaultBin: "Trash",
	}
	if got := Classify(item, "Food-Soiled", "Flat"); got != BinTrash {
		t.Fatalf("expected defaultBin on no match, got %q", got)
	}
}

func TestClassifyMatchIsCaseSensitive(t *testing.T) {
	item := catalog.Item{
		Name:       "Jar",
		Rules:      []catalog.Rule{rule("Clean", "", "Recycle")},
		DefaultBin: "Trash",
	}
	if got := Classify(item, "clean", ""); got != BinTrash {
		t.Fatalf("condition comparison must be case-sensitive, got %q", got)
	}
}

func TestClassifyShapeRule(t *testing.T) {
	item := catalog.Item{
		Name: "Bottle Cap",
		Rules: []catalog.Rule{
			rule("", "Small (under 3 inches)", "Trash"),
			rule("", "Attached to bottle", "Recycle"),
		},
		DefaultBin: "Recycle",
	}
	if got := Classify(item, "", "Small (under 3 inches)"); got != BinTrash {
		t.Fatalf("shape rule should match, got %q", got)
	}
	if got := Classify(item, "", "Attached to bottle"); got != BinRecycle {
		t.Fatalf("second shape rule should match, got %q", got)
	}
}

func TestClassifySinglePredicatePerRule(t *testing.T) {
	// A rule authored with both axes only evaluates cleanliness; the shape
	// value must not rescue a cleanliness mismatch.
	item := catalog.Item{
		Name:       "Tray",
		Rules:      []catalog.Rule{rule("Clean", "Flat", "Recycle")},
		DefaultBin: "Trash",
	}
	if got := Classify(item, "Dirty", "Flat"); got != BinTrash {
		t.Fatalf("shape must be ignored when a cleanliness predicate is present, got %q", got)
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	item := catalog.Item{
		Name: "Glass Bottle",
		Rules: []catalog.Rule{
			rule("Clean & Rinsed", "", "Recycle"),
			rule("Food-Soiled", "", "Trash"),
		},
		DefaultBin: "Landfill",
	}
	want := Classify(item, "Clean & Rinsed", "Intact")
	for i := 0; i < 100; i++ {
		if got := Classify(item, "Clean & Rinsed", "Intact"); got != want {
			t.Fatalf("classification changed between calls: %q then %q", want, got)
		}
	}
}

func TestNormalizeBin(t *testing.T) {
	tests := []struct {
		in   string
		want Bin
	}{
		{"Landfill", BinTrash},
		{"landfill", BinTrash},
		{"LANDFILL", BinTrash},
		{"Recycling", BinRecycle},
		{"Recycle", BinRecycle},
		{"Compost", BinCompost},
		{"Trash", BinTrash},
		{"", BinTrash},
		{"hazardous", Bin("hazardous")}, // unknown literals pass through
	}
	for _, tc := range tests {
		if got := NormalizeBin(tc.in); got != tc.want {
			t.Errorf("NormalizeBin(%q)=%q want %q", tc.in, got, tc.want)
		}
	}
}
