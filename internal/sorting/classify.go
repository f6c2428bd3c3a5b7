package sorting

import "github.com/trashquiz/trashquiz/internal/catalog"

// Classify resolves the bin for an item under the given condition values.
// Deterministic and side-effect free.
//
// If the item skips conditions, its default bin is authoritative and the
// supplied conditions are ignored. Otherwise rules are evaluated in catalog
// order and the first match wins; each rule tests its single predicate axis
// by exact, case-sensitive equality. No match falls back to the default bin,
// and an absent default means trash.
func Classify(item catalog.Item, cleanliness, shape string) Bin {
	if item.SkipConditions {
		return NormalizeBin(item.DefaultBin)
	}
	for _, r := range item.Rules {
		if expected := r.If.Cleanliness; expected != "" {
			if cleanliness == expected {
				return NormalizeBin(r.Bin)
			}
			continue
		}
		if expected := r.If.Shape; expected != "" {
			if shape == expected {
				return NormalizeBin(r.Bin)
			}
		}
	}
	return NormalizeBin(item.DefaultBin)
}
