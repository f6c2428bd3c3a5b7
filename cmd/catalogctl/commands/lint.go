package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trashquiz/trashquiz/internal/catalog"
	"github.com/trashquiz/trashquiz/internal/sorting"
)

// knownBins are the canonical bins plus spellings the evaluator folds onto
// them. Anything else in a catalog is flagged as a probable typo.
var knownBins = map[sorting.Bin]bool{
	sorting.BinRecycle: true,
	sorting.BinCompost: true,
	sorting.BinTrash:   true,
}

func lintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lint",
		Short: "Report malformed items and unrecognized bin literals",
		RunE: func(cmd *cobra.Command, args []string) error {
			warnings := 0
			warn := func(format string, a ...any) {
				warnings++
				fmt.Printf("warn: "+format+"\n", a...)
			}

			for _, it := range cat.Items() {
				if it.Name == "" {
					warn("item #%d has no name", it.ID)
				}
				if it.SkipConditions && it.DefaultBin == "" {
					warn("%q skips conditions but has no defaultBin (defaults to trash)", it.Name)
				}
				if !it.SkipConditions && len(it.Rules) == 0 && it.DefaultBin == "" {
					warn("%q has no rules and no defaultBin", it.Name)
				}
				if it.DefaultBin != "" && !knownBins[sorting.NormalizeBin(it.DefaultBin)] {
					warn("%q defaultBin %q is not a canonical bin", it.Name, it.DefaultBin)
				}
				for i, r := range it.Rules {
					if r.If.Cleanliness == "" && r.If.Shape == "" {
						warn("%q rule %d has an empty predicate and can never match", it.Name, i)
					}
					if r.If.Cleanliness != "" && r.If.Shape != "" {
						warn("%q rule %d sets both axes; only cleanliness is evaluated", it.Name, i)
					}
					if !knownBins[sorting.NormalizeBin(r.Bin)] {
						warn("%q rule %d bin %q is not a canonical bin", it.Name, i, r.Bin)
					}
					if r.If.Cleanliness != "" && !inDomain(it.Allowed, true, r.If.Cleanliness) {
						warn("%q rule %d tests cleanliness %q outside the allowed domain", it.Name, i, r.If.Cleanliness)
					}
					if r.If.Shape != "" && !inDomain(it.Allowed, false, r.If.Shape) {
						warn("%q rule %d tests shape %q outside the allowed domain", it.Name, i, r.If.Shape)
					}
				}
			}

			fmt.Printf("%d categories, %d items, %d warnings\n", len(cat.Categories), len(cat.Items()), warnings)
			if warnings > 0 {
				return fmt.Errorf("%d warnings", warnings)
			}
			return nil
		},
	}
}

func inDomain(domain *catalog.AllowedConditionValues, cleanliness bool, v string) bool {
	if domain == nil {
		return false
	}
	vals := domain.Shape
	if cleanliness {
		vals = domain.Cleanliness
	}
	for _, x := range vals {
		if x == v {
			return true
		}
	}
	return false
}
