// Package sorting implements the classification core: bin normalization,
// rule evaluation, condition sampling, and result explanations.
package sorting

import "strings"

// Bin is a canonical disposal destination.
type Bin string

const (
	BinRecycle Bin = "recycle"
	BinCompost Bin = "compost"
	BinTrash   Bin = "trash"
)

// NormalizeBin folds catalog and user-supplied bin spellings onto the
// canonical set. "Landfill" is a synonym for trash and "Recycling" for
// recycle; the empty string defaults to trash. Unrecognized values pass
// through lowercased rather than erroring — catalog content is trusted to be
// lenient here.
func NormalizeBin(bin string) Bin {
	b := strings.ToLower(strings.TrimSpace(bin))
	switch b {
	case "":
		return BinTrash
	case "landfill", "trash":
		return BinTrash
	case "recycle", "recycling":
		return BinRecycle
	case "compost":
		return BinCompost
	default:
		return Bin(b)
	}
}
