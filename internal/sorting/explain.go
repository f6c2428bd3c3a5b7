package sorting

import (
	"fmt"
	"strings"

	"github.com/trashquiz/trashquiz/internal/catalog"
)

// Explain derives a human-readable reason for a classification result from
// the item, resolved bin, and the condition values actually used. Pure and
// order-sensitive: the small-shape template is checked before any
// cleanliness-based one.
func Explain(item catalog.Item, bin Bin, cleanliness, shape string) string {
	if item.SkipConditions {
		switch bin {
		case BinRecycle:
			return fmt.Sprintf("%s is always recyclable, no matter its condition.", item.Name)
		case BinCompost:
			return fmt.Sprintf("%s is always compostable, no matter its condition.", item.Name)
		case BinTrash:
			return fmt.Sprintf("%s always goes to landfill, no matter its condition.", item.Name)
		}
	}

	// Items under ~3 inches fall through the machinery at sorting
	// facilities regardless of material.
	if isSmallShape(shape) {
		return fmt.Sprintf("%s is too small for machine sorting, so it goes in the %s bin.", item.Name, binLabel(bin))
	}

	cl := strings.ToLower(cleanliness)
	switch {
	case strings.Contains(cl, "food") || strings.Contains(cl, "soiled"):
		return fmt.Sprintf("Because it's food-soiled, %s belongs in the %s bin.", item.Name, binLabel(bin))
	case strings.Contains(cl, "sticky") || strings.Contains(cl, "residue"):
		return fmt.Sprintf("Sticky residue contaminates recycling streams, so %s goes in the %s bin.", item.Name, binLabel(bin))
	case strings.Contains(cl, "clean") || strings.Contains(cl, "rinsed"):
		return fmt.Sprintf("Clean and rinsed, %s can go in the %s bin.", item.Name, binLabel(bin))
	}

	return fmt.Sprintf("%s belongs in the %s bin.", item.Name, binLabel(bin))
}

func isSmallShape(shape string) bool {
	s := strings.ToLower(shape)
	if s == "" {
		return false
	}
	return strings.Contains(s, "small") || strings.Contains(s, "3 inch") || strings.Contains(s, "3\"") || strings.Contains(s, "3in")
}

// binLabel renders a bin for prose. Trash carries its landfill synonym the
// way the quiz buttons do.
func binLabel(bin Bin) string {
	switch bin {
	case BinTrash:
		return "trash / landfill"
	case BinRecycle:
		return "recycle"
	case BinCompost:
		return "compost"
	default:
		return string(bin)
	}
}
