package catalog

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// SearchResult pairs an item with its match distance. Substring hits carry
// distance 0.
type SearchResult struct {
	Item     Item
	Distance int
}

// maxSearchDistance is the edit-distance cutoff beyond which an item is not
// considered a match at all.
const maxSearchDistance = 4

// Search ranks catalog items against a free-text query. Exact and substring
// matches come first, then near misses by Levenshtein distance over the
// lowercased names. Returns at most limit results (limit <= 0 means all).
func (c *Catalog) Search(query string, limit int) []SearchResult {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var out []SearchResult
	for _, it := range c.items {
		name := strings.ToLower(it.Name)
		if strings.Contains(name, q) {
			out = append(out, SearchResult{Item: it})
			continue
		}
		d := levenshtein.ComputeDistance(q, name)
		// also try individual words so "bottle" finds "plastic bottle"
		for _, w := range strings.Fields(name) {
			if wd := levenshtein.ComputeDistance(q, w); wd < d {
				d = wd
			}
		}
		if d <= maxSearchDistance {
			out = append(out, SearchResult{Item: it, Distance: d})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Distance < out[j].Distance })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
