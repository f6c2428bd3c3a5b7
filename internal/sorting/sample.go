package sorting

import (
	"math/rand"

	"github.com/trashquiz/trashquiz/internal/catalog"
)

// Sampler draws randomized condition values from an item's allowed domains.
// The zero value is not usable; construct with NewSampler.
type Sampler struct {
	rng *rand.Rand
}

// NewSampler returns a sampler backed by src. Pass a seeded source in tests
// for reproducible draws.
func NewSampler(src rand.Source) *Sampler {
	return &Sampler{rng: rand.New(src)}
}

// Sample draws one cleanliness and one shape value independently and
// uniformly from the item's allowed domains. Items that skip conditions, or
// have no declared domains, yield empty values; so does an empty list on
// either axis. An item may legally populate only one axis.
func (s *Sampler) Sample(item catalog.Item) (cleanliness, shape string) {
	if item.SkipConditions || item.Allowed == nil {
		return "", ""
	}
	cleanliness = s.pick(item.Allowed.Cleanliness)
	shape = s.pick(item.Allowed.Shape)
	return cleanliness, shape
}

// PickItem selects one item uniformly at random from the list. ok is false
// for an empty list.
func (s *Sampler) PickItem(items []catalog.Item) (catalog.Item, bool) {
	if len(items) == 0 {
		return catalog.Item{}, false
	}
	return items[s.rng.Intn(len(items))], true
}

func (s *Sampler) pick(vals []string) string {
	if len(vals) == 0 {
		return ""
	}
	return vals[s.rng.Intn(len(vals))]
}
