package catalog

// AllowedConditionValues is the legal domain of condition values for one
// item, per axis. Either list may be empty.
type AllowedConditionValues struct {
	Cleanliness []string `json:"cleanliness,omitempty" yaml:"cleanliness,omitempty"`
	Shape       []string `json:"shape,omitempty" yaml:"shape,omitempty"`
}

// Rule is a single ordered classification rule. If tests exactly one
// predicate (cleanliness or shape) by string equality; the first rule that
// matches wins.
type Rule struct {
	If  RulePredicate `json:"if" yaml:"if"`
	Bin string        `json:"bin" yaml:"bin"`
}

// RulePredicate carries exactly one populated axis. The catalog has always
// been authored one axis per rule; the evaluator reads cleanliness first and
// ignores shape when both are set, so conjunctive rules are not expressible.
type RulePredicate struct {
	Cleanliness string `json:"cleanliness,omitempty" yaml:"cleanliness,omitempty"`
	Shape       string `json:"shape,omitempty" yaml:"shape,omitempty"`
}

// Item is the atomic classification unit.
type Item struct {
	ID             int                     `json:"id"`
	Name           string                  `json:"name" yaml:"name"`
	SkipConditions bool                    `json:"skipConditions,omitempty" yaml:"skipConditions,omitempty"`
	DefaultBin     string                  `json:"defaultBin,omitempty" yaml:"defaultBin,omitempty"`
	Allowed        *AllowedConditionValues `json:"allowedConditionValues,omitempty" yaml:"allowedConditionValues,omitempty"`
	Rules          []Rule                  `json:"rules,omitempty" yaml:"rules,omitempty"`
	Tags           []string                `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// ItemGroup groups items within a category. Legacy catalogs carry a
// materials map instead of a flat items list; the loader folds both into
// Items.
type ItemGroup struct {
	Name      string            `json:"name" yaml:"name"`
	Items     []Item            `json:"items,omitempty" yaml:"items,omitempty"`
	Materials map[string][]Item `json:"materials,omitempty" yaml:"materials,omitempty"`
}

// Category is a top-level partition of the catalog.
type Category struct {
	ID         string      `json:"id,omitempty" yaml:"id,omitempty"`
	Name       string      `json:"name" yaml:"name"`
	ItemGroups []ItemGroup `json:"itemGroups,omitempty" yaml:"itemGroups,omitempty"`
}

// Catalog is the immutable category -> group -> item hierarchy plus the
// flattened item list used by the quiz and search. Built once by Load; no
// mutation API.
type Catalog struct {
	Categories []Category
	items      []Item
	byID       map[int]Item
}

// Items returns the flattened item list in catalog order.
func (c *Catalog) Items() []Item { return c.items }

// ItemByID looks up a flattened item by its assigned id.
func (c *Catalog) ItemByID(id int) (Item, bool) {
	it, ok := c.byID[id]
	return it, ok
}

// ItemByName returns the first item whose name matches exactly.
func (c *Catalog) ItemByName(name string) (Item, bool) {
	for _, it := range c.items {
		if it.Name == name {
			return it, true
		}
	}
	return Item{}, false
}

// Empty reports whether the catalog has no classifiable items.
func (c *Catalog) Empty() bool { return len(c.items) == 0 }
