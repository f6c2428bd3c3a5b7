package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// firstItemID is where flattened item ids start. Keeps ids stable across
// reloads of the same file and out of the way of user-visible small numbers.
const firstItemID = 1000

type rawDocument struct {
	Categories []rawCategory `json:"categories" yaml:"categories"`
}

type rawCategory struct {
	ID         string     `json:"id" yaml:"id"`
	Name       string     `json:"name" yaml:"name"`
	ItemGroups []rawGroup `json:"itemGroups" yaml:"itemGroups"`
}

type rawGroup struct {
	Name      string               `json:"name" yaml:"name"`
	Items     []rawItem            `json:"items" yaml:"items"`
	Materials map[string][]rawItem `json:"materials" yaml:"materials"`
}

type rawItem struct {
	Name           string                  `json:"name" yaml:"name"`
	SkipConditions bool                    `json:"skipConditions" yaml:"skipConditions"`
	DefaultBin     string                  `json:"defaultBin" yaml:"defaultBin"`
	Default        string                  `json:"default" yaml:"default"` // legacy spelling
	Allowed        *AllowedConditionValues `json:"allowedConditionValues" yaml:"allowedConditionValues"`
	Rules          []Rule                  `json:"rules" yaml:"rules"`
	Tags           []string                `json:"tags" yaml:"tags"`
}

// Load reads a catalog document from path. JSON and YAML are supported,
// chosen by file extension. Legacy group shapes (a materials map instead of
// an items list) are normalized here so evaluation never branches on shape.
func Load(path string) (*Catalog, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var doc rawDocument
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(buf, &doc); err != nil {
			return nil, fmt.Errorf("parse catalog yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(buf, &doc); err != nil {
			return nil, fmt.Errorf("parse catalog json: %w", err)
		}
	}
	return build(doc), nil
}

// Parse builds a catalog from an in-memory JSON document. Used by tests and
// catalogctl.
func Parse(buf []byte) (*Catalog, error) {
	var doc rawDocument
	if err := json.Unmarshal(buf, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog json: %w", err)
	}
	return build(doc), nil
}

func build(doc rawDocument) *Catalog {
	c := &Catalog{byID: map[int]Item{}}
	nextID := firstItemID

	adopt := func(ri rawItem) Item {
		it := Item{
			ID:             nextID,
			Name:           ri.Name,
			SkipConditions: ri.SkipConditions,
			DefaultBin:     ri.DefaultBin,
			Allowed:        ri.Allowed,
			Rules:          ri.Rules,
			Tags:           ri.Tags,
		}
		if it.DefaultBin == "" {
			it.DefaultBin = ri.Default
		}
		nextID++
		c.items = append(c.items, it)
		c.byID[it.ID] = it
		return it
	}

	for _, rc := range doc.Categories {
		cat := Category{ID: rc.ID, Name: rc.Name}
		for _, rg := range rc.ItemGroups {
			g := ItemGroup{Name: rg.Name}
			for _, ri := range rg.Items {
				g.Items = append(g.Items, adopt(ri))
			}
			// Legacy materials map. Iterate names sorted so ids stay
			// deterministic across loads.
			if len(rg.Materials) > 0 {
				names := make([]string, 0, len(rg.Materials))
				for n := range rg.Materials {
					names = append(names, n)
				}
				sort.Strings(names)
				for _, n := range names {
					for _, ri := range rg.Materials[n] {
						g.Items = append(g.Items, adopt(ri))
					}
				}
			}
			cat.ItemGroups = append(cat.ItemGroups, g)
		}
		c.Categories = append(c.Categories, cat)
	}
	return c
}
