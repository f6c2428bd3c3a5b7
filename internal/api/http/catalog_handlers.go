package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/trashquiz/trashquiz/internal/catalog"
	"github.com/trashquiz/trashquiz/internal/sorting"
)

// GetCatalogHandler serves the full category -> group -> item hierarchy.
func GetCatalogHandler(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"categories": cat.Categories})
	}
}

// SearchCatalogHandler serves fuzzy item search: GET /catalog/search?q=...
func SearchCatalogHandler(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		if q == "" {
			http.Error(w, "q required", 400)
			return
		}
		limit := 20
		if s := r.URL.Query().Get("limit"); s != "" {
			if n, err := strconv.Atoi(s); err == nil && n > 0 {
				limit = n
			}
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"results": cat.Search(q, limit)})
	}
}

// ClassifyHandler resolves a bin for an item under explicit conditions:
// POST /classify {"item_id": 1000, "cleanliness": "...", "shape": "..."}
// or {"item_name": "..."}.
func ClassifyHandler(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ItemID      int    `json:"item_id"`
			ItemName    string `json:"item_name"`
			Cleanliness string `json:"cleanliness"`
			Shape       string `json:"shape"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		var (
			item catalog.Item
			ok   bool
		)
		if req.ItemID != 0 {
			item, ok = cat.ItemByID(req.ItemID)
		} else if req.ItemName != "" {
			item, ok = cat.ItemByName(req.ItemName)
		}
		if !ok {
			http.Error(w, "item not found", 404)
			return
		}
		bin := sorting.Classify(item, req.Cleanliness, req.Shape)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"bin":         bin,
			"explanation": sorting.Explain(item, bin, req.Cleanliness, req.Shape),
		})
	}
}
