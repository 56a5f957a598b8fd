package handlers

import (
	"net/http"

	"github.com/lehigh-university-libraries/glycemic/internal/catalog"
	"github.com/lehigh-university-libraries/glycemic/internal/filter"
	"github.com/lehigh-university-libraries/glycemic/internal/models"
)

// FoodsResponse is the visible food list for a filter
type FoodsResponse struct {
	Category  models.Category `json:"category"`
	Query     string          `json:"query"`
	Searching bool            `json:"searching"`
	Foods     []models.Food   `json:"foods"`
}

func (h *Handler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		h.writeJSON(w, catalog.CountByCategory(h.foods))
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleFoods lists foods for ?category= or, when ?q= is not blank, the
// search results over the whole catalog.
func (h *Handler) HandleFoods(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	view := filter.View{Category: h.defaultCategory}
	if raw := r.URL.Query().Get("category"); raw != "" {
		category, ok := models.ParseCategory(raw)
		if !ok {
			h.writeError(w, "Unknown category: "+raw, http.StatusBadRequest)
			return
		}
		view = view.WithCategory(category)
	}
	view = view.WithQuery(r.URL.Query().Get("q"))

	h.writeJSON(w, FoodsResponse{
		Category:  view.Category,
		Query:     view.Query,
		Searching: view.Searching(),
		Foods:     view.Records(h.foods),
	})
}
