package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/lehigh-university-libraries/glycemic/internal/catalog"
	"github.com/lehigh-university-libraries/glycemic/internal/results"
)

func (h *Handler) HandleRecipes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		h.writeJSON(w, h.recipes)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleRecipeDetail returns one recipe with its ingredient aggregate
func (h *Handler) HandleRecipeDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name, err := url.PathUnescape(strings.TrimPrefix(r.URL.EscapedPath(), "/api/recipes/"))
	if err != nil || name == "" {
		h.writeError(w, "Recipe not found", http.StatusNotFound)
		return
	}

	recipe, ok := catalog.FindRecipe(h.recipes, name)
	if !ok {
		h.writeError(w, "Recipe not found", http.StatusNotFound)
		return
	}

	h.writeJSON(w, results.NewRecipeDetail(recipe))
}
