package filter

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/lehigh-university-libraries/glycemic/internal/models"
)

// SelectCategory returns the records in the given category, in input order.
// An unknown category yields an empty result.
func SelectCategory(records []models.Food, category models.Category) []models.Food {
	result := make([]models.Food, 0)
	for _, record := range records {
		if record.Category == category {
			result = append(result, record)
		}
	}
	return result
}

// SearchByName returns the records whose name contains query, ignoring
// case, in input order. A blank query matches every record.
func SearchByName(records []models.Food, query string) []models.Food {
	query = strings.TrimSpace(query)
	if query == "" {
		return append(make([]models.Food, 0, len(records)), records...)
	}

	// Caser is stateful, so one per call.
	fold := cases.Fold()
	needle := fold.String(query)

	result := make([]models.Food, 0)
	for _, record := range records {
		if strings.Contains(fold.String(record.Name), needle) {
			result = append(result, record)
		}
	}
	return result
}

// View is the active filter of the food list. Exactly one category is
// active; a non-blank Query overrides it until cleared.
type View struct {
	Category models.Category `json:"category" yaml:"category"`
	Query    string          `json:"query" yaml:"query"`
}

// NewView returns the initial view: the default category, no search
func NewView() View {
	return View{Category: models.DefaultCategory}
}

// WithCategory switches the active category and drops any search text
func (v View) WithCategory(category models.Category) View {
	return View{Category: category}
}

// WithQuery sets the search text, keeping the active category for when the
// search is cleared.
func (v View) WithQuery(query string) View {
	v.Query = query
	return v
}

// Searching reports whether the search text is in effect
func (v View) Searching() bool {
	return strings.TrimSpace(v.Query) != ""
}

// Records computes the visible records from the full catalog. Searches run
// against the whole catalog, so consecutive searches never narrow each
// other; a blank search falls back to the active category.
func (v View) Records(catalog []models.Food) []models.Food {
	if v.Searching() {
		return SearchByName(catalog, v.Query)
	}
	return SelectCategory(catalog, v.Category)
}
