// Package catalog loads, validates and queries the static food catalog.
package catalog

import (
	"slices"
	"strings"

	"github.com/lehigh-university-libraries/glycemic/internal/models"
)

// SortedByName returns a copy of foods ordered by name, ignoring case.
// The input is left in catalog order.
func SortedByName(foods []models.Food) []models.Food {
	sorted := slices.Clone(foods)
	slices.SortStableFunc(sorted, func(a, b models.Food) int {
		if c := strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return sorted
}

// Find looks a food up by name. An exact match wins over a
// case-insensitive one.
func Find(foods []models.Food, name string) (models.Food, bool) {
	name = strings.TrimSpace(name)
	for _, f := range foods {
		if f.Name == name {
			return f, true
		}
	}
	for _, f := range foods {
		if strings.EqualFold(f.Name, name) {
			return f, true
		}
	}
	return models.Food{}, false
}

// CategoryCount is the number of foods in one category
type CategoryCount struct {
	Category models.Category `json:"category" yaml:"category"`
	Count    int             `json:"count" yaml:"count"`
}

// CountByCategory counts foods per category, in display order. Categories
// with no foods are included with a zero count.
func CountByCategory(foods []models.Food) []CategoryCount {
	counts := make(map[models.Category]int, len(models.Categories))
	for _, f := range foods {
		counts[f.Category]++
	}

	result := make([]CategoryCount, 0, len(models.Categories))
	for _, c := range models.Categories {
		result = append(result, CategoryCount{Category: c, Count: counts[c]})
	}
	return result
}
