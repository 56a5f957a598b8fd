// Package selection tracks the foods a user has picked for the summary
// calculator. A Selection is a value: every operation returns a new one and
// leaves its input untouched.
package selection

import (
	"fmt"

	"github.com/lehigh-university-libraries/glycemic/internal/models"
)

// ChipLimit is the selection size at which the summary stops listing names
// and shows a count instead.
const ChipLimit = 6

// Selection is an ordered set of foods, unique by name
type Selection []models.Food

// New returns an empty selection
func New() Selection {
	return Selection{}
}

// Contains reports whether a food with the given name is selected
func (s Selection) Contains(name string) bool {
	return s.indexOf(name) >= 0
}

// Names returns the selected food names in selection order
func (s Selection) Names() []string {
	names := make([]string, 0, len(s))
	for _, food := range s {
		names = append(names, food.Name)
	}
	return names
}

// Label renders the selection the way the summary header shows it
func (s Selection) Label() []string {
	return LabelNames(s.Names())
}

// LabelNames returns names while there are fewer than ChipLimit of them,
// otherwise a single "N Selected" entry.
func LabelNames(names []string) []string {
	if len(names) < ChipLimit {
		return append([]string{}, names...)
	}
	return []string{fmt.Sprintf("%d Selected", len(names))}
}

func (s Selection) indexOf(name string) int {
	for i, food := range s {
		if food.Name == name {
			return i
		}
	}
	return -1
}

// Toggle removes food from the selection if a food with the same name is
// present, otherwise appends it.
func Toggle(s Selection, food models.Food) Selection {
	if i := s.indexOf(food.Name); i >= 0 {
		next := make(Selection, 0, len(s)-1)
		next = append(next, s[:i]...)
		return append(next, s[i+1:]...)
	}

	next := make(Selection, 0, len(s)+1)
	next = append(next, s...)
	return append(next, food)
}

// Clear returns an empty selection
func Clear(Selection) Selection {
	return New()
}
