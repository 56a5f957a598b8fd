package models

import (
	"fmt"
	"strings"
	"time"
)

// Category is the food grouping shown as a tab in the food list
type Category string

const (
	CategoryFruit     Category = "Fruit"
	CategoryVegetable Category = "Vegetable"
	CategoryIndian    Category = "Indian Cuisine"
	CategoryMexican   Category = "Mexican Cuisine"
	CategoryChinese   Category = "Chinese Cuisine"
	CategoryAfghani   Category = "Afghani Cuisine"
	CategoryItalian   Category = "Italian Cuisine"
)

// DefaultCategory is active until another category is chosen
const DefaultCategory = CategoryFruit

// Categories lists every category in display order
var Categories = []Category{
	CategoryFruit,
	CategoryVegetable,
	CategoryIndian,
	CategoryMexican,
	CategoryChinese,
	CategoryAfghani,
	CategoryItalian,
}

// ParseCategory returns the canonical category matching s, ignoring case
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(string(c), s) {
			return c, true
		}
	}
	return "", false
}

// Tier is the health rating of a food. The numeric values match the
// "category" field of the bundled data files.
type Tier int

const (
	TierGood  Tier = 1
	TierBad   Tier = 2
	TierWorse Tier = 3
)

func (t Tier) String() string {
	switch t {
	case TierGood:
		return "Good"
	case TierBad:
		return "Bad"
	case TierWorse:
		return "Worse"
	default:
		return fmt.Sprintf("Tier(%d)", int(t))
	}
}

// Valid reports whether t is one of the known tiers
func (t Tier) Valid() bool {
	return t >= TierGood && t <= TierWorse
}

func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Tier) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "good":
		*t = TierGood
	case "bad":
		*t = TierBad
	case "worse":
		*t = TierWorse
	default:
		return fmt.Errorf("unknown tier: %q", string(text))
	}
	return nil
}

// Food is a single catalog record. Name is unique within a catalog.
type Food struct {
	Name          string   `json:"name" yaml:"name"`
	Category      Category `json:"category" yaml:"category"`
	GlycemicIndex int      `json:"glycemic_index" yaml:"glycemic_index"`
	GlycemicLoad  int      `json:"glycemic_load" yaml:"glycemic_load"`
	Tier          Tier     `json:"tier" yaml:"tier"`
}

func (f Food) Glycemic() (index, load int) {
	return f.GlycemicIndex, f.GlycemicLoad
}

// Ingredient is one line of a recipe with its glycemic values
type Ingredient struct {
	Name          string `json:"name" yaml:"name"`
	GlycemicIndex int    `json:"glycemic_index" yaml:"glycemic_index"`
	GlycemicLoad  int    `json:"glycemic_load" yaml:"glycemic_load"`
	Tier          Tier   `json:"tier" yaml:"tier"`
}

func (i Ingredient) Glycemic() (index, load int) {
	return i.GlycemicIndex, i.GlycemicLoad
}

// Recipe is a bundled recipe shown in the recipe detail view
type Recipe struct {
	Name         string       `json:"name" yaml:"name"`
	Cuisine      string       `json:"cuisine" yaml:"cuisine"`
	Image        string       `json:"image,omitempty" yaml:"image,omitempty"`
	Ingredients  []Ingredient `json:"ingredients" yaml:"ingredients"`
	Instructions []string     `json:"instructions" yaml:"instructions"`
}

// Glycemic is implemented by anything carrying a glycemic index and load
type Glycemic interface {
	Glycemic() (index, load int)
}

// Session is the per-client state held by the server: the active filter
// and the current selection. Nothing about it is persisted.
type Session struct {
	ID        string    `json:"id"`
	Category  Category  `json:"category"`
	Query     string    `json:"query"`
	Selected  []Food    `json:"selected"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
