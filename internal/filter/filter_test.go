package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lehigh-university-libraries/glycemic/internal/models"
)

var catalog = []models.Food{
	{Name: "Apple", Category: models.CategoryFruit, GlycemicIndex: 36, GlycemicLoad: 5, Tier: models.TierGood},
	{Name: "Carrot", Category: models.CategoryVegetable, GlycemicIndex: 39, GlycemicLoad: 2, Tier: models.TierGood},
	{Name: "Fried Rice", Category: models.CategoryChinese, GlycemicIndex: 70, GlycemicLoad: 28, Tier: models.TierWorse},
	{Name: "Banana", Category: models.CategoryFruit, GlycemicIndex: 51, GlycemicLoad: 13, Tier: models.TierBad},
	{Name: "Basmati Rice", Category: models.CategoryIndian, GlycemicIndex: 58, GlycemicLoad: 22, Tier: models.TierWorse},
	{Name: "Shrimp Fried Rice", Category: models.CategoryChinese, GlycemicIndex: 68, GlycemicLoad: 26, Tier: models.TierWorse},
	{Name: "Grapes", Category: models.CategoryFruit, GlycemicIndex: 59, GlycemicLoad: 11, Tier: models.TierBad},
	{Name: "Crème Brûlée", Category: models.CategoryItalian, GlycemicIndex: 45, GlycemicLoad: 12, Tier: models.TierBad},
}

func names(records []models.Food) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Name)
	}
	return out
}

func TestSelectCategory(t *testing.T) {
	assert.Equal(t, []string{"Apple", "Banana", "Grapes"}, names(SelectCategory(catalog, models.CategoryFruit)))
	assert.Equal(t, []string{"Fried Rice", "Shrimp Fried Rice"}, names(SelectCategory(catalog, models.CategoryChinese)))
	assert.Empty(t, SelectCategory(catalog, models.CategoryAfghani))
}

func TestSelectCategoryUnknown(t *testing.T) {
	result := SelectCategory(catalog, models.Category("Dessert"))
	assert.NotNil(t, result)
	assert.Empty(t, result)
}

func TestSelectCategoryContainsEveryRecord(t *testing.T) {
	for _, record := range catalog {
		assert.Contains(t, SelectCategory(catalog, record.Category), record)
	}
}

func TestSearchByName(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected []string
	}{
		{"upper case query", "RICE", []string{"Fried Rice", "Basmati Rice", "Shrimp Fried Rice"}},
		{"lower case query", "fried", []string{"Fried Rice", "Shrimp Fried Rice"}},
		{"surrounding space", "  apple ", []string{"Apple"}},
		{"unicode folding", "CRÈME", []string{"Crème Brûlée"}},
		{"no match", "kiwi", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, names(SearchByName(catalog, tt.query)))
		})
	}
}

func TestSearchByNameBlankQueryMatchesAll(t *testing.T) {
	fruit := SelectCategory(catalog, models.CategoryFruit)

	assert.Equal(t, fruit, SearchByName(fruit, ""))
	assert.Equal(t, fruit, SearchByName(fruit, "   "))
}

func TestViewDefaultsToFruit(t *testing.T) {
	v := NewView()

	assert.Equal(t, models.CategoryFruit, v.Category)
	assert.False(t, v.Searching())
	assert.Equal(t, SelectCategory(catalog, models.CategoryFruit), v.Records(catalog))
}

func TestViewSearchOverridesCategory(t *testing.T) {
	v := NewView().WithQuery("rice")

	assert.True(t, v.Searching())
	assert.Equal(t, []string{"Fried Rice", "Basmati Rice", "Shrimp Fried Rice"}, names(v.Records(catalog)))
}

func TestViewSearchesDoNotCompound(t *testing.T) {
	v := NewView().WithQuery("apple")
	assert.Equal(t, []string{"Apple"}, names(v.Records(catalog)))

	v = v.WithQuery("banana")
	assert.Equal(t, []string{"Banana"}, names(v.Records(catalog)))
}

func TestViewBlankSearchFallsBackToCategory(t *testing.T) {
	v := NewView().WithCategory(models.CategoryChinese).WithQuery("apple")
	assert.Equal(t, []string{"Apple"}, names(v.Records(catalog)))

	v = v.WithQuery("  ")
	assert.Equal(t, SelectCategory(catalog, models.CategoryChinese), v.Records(catalog))
}

func TestViewWithCategoryReplaces(t *testing.T) {
	v := NewView().WithQuery("rice").WithCategory(models.CategoryVegetable)

	assert.Empty(t, v.Query)
	assert.Equal(t, []string{"Carrot"}, names(v.Records(catalog)))

	v = v.WithCategory(models.CategoryFruit)
	assert.Equal(t, []string{"Apple", "Banana", "Grapes"}, names(v.Records(catalog)))
}
