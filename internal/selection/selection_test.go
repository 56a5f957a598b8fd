package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lehigh-university-libraries/glycemic/internal/models"
)

var (
	apple  = models.Food{Name: "Apple", Category: models.CategoryFruit, GlycemicIndex: 36, GlycemicLoad: 5, Tier: models.TierGood}
	banana = models.Food{Name: "Banana", Category: models.CategoryFruit, GlycemicIndex: 51, GlycemicLoad: 13, Tier: models.TierBad}
	mango  = models.Food{Name: "Mango", Category: models.CategoryFruit, GlycemicIndex: 51, GlycemicLoad: 8, Tier: models.TierGood}
)

func TestToggleAddsAndRemoves(t *testing.T) {
	s := New()
	require.Empty(t, s)

	s = Toggle(s, apple)
	s = Toggle(s, banana)
	assert.Equal(t, []string{"Apple", "Banana"}, s.Names())
	assert.True(t, s.Contains("Apple"))

	s = Toggle(s, apple)
	assert.Equal(t, []string{"Banana"}, s.Names())
	assert.False(t, s.Contains("Apple"))
}

func TestToggleMatchesByName(t *testing.T) {
	s := Toggle(New(), apple)

	other := apple
	other.GlycemicIndex = 99
	s = Toggle(s, other)

	assert.Empty(t, s)
}

func TestToggleDoesNotMutateInput(t *testing.T) {
	original := Toggle(Toggle(New(), apple), banana)
	snapshot := append(Selection{}, original...)

	_ = Toggle(original, mango)
	_ = Toggle(original, apple)

	assert.Equal(t, snapshot, original)
}

func TestToggleTwiceRestoresSelection(t *testing.T) {
	base := Toggle(Toggle(New(), apple), banana)

	assert.Equal(t, base, Toggle(Toggle(base, mango), mango))
	assert.Equal(t, New(), Toggle(Toggle(New(), apple), apple))

	// A record already present comes back at the end of the order.
	restored := Toggle(Toggle(base, apple), apple)
	assert.ElementsMatch(t, base, restored)
	assert.Equal(t, []string{"Banana", "Apple"}, restored.Names())
}

func TestClear(t *testing.T) {
	s := Toggle(Toggle(New(), apple), banana)

	cleared := Clear(s)
	assert.Empty(t, cleared)
	assert.NotNil(t, cleared)
	assert.Len(t, s, 2)
}

func TestLabel(t *testing.T) {
	s := New()
	assert.Empty(t, s.Label())

	names := []string{"a", "b", "c", "d", "e"}
	for _, name := range names {
		s = Toggle(s, models.Food{Name: name})
	}
	assert.Equal(t, names, s.Label())

	s = Toggle(s, models.Food{Name: "f"})
	assert.Equal(t, []string{"6 Selected"}, s.Label())
}

func TestLabelNames(t *testing.T) {
	names := []string{"a", "b", "c", "d", "e"}
	label := LabelNames(names)
	assert.Equal(t, names, label)

	// the result never aliases the input
	label[0] = "z"
	assert.Equal(t, "a", names[0])

	assert.Equal(t, []string{"6 Selected"}, LabelNames(append(names, "f")))
	assert.Empty(t, LabelNames(nil))
}
