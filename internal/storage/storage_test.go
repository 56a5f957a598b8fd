package storage

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lehigh-university-libraries/glycemic/internal/models"
)

func TestSetGetDelete(t *testing.T) {
	store := New()

	_, ok := store.Get("missing")
	assert.False(t, ok)

	store.Set("a", &models.Session{ID: "a", Category: models.CategoryFruit})

	session, ok := store.Get("a")
	require.True(t, ok)
	assert.Equal(t, models.CategoryFruit, session.Category)

	assert.True(t, store.Delete("a"))
	assert.False(t, store.Delete("a"))
	_, ok = store.Get("a")
	assert.False(t, ok)
}

func TestGetReturnsCopy(t *testing.T) {
	store := New()
	store.Set("a", &models.Session{ID: "a", Selected: []models.Food{{Name: "Apple"}}})

	session, _ := store.Get("a")
	session.Selected[0].Name = "Mutated"
	session.Query = "changed"

	again, _ := store.Get("a")
	assert.Equal(t, "Apple", again.Selected[0].Name)
	assert.Empty(t, again.Query)
}

func TestUpdate(t *testing.T) {
	store := New()
	store.Set("a", &models.Session{ID: "a"})

	updated, ok := store.Update("a", func(s *models.Session) {
		s.Query = "rice"
	})
	require.True(t, ok)
	assert.Equal(t, "rice", updated.Query)
	assert.False(t, updated.UpdatedAt.IsZero())

	_, ok = store.Update("missing", func(*models.Session) {
		t.Fatal("fn must not run for a missing session")
	})
	assert.False(t, ok)
}

func TestUpdateConcurrent(t *testing.T) {
	store := New()
	store.Set("a", &models.Session{ID: "a"})

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Update("a", func(s *models.Session) {
				s.Selected = append(s.Selected, models.Food{Name: fmt.Sprintf("food-%d", i)})
			})
		}()
	}
	wg.Wait()

	session, _ := store.Get("a")
	assert.Len(t, session.Selected, 50)
}

func TestGetAllOrdered(t *testing.T) {
	store := New()
	now := time.Now()
	store.Set("b", &models.Session{ID: "b", CreatedAt: now.Add(time.Second)})
	store.Set("a", &models.Session{ID: "a", CreatedAt: now})

	all := store.GetAll()
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].ID)
	assert.Equal(t, "b", all[1].ID)
}
