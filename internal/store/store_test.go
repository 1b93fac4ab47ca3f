package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonnyWalker81/nutrisense/backend/internal/models"
	"github.com/JonnyWalker81/nutrisense/backend/internal/repository"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNewMemory(t *testing.T) {
	s := newTestStore(t)

	var version int
	require.NoError(t, s.db.QueryRow("PRAGMA user_version").Scan(&version))
	assert.Equal(t, currentVersion, version)
}

func TestNewFileIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "nutrisense.db")

	s, err := New(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// reopening must not re-run migrations
	s, err = New(path)
	require.NoError(t, err)
	defer s.Close()
}

func TestDays(t *testing.T) {
	ctx := context.Background()
	days := newTestStore(t).Days()

	for _, d := range []string{"2026-03-01", "2026-03-02", "2026-03-03", "2026-03-09"} {
		_, err := days.Upsert(ctx, "u1", &models.DayRecord{Date: d, Meals: []models.Meal{}, Steps: 1000})
		require.NoError(t, err)
	}
	_, err := days.Upsert(ctx, "u2", &models.DayRecord{Date: "2026-03-02", Meals: []models.Meal{}})
	require.NoError(t, err)

	got, err := days.GetRange(ctx, "u1", "2026-03-01", "2026-03-03")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "2026-03-03", got[0].Date, "most recent first")
	assert.Equal(t, "2026-03-01", got[2].Date)
	assert.NotNil(t, got[0].Meals)

	// upsert replaces
	_, err = days.Upsert(ctx, "u1", &models.DayRecord{Date: "2026-03-02", Meals: []models.Meal{}, Mood: 8})
	require.NoError(t, err)
	day, err := days.Get(ctx, "u1", "2026-03-02")
	require.NoError(t, err)
	assert.Equal(t, 8.0, day.Mood)
	assert.Equal(t, 0, day.Steps)

	require.NoError(t, days.Delete(ctx, "u1", "2026-03-02"))
	_, err = days.Get(ctx, "u1", "2026-03-02")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, days.Delete(ctx, "u1", "2026-03-02"), repository.ErrNotFound)

	// other users are untouched
	_, err = days.Get(ctx, "u2", "2026-03-02")
	assert.NoError(t, err)
}

func TestProfiles(t *testing.T) {
	ctx := context.Background()
	profiles := newTestStore(t).Profiles()

	_, err := profiles.Get(ctx, "u1")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = profiles.Upsert(ctx, &models.Profile{})
	assert.Error(t, err)

	saved, err := profiles.Upsert(ctx, &models.Profile{UserID: "u1", Weight: 70, Age: 30})
	require.NoError(t, err)
	assert.False(t, saved.UpdatedAt.IsZero())

	got, err := profiles.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 70.0, got.Weight)
	assert.Equal(t, 30, got.Age)
}

func TestProducts(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	n, err := s.SeedProducts(ctx, []models.Product{
		{ID: "rice", Name: "Rice", Complex: 78},
		{ID: "apple", Name: "Apple", Simple: 10},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// second seed is a no-op
	n, err = s.SeedProducts(ctx, []models.Product{{ID: "pear", Name: "Pear"}})
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	require.NoError(t, s.SaveProduct(ctx, "u1", models.Product{ID: "rice", Name: "Rice", Complex: 70}))
	require.NoError(t, s.SaveProduct(ctx, "u1", models.Product{ID: "shake", Name: "Shake", Protein: 30}))
	assert.Error(t, s.SaveProduct(ctx, "u1", models.Product{Name: "nameless"}))

	products, err := s.Products().List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, products, 3)

	byID := make(map[string]models.Product)
	for _, p := range products {
		byID[p.ID] = p
	}
	assert.Equal(t, 70.0, byID["rice"].Complex, "user product shadows shared one")
	assert.Contains(t, byID, "shake")

	others, err := s.Products().List(ctx, "u2")
	require.NoError(t, err)
	assert.Len(t, others, 2)
}

func TestSeedDefaultCatalog(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	defaults, err := repository.DefaultProducts()
	require.NoError(t, err)
	n, err := s.SeedProducts(ctx, defaults)
	require.NoError(t, err)
	assert.Equal(t, len(defaults), n)

	resolver := repository.NewProductResolver(s.Products(), nil, 0)
	idx, source, err := resolver.Resolve(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, repository.SourcePrimary, source)
	_, ok := idx.Lookup(models.MealItem{Name: "oatmeal"})
	assert.True(t, ok)
}
