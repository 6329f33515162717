package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinevault/cinevault/internal/cache"
	"github.com/cinevault/cinevault/internal/database"
	apperrors "github.com/cinevault/cinevault/internal/errors"
	"github.com/cinevault/cinevault/internal/models"
	"github.com/cinevault/cinevault/pkg/logger"
)

func newTestCatalog(t *testing.T) *CatalogService {
	t.Helper()

	store, err := database.NewSQL(database.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	journal, err := database.NewJournal(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { journal.Close() })

	return NewCatalog(store, journal, cache.New(100, time.Minute), logger.New())
}

func testMovie(code, title string) *models.Movie {
	return &models.Movie{
		Code:        code,
		Title:       title,
		ReleaseDate: "2020-05-01",
		Director:    "Jane Doe",
		Genre:       "drama",
		Rating:      3.5,
	}
}

func TestCreateNormalizesAndStores(t *testing.T) {
	svc := newTestCatalog(t)
	ctx := context.Background()

	m := testMovie(" MV001 ", "  Spaced Out  ")
	require.NoError(t, svc.Create(ctx, m))

	got, err := svc.Get(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "MV001", got.Code)
	assert.Equal(t, "Spaced Out", got.Title)
	assert.Equal(t, "Drama", got.Genre, "genre should be canonicalized")
}

func TestCreateRejectsInvalidRecord(t *testing.T) {
	svc := newTestCatalog(t)

	m := testMovie("MV001", "")
	err := svc.Create(context.Background(), m)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	m = testMovie("MV002", "Over Rated")
	m.Rating = 9
	err = svc.Create(context.Background(), m)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestCreateDuplicatePropagates(t *testing.T) {
	svc := newTestCatalog(t)
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, testMovie("MV001", "First")))
	err := svc.Create(ctx, testMovie("MV001", "Second"))
	require.Error(t, err)
	assert.True(t, apperrors.IsDuplicate(err))
}

func TestUpdateAndJournal(t *testing.T) {
	svc := newTestCatalog(t)
	ctx := context.Background()

	m := testMovie("MV001", "Original")
	require.NoError(t, svc.Create(ctx, m))

	m.Title = "Revised"
	require.NoError(t, svc.Update(ctx, m))

	entries, err := svc.RecentChanges(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "update", entries[0].Action)
	assert.Equal(t, "create", entries[1].Action)
}

func TestDeleteJournalsRecord(t *testing.T) {
	svc := newTestCatalog(t)
	ctx := context.Background()

	m := testMovie("MV001", "Doomed")
	require.NoError(t, svc.Create(ctx, m))
	require.NoError(t, svc.Delete(ctx, m.ID))

	_, err := svc.Get(ctx, m.ID)
	assert.True(t, apperrors.IsNotFound(err))

	entries, err := svc.RecentChanges(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "delete", entries[0].Action)
	assert.Equal(t, "Doomed", entries[0].Title)
}

func TestDeleteMissing(t *testing.T) {
	svc := newTestCatalog(t)

	err := svc.Delete(context.Background(), 404)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestSearchUsesCacheUntilMutation(t *testing.T) {
	store, err := database.NewSQL(database.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	c := cache.New(100, time.Minute)
	svc := NewCatalog(store, nil, c, logger.New())
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, testMovie("MV001", "Cached")))

	movies, err := svc.Search(ctx, models.SearchFilter{Title: "Cached"})
	require.NoError(t, err)
	require.Len(t, movies, 1)

	// The result should now be resident in the cache.
	_, ok := c.Get(searchCacheKey(models.SearchFilter{Title: "Cached"}))
	assert.True(t, ok)

	// A mutation drops it.
	require.NoError(t, svc.Create(ctx, testMovie("MV002", "Another")))
	_, ok = c.Get(searchCacheKey(models.SearchFilter{Title: "Cached"}))
	assert.False(t, ok)
}

func TestStatisticsCached(t *testing.T) {
	svc := newTestCatalog(t)
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, testMovie("MV001", "Rated")))

	stats, err := svc.Statistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalMovies)
	assert.Equal(t, 3.5, stats.AverageRating)

	again, err := svc.Statistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, stats, again)
}

func TestListClampsPageSize(t *testing.T) {
	svc := newTestCatalog(t)
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, testMovie("MV001", "Only")))

	movies, err := svc.List(ctx, -5, -2)
	require.NoError(t, err)
	assert.Len(t, movies, 1)

	movies, err = svc.List(ctx, 100000, 0)
	require.NoError(t, err)
	assert.Len(t, movies, 1)
}
