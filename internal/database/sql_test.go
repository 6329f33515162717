package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/cinevault/cinevault/internal/errors"
	"github.com/cinevault/cinevault/internal/models"
)

func newTestStore(t *testing.T) *SQLStore {
	t.Helper()
	store, err := NewSQL(DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleMovie(code, title string) *models.Movie {
	return &models.Movie{
		Code:        code,
		Title:       title,
		ReleaseDate: "2023-06-15",
		Director:    "Jane Doe",
		Cast:        "Actor One, Actor Two",
		Genre:       "Drama",
		Budget:      25,
		DurationMin: 120,
		Rating:      4,
	}
}

func TestInsertAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	m := sampleMovie("MV001", "First Movie")
	require.NoError(t, store.Insert(ctx, m))
	assert.NotZero(t, m.ID)
	assert.False(t, m.CreatedAt.IsZero())

	got, err := store.Get(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "MV001", got.Code)
	assert.Equal(t, "First Movie", got.Title)
	assert.Equal(t, "Jane Doe", got.Director)
	assert.Equal(t, 4.0, got.Rating)
}

func TestInsertDuplicateCode(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, sampleMovie("MV001", "First")))

	err := store.Insert(ctx, sampleMovie("MV001", "Second"))
	require.Error(t, err)
	assert.True(t, apperrors.IsDuplicate(err))
}

func TestGetByCode(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, sampleMovie("MV001", "First")))

	got, err := store.GetByCode(ctx, "MV001")
	require.NoError(t, err)
	assert.Equal(t, "First", got.Title)

	_, err = store.GetByCode(ctx, "MV999")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestGetMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), 12345)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUpdate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	m := sampleMovie("MV001", "Original Title")
	require.NoError(t, store.Insert(ctx, m))

	m.Title = "Updated Title"
	m.Rating = 5
	require.NoError(t, store.Update(ctx, m))

	got, err := store.Get(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Updated Title", got.Title)
	assert.Equal(t, 5.0, got.Rating)
}

func TestUpdateMissingRecord(t *testing.T) {
	store := newTestStore(t)

	m := sampleMovie("MV001", "Ghost")
	m.ID = 999
	err := store.Update(context.Background(), m)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUpdateToDuplicateCode(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := sampleMovie("MV001", "First")
	second := sampleMovie("MV002", "Second")
	require.NoError(t, store.Insert(ctx, first))
	require.NoError(t, store.Insert(ctx, second))

	second.Code = "MV001"
	err := store.Update(ctx, second)
	require.Error(t, err)
	assert.True(t, apperrors.IsDuplicate(err))
}

func TestDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	m := sampleMovie("MV001", "Doomed")
	require.NoError(t, store.Insert(ctx, m))
	require.NoError(t, store.Delete(ctx, m.ID))

	_, err := store.Get(ctx, m.ID)
	assert.True(t, apperrors.IsNotFound(err))

	err = store.Delete(ctx, m.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestListNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, sampleMovie("MV001", "Oldest")))
	require.NoError(t, store.Insert(ctx, sampleMovie("MV002", "Middle")))
	require.NoError(t, store.Insert(ctx, sampleMovie("MV003", "Newest")))

	movies, err := store.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, movies, 3)
	assert.Equal(t, "Newest", movies[0].Title)
	assert.Equal(t, "Oldest", movies[2].Title)

	// Paging
	movies, err = store.List(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, "Middle", movies[0].Title)
}

func TestSearchPartialMatch(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	a := sampleMovie("MV001", "The Great Escape")
	a.Director = "John Sturges"
	b := sampleMovie("MV002", "Great Expectations")
	b.Director = "David Lean"
	c := sampleMovie("MV003", "Unrelated")
	c.Director = "Someone Else"
	require.NoError(t, store.Insert(ctx, a))
	require.NoError(t, store.Insert(ctx, b))
	require.NoError(t, store.Insert(ctx, c))

	movies, err := store.Search(ctx, models.SearchFilter{Title: "Great"})
	require.NoError(t, err)
	assert.Len(t, movies, 2)
}

func TestSearchORSemantics(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	a := sampleMovie("MV001", "Alpha")
	a.Director = "John Sturges"
	b := sampleMovie("MV002", "Beta")
	b.Director = "David Lean"
	require.NoError(t, store.Insert(ctx, a))
	require.NoError(t, store.Insert(ctx, b))

	// Either field matching should include the record.
	movies, err := store.Search(ctx, models.SearchFilter{Title: "Alpha", Director: "Lean"})
	require.NoError(t, err)
	assert.Len(t, movies, 2)
}

func TestSearchByYear(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	a := sampleMovie("MV001", "From 2023")
	a.ReleaseDate = "2023-01-01"
	b := sampleMovie("MV002", "From 1999")
	b.ReleaseDate = "1999-10-31"
	require.NoError(t, store.Insert(ctx, a))
	require.NoError(t, store.Insert(ctx, b))

	movies, err := store.Search(ctx, models.SearchFilter{Year: "1999"})
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, "From 1999", movies[0].Title)
}

func TestSearchEmptyFilterReturnsAll(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, sampleMovie("MV001", "One")))
	require.NoError(t, store.Insert(ctx, sampleMovie("MV002", "Two")))

	movies, err := store.Search(ctx, models.SearchFilter{})
	require.NoError(t, err)
	assert.Len(t, movies, 2)
}

func TestStatistics(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	stats, err := store.Statistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.TotalMovies)
	assert.Equal(t, 0.0, stats.AverageRating)

	a := sampleMovie("MV001", "Rated High")
	a.Rating = 5
	b := sampleMovie("MV002", "Rated Low")
	b.Rating = 4
	c := sampleMovie("MV003", "Unrated")
	c.Rating = 0
	require.NoError(t, store.Insert(ctx, a))
	require.NoError(t, store.Insert(ctx, b))
	require.NoError(t, store.Insert(ctx, c))

	stats, err = store.Statistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalMovies)
	// Unrated records are excluded from the average.
	assert.Equal(t, 4.5, stats.AverageRating)
}
