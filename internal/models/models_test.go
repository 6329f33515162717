package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validMovie() Movie {
	return Movie{
		Code:        "MV001",
		Title:       "The Example",
		ReleaseDate: "2023-06-15",
		Director:    "Jane Doe",
		Cast:        "Actor One, Actor Two",
		Genre:       "Drama",
		Budget:      12.5,
		DurationMin: 128,
		Rating:      4.5,
	}
}

func TestValidateAcceptsCompleteRecord(t *testing.T) {
	m := validMovie()
	require.NoError(t, m.Validate())
}

func TestValidateRequiredFields(t *testing.T) {
	m := validMovie()
	m.Code = ""
	err := m.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "code is required")

	m = validMovie()
	m.Title = ""
	err = m.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "title is required")
}

func TestValidateRatingBounds(t *testing.T) {
	m := validMovie()
	m.Rating = 5.5
	assert.Error(t, m.Validate())

	m.Rating = -0.1
	assert.Error(t, m.Validate())

	m.Rating = 0
	assert.NoError(t, m.Validate())

	m.Rating = 5
	assert.NoError(t, m.Validate())
}

func TestValidateReleaseDate(t *testing.T) {
	m := validMovie()
	m.ReleaseDate = "15/06/2023"
	assert.Error(t, m.Validate())

	m.ReleaseDate = ""
	assert.NoError(t, m.Validate(), "empty release date is allowed")
}

func TestValidateNegativeValues(t *testing.T) {
	m := validMovie()
	m.DurationMin = -1
	assert.Error(t, m.Validate())

	m = validMovie()
	m.Budget = -100
	assert.Error(t, m.Validate())
}

func TestNormalize(t *testing.T) {
	m := Movie{
		Code:  "  MV001 ",
		Title: " Title ",
		Genre: "drama",
	}
	m.Normalize()

	assert.Equal(t, "MV001", m.Code)
	assert.Equal(t, "Title", m.Title)
	assert.Equal(t, "Drama", m.Genre)
}

func TestNormalizeGenre(t *testing.T) {
	assert.Equal(t, "Science Fiction", NormalizeGenre("science fiction"))
	assert.Equal(t, "Horror", NormalizeGenre(" HORROR "))
	assert.Equal(t, "Kaiju", NormalizeGenre("Kaiju"), "unknown genres pass through")
}

func TestYear(t *testing.T) {
	m := validMovie()
	assert.Equal(t, 2023, m.Year())

	m.ReleaseDate = ""
	assert.Equal(t, 0, m.Year())

	m.ReleaseDate = "bad"
	assert.Equal(t, 0, m.Year())
}

func TestSearchFilterIsEmpty(t *testing.T) {
	var f SearchFilter
	assert.True(t, f.IsEmpty())

	f.Director = "Doe"
	assert.False(t, f.IsEmpty())
}
