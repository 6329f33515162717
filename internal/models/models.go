// Package models defines the data structures exchanged between the
// store, the services and the HTTP layer.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/cinevault/cinevault/internal/constants"
)

// Movie is a single catalog record. Code is the user-assigned catalog
// code and must be unique; ID is the database row identifier.
type Movie struct {
	ID          int64     `json:"id"`
	Code        string    `json:"code"`
	Title       string    `json:"title"`
	ReleaseDate string    `json:"release_date,omitempty"`
	Director    string    `json:"director,omitempty"`
	Cast        string    `json:"cast,omitempty"`
	Genre       string    `json:"genre,omitempty"`
	Budget      float64   `json:"budget,omitempty"`
	DurationMin int       `json:"duration_min,omitempty"`
	Rating      float64   `json:"rating,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
}

// Normalize trims whitespace on free-text fields and canonicalizes the
// genre against the known genre list.
func (m *Movie) Normalize() {
	m.Code = strings.TrimSpace(m.Code)
	m.Title = strings.TrimSpace(m.Title)
	m.ReleaseDate = strings.TrimSpace(m.ReleaseDate)
	m.Director = strings.TrimSpace(m.Director)
	m.Cast = strings.TrimSpace(m.Cast)
	m.Genre = NormalizeGenre(m.Genre)
}

// Validate checks the record against the catalog integrity rules:
// code and title are required, the release date must be YYYY-MM-DD
// when set, and rating, duration and budget must be in range.
func (m *Movie) Validate() error {
	if m.Code == "" {
		return fmt.Errorf("movie code is required")
	}
	if m.Title == "" {
		return fmt.Errorf("movie title is required")
	}
	if m.ReleaseDate != "" {
		if _, err := time.Parse("2006-01-02", m.ReleaseDate); err != nil {
			return fmt.Errorf("release date must be YYYY-MM-DD: %q", m.ReleaseDate)
		}
	}
	if m.Rating < constants.MinRating || m.Rating > constants.MaxRating {
		return fmt.Errorf("rating must be between %.0f and %.0f", constants.MinRating, constants.MaxRating)
	}
	if m.DurationMin < 0 {
		return fmt.Errorf("duration must not be negative")
	}
	if m.Budget < 0 {
		return fmt.Errorf("budget must not be negative")
	}
	return nil
}

// Year returns the release year, or 0 when no release date is set.
func (m *Movie) Year() int {
	if len(m.ReleaseDate) < 4 {
		return 0
	}
	t, err := time.Parse("2006-01-02", m.ReleaseDate)
	if err != nil {
		return 0
	}
	return t.Year()
}

// NormalizeGenre maps a free-form genre string onto the known genre
// list when it matches case-insensitively, otherwise returns the
// trimmed input unchanged.
func NormalizeGenre(genre string) string {
	genre = strings.TrimSpace(genre)
	for _, known := range constants.KnownGenres {
		if strings.EqualFold(genre, known) {
			return known
		}
	}
	return genre
}

// SearchFilter holds per-field partial matchers. Empty fields are
// ignored; non-empty fields are OR-combined, matching the original
// search behavior of the catalog.
type SearchFilter struct {
	Code     string `form:"code"`
	Title    string `form:"title"`
	Director string `form:"director"`
	Cast     string `form:"cast"`
	Genre    string `form:"genre"`
	Year     string `form:"year"`
}

// IsEmpty reports whether no filter field is set.
func (f *SearchFilter) IsEmpty() bool {
	return f.Code == "" && f.Title == "" && f.Director == "" &&
		f.Cast == "" && f.Genre == "" && f.Year == ""
}

// Stats summarizes the catalog.
type Stats struct {
	TotalMovies   int64   `json:"total_movies"`
	AverageRating float64 `json:"average_rating"`
}

// MovieListResponse wraps a list of movies.
type MovieListResponse struct {
	Movies []Movie `json:"movies"`
	Count  int     `json:"count"`
}

// ImportReport summarizes a bulk CSV import.
type ImportReport struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

// ErrorResponse is the JSON error body returned by the API.
type ErrorResponse struct {
	Error string `json:"error"`
	Type  string `json:"type,omitempty"`
}

// Metadata holds external metadata for a stored movie.
type Metadata struct {
	Title      string `json:"title"`
	Year       string `json:"year,omitempty"`
	Plot       string `json:"plot,omitempty"`
	Poster     string `json:"poster,omitempty"`
	Genre      string `json:"genre,omitempty"`
	Director   string `json:"director,omitempty"`
	Actors     string `json:"actors,omitempty"`
	IMDbRating string `json:"imdb_rating,omitempty"`
	IMDbID     string `json:"imdb_id,omitempty"`
}

// OMDbResponse is the wire format of the OMDb lookup API.
type OMDbResponse struct {
	Response   string `json:"Response"`
	Error      string `json:"Error"`
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Plot       string `json:"Plot"`
	Director   string `json:"Director"`
	Poster     string `json:"Poster"`
	Genre      string `json:"Genre"`
	Actors     string `json:"Actors"`
	ImdbRating string `json:"imdbRating"`
	ImdbID     string `json:"imdbID"`
}
