// Package database provides persistence for the movie catalog: a SQL
// store for the records themselves and an embedded journal for change
// history and cached external metadata.
package database

import (
	"context"

	"github.com/cinevault/cinevault/internal/models"
)

// Store is the interface over the relational movie store.
type Store interface {
	// Insert stores a new movie and fills in ID and timestamps.
	Insert(ctx context.Context, m *models.Movie) error
	// Get retrieves a movie by row ID.
	Get(ctx context.Context, id int64) (*models.Movie, error)
	// GetByCode retrieves a movie by its catalog code.
	GetByCode(ctx context.Context, code string) (*models.Movie, error)
	// Update rewrites an existing movie in place.
	Update(ctx context.Context, m *models.Movie) error
	// Delete removes a movie by row ID.
	Delete(ctx context.Context, id int64) error
	// List returns movies newest-first.
	List(ctx context.Context, limit, offset int) ([]models.Movie, error)
	// Search returns movies matching any of the non-empty filter fields.
	Search(ctx context.Context, filter models.SearchFilter) ([]models.Movie, error)
	// Statistics returns catalog totals.
	Statistics(ctx context.Context) (*models.Stats, error)
	// Close releases the underlying connection.
	Close() error
}
