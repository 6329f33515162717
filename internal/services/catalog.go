package services

import (
	"context"
	"fmt"

	"github.com/cinevault/cinevault/internal/cache"
	"github.com/cinevault/cinevault/internal/constants"
	"github.com/cinevault/cinevault/internal/database"
	apperrors "github.com/cinevault/cinevault/internal/errors"
	"github.com/cinevault/cinevault/internal/models"
	"github.com/cinevault/cinevault/pkg/logger"
)

const statsCacheKey = "stats"

// CatalogService implements the catalog operations: validation,
// persistence, change journaling and read caching.
type CatalogService struct {
	store   database.Store
	journal *database.Journal
	cache   *cache.LRUCache
	logger  logger.Logger
}

// NewCatalog creates a CatalogService. journal and cache may be nil,
// in which case journaling and read caching are disabled.
func NewCatalog(store database.Store, journal *database.Journal, c *cache.LRUCache, log logger.Logger) *CatalogService {
	return &CatalogService{
		store:   store,
		journal: journal,
		cache:   c,
		logger:  log,
	}
}

// Create validates and stores a new movie record.
func (s *CatalogService) Create(ctx context.Context, m *models.Movie) error {
	m.Normalize()
	if err := m.Validate(); err != nil {
		return apperrors.NewValidationError(err.Error())
	}

	if err := s.store.Insert(ctx, m); err != nil {
		return err
	}

	s.recordChange("create", m)
	s.invalidateReads()
	return nil
}

// Get returns a movie by row ID.
func (s *CatalogService) Get(ctx context.Context, id int64) (*models.Movie, error) {
	return s.store.Get(ctx, id)
}

// GetByCode returns a movie by catalog code.
func (s *CatalogService) GetByCode(ctx context.Context, code string) (*models.Movie, error) {
	return s.store.GetByCode(ctx, code)
}

// Update validates and rewrites an existing movie record.
func (s *CatalogService) Update(ctx context.Context, m *models.Movie) error {
	m.Normalize()
	if err := m.Validate(); err != nil {
		return apperrors.NewValidationError(err.Error())
	}

	if err := s.store.Update(ctx, m); err != nil {
		return err
	}

	s.recordChange("update", m)
	s.invalidateReads()
	return nil
}

// Delete removes a movie by row ID.
func (s *CatalogService) Delete(ctx context.Context, id int64) error {
	m, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	s.recordChange("delete", m)
	s.invalidateReads()
	return nil
}

// List returns movies newest-first with paging. The limit is clamped
// to the configured maximum page size.
func (s *CatalogService) List(ctx context.Context, limit, offset int) ([]models.Movie, error) {
	if limit <= 0 {
		limit = constants.DefaultPageSize
	}
	if limit > constants.MaxPageSize {
		limit = constants.MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return s.store.List(ctx, limit, offset)
}

// Search returns movies matching the filter. Results for a given
// filter are served from the read cache until the next mutation.
func (s *CatalogService) Search(ctx context.Context, filter models.SearchFilter) ([]models.Movie, error) {
	key := searchCacheKey(filter)
	if s.cache != nil {
		if v, ok := s.cache.Get(key); ok {
			return v.([]models.Movie), nil
		}
	}

	movies, err := s.store.Search(ctx, filter)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(key, movies)
	}
	return movies, nil
}

// Statistics returns catalog totals, cached until the next mutation.
func (s *CatalogService) Statistics(ctx context.Context) (*models.Stats, error) {
	if s.cache != nil {
		if v, ok := s.cache.Get(statsCacheKey); ok {
			return v.(*models.Stats), nil
		}
	}

	stats, err := s.store.Statistics(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(statsCacheKey, stats)
	}
	return stats, nil
}

// RecentChanges returns the newest journal entries.
func (s *CatalogService) RecentChanges(n int) ([]database.AuditEntry, error) {
	if s.journal == nil {
		return []database.AuditEntry{}, nil
	}
	return s.journal.Recent(n)
}

// recordChange appends to the journal. Journal failures are logged
// but never fail the catalog operation itself.
func (s *CatalogService) recordChange(action string, m *models.Movie) {
	if s.journal == nil {
		return
	}
	if err := s.journal.Append(action, m.ID, m.Code, m.Title); err != nil {
		s.logger.Errorf("[Catalog] failed to journal %s of %s: %v", action, m.Code, err)
	}
}

// invalidateReads drops cached search results and statistics after a
// mutation.
func (s *CatalogService) invalidateReads() {
	if s.cache != nil {
		s.cache.Clear()
	}
}

func searchCacheKey(f models.SearchFilter) string {
	return fmt.Sprintf("search:%s|%s|%s|%s|%s|%s",
		f.Code, f.Title, f.Director, f.Cast, f.Genre, f.Year)
}
