package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/cinevault/cinevault/internal/cache"
	"github.com/cinevault/cinevault/internal/constants"
	"github.com/cinevault/cinevault/internal/database"
	apperrors "github.com/cinevault/cinevault/internal/errors"
	"github.com/cinevault/cinevault/internal/models"
	"github.com/cinevault/cinevault/pkg/httputil"
	"github.com/cinevault/cinevault/pkg/logger"
	"github.com/cinevault/cinevault/pkg/ratelimiter"
	"github.com/cinevault/cinevault/pkg/security"
)

const defaultOMDbBaseURL = "https://www.omdbapi.com/"

// MetadataService enriches stored movies with external metadata from
// the OMDb API. Lookups go memory cache first, then the persistent
// cache in the journal, then the rate-limited HTTP API.
type MetadataService struct {
	apiKey      string
	baseURL     string
	cache       *cache.LRUCache
	journal     *database.Journal
	rateLimiter *ratelimiter.TokenBucket
	httpClient  *http.Client
	logger      logger.Logger
	validator   *security.KeyValidator
}

// NewMetadata creates a MetadataService. An empty API key is allowed;
// lookups then fail with a typed API_KEY_MISSING error.
func NewMetadata(apiKey string, c *cache.LRUCache, journal *database.Journal, log logger.Logger) *MetadataService {
	validator := security.NewKeyValidator()

	sanitized := ""
	if apiKey != "" {
		sanitized = validator.SanitizeKey(apiKey)
	}

	return &MetadataService{
		apiKey:      sanitized,
		baseURL:     defaultOMDbBaseURL,
		cache:       c,
		journal:     journal,
		rateLimiter: ratelimiter.NewTokenBucket(constants.OMDbRateLimit, constants.OMDbRateBurst),
		httpClient:  httputil.NewHTTPClient(10 * time.Second),
		logger:      log,
		validator:   validator,
	}
}

// SetBaseURL overrides the OMDb endpoint. Used by tests.
func (m *MetadataService) SetBaseURL(u string) {
	m.baseURL = u
}

// SetAPIKey replaces the API key after sanitizing it.
func (m *MetadataService) SetAPIKey(apiKey string) {
	sanitized := m.validator.SanitizeKey(apiKey)
	if apiKey != "" && !m.validator.IsValidOMDbKey(sanitized) {
		m.logger.Errorf("[Metadata] rejected API key with invalid format (key: %s)", m.validator.MaskKey(sanitized))
		return
	}
	m.apiKey = sanitized
}

// Lookup fetches external metadata for a stored movie.
func (m *MetadataService) Lookup(ctx context.Context, movie *models.Movie) (*models.Metadata, error) {
	cacheKey := fmt.Sprintf("meta:%s", movie.Code)

	if m.cache != nil {
		if v, ok := m.cache.Get(cacheKey); ok {
			return v.(*models.Metadata), nil
		}
	}

	if m.journal != nil {
		if cached, err := m.journal.GetMetadata(movie.Code); err == nil && cached != nil {
			if m.cache != nil {
				m.cache.Set(cacheKey, cached)
			}
			return cached, nil
		}
	}

	if m.apiKey == "" {
		return nil, apperrors.NewAPIKeyMissingError("OMDb")
	}

	m.rateLimiter.Wait()

	meta, err := m.fetch(ctx, movie)
	if err != nil {
		return nil, err
	}

	if m.cache != nil {
		m.cache.Set(cacheKey, meta)
	}
	if m.journal != nil {
		if err := m.journal.StoreMetadata(movie.Code, meta); err != nil {
			m.logger.Errorf("[Metadata] failed to persist metadata for %s: %v", movie.Code, err)
		}
	}

	return meta, nil
}

func (m *MetadataService) fetch(ctx context.Context, movie *models.Movie) (*models.Metadata, error) {
	params := url.Values{}
	params.Set("apikey", m.apiKey)
	params.Set("t", movie.Title)
	params.Set("plot", "short")
	if year := movie.Year(); year > 0 {
		params.Set("y", fmt.Sprintf("%d", year))
	}

	m.logger.Debugf("[Metadata] fetching metadata for %q", movie.Title)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, apperrors.NewMetadataError("failed to build metadata request", err)
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewMetadataError("failed to fetch metadata", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewMetadataError(fmt.Sprintf("metadata API error: status %d", resp.StatusCode), nil)
	}

	var omdb models.OMDbResponse
	if err := json.NewDecoder(resp.Body).Decode(&omdb); err != nil {
		return nil, apperrors.NewMetadataError("failed to decode metadata response", err)
	}

	if omdb.Response != "True" {
		return nil, apperrors.NewMetadataError(fmt.Sprintf("no metadata found for %q: %s", movie.Title, omdb.Error), nil)
	}

	return &models.Metadata{
		Title:      omdb.Title,
		Year:       omdb.Year,
		Plot:       omdb.Plot,
		Poster:     omdb.Poster,
		Genre:      omdb.Genre,
		Director:   omdb.Director,
		Actors:     omdb.Actors,
		IMDbRating: omdb.ImdbRating,
		IMDbID:     omdb.ImdbID,
	}, nil
}
