// Package services implements the application logic of the movie
// catalog on top of the storage layer.
package services

import (
	"github.com/cinevault/cinevault/internal/cache"
	"github.com/cinevault/cinevault/internal/database"
	"github.com/cinevault/cinevault/pkg/logger"
)

// Container holds all application services for dependency injection.
type Container struct {
	Catalog  *CatalogService
	Metadata *MetadataService
	Transfer *TransferService
	Cleanup  *CleanupService
	Cache    *cache.LRUCache
	Store    database.Store
	Journal  *database.Journal
	Logger   logger.Logger
}
