package main

import (
	"github.com/cinevault/cinevault/internal/cache"
	"github.com/cinevault/cinevault/internal/config"
	"github.com/cinevault/cinevault/internal/database"
	"github.com/cinevault/cinevault/internal/handlers"
	"github.com/cinevault/cinevault/internal/services"
	"github.com/cinevault/cinevault/pkg/logger"
)

var (
	Logger           logger.Logger
	Config           *config.Config
	Store            database.Store
	Journal          *database.Journal
	memoryCache      *cache.LRUCache
	handler          *handlers.Handler
	serviceContainer *services.Container
)

func InitializeLogger() {
	Logger = logger.New()
}

func InitializeConfig() {
	var err error
	Config, err = config.Load()
	if err != nil {
		Logger.Fatalf("failed to load configuration: %v", err)
	}
	Logger.Infof("[App] configuration loaded (driver: %s)", Config.Driver)
}

func InitializeStorage() {
	var err error

	dsn := Config.DatabasePath
	if Config.Driver == database.DriverMySQL {
		dsn = Config.MySQLDSN
	}

	Store, err = database.NewSQL(Config.Driver, dsn)
	if err != nil {
		Logger.Fatalf("failed to initialize database: %v", err)
	}
	Logger.Infof("[App] %s database initialized successfully", Config.Driver)

	Journal, err = database.NewJournal(Config.JournalPath)
	if err != nil {
		Logger.Fatalf("failed to initialize journal: %v", err)
	}
	Logger.Infof("[App] journal initialized successfully")
}

func InitializeServices() {
	memoryCache = cache.New(Config.CacheSize, Config.CacheTTL)

	catalogService := services.NewCatalog(Store, Journal, memoryCache, Logger)
	metadataService := services.NewMetadata(Config.OMDbAPIKey, memoryCache, Journal, Logger)
	transferService := services.NewTransfer(catalogService, Logger)
	cleanupService := services.NewCleanup(Journal, Config.Retention(), Logger)

	serviceContainer = &services.Container{
		Catalog:  catalogService,
		Metadata: metadataService,
		Transfer: transferService,
		Cleanup:  cleanupService,
		Cache:    memoryCache,
		Store:    Store,
		Journal:  Journal,
		Logger:   Logger,
	}

	handler = handlers.New(serviceContainer, Config)

	Logger.Infof("[App] services initialized successfully")
}
