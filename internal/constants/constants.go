// Package constants defines application-wide constants and default values.
package constants

const (
	// Application metadata
	AppName        = "CineVault"
	AppVersion     = "1.0.0"
	AppDescription = "Movie catalog management service with search, statistics and bulk import/export"

	// Default configuration values
	DefaultPort     = "5000"
	DefaultLogLevel = "info"

	// Storage defaults
	DefaultDriver       = "sqlite"
	DefaultDatabaseFile = "movies.db"
	DefaultJournalFile  = "journal.db"

	// Cache settings
	DefaultCacheSize = 1000
	DefaultCacheTTL  = 24 // hours

	// Retention for audit entries and persistent metadata cache
	DefaultRetentionHours = 720 // 30 days

	// Listing defaults
	DefaultPageSize = 50
	MaxPageSize     = 500

	// Rating bounds
	MinRating = 0.0
	MaxRating = 5.0

	// OMDb rate limiting
	OMDbRateLimit = 10 // requests per second
	OMDbRateBurst = 4  // burst capacity
)

// KnownGenres lists the genres the catalog recognizes. Free-form
// values are still accepted; this list only drives normalization.
var KnownGenres = []string{
	"Action",
	"Adventure",
	"Animation",
	"Comedy",
	"Crime",
	"Documentary",
	"Drama",
	"Family",
	"Fantasy",
	"History",
	"Horror",
	"Music",
	"Mystery",
	"Romance",
	"Science Fiction",
	"Thriller",
	"War",
	"Western",
}

// CSVHeader is the canonical column order for bulk import and export.
var CSVHeader = []string{
	"code",
	"title",
	"release_date",
	"director",
	"cast",
	"genre",
	"budget",
	"duration_min",
	"rating",
}
