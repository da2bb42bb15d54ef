// Package key defines the canonical set of configuration identifiers used by the viper registry.
package key

// DefinedFieldsCount is the number of registered configuration fields.
const DefinedFieldsCount = 21

// Origin - the streaming site being scraped.
const (
	OriginURL     = "origin.url"
	OriginLocale  = "origin.locale"
	OriginLanding = "origin.landing"
)

// HTTP - transport selection and pacing.
const (
	HTTPClient    = "http.client"
	HTTPTimeout   = "http.timeout"
	HTTPDelay     = "http.delay"
	HTTPUserAgent = "http.user_agent"
)

// Bootstrap - session setup retry policy.
const (
	BootstrapAttempts = "bootstrap.attempts"
	BootstrapBackoff  = "bootstrap.backoff"
)

// Search - result selection and caching.
const (
	SearchPick     = "search.pick"
	SearchCache    = "search.cache"
	SearchCacheTTL = "search.cache_ttl"
)

// Extract - player script decoding.
const (
	ExtractParser = "extract.parser"
)

// Playlist - the emitted M3U artifact.
const (
	PlaylistOutput = "playlist.output"
	PlaylistTitles = "playlist.titles"
)

// History - persistence of resolved streams.
const (
	HistorySave = "history.save"
)

// Logging.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI.
const (
	CliColored   = "cli.colored"
	IconsVariant = "icons.variant"
)
