// Package constant defines immutable application-level identifiers and defaults.
package constant

const (
	// Simud is the canonical application identifier used for filesystem paths, env prefixes and CLI branding.
	Simud = "simud"

	// Version is the current application semantic version string.
	Version = "0.3.1"

	// UserAgent is the desktop browser User-Agent sent to the streaming site.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36"

	// MobileUserAgent matches the Android client the site serves its lighter pages to.
	MobileUserAgent = "Mozilla/5.0 (Linux; Android 10; SM-G973F) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Mobile Safari/537.36"

	// Origin is the default streaming site origin.
	Origin = "https://streamingunity.to"

	// Playlist is the default output file name.
	Playlist = "Simud.m3u"
)

// Build metadata, injected with -ldflags "-X".
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
