// Package version carries build metadata for the prettyterm binary.
package version

// Populated by the Go linker (-ldflags "-X ...") at build time.
var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)

// String returns the one-line version banner.
func String() string {
	return Version + " (" + CommitHash + ", built " + BuildDate + ")"
}
