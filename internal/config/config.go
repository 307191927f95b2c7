// Package config holds the small set of constants shared across the
// compiler front end: recognized source extensions and the version
// string, following funxy's internal/config shape (a constants file,
// not a framework).
package config

// Version is the current timu front-end version. Set at build time
// via -ldflags "-X github.com/timu-lang/timu/internal/config.Version=...".
var Version = "0.1.0"

// SourceFileExt is the canonical source file extension.
const SourceFileExt = ".timu"

// SourceFileExtensions are every recognized source file extension a
// project loader accepts.
var SourceFileExtensions = []string{".timu"}

// ManifestFileName is the project manifest pkg/project looks for.
const ManifestFileName = "timu.yaml"

// HasSourceExt reports whether path ends in a recognized source
// extension.
func HasSourceExt(path string) bool {
	for _, ext := range SourceFileExtensions {
		if len(path) >= len(ext) && path[len(path)-len(ext):] == ext {
			return true
		}
	}
	return false
}

// TrimSourceExt removes a recognized source extension from name, or
// returns name unchanged if none matches.
func TrimSourceExt(name string) string {
	for _, ext := range SourceFileExtensions {
		if len(name) >= len(ext) && name[len(name)-len(ext):] == ext {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}
