// Package project loads a timu.yaml project manifest: a yaml.v3-backed
// mapping from dotted module paths to the source directories that
// populate them, the same mechanism funxy's builtins_yaml.go uses to
// decode structured YAML, applied here to host-side project
// configuration instead of an in-language library call.
package project

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/timu-lang/timu/internal/config"
)

// Manifest is the decoded form of timu.yaml.
type Manifest struct {
	// Module is the manifest's own name, informational only.
	Module string `yaml:"module"`
	// Sources maps a dotted module path prefix to the directory whose
	// *.timu files populate it, e.g. "app.models" -> "src/models".
	Sources map[string]string `yaml:"sources"`

	dir string // directory timu.yaml was loaded from, for resolving relative Sources entries
}

// Load reads and decodes the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("project: reading %s: %w", path, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("project: parsing %s: %w", path, err)
	}
	m.dir = filepath.Dir(path)
	return &m, nil
}

// SourceFile is one file the manifest resolved: its dotted module
// path segments and its text, the same pair shape timu.Source carries
// into timu.Parse (§6).
type SourceFile struct {
	Segments []string
	Path     string // filesystem path, for error reporting
	Text     string
}

// Files walks every configured source directory and returns every
// recognized source file found, in deterministic (sorted) order so a
// host using this loader gets the order-invariant build property
// (§8) regardless of the OS's directory iteration order.
func (m *Manifest) Files() ([]SourceFile, error) {
	var out []SourceFile
	prefixes := make([]string, 0, len(m.Sources))
	for prefix := range m.Sources {
		prefixes = append(prefixes, prefix)
	}
	sort.Strings(prefixes)

	for _, prefix := range prefixes {
		dir := m.Sources[prefix]
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(m.dir, dir)
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("project: reading source dir %s (for %q): %w", dir, prefix, err)
		}
		var names []string
		for _, e := range entries {
			if e.IsDir() || !config.HasSourceExt(e.Name()) {
				continue
			}
			names = append(names, e.Name())
		}
		sort.Strings(names)

		for _, name := range names {
			full := filepath.Join(dir, name)
			text, err := os.ReadFile(full)
			if err != nil {
				return nil, fmt.Errorf("project: reading %s: %w", full, err)
			}
			segments := append(strings.Split(prefix, "."), config.TrimSourceExt(name))
			out = append(out, SourceFile{Segments: segments, Path: full, Text: string(text)})
		}
	}
	return out, nil
}
