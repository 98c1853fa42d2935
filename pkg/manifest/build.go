package manifest

import (
	"crypto/sha256"
	"encoding/hex"
	"runtime"
	"slices"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/Deps-Tech/deps-registry/pkg/analysis"
	"github.com/Deps-Tech/deps-registry/pkg/errors"
)

// Versions looks up the latest catalog version of a package id.
type Versions interface {
	Version(id string) (string, bool)
}

// VersionMap is a Versions backed by a map.
type VersionMap map[string]string

// Version returns the version of id if it is pinned.
func (m VersionMap) Version(id string) (string, bool) {
	v, ok := m[id]
	return v, ok && v != ""
}

// Bundle is everything about a package version except its file contents.
type Bundle struct {
	ID      string
	Name    string
	Version string
	// Provides lists module paths the package exposes, if declared.
	Provides []string
	// Dependencies are resolved catalog ids.
	Dependencies []string
	Security     analysis.Security
	Tags         []string
	SourceURL    string
	Deprecated   bool
}

// Digest returns the SHA-256 digest and byte size of content.
func Digest(content string) FileInfo {
	sum := sha256.Sum256([]byte(content))
	return FileInfo{
		SHA256: hex.EncodeToString(sum[:]),
		Size:   int64(len(content)),
	}
}

// Build assembles the manifest for files and b. Dependencies missing from
// versions are left out. It returns a *errors.ValidationError naming the
// field when files is empty or the id or version is blank.
func Build(files []analysis.SourceFile, b Bundle, versions Versions) (*Manifest, error) {
	switch {
	case len(files) == 0:
		return nil, errors.Missing("files")
	case b.ID == "":
		return nil, errors.Missing("id")
	case b.Version == "":
		return nil, errors.Missing("version")
	}

	m := &Manifest{
		ManifestVersion: SchemaVersion,
		ID:              b.ID,
		Name:            b.Name,
		Version:         b.Version,
		Files:           digestAll(files),
	}
	if len(b.Provides) > 0 {
		m.Provides = slices.Clone(b.Provides)
	}

	if versions != nil {
		for _, id := range b.Dependencies {
			if v, ok := versions.Version(id); ok {
				if m.Dependencies == nil {
					m.Dependencies = make(map[string]string)
				}
				m.Dependencies[id] = v
			}
		}
	}

	sec := &Security{
		NetworkAccess: b.Security.UsesNetwork,
		UsesFFI:       b.Security.UsesFFI,
	}
	if len(b.Security.FilePaths) > 0 {
		sec.FileAccess = slices.Clone(b.Security.FilePaths)
	}
	if !sec.empty() {
		m.Security = sec
	}

	meta := &Metadata{SourceURL: b.SourceURL, Deprecated: b.Deprecated}
	if len(b.Tags) > 0 {
		meta.Tags = slices.Clone(b.Tags)
	}
	if !meta.empty() {
		m.Metadata = meta
	}
	return m, nil
}

// digestAll hashes files in parallel. Entries are keyed by the name exactly
// as given; when two files share a name the later one wins.
func digestAll(files []analysis.SourceFile) map[string]FileInfo {
	infos := make([]FileInfo, len(files))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range files {
		g.Go(func() error {
			infos[i] = Digest(files[i].Content)
			return nil
		})
	}
	_ = g.Wait()

	out := make(map[string]FileInfo, len(files))
	for i, f := range files {
		out[f.Name] = infos[i]
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
