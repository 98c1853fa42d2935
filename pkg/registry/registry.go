package registry

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/Deps-Tech/deps-registry/pkg/analysis"
	"github.com/Deps-Tech/deps-registry/pkg/errors"
	"github.com/Deps-Tech/deps-registry/pkg/manifest"
	"github.com/Deps-Tech/deps-registry/pkg/versioning"
)

// Type is a package type, which is also the top-level directory name.
type Type string

const (
	// Scripts are end-user scripts. They are never dependencies.
	Scripts Type = "scripts"
	// Deps are libraries other packages depend on.
	Deps Type = "deps"
)

// Types lists all package types in directory order.
var Types = []Type{Deps, Scripts}

// ParseType converts a user-supplied package type.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case Scripts, Deps:
		return Type(s), nil
	case "":
		return Scripts, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown package type %q (want scripts or deps)", s)
}

// ErrExists is returned by Publish when the version is already published.
var ErrExists = stderrors.New("version already published")

// Registry is a registry tree rooted at a directory.
type Registry struct {
	root   string
	logger *log.Logger
}

// New returns a registry rooted at root. A nil logger discards output.
func New(root string, logger *log.Logger) *Registry {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Registry{root: root, logger: logger}
}

// Root returns the registry directory.
func (r *Registry) Root() string { return r.root }

// Dir returns the directory of one package version.
func (r *Registry) Dir(t Type, id, version string) string {
	return filepath.Join(r.root, string(t), id, version)
}

// Entry is one published package version.
type Entry struct {
	Type     Type
	ID       string
	Version  string
	Dir      string
	Manifest *manifest.Manifest
}

// Key returns "{type}/{id}/{version}".
func (e Entry) Key() string {
	return fmt.Sprintf("%s/%s/%s", e.Type, e.ID, e.Version)
}

// PublishOptions controls Publish.
type PublishOptions struct {
	// Force replaces an existing version.
	Force bool
}

// Publish writes files and dep.json under {type}/{id}/{version}/. The id and
// version must be path-safe and every file name must be a relative path.
func (r *Registry) Publish(ctx context.Context, t Type, m *manifest.Manifest, files []analysis.SourceFile, opts PublishOptions) (Entry, error) {
	if err := errors.ValidatePackageID(m.ID); err != nil {
		return Entry{}, err
	}
	if err := errors.ValidateVersion(m.Version); err != nil {
		return Entry{}, err
	}
	for _, f := range files {
		if err := errors.ValidatePath(f.Name); err != nil {
			return Entry{}, fmt.Errorf("%s: %w", f.Name, err)
		}
	}

	dir := r.Dir(t, m.ID, m.Version)
	if _, err := os.Stat(dir); err == nil {
		if !opts.Force {
			return Entry{}, fmt.Errorf("%s/%s/%s: %w", t, m.ID, m.Version, ErrExists)
		}
		if err := os.RemoveAll(dir); err != nil {
			return Entry{}, fmt.Errorf("remove %s: %w", dir, err)
		}
	}

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return Entry{}, err
		}
		path := filepath.Join(dir, filepath.FromSlash(f.Name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return Entry{}, fmt.Errorf("create %s: %w", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(f.Content), 0644); err != nil {
			return Entry{}, fmt.Errorf("write %s: %w", path, err)
		}
	}
	if err := manifest.Save(dir, m); err != nil {
		return Entry{}, fmt.Errorf("write manifest: %w", err)
	}

	r.logger.Info("published", "type", t, "id", m.ID, "version", m.Version, "files", len(files))
	return Entry{Type: t, ID: m.ID, Version: m.Version, Dir: dir, Manifest: m}, nil
}

// Walk returns every published version of type t, sorted by id and then by
// version ascending. Version directories without a readable dep.json are
// logged and skipped.
func (r *Registry) Walk(t Type) ([]Entry, error) {
	base := filepath.Join(r.root, string(t))
	ids, err := os.ReadDir(base)
	if stderrors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", base, err)
	}

	var entries []Entry
	for _, id := range ids {
		if !id.IsDir() {
			continue
		}
		versions, err := os.ReadDir(filepath.Join(base, id.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", id.Name(), err)
		}
		var names []string
		for _, v := range versions {
			if v.IsDir() {
				names = append(names, v.Name())
			}
		}
		for _, v := range versioning.Sort(names) {
			dir := filepath.Join(base, id.Name(), v)
			m, err := manifest.Load(dir)
			if err != nil {
				r.logger.Warn("skipping version", "path", dir, "err", err)
				continue
			}
			entries = append(entries, Entry{Type: t, ID: id.Name(), Version: v, Dir: dir, Manifest: m})
		}
	}
	return entries, nil
}

// WalkAll walks every package type.
func (r *Registry) WalkAll() ([]Entry, error) {
	var all []Entry
	for _, t := range Types {
		entries, err := r.Walk(t)
		if err != nil {
			return nil, err
		}
		all = append(all, entries...)
	}
	return all, nil
}

// Latest returns the newest version of each package of type t, sorted by id.
func (r *Registry) Latest(t Type) ([]Entry, error) {
	entries, err := r.Walk(t)
	if err != nil {
		return nil, err
	}
	return latest(entries), nil
}

func latest(entries []Entry) []Entry {
	byID := make(map[string]Entry)
	for _, e := range entries {
		cur, ok := byID[e.ID]
		if !ok || versioning.IsNewer(e.Version, cur.Version) {
			byID[e.ID] = e
		}
	}
	out := make([]Entry, 0, len(byID))
	for _, e := range byID {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
