package registry

import (
	"archive/zip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Deps-Tech/deps-registry/pkg/catalog"
	"github.com/Deps-Tech/deps-registry/pkg/manifest"
	"github.com/Deps-Tech/deps-registry/pkg/versioning"
)

// IndexVersion is the index document format version written by Dist.
const IndexVersion = "1.0"

// archiveTime is stamped on every archive member so archives of the same
// files are byte-identical.
var archiveTime = time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)

// ArchiveName returns "{id}-{version}.zip".
func ArchiveName(e Entry) string {
	return e.ID + "-" + e.Version + ".zip"
}

// Pack writes e as a zip archive of its listed files followed by dep.json.
func (r *Registry) Pack(e Entry, w io.Writer) error {
	m := e.Manifest
	if m == nil {
		var err error
		if m, err = manifest.Load(e.Dir); err != nil {
			return err
		}
	}

	zw := zip.NewWriter(w)
	for _, name := range m.FileNames() {
		data, err := os.ReadFile(filepath.Join(e.Dir, filepath.FromSlash(name)))
		if err != nil {
			return fmt.Errorf("pack %s: %w", e.Key(), err)
		}
		if err := addMember(zw, name, data); err != nil {
			return err
		}
	}
	doc, err := manifest.Encode(m)
	if err != nil {
		return err
	}
	if err := addMember(zw, manifest.FileName, doc); err != nil {
		return err
	}
	return zw.Close()
}

func addMember(zw *zip.Writer, name string, data []byte) error {
	fw, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate, Modified: archiveTime})
	if err != nil {
		return fmt.Errorf("add %s: %w", name, err)
	}
	_, err = fw.Write(data)
	return err
}

// Dist packs every published version into dir/{type}/{id}-{version}.zip and
// writes dir/index.json describing them. Archive URLs are baseURL joined
// with the archive's path below dir.
func (r *Registry) Dist(ctx context.Context, dir, baseURL string, now time.Time) (*catalog.Index, error) {
	idx := &catalog.Index{
		Version:      IndexVersion,
		LastUpdated:  now.UTC().Truncate(time.Second),
		Dependencies: map[string]*catalog.IndexPackage{},
		Scripts:      map[string]*catalog.IndexPackage{},
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	for _, t := range Types {
		section := idx.Dependencies
		if t == Scripts {
			section = idx.Scripts
		}
		entries, err := r.Walk(t)
		if err != nil {
			return nil, err
		}
		if len(entries) > 0 {
			if err := os.MkdirAll(filepath.Join(dir, string(t)), 0o755); err != nil {
				return nil, err
			}
		}

		for _, e := range entries {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			rel := string(t) + "/" + ArchiveName(e)
			sum, size, err := r.packFile(e, filepath.Join(dir, filepath.FromSlash(rel)))
			if err != nil {
				return nil, err
			}

			pkg := section[e.ID]
			if pkg == nil {
				pkg = &catalog.IndexPackage{Versions: map[string]*catalog.IndexVersion{}}
				section[e.ID] = pkg
			}
			pkg.Versions[e.Version] = &catalog.IndexVersion{
				URL:      baseURL + "/" + rel,
				SHA256:   sum,
				Size:     size,
				Manifest: e.Manifest,
			}
		}
	}

	for _, section := range []map[string]*catalog.IndexPackage{idx.Dependencies, idx.Scripts} {
		for _, pkg := range section {
			versions := make([]string, 0, len(pkg.Versions))
			for v := range pkg.Versions {
				versions = append(versions, v)
			}
			pkg.Latest = versioning.Latest(versions)
		}
	}

	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(filepath.Join(dir, "index.json"), append(data, '\n'), 0o644); err != nil {
		return nil, err
	}
	r.logger.Info("wrote index", "dir", dir,
		"deps", len(idx.Dependencies), "scripts", len(idx.Scripts))
	return idx, nil
}

// packFile writes the archive of e to path and returns its sha256 and size.
func (r *Registry) packFile(e Entry, path string) (string, int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return "", 0, err
	}
	h := sha256.New()
	cw := &countingWriter{w: io.MultiWriter(f, h)}
	if err := r.Pack(e, cw); err != nil {
		f.Close()
		return "", 0, err
	}
	if err := f.Close(); err != nil {
		return "", 0, err
	}
	return hex.EncodeToString(h.Sum(nil)), cw.n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
