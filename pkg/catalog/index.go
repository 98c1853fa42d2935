package catalog

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/Deps-Tech/deps-registry/pkg/cache"
	"github.com/Deps-Tech/deps-registry/pkg/httputil"
	"github.com/Deps-Tech/deps-registry/pkg/manifest"
	"github.com/Deps-Tech/deps-registry/pkg/versioning"
)

const (
	// DefaultIndexURL is the public registry CDN.
	DefaultIndexURL = "https://cdn.depscian.tech"
	// IndexPath is the index document below the CDN root.
	IndexPath = "/index.json"
	// DefaultTTL is how long a fetched index is reused.
	DefaultTTL = 5 * time.Minute
)

// Index is the CDN index document.
type Index struct {
	Version      string                   `json:"version"`
	LastUpdated  time.Time                `json:"lastUpdated"`
	Dependencies map[string]*IndexPackage `json:"dependencies"`
	Scripts      map[string]*IndexPackage `json:"scripts"`
}

// IndexPackage lists the published versions of one package.
type IndexPackage struct {
	Latest   string                   `json:"latest"`
	Versions map[string]*IndexVersion `json:"versions"`
}

// IndexVersion describes one published version.
type IndexVersion struct {
	URL      string             `json:"url"`
	SHA256   string             `json:"sha256"`
	Size     int64              `json:"size"`
	Manifest *manifest.Manifest `json:"manifest,omitempty"`
}

// LatestVersion returns Latest, or the newest version key when Latest is
// not set.
func (p *IndexPackage) LatestVersion() string {
	if p.Latest != "" {
		return p.Latest
	}
	versions := make([]string, 0, len(p.Versions))
	for v := range p.Versions {
		versions = append(versions, v)
	}
	return versioning.Latest(versions)
}

// PackageInfo summarizes a package for listings.
type PackageInfo struct {
	ID           string             `json:"id"`
	Name         string             `json:"name,omitempty"`
	Latest       string             `json:"latestVersion"`
	Versions     []string           `json:"versions"`
	Tags         []string           `json:"tags,omitempty"`
	Dependencies []string           `json:"dependencies,omitempty"`
	Security     *manifest.Security `json:"security,omitempty"`
}

// Packages lists the packages of one kind ("deps" or "scripts"), newest
// versions first, sorted by id. Packages without a latest manifest are
// listed with their versions only.
func (idx *Index) Packages(kind string) []PackageInfo {
	src := idx.Dependencies
	if kind == "scripts" {
		src = idx.Scripts
	}

	out := make([]PackageInfo, 0, len(src))
	for id, pkg := range src {
		if pkg == nil {
			continue
		}
		versions := make([]string, 0, len(pkg.Versions))
		for v := range pkg.Versions {
			versions = append(versions, v)
		}
		versions = versioning.Sort(versions)
		slices.Reverse(versions)

		info := PackageInfo{ID: id, Name: id, Latest: pkg.LatestVersion(), Versions: versions}
		if v := pkg.Versions[info.Latest]; v != nil && v.Manifest != nil {
			m := v.Manifest
			if m.Name != "" {
				info.Name = m.Name
			}
			if m.Metadata != nil {
				info.Tags = m.Metadata.Tags
			}
			info.Dependencies = m.DependencyIDs()
			info.Security = m.Security
		}
		out = append(out, info)
	}
	slices.SortFunc(out, func(a, b PackageInfo) int { return strings.Compare(a.ID, b.ID) })
	return out
}

// Snapshot converts the dependency section of the index into a catalog
// snapshot. Scripts are not dependencies and are left out.
func (idx *Index) Snapshot() *Snapshot {
	versions := make(map[string]string, len(idx.Dependencies))
	provides := make(map[string][]string)
	for id, pkg := range idx.Dependencies {
		if pkg == nil {
			continue
		}
		latest := pkg.LatestVersion()
		versions[id] = latest
		if v := pkg.Versions[latest]; v != nil && v.Manifest != nil && len(v.Manifest.Provides) > 0 {
			provides[id] = v.Manifest.Provides
		}
	}
	return New(versions, provides)
}

// IndexProvider reads the catalog from a CDN index.json.
type IndexProvider struct {
	client  *httputil.Client
	url     string
	refresh bool
}

// NewIndexProvider creates a provider for the index under baseURL
// (DefaultIndexURL if empty). Responses are cached in c for ttl.
func NewIndexProvider(baseURL string, c cache.Cache, ttl time.Duration) *IndexProvider {
	if baseURL == "" {
		baseURL = DefaultIndexURL
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &IndexProvider{
		client: httputil.NewClient(c, "catalog:", ttl, nil),
		url:    strings.TrimSuffix(baseURL, "/") + IndexPath,
	}
}

// WithRefresh bypasses the cache on the next fetches.
func (p *IndexProvider) WithRefresh(refresh bool) *IndexProvider {
	p.refresh = refresh
	return p
}

// Client exposes the HTTP client, e.g. to install a test transport.
func (p *IndexProvider) Client() *httputil.Client {
	return p.client
}

// URL returns the index document URL.
func (p *IndexProvider) URL() string {
	return p.url
}

// Fetch downloads (or loads from cache) the index.
func (p *IndexProvider) Fetch(ctx context.Context) (*Index, error) {
	var idx Index
	err := p.client.Cached(ctx, p.url, p.refresh, &idx, func() error {
		return p.client.Get(ctx, p.url, &idx)
	})
	if err != nil {
		return nil, err
	}
	for _, section := range []map[string]*IndexPackage{idx.Dependencies, idx.Scripts} {
		for _, pkg := range section {
			if pkg == nil {
				continue
			}
			for _, v := range pkg.Versions {
				if v != nil && v.Manifest != nil {
					v.Manifest.Normalize()
				}
			}
		}
	}
	return &idx, nil
}

// Snapshot implements Provider.
func (p *IndexProvider) Snapshot(ctx context.Context) (*Snapshot, error) {
	idx, err := p.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return idx.Snapshot(), nil
}
