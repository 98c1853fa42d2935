package registry

import (
	"context"

	"github.com/Deps-Tech/deps-registry/pkg/catalog"
)

// Snapshot builds a catalog from the latest version of every deps package.
// Module paths listed in a manifest's provides become aliases of its id.
// It implements catalog.Provider.
func (r *Registry) Snapshot(ctx context.Context) (*catalog.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := r.Latest(Deps)
	if err != nil {
		return nil, err
	}

	versions := make(map[string]string, len(entries))
	provides := make(map[string][]string)
	for _, e := range entries {
		versions[e.ID] = e.Version
		if len(e.Manifest.Provides) > 0 {
			provides[e.ID] = e.Manifest.Provides
		}
	}
	r.logger.Debug("registry catalog", "root", r.root, "packages", len(versions))
	return catalog.New(versions, provides), nil
}
