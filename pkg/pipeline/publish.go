package pipeline

import (
	"context"

	"github.com/Deps-Tech/deps-registry/pkg/manifest"
	"github.com/Deps-Tech/deps-registry/pkg/registry"
)

// Publisher receives built package versions.
type Publisher interface {
	Publish(ctx context.Context, res *Result) error
}

// PublisherFunc adapts a function to Publisher.
type PublisherFunc func(ctx context.Context, res *Result) error

// Publish calls f.
func (f PublisherFunc) Publish(ctx context.Context, res *Result) error { return f(ctx, res) }

// RegistrySink writes results into a local registry tree.
type RegistrySink struct {
	Registry *registry.Registry
	Force    bool
}

// Publish writes the files and dep.json of res.
func (s RegistrySink) Publish(ctx context.Context, res *Result) error {
	_, err := s.Registry.Publish(ctx, res.Type, res.Manifest, res.Files, registry.PublishOptions{Force: s.Force})
	return err
}

// ManifestStore is an index that records manifests without their files,
// such as store.MongoStore.
type ManifestStore interface {
	Put(ctx context.Context, t registry.Type, m *manifest.Manifest) error
}

// StoreSink records results in a ManifestStore.
type StoreSink struct {
	Store ManifestStore
}

// Publish stores the manifest of res.
func (s StoreSink) Publish(ctx context.Context, res *Result) error {
	return s.Store.Put(ctx, res.Type, res.Manifest)
}
