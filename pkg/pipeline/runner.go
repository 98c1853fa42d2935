package pipeline

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Deps-Tech/deps-registry/pkg/analysis"
	"github.com/Deps-Tech/deps-registry/pkg/catalog"
	"github.com/Deps-Tech/deps-registry/pkg/errors"
	"github.com/Deps-Tech/deps-registry/pkg/manifest"
	"github.com/Deps-Tech/deps-registry/pkg/observability"
	"github.com/Deps-Tech/deps-registry/pkg/registry"
)

// Runner executes ingestion against a catalog. It holds no per-request
// state and is safe for concurrent use.
type Runner struct {
	Catalog catalog.Provider
	Logger  *log.Logger
	// Builtins overrides analysis.Builtins when set.
	Builtins map[string]bool
}

// NewRunner creates a runner. A nil provider resolves nothing and a nil
// logger discards output.
func NewRunner(p catalog.Provider, logger *log.Logger) *Runner {
	if p == nil {
		p = catalog.NewStatic(nil)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{Catalog: p, Logger: logger}
}

// Snapshot loads the catalog. Provider failures degrade to an empty catalog.
func (r *Runner) Snapshot(ctx context.Context) *catalog.Snapshot {
	return catalog.Load(ctx, r.Catalog, r.Logger)
}

// Analyze runs metadata extraction and scanning. Only the first file is
// scanned unless scanAll is set.
func (r *Runner) Analyze(ctx context.Context, files []analysis.SourceFile, scanAll bool) (*analysis.Result, error) {
	return r.analyze(ctx, files, scanAll, r.Snapshot(ctx))
}

func (r *Runner) analyze(ctx context.Context, files []analysis.SourceFile, scanAll bool, snap *catalog.Snapshot) (*analysis.Result, error) {
	if len(files) == 0 {
		return nil, errors.Missing("files")
	}
	hooks := observability.Pipeline()
	hooks.OnAnalyzeStart(ctx, len(files))
	start := time.Now()

	scanned := files[:1]
	if scanAll {
		scanned = files
	}
	res := analysis.AnalyzeAll(scanned, snap, analysis.Options{Builtins: r.Builtins, Aliases: snap.Aliases()})

	hooks.OnAnalyzeComplete(ctx, res.Metadata.ID, len(res.Dependencies), len(res.Unresolved), time.Since(start))
	r.Logger.Info("analyzed",
		"id", res.Metadata.ID,
		"files", len(files),
		"deps", len(res.Dependencies),
		"unresolved", len(res.Unresolved))
	for _, w := range res.Warnings {
		r.Logger.Debug("dynamic require", "file", w.File, "line", w.Line, "kind", w.Kind)
	}
	return &res, nil
}

// Build analyzes req (unless it carries overrides) and builds the manifest.
// Validation failures are returned as *errors.ValidationError; a manifest
// that does not match the schema fails with errors.ErrCodeInvalidManifest.
func (r *Runner) Build(ctx context.Context, req Request) (*Result, error) {
	if len(req.Files) == 0 {
		return nil, errors.Missing("files")
	}
	typ := req.Type
	if typ == "" {
		typ = registry.Scripts
	}

	start := time.Now()
	snap := r.Snapshot(ctx)

	bundle := manifest.Bundle{
		Provides:   req.Provides,
		Tags:       req.Tags,
		SourceURL:  req.SourceURL,
		Deprecated: req.Deprecated,
	}
	out := &Result{Type: typ, Files: req.Files}

	if o := req.Overrides; o != nil {
		bundle.ID = analysis.DeriveID(o.ID)
		bundle.Name = o.Name
		bundle.Version = strings.TrimSpace(o.Version)
		bundle.Dependencies = normalizeIDs(o.Dependencies)
		if o.Security != nil {
			bundle.Security = *o.Security
		}
		out.Author = o.Author
		r.Logger.Debug("using metadata overrides", "id", bundle.ID)
	} else {
		res, err := r.analyze(ctx, req.Files, req.ScanAll, snap)
		if err != nil {
			return nil, err
		}
		bundle.ID = res.Metadata.ID
		bundle.Name = res.Metadata.Name
		bundle.Version = res.Metadata.Version
		bundle.Dependencies = res.Dependencies
		bundle.Security = res.Security
		out.Author = res.Metadata.Author
		out.Analysis = res
	}

	m, err := manifest.Build(req.Files, bundle, snap)
	if err == nil {
		err = manifest.ValidateManifest(m)
	}
	observability.Pipeline().OnBuildComplete(ctx, bundle.ID, bundle.Version, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	if dropped := len(bundle.Dependencies) - len(m.Dependencies); dropped > 0 {
		r.Logger.Warn("dependencies without a catalog version were left out", "id", m.ID, "count", dropped)
	}
	r.Logger.Info("built manifest", "id", m.ID, "version", m.Version, "files", len(m.Files), "deps", len(m.Dependencies))

	out.Manifest = m
	return out, nil
}

// Publish hands res to every sink in order and stops at the first failure.
func (r *Runner) Publish(ctx context.Context, res *Result, sinks ...Publisher) error {
	key := fmt.Sprintf("%s/%s/%s", res.Type, res.Manifest.ID, res.Manifest.Version)
	for _, s := range sinks {
		err := s.Publish(ctx, res)
		observability.Pipeline().OnPublish(ctx, key, err)
		if err != nil {
			return fmt.Errorf("publish %s: %w", key, err)
		}
	}
	return nil
}

func normalizeIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	var out []string
	for _, id := range ids {
		id = strings.ToLower(strings.TrimSpace(id))
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
