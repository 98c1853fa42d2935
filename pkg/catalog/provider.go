package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
)

// Provider produces catalog snapshots.
type Provider interface {
	Snapshot(ctx context.Context) (*Snapshot, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context) (*Snapshot, error)

// Snapshot calls f.
func (f ProviderFunc) Snapshot(ctx context.Context) (*Snapshot, error) { return f(ctx) }

// Static always returns the same snapshot.
type Static struct {
	snap *Snapshot
}

// NewStatic returns a provider for a fixed id -> version map.
func NewStatic(versions map[string]string) *Static {
	return &Static{snap: New(versions, nil)}
}

// Snapshot returns the fixed snapshot.
func (s *Static) Snapshot(context.Context) (*Snapshot, error) {
	return s.snap, nil
}

// Multi merges the snapshots of several providers. Providers that fail are
// skipped; Multi fails only when all of them do.
type Multi []Provider

// Snapshot queries each provider in order.
func (m Multi) Snapshot(ctx context.Context) (*Snapshot, error) {
	var snaps []*Snapshot
	var errs []error
	for _, p := range m {
		s, err := p.Snapshot(ctx)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		snaps = append(snaps, s)
	}
	if len(snaps) == 0 && len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return Merge(snaps...), nil
}

// Load takes a snapshot from p. A nil provider or a provider error yields
// an empty snapshot; the error is logged as a warning and not returned.
func Load(ctx context.Context, p Provider, logger *log.Logger) *Snapshot {
	if logger == nil {
		logger = log.Default()
	}
	if p == nil {
		logger.Debug("no catalog provider configured")
		return Empty()
	}

	start := time.Now()
	snap, err := p.Snapshot(ctx)
	if err != nil {
		logger.Warn("catalog unavailable, dependencies will not resolve", "err", err)
		return Empty()
	}
	if snap == nil {
		snap = Empty()
	}
	logger.Debug("loaded catalog", "packages", snap.Len(), "duration", time.Since(start))
	return snap
}
