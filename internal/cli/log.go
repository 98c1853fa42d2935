// Package cli implements the depsreg command-line interface.
//
// The commands cover the ingestion workflow of the registry:
//   - analyze: print detected metadata, dependencies and security flags
//   - manifest: build a dep.json for a set of Lua files
//   - publish: build and write a package version into the registry tree
//   - validate: verify every published version, cycles and duplicates
//   - catalog: list the ids and versions dependencies resolve against
//   - graph: export the registry dependency graph as DOT, SVG or JSON
//   - index: pack published versions and write the CDN index.json
//   - serve: run the HTTP ingestion API
//   - cache: manage the catalog response cache
//
// Data goes to stdout, logs and status lines to stderr. --verbose (-v)
// switches the logger to debug level and reports cache and HTTP activity.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger writing timestamped entries ("15:04:05.00")
// to w at level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs how long an operation took. It is meant for a single
// goroutine.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Built manifest (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached by withLogger, or
// log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
