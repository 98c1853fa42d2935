package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by writing debug-level entries
// to Logger.
type LogHooks struct {
	Logger *log.Logger
}

func (h LogHooks) OnAnalyzeStart(_ context.Context, files int) {
	h.Logger.Debug("analyze start", "files", files)
}

func (h LogHooks) OnAnalyzeComplete(_ context.Context, id string, deps, unresolved int, d time.Duration) {
	h.Logger.Debug("analyze done", "id", id, "deps", deps, "unresolved", unresolved, "took", d)
}

func (h LogHooks) OnBuildComplete(_ context.Context, id, version string, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("build failed", "id", id, "err", err)
		return
	}
	h.Logger.Debug("build done", "id", id, "version", version, "took", d)
}

func (h LogHooks) OnPublish(_ context.Context, key string, err error) {
	if err != nil {
		h.Logger.Debug("publish failed", "key", key, "err", err)
		return
	}
	h.Logger.Debug("publish done", "key", key)
}

func (h LogHooks) OnCacheHit(_ context.Context, key string) {
	h.Logger.Debug("cache hit", "key", key)
}

func (h LogHooks) OnCacheMiss(_ context.Context, key string) {
	h.Logger.Debug("cache miss", "key", key)
}

func (h LogHooks) OnCacheSet(_ context.Context, key string, size int) {
	h.Logger.Debug("cache set", "key", key, "bytes", size)
}

func (h LogHooks) OnRequest(_ context.Context, method, host, path string) {
	h.Logger.Debug("http request", "method", method, "host", host, "path", path)
}

func (h LogHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.Logger.Debug("http response", "method", method, "host", host, "path", path, "status", status, "took", d)
}

func (h LogHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.Logger.Debug("http error", "method", method, "host", host, "path", path, "err", err)
}

var (
	_ PipelineHooks = LogHooks{}
	_ CacheHooks    = LogHooks{}
	_ HTTPHooks     = LogHooks{}
)
