package cli

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Deps-Tech/deps-registry/internal/config"
	"github.com/Deps-Tech/deps-registry/pkg/cache"
)

func TestCachePath(t *testing.T) {
	env := newTestEnv(t)
	home := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", home)

	out, _, err := env.run("cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(home, "depsreg"); strings.TrimSpace(out) != want {
		t.Errorf("cache path = %q, want %q", out, want)
	}
}

func TestCacheClear(t *testing.T) {
	env := newTestEnv(t)
	home := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", home)

	fc, err := cache.NewFileCache(filepath.Join(home, "depsreg"))
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	for _, k := range []string{"a", "b"} {
		if err := fc.Set(ctx, k, []byte("{}"), time.Hour); err != nil {
			t.Fatal(err)
		}
	}

	if _, _, err := env.run("cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if _, ok, _ := fc.Get(ctx, "a"); ok {
		t.Error("entry survived cache clear")
	}
}

func TestCacheClearEmpty(t *testing.T) {
	env := newTestEnv(t)
	t.Setenv("XDG_CACHE_HOME", filepath.Join(t.TempDir(), "absent"))

	_, stderr, err := env.run("cache", "clear")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stderr, "Cache is empty") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestNewCacheDisabled(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.cfg = (&config.Config{Cache: config.CacheConfig{Disabled: true}}).WithDefaults()
	if _, ok := c.newCache(context.Background()).(*cache.NullCache); !ok {
		t.Error("disabled cache should be a NullCache")
	}
}

func TestNewCacheFileFallback(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.cfg = (&config.Config{Cache: config.CacheConfig{Dir: t.TempDir()}}).WithDefaults()
	if _, ok := c.newCache(context.Background()).(*cache.FileCache); !ok {
		t.Error("default cache should be a FileCache")
	}
}
