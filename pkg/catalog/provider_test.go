package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Deps-Tech/deps-registry/pkg/cache"
)

const indexJSON = `{
  "version": "1",
  "lastUpdated": "2025-01-02T03:04:05Z",
  "dependencies": {
    "mathutils": {
      "latest": "3.0.0",
      "versions": {
        "2.0.0": {"url": "https://cdn/deps/mathutils/2.0.0", "sha256": "", "size": 1},
        "3.0.0": {"url": "https://cdn/deps/mathutils/3.0.0", "sha256": "", "size": 1,
          "manifest": {"manifestVersion": "1.0", "id": "mathutils", "name": "Math Utils", "version": "3.0.0",
            "provides": ["mathutils.vec"], "files": {}, "security": {}, "metadata": {"tags": ["math"]}}}
      }
    },
    "nolatest": {
      "versions": {"1.2.0": {"url": ""}, "1.10.0": {"url": ""}}
    }
  },
  "scripts": {
    "helper": {"latest": "1.0.0", "versions": {"1.0.0": {"url": ""}}}
  }
}`

func TestIndexProvider(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != IndexPath {
			t.Errorf("path = %s, want %s", r.URL.Path, IndexPath)
		}
		w.Write([]byte(indexJSON))
	}))
	defer srv.Close()

	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	p := NewIndexProvider(srv.URL+"/", fc, time.Minute)
	p.Client().WithHTTPClient(srv.Client())

	snap, err := p.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	want := map[string]string{"mathutils": "3.0.0", "nolatest": "1.10.0"}
	if got := snap.Versions(); !reflect.DeepEqual(got, want) {
		t.Errorf("Versions = %v, want %v", got, want)
	}
	if snap.Has("helper") {
		t.Error("scripts must not be part of the dependency catalog")
	}
	if snap.Aliases()["mathutils.vec"] != "mathutils" {
		t.Error("provides should become aliases")
	}

	if _, err := p.Snapshot(context.Background()); err != nil {
		t.Fatal(err)
	}
	if hits.Load() != 1 {
		t.Errorf("second snapshot should come from cache, hits = %d", hits.Load())
	}
}

func TestIndexPackages(t *testing.T) {
	var idx Index
	if err := json.Unmarshal([]byte(indexJSON), &idx); err != nil {
		t.Fatal(err)
	}
	deps := idx.Packages("deps")
	if len(deps) != 2 || deps[0].ID != "mathutils" || deps[1].ID != "nolatest" {
		t.Fatalf("Packages(deps) = %+v", deps)
	}
	m := deps[0]
	if m.Name != "Math Utils" || m.Latest != "3.0.0" {
		t.Errorf("mathutils info = %+v", m)
	}
	if !reflect.DeepEqual(m.Versions, []string{"3.0.0", "2.0.0"}) {
		t.Errorf("Versions = %v, want newest first", m.Versions)
	}
	if !reflect.DeepEqual(m.Tags, []string{"math"}) {
		t.Errorf("Tags = %v", m.Tags)
	}

	scripts := idx.Packages("scripts")
	if len(scripts) != 1 || scripts[0].ID != "helper" {
		t.Errorf("Packages(scripts) = %+v", scripts)
	}
}

func TestLoadDegradesToEmpty(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)

	failing := ProviderFunc(func(context.Context) (*Snapshot, error) {
		return nil, errors.New("cdn down")
	})
	snap := Load(context.Background(), failing, logger)
	if snap == nil || snap.Len() != 0 {
		t.Errorf("Load on failure = %v, want empty snapshot", snap)
	}
	if !strings.Contains(buf.String(), "cdn down") {
		t.Errorf("expected warning in log, got %q", buf.String())
	}

	if snap := Load(context.Background(), nil, logger); snap.Len() != 0 {
		t.Error("nil provider should yield an empty snapshot")
	}
}

func TestLoadNotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	p := NewIndexProvider(srv.URL, nil, time.Minute)
	p.Client().WithHTTPClient(srv.Client())
	if snap := Load(context.Background(), p, log.New(&bytes.Buffer{})); snap.Len() != 0 {
		t.Errorf("Load = %d packages, want 0", snap.Len())
	}
}

func TestMulti(t *testing.T) {
	failing := ProviderFunc(func(context.Context) (*Snapshot, error) { return nil, errors.New("boom") })
	ok := NewStatic(map[string]string{"a": "1.0.0"})

	snap, err := Multi{failing, ok}.Snapshot(context.Background())
	if err != nil || !snap.Has("a") {
		t.Errorf("Multi with one healthy provider = %v, %v", snap, err)
	}
	if _, err := (Multi{failing, failing}).Snapshot(context.Background()); err == nil {
		t.Error("Multi should fail when every provider fails")
	}
}
