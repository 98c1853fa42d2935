package catalog

import (
	"reflect"
	"testing"

	"github.com/Deps-Tech/deps-registry/pkg/analysis"
	"github.com/Deps-Tech/deps-registry/pkg/manifest"
)

// Snapshot must plug straight into analysis and manifest building.
var (
	_ analysis.KnownIDs = (*Snapshot)(nil)
	_ manifest.Versions = (*Snapshot)(nil)
)

func TestSnapshot(t *testing.T) {
	s := New(map[string]string{"MathUtils": "3.0.0", "cjson": "2.1.0", "blank": ""}, nil)

	if !s.Has("mathutils") {
		t.Error("ids should be lower-cased")
	}
	if s.Has("MathUtils") {
		t.Error("Has expects lower-cased ids")
	}
	if v, ok := s.Version("cjson"); !ok || v != "2.1.0" {
		t.Errorf("Version(cjson) = %q, %v", v, ok)
	}
	if _, ok := s.Version("blank"); ok {
		t.Error("blank version should not be pinned")
	}
	if !s.Has("blank") {
		t.Error("blank version is still a known id")
	}
	if want := []string{"blank", "cjson", "mathutils"}; !reflect.DeepEqual(s.IDs(), want) {
		t.Errorf("IDs = %v, want %v", s.IDs(), want)
	}
	if s.Len() != 3 {
		t.Errorf("Len = %d, want 3", s.Len())
	}
}

func TestNilSnapshot(t *testing.T) {
	var s *Snapshot
	if s.Has("x") || s.Len() != 0 || s.IDs() != nil {
		t.Error("nil snapshot should be empty")
	}
	if _, ok := s.Version("x"); ok {
		t.Error("nil snapshot has no versions")
	}
	if len(s.Versions()) != 0 || len(s.Aliases()) != 0 {
		t.Error("nil snapshot maps should be empty")
	}
}

func TestSnapshotAliases(t *testing.T) {
	s := New(map[string]string{"luasocket": "3.1.0", "vec": "1.0.0"}, map[string][]string{"vec": {"vec.math"}})
	aliases := s.Aliases()
	if aliases["socket.http"] != "luasocket" {
		t.Errorf("socket.http -> %q, want luasocket", aliases["socket.http"])
	}
	if aliases["vec.math"] != "vec" {
		t.Errorf("vec.math -> %q, want vec", aliases["vec.math"])
	}

	r := analysis.Resolver{Known: s, Aliases: aliases}
	if id, ok := r.Resolve("socket.core"); !ok || id != "luasocket" {
		t.Errorf("Resolve(socket.core) = %q, %v", id, ok)
	}
}

func TestAliasTableDeterministic(t *testing.T) {
	table := AliasTable(map[string][]string{"socket": {"socket.http"}, "luasocket": {"socket.http"}})
	if table["socket.http"] != "luasocket" {
		t.Errorf("socket.http -> %q, want luasocket", table["socket.http"])
	}
}

func TestMerge(t *testing.T) {
	a := New(map[string]string{"x": "1.0.0"}, nil)
	b := New(map[string]string{"x": "2.0.0", "y": "1.0.0"}, nil)
	m := Merge(a, nil, b)

	if v, _ := m.Version("x"); v != "1.0.0" {
		t.Errorf("x = %q, first snapshot should win", v)
	}
	if !m.Has("y") {
		t.Error("y missing from merged snapshot")
	}
}
