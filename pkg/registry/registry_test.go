package registry

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/Deps-Tech/deps-registry/pkg/analysis"
	pkgerrors "github.com/Deps-Tech/deps-registry/pkg/errors"
	"github.com/Deps-Tech/deps-registry/pkg/manifest"
)

func publish(t *testing.T, r *Registry, typ Type, id, version string, deps map[string]string, files ...analysis.SourceFile) Entry {
	t.Helper()
	if len(files) == 0 {
		files = []analysis.SourceFile{{Name: "main.lua", Content: "-- " + id + " " + version + "\n"}}
	}
	var ids []string
	for dep := range deps {
		ids = append(ids, dep)
	}
	m, err := manifest.Build(files, manifest.Bundle{ID: id, Version: version, Dependencies: ids}, manifest.VersionMap(deps))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	e, err := r.Publish(context.Background(), typ, m, files, PublishOptions{})
	if err != nil {
		t.Fatalf("Publish(%s %s): %v", id, version, err)
	}
	return e
}

func TestParseType(t *testing.T) {
	tests := []struct {
		in      string
		want    Type
		wantErr bool
	}{
		{"scripts", Scripts, false},
		{"deps", Deps, false},
		{"", Scripts, false},
		{"libs", "", true},
	}
	for _, tt := range tests {
		got, err := ParseType(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseType(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestPublishLayout(t *testing.T) {
	root := t.TempDir()
	r := New(root, nil)
	files := []analysis.SourceFile{
		{Name: "main.lua", Content: "print(1)"},
		{Name: "lib/util.lua", Content: "return {}"},
	}
	e := publish(t, r, Scripts, "hello", "1.0.0", nil, files...)

	want := filepath.Join(root, "scripts", "hello", "1.0.0")
	if e.Dir != want {
		t.Errorf("Dir = %s, want %s", e.Dir, want)
	}
	for _, name := range []string{"main.lua", "lib/util.lua", "dep.json"} {
		if _, err := os.Stat(filepath.Join(want, filepath.FromSlash(name))); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
	m, err := manifest.Load(want)
	if err != nil {
		t.Fatal(err)
	}
	if m.ID != "hello" || len(m.Files) != 2 {
		t.Errorf("loaded manifest = %+v", m)
	}
}

func TestPublishExisting(t *testing.T) {
	r := New(t.TempDir(), nil)
	e := publish(t, r, Deps, "mathutils", "1.0.0", nil)

	_, err := r.Publish(context.Background(), Deps, e.Manifest, []analysis.SourceFile{{Name: "main.lua", Content: "x"}}, PublishOptions{})
	if !errors.Is(err, ErrExists) {
		t.Fatalf("second publish: err = %v, want ErrExists", err)
	}

	files := []analysis.SourceFile{{Name: "init.lua", Content: "return {}"}}
	m, _ := manifest.Build(files, manifest.Bundle{ID: "mathutils", Version: "1.0.0"}, nil)
	if _, err := r.Publish(context.Background(), Deps, m, files, PublishOptions{Force: true}); err != nil {
		t.Fatalf("forced publish: %v", err)
	}
	if _, err := os.Stat(filepath.Join(e.Dir, "main.lua")); !os.IsNotExist(err) {
		t.Error("forced publish should replace the old files")
	}
}

func TestPublishRejectsUnsafeInput(t *testing.T) {
	r := New(t.TempDir(), nil)
	files := []analysis.SourceFile{{Name: "main.lua", Content: "x"}}

	tests := []struct {
		name  string
		m     *manifest.Manifest
		files []analysis.SourceFile
		field string
	}{
		{"bad id", &manifest.Manifest{ID: "../etc", Version: "1.0.0"}, files, "id"},
		{"bad version", &manifest.Manifest{ID: "ok", Version: "../1"}, files, "version"},
		{"bad file", &manifest.Manifest{ID: "ok", Version: "1.0.0"}, []analysis.SourceFile{{Name: "../x.lua"}}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Publish(context.Background(), Scripts, tt.m, tt.files, PublishOptions{})
			if err == nil {
				t.Fatal("expected error")
			}
			if got := pkgerrors.Field(err); got != tt.field {
				t.Errorf("Field = %q, want %q", got, tt.field)
			}
		})
	}
}

func TestWalkAndLatest(t *testing.T) {
	r := New(t.TempDir(), nil)
	publish(t, r, Deps, "helper", "1.10.0", nil)
	publish(t, r, Deps, "helper", "1.2.0", nil)
	publish(t, r, Deps, "core", "0.1.0", nil)

	entries, err := r.Walk(Deps)
	if err != nil {
		t.Fatal(err)
	}
	var keys []string
	for _, e := range entries {
		keys = append(keys, e.Key())
	}
	want := []string{"deps/core/0.1.0", "deps/helper/1.2.0", "deps/helper/1.10.0"}
	if !reflect.DeepEqual(keys, want) {
		t.Errorf("Walk = %v, want %v", keys, want)
	}

	latest, _ := r.Latest(Deps)
	if len(latest) != 2 || latest[1].Version != "1.10.0" {
		t.Errorf("Latest = %+v", latest)
	}

	if entries, err := r.Walk(Scripts); err != nil || entries != nil {
		t.Errorf("Walk on missing type = %v, %v", entries, err)
	}
}

func TestSnapshot(t *testing.T) {
	r := New(t.TempDir(), nil)
	publish(t, r, Deps, "helper", "2.0.0", nil)
	publish(t, r, Deps, "helper", "2.1.0", nil)
	publish(t, r, Scripts, "myscript", "1.0.0", nil)

	files := []analysis.SourceFile{{Name: "socket.lua", Content: "return {}"}}
	m, _ := manifest.Build(files, manifest.Bundle{ID: "luasocket2", Version: "3.0.0", Provides: []string{"socket2.http"}}, nil)
	if _, err := r.Publish(context.Background(), Deps, m, files, PublishOptions{}); err != nil {
		t.Fatal(err)
	}

	snap, err := r.Snapshot(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := snap.Version("helper"); v != "2.1.0" {
		t.Errorf("helper version = %q", v)
	}
	if snap.Has("myscript") {
		t.Error("scripts must not be in the catalog")
	}
	if got := snap.Aliases()["socket2.http"]; got != "luasocket2" {
		t.Errorf("alias = %q", got)
	}
}

func TestVerify(t *testing.T) {
	r := New(t.TempDir(), nil)
	e := publish(t, r, Scripts, "hello", "1.0.0", nil,
		analysis.SourceFile{Name: "main.lua", Content: "print(1)"},
		analysis.SourceFile{Name: "extra.lua", Content: "return 1"},
	)

	problems, err := r.Verify(e)
	if err != nil {
		t.Fatal(err)
	}
	if len(problems) != 0 {
		t.Fatalf("fresh publish has problems: %v", problems)
	}

	if err := os.WriteFile(filepath.Join(e.Dir, "main.lua"), []byte("print(2)!"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(filepath.Join(e.Dir, "extra.lua")); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(e.Dir, "stray.lua"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	problems, err = r.Verify(e)
	if err != nil {
		t.Fatal(err)
	}
	var kinds []ProblemKind
	for _, p := range problems {
		kinds = append(kinds, p.Kind)
	}
	want := []ProblemKind{ProblemMissing, ProblemDigest, ProblemSize, ProblemUnlisted}
	if !reflect.DeepEqual(kinds, want) {
		t.Errorf("kinds = %v, want %v\n%v", kinds, want, problems)
	}
}

func TestVerifyDirectoryMismatch(t *testing.T) {
	r := New(t.TempDir(), nil)
	e := publish(t, r, Deps, "core", "1.0.0", nil)
	e.Version = "1.0.1"
	problems, err := r.Verify(e)
	if err != nil {
		t.Fatal(err)
	}
	if len(problems) != 1 || problems[0].Kind != ProblemPath {
		t.Errorf("problems = %v", problems)
	}
}

func TestGraphAndCycles(t *testing.T) {
	r := New(t.TempDir(), nil)
	publish(t, r, Deps, "a", "1.0.0", map[string]string{"b": "1.0.0"})
	publish(t, r, Deps, "b", "1.0.0", map[string]string{"a": "1.0.0"})
	publish(t, r, Scripts, "app", "1.0.0", map[string]string{"a": "1.0.0", "ghost": "0.1.0"})

	g, err := r.Graph()
	if err != nil {
		t.Fatal(err)
	}
	if g.NodeCount() != 4 {
		t.Errorf("NodeCount = %d, want 4", g.NodeCount())
	}
	if n, ok := g.Node("ghost"); !ok || !n.Missing {
		t.Error("unpublished dependency should be a missing node")
	}

	cycles, err := r.Cycles()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(cycles, [][]string{{"a", "b", "a"}}) {
		t.Errorf("Cycles = %v", cycles)
	}
}

func TestDuplicates(t *testing.T) {
	r := New(t.TempDir(), nil)
	same := analysis.SourceFile{Name: "main.lua", Content: "return 42"}
	publish(t, r, Deps, "one", "1.0.0", nil, same)
	publish(t, r, Scripts, "two", "1.0.0", nil, same)
	publish(t, r, Deps, "three", "1.0.0", nil)

	sets, err := r.Duplicates()
	if err != nil {
		t.Fatal(err)
	}
	if len(sets) != 1 {
		t.Fatalf("sets = %v", sets)
	}
	want := []string{"deps/one/1.0.0", "scripts/two/1.0.0"}
	if !reflect.DeepEqual(sets[0].Packages, want) {
		t.Errorf("Packages = %v, want %v", sets[0].Packages, want)
	}
	if !strings.Contains(sets[0].Error(), "same files") {
		t.Errorf("Error() = %q", sets[0].Error())
	}
}

func TestSignatureIgnoresMetadata(t *testing.T) {
	files := []analysis.SourceFile{{Name: "a.lua", Content: "1"}, {Name: "b.lua", Content: "2"}}
	m1, _ := manifest.Build(files, manifest.Bundle{ID: "x", Version: "1.0.0"}, nil)
	m2, _ := manifest.Build([]analysis.SourceFile{files[1], files[0]}, manifest.Bundle{ID: "y", Version: "2.0.0", Tags: []string{"t"}}, nil)
	if Signature(m1) != Signature(m2) {
		t.Error("signature should depend on files only")
	}
}
