package registry

import (
	"crypto/sha256"
	"fmt"
	"sort"

	"github.com/Deps-Tech/deps-registry/pkg/dag"
	"github.com/Deps-Tech/deps-registry/pkg/manifest"
)

// Graph builds the dependency graph of the latest version of every package.
// Dependencies that are not published become nodes marked Missing.
func (r *Registry) Graph() (*dag.DAG, error) {
	g := dag.New(dag.Metadata{"root": r.root})

	var entries []Entry
	for _, t := range Types {
		latestOfType, err := r.Latest(t)
		if err != nil {
			return nil, err
		}
		entries = append(entries, latestOfType...)
	}

	for _, e := range entries {
		meta := dag.Metadata{"version": e.Version, "type": string(e.Type)}
		if e.Manifest.Name != "" {
			meta["name"] = e.Manifest.Name
		}
		if err := g.AddNode(dag.Node{ID: e.ID, Meta: meta}); err != nil {
			// A script and a library can share an id; the library node wins.
			r.logger.Debug("duplicate graph node", "id", e.ID, "type", e.Type)
		}
	}
	for _, e := range entries {
		for _, dep := range e.Manifest.DependencyIDs() {
			if _, ok := g.Node(dep); !ok {
				_ = g.AddNode(dag.Node{ID: dep, Missing: true})
			}
			if err := g.AddEdge(dag.Edge{From: e.ID, To: dep, Version: e.Manifest.Dependencies[dep]}); err != nil {
				return nil, fmt.Errorf("edge %s->%s: %w", e.ID, dep, err)
			}
		}
	}
	return g, nil
}

// Cycles returns the dependency cycles among the latest versions, each as an
// id path like [a b a].
func (r *Registry) Cycles() ([][]string, error) {
	g, err := r.Graph()
	if err != nil {
		return nil, err
	}
	return g.Cycles(), nil
}

// DuplicateSet is a group of package versions with identical file sets.
type DuplicateSet struct {
	Packages  []string `json:"packages"`
	Signature string   `json:"signature"`
}

func (d DuplicateSet) Error() string {
	return fmt.Sprintf("duplicate packages detected: %v (same files)", d.Packages)
}

// Duplicates groups published versions, of any type, whose files are
// byte-identical. Packages within a set and the sets themselves are sorted.
func (r *Registry) Duplicates() ([]DuplicateSet, error) {
	entries, err := r.WalkAll()
	if err != nil {
		return nil, err
	}

	bySig := make(map[string][]string)
	for _, e := range entries {
		sig := Signature(e.Manifest)
		bySig[sig] = append(bySig[sig], e.Key())
	}

	var sets []DuplicateSet
	for sig, keys := range bySig {
		if len(keys) < 2 {
			continue
		}
		sort.Strings(keys)
		sets = append(sets, DuplicateSet{Packages: keys, Signature: sig})
	}
	sort.Slice(sets, func(i, j int) bool { return sets[i].Packages[0] < sets[j].Packages[0] })
	return sets, nil
}

// Signature hashes a manifest's file set: sorted names, each followed by its
// digest, NUL-separated.
func Signature(m *manifest.Manifest) string {
	h := sha256.New()
	for _, name := range m.FileNames() {
		h.Write([]byte(name))
		h.Write([]byte{0})
		h.Write([]byte(m.Files[name].SHA256))
		h.Write([]byte{0})
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

func sortedNames(m map[string]string) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
