package catalog

import (
	"maps"
	"sort"
	"strings"
)

// Snapshot is a read-only view of the catalog. The nil *Snapshot is empty.
type Snapshot struct {
	versions map[string]string
	aliases  map[string]string
}

// New builds a snapshot from id -> latest version. Ids are lower-cased.
// provides maps package ids to the module paths they expose and may be nil;
// WellKnownAliases are always included.
func New(versions map[string]string, provides map[string][]string) *Snapshot {
	s := &Snapshot{versions: make(map[string]string, len(versions))}
	for id, v := range versions {
		s.versions[strings.ToLower(id)] = v
	}
	all := maps.Clone(WellKnownAliases)
	if all == nil {
		all = make(map[string][]string)
	}
	for id, mods := range provides {
		all[strings.ToLower(id)] = append(append([]string(nil), mods...), all[strings.ToLower(id)]...)
	}
	s.aliases = AliasTable(all)
	return s
}

// Empty returns a snapshot with no packages.
func Empty() *Snapshot {
	return New(nil, nil)
}

// Has reports whether id is published. It implements analysis.KnownIDs.
func (s *Snapshot) Has(id string) bool {
	if s == nil {
		return false
	}
	_, ok := s.versions[id]
	return ok
}

// Version returns the latest version of id. It implements
// manifest.Versions.
func (s *Snapshot) Version(id string) (string, bool) {
	if s == nil {
		return "", false
	}
	v, ok := s.versions[id]
	return v, ok && v != ""
}

// Len returns the number of packages.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.versions)
}

// IDs returns the package ids in sorted order.
func (s *Snapshot) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.versions))
	for id := range s.versions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Versions returns a copy of the id -> version map.
func (s *Snapshot) Versions() map[string]string {
	if s == nil {
		return map[string]string{}
	}
	return maps.Clone(s.versions)
}

// Aliases returns a copy of the module path -> id table.
func (s *Snapshot) Aliases() map[string]string {
	if s == nil {
		return map[string]string{}
	}
	return maps.Clone(s.aliases)
}

// Merge combines snapshots. For ids present in several snapshots the first
// one wins; alias tables are merged the same way. Nil snapshots are skipped.
func Merge(snaps ...*Snapshot) *Snapshot {
	out := &Snapshot{versions: map[string]string{}, aliases: map[string]string{}}
	for _, s := range snaps {
		if s == nil {
			continue
		}
		for id, v := range s.versions {
			if _, ok := out.versions[id]; !ok {
				out.versions[id] = v
			}
		}
		for mod, id := range s.aliases {
			if _, ok := out.aliases[mod]; !ok {
				out.aliases[mod] = id
			}
		}
	}
	return out
}
