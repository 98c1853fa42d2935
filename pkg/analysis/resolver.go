package analysis

import (
	"strings"
)

// KnownIDs is a read-only set of catalog identifiers. Implementations store
// ids in lower case; Has is called with lower-cased keys.
type KnownIDs interface {
	Has(id string) bool
}

// IDSet is a KnownIDs backed by a map.
type IDSet map[string]struct{}

// NewIDSet returns a set holding the lower-cased ids.
func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[strings.ToLower(id)] = struct{}{}
	}
	return s
}

// Has reports whether id is in the set.
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Tiers returns the lookup keys tried for candidate, in precedence order.
// Keys are lower-cased. Duplicates are kept so the list mirrors the
// resolution tiers exactly.
func Tiers(candidate string) []string {
	parts := strings.Split(candidate, ".")
	first, last := parts[0], parts[len(parts)-1]

	keys := []string{
		strings.ReplaceAll(candidate, ".", "-"),
		first,
		last,
	}
	if len(parts) > 1 {
		keys = append(keys,
			strings.Join(parts, "-"),
			strings.Join(parts[1:], "-"),
			last,
		)
	}
	for i, k := range keys {
		keys[i] = strings.ToLower(k)
	}
	return keys
}

// Resolve maps a filtered candidate to a catalog id. The first tier whose
// key is in known wins, even when a later tier would match a different id.
func Resolve(candidate string, known KnownIDs) (string, bool) {
	if known == nil {
		return "", false
	}
	for _, key := range Tiers(candidate) {
		if known.Has(key) {
			return key, true
		}
	}
	return "", false
}

// Resolver resolves candidates against a catalog with an optional alias
// table consulted after every tier fails.
type Resolver struct {
	Known KnownIDs
	// Aliases maps module paths (e.g. "socket.http") to the id of the
	// package that provides them.
	Aliases map[string]string
}

// Resolve resolves one candidate. Alias targets must also be known.
func (r Resolver) Resolve(candidate string) (string, bool) {
	if id, ok := Resolve(candidate, r.Known); ok {
		return id, true
	}
	if len(r.Aliases) == 0 || r.Known == nil {
		return "", false
	}
	parts := strings.Split(candidate, ".")
	for i := len(parts); i > 0; i-- {
		prefix := strings.Join(parts[:i], ".")
		if id, ok := r.Aliases[prefix]; ok && r.Known.Has(strings.ToLower(id)) {
			return strings.ToLower(id), true
		}
	}
	return "", false
}

// ResolveAll resolves candidates in order. Resolved ids are deduplicated in
// discovery order; unresolved candidates are returned separately, also
// deduplicated.
func (r Resolver) ResolveAll(candidates []string) (resolved, unresolved []string) {
	resolved, unresolved = []string{}, []string{}
	seen := make(map[string]bool)
	missed := make(map[string]bool)
	for _, c := range candidates {
		id, ok := r.Resolve(c)
		switch {
		case ok && !seen[id]:
			seen[id] = true
			resolved = append(resolved, id)
		case !ok && !missed[c]:
			missed[c] = true
			unresolved = append(unresolved, c)
		}
	}
	return resolved, unresolved
}
