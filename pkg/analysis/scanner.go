package analysis

import (
	"regexp"
	"strings"
)

var (
	reRequire    = regexp.MustCompile(`require\s*\(?\s*["']([\w\.-]+)["']\s*\)?`)
	reNetwork    = regexp.MustCompile(`(http\.request|socket\.tcp|socket\.connect)`)
	reFFI        = regexp.MustCompile(`\brequire\s*\(?\s*["']ffi["']\s*\)?`)
	reFileAccess = regexp.MustCompile(`io\.open\s*\(\s*["']([^"']+)["']`)
)

// libPrefix marks the shared library namespace in require paths.
const libPrefix = "lib."

// Builtins lists the standard Lua modules that are never registry
// dependencies. Callers may pass their own set to ScanWith.
var Builtins = map[string]bool{
	"bit":       true,
	"math":      true,
	"string":    true,
	"table":     true,
	"os":        true,
	"io":        true,
	"debug":     true,
	"coroutine": true,
	"package":   true,
	"utf8":      true,
	"bit32":     true,
}

// Security is the heuristic security profile of a source file.
type Security struct {
	UsesNetwork bool     `json:"usesNetwork"`
	UsesFFI     bool     `json:"usesFFI"`
	FilePaths   []string `json:"filePaths"`
}

// IsZero reports whether no signal was detected.
func (s Security) IsZero() bool {
	return !s.UsesNetwork && !s.UsesFFI && len(s.FilePaths) == 0
}

// merge folds other into s, keeping file path order.
func (s *Security) merge(other Security) {
	s.UsesNetwork = s.UsesNetwork || other.UsesNetwork
	s.UsesFFI = s.UsesFFI || other.UsesFFI
	s.FilePaths = append(s.FilePaths, other.FilePaths...)
}

// ScanResult holds the raw findings of one scan.
type ScanResult struct {
	// Requires lists every static require path in order of appearance,
	// exactly as written.
	Requires []string
	// Candidates lists the require paths left after filtering, with the
	// library prefix stripped. They are the input to Resolve.
	Candidates []string
	Security   Security
}

// Scan scans content with the default Builtins. selfID is the package's
// own id; requires rooted at it are dropped.
func Scan(content, selfID string) ScanResult {
	return ScanWith(content, selfID, Builtins)
}

// ScanWith scans content, ignoring requires whose first segment is in
// builtins.
func ScanWith(content, selfID string, builtins map[string]bool) ScanResult {
	res := ScanResult{
		Requires:   []string{},
		Candidates: []string{},
		Security: Security{
			UsesNetwork: reNetwork.MatchString(content),
			UsesFFI:     reFFI.MatchString(content),
			FilePaths:   []string{},
		},
	}

	for _, m := range reRequire.FindAllStringSubmatch(content, -1) {
		res.Requires = append(res.Requires, m[1])
		if dep, ok := FilterCandidate(m[1], selfID, builtins); ok {
			res.Candidates = append(res.Candidates, dep)
		}
	}
	for _, m := range reFileAccess.FindAllStringSubmatch(content, -1) {
		res.Security.FilePaths = append(res.Security.FilePaths, m[1])
	}
	return res
}

// FilterCandidate strips the library prefix from a raw require path and
// reports whether what remains is a dependency candidate. Paths rooted at
// a built-in module or at selfID (compared case-insensitively) are not,
// nor is a bare "lib." that leaves nothing after the strip.
func FilterCandidate(raw, selfID string, builtins map[string]bool) (string, bool) {
	dep := strings.TrimPrefix(raw, libPrefix)
	if dep == "" {
		return "", false
	}
	root, _, _ := strings.Cut(dep, ".")
	if builtins[root] {
		return "", false
	}
	if selfID != "" && strings.EqualFold(root, selfID) {
		return "", false
	}
	return dep, true
}
