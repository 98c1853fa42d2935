package analysis

import (
	"path/filepath"
	"regexp"
	"strings"
)

// DefaultVersion is used when a script declares no version.
const DefaultVersion = "1.0.0"

var (
	reScriptName    = regexp.MustCompile(`script_name\s*\(\s*["'](.+?)["']\s*\)`)
	reScriptVersion = regexp.MustCompile(`script_version\s*\(\s*["'](.+?)["']\s*\)`)
	reScriptAuthor  = regexp.MustCompile(`script_author\s*\(\s*["'](.+?)["']\s*\)`)

	reNonID   = regexp.MustCompile(`[^a-z0-9-]+`)
	reHyphens = regexp.MustCompile(`-{2,}`)
)

// Metadata is what a script declares about itself.
type Metadata struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Version string `json:"version"`
	Author  string `json:"author,omitempty"`
}

// ExtractMetadata reads the script_name, script_version and script_author
// annotations from content. The first occurrence of each wins. It never
// fails: missing annotations degrade to the filename and DefaultVersion.
func ExtractMetadata(content, filename string) Metadata {
	name := firstMatch(reScriptName, content)
	if name == "" {
		name = strings.TrimSuffix(filename, filepath.Ext(filename))
	}
	version := firstMatch(reScriptVersion, content)
	if version == "" {
		version = DefaultVersion
	}
	return Metadata{
		ID:      DeriveID(name),
		Name:    name,
		Version: version,
		Author:  firstMatch(reScriptAuthor, content),
	}
}

// DeriveID normalizes a display name into a package id: lower-cased, every
// run of characters outside [a-z0-9-] replaced by a single hyphen, repeated
// hyphens collapsed and leading or trailing hyphens trimmed.
//
// DeriveID is idempotent and returns "" only when name has no ASCII
// letters or digits.
func DeriveID(name string) string {
	id := reNonID.ReplaceAllString(strings.ToLower(name), "-")
	id = reHyphens.ReplaceAllString(id, "-")
	return strings.Trim(id, "-")
}

func firstMatch(re *regexp.Regexp, s string) string {
	if m := re.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return ""
}
