package registry

import (
	"fmt"
	"strings"

	"github.com/Deps-Tech/deps-registry/pkg/manifest"
)

// Title returns the review-request title for publishing m.
func Title(t Type, m *manifest.Manifest) string {
	return fmt.Sprintf("feat(%s): add %s v%s", t, m.ID, m.Version)
}

// Branch returns a branch name for publishing m. suffix distinguishes
// repeated submissions, typically a timestamp.
func Branch(t Type, m *manifest.Manifest, suffix string) string {
	return fmt.Sprintf("add-%s-%s-%s", t, m.ID, suffix)
}

// Summary renders the markdown body of a review request for m. author is
// the submitting user and may be empty.
func Summary(t Type, m *manifest.Manifest, author string) (string, error) {
	doc, err := manifest.Encode(m)
	if err != nil {
		return "", err
	}

	name := m.Name
	if name == "" {
		name = m.ID
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## Add %s v%s\n\n", name, m.Version)
	fmt.Fprintf(&b, "**Package Type:** %s\n", t)
	if author != "" {
		fmt.Fprintf(&b, "**Submitted by:** @%s\n", author)
	}

	b.WriteString("\n**Dependencies:** ")
	if ids := m.DependencyIDs(); len(ids) > 0 {
		pinned := make([]string, len(ids))
		for i, id := range ids {
			pinned[i] = id + "@" + m.Dependencies[id]
		}
		b.WriteString(strings.Join(pinned, ", "))
	} else {
		b.WriteString("None")
	}
	b.WriteString("\n\n")

	var sec manifest.Security
	if m.Security != nil {
		sec = *m.Security
	}
	b.WriteString("**Security:**\n")
	fmt.Fprintf(&b, "- Network Access: %s\n", yesNo(sec.NetworkAccess))
	fmt.Fprintf(&b, "- FFI Usage: %s\n", yesNo(sec.UsesFFI))
	if n := len(sec.FileAccess); n > 0 {
		fmt.Fprintf(&b, "- File Access: Yes, %d path(s): %s\n", n, strings.Join(sec.FileAccess, ", "))
	} else {
		b.WriteString("- File Access: No\n")
	}

	b.WriteString("\n**Files:**\n")
	for _, f := range m.FileNames() {
		fmt.Fprintf(&b, "- %s (%d bytes)\n", f, m.Files[f].Size)
	}

	b.WriteString("\n<details><summary>dep.json</summary>\n\n```json\n")
	b.Write(doc)
	b.WriteString("```\n</details>\n")
	return b.String(), nil
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
