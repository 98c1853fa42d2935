package analysis

import (
	"regexp"
	"strings"
)

// WarningKind classifies a require call that cannot be resolved statically.
type WarningKind string

const (
	KindVariable WarningKind = "variable"
	KindTable    WarningKind = "table-index"
	KindConcat   WarningKind = "concat"
)

// Severity ranks a warning.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
)

// Warning reports a require call whose module name is computed at runtime.
// Such dependencies cannot appear in a manifest.
type Warning struct {
	Kind     WarningKind `json:"kind"`
	File     string      `json:"file,omitempty"`
	Line     int         `json:"line"`
	Module   string      `json:"module,omitempty"`
	Code     string      `json:"code"`
	Severity Severity    `json:"severity"`
	Message  string      `json:"message"`
}

// Each pattern matches only the argument between the call's own parentheses,
// so a static require sharing a line with other code is not flagged.
var dynamicPatterns = []struct {
	re       *regexp.Regexp
	kind     WarningKind
	severity Severity
	message  string
}{
	{
		re:       regexp.MustCompile(`require\s*\(\s*([a-zA-Z_][a-zA-Z0-9_]*)\s*\)`),
		kind:     KindVariable,
		severity: SeverityWarning,
		message:  "dynamic require with variable",
	},
	{
		re:       regexp.MustCompile(`require\s*\(\s*([a-zA-Z_]\w*(?:\.[a-zA-Z_]\w*)+)\s*\)`),
		kind:     KindTable,
		severity: SeverityWarning,
		message:  "dynamic require with table field",
	},
	{
		re:       regexp.MustCompile(`require\s*\(\s*[^()]*\[[^()]*\]\s*\)`),
		kind:     KindTable,
		severity: SeverityWarning,
		message:  "dynamic require with table index",
	},
	{
		re:       regexp.MustCompile(`require\s*\(\s*[^()]*\.\.[^()]*\)`),
		kind:     KindConcat,
		severity: SeverityWarning,
		message:  "dynamic require with concatenation",
	},
}

// DynamicRequires reports require calls whose argument is not a string
// literal. Lines are 1-based; a line may yield several warnings.
func DynamicRequires(content string) []Warning {
	warnings := []Warning{}
	for i, line := range strings.Split(content, "\n") {
		if !strings.Contains(line, "require") {
			continue
		}
		for _, p := range dynamicPatterns {
			m := p.re.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			w := Warning{
				Kind:     p.kind,
				Line:     i + 1,
				Code:     strings.TrimSpace(line),
				Severity: p.severity,
				Message:  p.message,
			}
			if len(m) > 1 {
				w.Module = m[1]
			}
			warnings = append(warnings, w)
		}
	}
	return warnings
}
