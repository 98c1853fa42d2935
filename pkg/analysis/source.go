package analysis

import (
	"golang.org/x/text/encoding/unicode"
)

// SourceFile is one uploaded file: its name as given and its decoded text.
type SourceFile struct {
	Name    string
	Content string
}

// DecodeSource decodes raw upload bytes as UTF-8 text. A leading byte order
// mark is removed and invalid byte sequences are replaced with U+FFFD, so the
// resulting Content is always valid UTF-8.
func DecodeSource(name string, data []byte) SourceFile {
	text, err := unicode.UTF8BOM.NewDecoder().Bytes(data)
	if err != nil {
		// The UTF-8 decoder substitutes rather than fails; keep the raw
		// bytes if a transformer error ever surfaces.
		text = data
	}
	return SourceFile{Name: name, Content: string(text)}
}
