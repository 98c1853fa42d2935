package analysis

import (
	"testing"
)

func TestExtractMetadata(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		filename string
		want     Metadata
	}{
		{
			name:     "all annotations",
			content:  "script_name(\"Helper\")\nscript_version('2.1.0')\nscript_author(\"deps\")",
			filename: "helper.lua",
			want:     Metadata{ID: "helper", Name: "Helper", Version: "2.1.0", Author: "deps"},
		},
		{
			name:     "filename fallback",
			content:  "print('hi')",
			filename: "Auto Reconnect.lua",
			want:     Metadata{ID: "auto-reconnect", Name: "Auto Reconnect", Version: DefaultVersion},
		},
		{
			name:     "first occurrence wins",
			content:  "script_name('First')\nscript_name('Second')\nscript_version('1.2')\nscript_version('9.9')",
			filename: "x.lua",
			want:     Metadata{ID: "first", Name: "First", Version: "1.2"},
		},
		{
			name:     "spacing inside call",
			content:  `script_name ( "Spaced Out" )`,
			filename: "x.lua",
			want:     Metadata{ID: "spaced-out", Name: "Spaced Out", Version: DefaultVersion},
		},
		{
			name:     "empty annotation falls back",
			content:  `script_name("")`,
			filename: "fallback.lua",
			want:     Metadata{ID: "fallback", Name: "fallback", Version: DefaultVersion},
		},
		{
			name:     "filename without extension",
			content:  "",
			filename: "README",
			want:     Metadata{ID: "readme", Name: "README", Version: DefaultVersion},
		},
		{
			name:     "only last extension stripped",
			content:  "",
			filename: "my.tool.lua",
			want:     Metadata{ID: "my-tool", Name: "my.tool", Version: DefaultVersion},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractMetadata(tt.content, tt.filename)
			if got != tt.want {
				t.Errorf("ExtractMetadata() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestExtractMetadataDefaults(t *testing.T) {
	for _, content := range []string{"", "local x = 1", "-- script_name is documented elsewhere"} {
		got := ExtractMetadata(content, "a.lua")
		if got.Version != DefaultVersion {
			t.Errorf("Version = %q, want %q", got.Version, DefaultVersion)
		}
		if got.Author != "" {
			t.Errorf("Author = %q, want empty", got.Author)
		}
	}
}

func TestDeriveID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Helper", "helper"},
		{"Auto Reconnect", "auto-reconnect"},
		{"  padded  ", "padded"},
		{"A - B", "a-b"},
		{"mimgui_addons v2", "mimgui-addons-v2"},
		{"--already-ok--", "already-ok"},
		{"Émoji ✨ Tool", "moji-tool"},
		{"!!!", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := DeriveID(tt.in); got != tt.want {
				t.Errorf("DeriveID(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDeriveIDIdempotent(t *testing.T) {
	inputs := []string{"Helper", "A - B", "x__y", "Émoji ✨ Tool", "a.b.c", "--", "ALREADY-lower"}
	for _, in := range inputs {
		once := DeriveID(in)
		if twice := DeriveID(once); twice != once {
			t.Errorf("DeriveID(DeriveID(%q)) = %q, want %q", in, twice, once)
		}
		if once != "" && !idPattern.MatchString(once) {
			t.Errorf("DeriveID(%q) = %q does not match id pattern", in, once)
		}
	}
}
