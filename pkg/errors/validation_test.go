package errors

import (
	"testing"
)

func TestValidatePackageID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "helper", false},
		{"with dash", "math-utils", false},
		{"digits", "lib2", false},

		{"empty", "", true},
		{"uppercase", "Helper", true},
		{"leading dash", "-helper", true},
		{"trailing dash", "helper-", true},
		{"double dash", "math--utils", true},
		{"underscore", "math_utils", true},
		{"dot", "socket.http", true},
		{"too long", string(make([]byte, 200)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePackageID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePackageID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && Field(err) != "id" {
				t.Errorf("ValidatePackageID(%q) field = %q, want id", tt.input, Field(err))
			}
		})
	}
}

func TestValidateVersion(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"semver", "1.0.0", false},
		{"prerelease", "2.1.0-beta.1", false},
		{"free form", "r42", false},

		{"empty", "", true},
		{"dot", ".", true},
		{"traversal", "1..0", true},
		{"slash", "1.0/2", true},
		{"backslash", "1.0\\2", true},
		{"space", "1.0 beta", true},
		{"newline", "1.0\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateVersion(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateVersion(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && Field(err) != "version" {
				t.Errorf("ValidateVersion(%q) field = %q, want version", tt.input, Field(err))
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"https", "https://example.com/path", false},
		{"http", "http://example.com/path", false},

		{"empty", "", true},
		{"ftp", "ftp://example.com", true},
		{"file", "file:///etc/passwd", true},
		{"javascript", "javascript:alert(1)", true},
		{"no scheme", "example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "helper.lua", false},
		{"valid nested", "lib/util/strings.lua", false},
		{"valid with dots", "v1.2.3/init.lua", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 600)), true},
		{"absolute path", "/etc/passwd", true},
		{"path traversal", "../../../etc/passwd", true},
		{"path traversal middle", "foo/../bar", true},
		{"null byte", "foo\x00bar", true},
		{"backslash", "foo\\bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidatePath(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateScriptFilename(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"helper.lua", false},
		{"Helper.LUA", false},
		{"readme.md", true},
		{"helper", true},
		{"../helper.lua", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateScriptFilename(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateScriptFilename(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidPackage,
		ErrCodeInvalidVersion,
		ErrCodeInvalidManifest,
		ErrCodeInvalidPath,
		ErrCodeFileTooLarge,
		ErrCodeNotFound,
		ErrCodeAlreadyExists,
		ErrCodeNetwork,
		ErrCodeInternal,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
