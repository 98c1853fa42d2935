package analysis

import (
	"reflect"
	"regexp"
	"testing"
)

var idPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func TestScanRequires(t *testing.T) {
	content := `
local a = require("lib.mathutils")
local b = require 'socket.http'
local c = require"cjson"
local s = require("string")
local t = require('table.new')
local self = require("Helper.util")
`
	got := Scan(content, "helper")

	wantRequires := []string{"lib.mathutils", "socket.http", "cjson", "string", "table.new", "Helper.util"}
	if !reflect.DeepEqual(got.Requires, wantRequires) {
		t.Errorf("Requires = %v, want %v", got.Requires, wantRequires)
	}
	wantCandidates := []string{"mathutils", "socket.http", "cjson"}
	if !reflect.DeepEqual(got.Candidates, wantCandidates) {
		t.Errorf("Candidates = %v, want %v", got.Candidates, wantCandidates)
	}
}

func TestScanBuiltinsNeverCandidates(t *testing.T) {
	for mod := range Builtins {
		content := `require("` + mod + `")` + "\n" + `require("` + mod + `.sub")` + "\n" + `require("lib.` + mod + `")`
		got := Scan(content, "")
		if len(got.Candidates) != 0 {
			t.Errorf("builtin %q produced candidates %v", mod, got.Candidates)
		}
	}
}

func TestScanSecurity(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Security
	}{
		{
			name:    "nothing",
			content: "print('hello')",
			want:    Security{FilePaths: []string{}},
		},
		{
			name:    "network http",
			content: "local r = http.request('https://example.com')",
			want:    Security{UsesNetwork: true, FilePaths: []string{}},
		},
		{
			name:    "network socket",
			content: "local c = socket.tcp()\nc:connect(host, 80)",
			want:    Security{UsesNetwork: true, FilePaths: []string{}},
		},
		{
			name:    "ffi",
			content: "local ffi = require 'ffi'",
			want:    Security{UsesFFI: true, FilePaths: []string{}},
		},
		{
			name:    "ffi needs word boundary",
			content: "local x = myrequire('ffi')",
			want:    Security{FilePaths: []string{}},
		},
		{
			name:    "file paths keep order and duplicates",
			content: "io.open('b.txt', 'w')\nio.open(\"a.txt\")\nio.open('b.txt')\nio.open(path)",
			want:    Security{FilePaths: []string{"b.txt", "a.txt", "b.txt"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Scan(tt.content, "").Security
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Security = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFilterCandidate(t *testing.T) {
	tests := []struct {
		raw    string
		selfID string
		want   string
		wantOK bool
	}{
		{"lib.mathutils", "", "mathutils", true},
		{"lib.lib.x", "", "lib.x", true},
		{"lib", "", "lib", true},
		{"string.format", "", "", false},
		{"lib.string", "", "", false},
		{"helper.core", "helper", "", false},
		{"HELPER", "helper", "", false},
		{"helperx", "helper", "helperx", true},
		{"String", "", "String", true},
		{"lib.", "", "", false},
		{"lib.", "x", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := FilterCandidate(tt.raw, tt.selfID, Builtins)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("FilterCandidate(%q, %q) = %q, %v; want %q, %v", tt.raw, tt.selfID, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestScanBareLibPrefix(t *testing.T) {
	got := Scan(`require('lib.') require("lib.ffi") require("socket.http")`, "x")
	want := []string{"ffi", "socket.http"}
	if !reflect.DeepEqual(got.Candidates, want) {
		t.Errorf("Candidates = %q, want %q", got.Candidates, want)
	}
	if len(got.Requires) != 3 {
		t.Errorf("Requires = %q, want all three raw paths", got.Requires)
	}
}

func TestScanWithCustomBuiltins(t *testing.T) {
	got := ScanWith(`require("imgui") require("string")`, "", map[string]bool{"imgui": true})
	want := []string{"string"}
	if !reflect.DeepEqual(got.Candidates, want) {
		t.Errorf("Candidates = %v, want %v", got.Candidates, want)
	}
}
