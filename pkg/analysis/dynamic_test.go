package analysis

import (
	"testing"
)

func TestDynamicRequires(t *testing.T) {
	content := `local a = require("static")
local b = require(name)
local c = require(mods[i])
local d = require("prefix." .. suffix)
-- nothing here`

	got := DynamicRequires(content)
	want := []struct {
		kind   WarningKind
		line   int
		module string
	}{
		{KindVariable, 2, "name"},
		{KindTable, 3, ""},
		{KindConcat, 4, ""},
	}

	if len(got) != len(want) {
		t.Fatalf("got %d warnings, want %d: %+v", len(got), len(want), got)
	}
	for i, w := range want {
		if got[i].Kind != w.kind || got[i].Line != w.line || got[i].Module != w.module {
			t.Errorf("warning %d = %+v, want kind=%s line=%d module=%q", i, got[i], w.kind, w.line, w.module)
		}
	}
	if got[0].Code != "local b = require(name)" {
		t.Errorf("Code = %q", got[0].Code)
	}
	for _, w := range got {
		if w.Severity != SeverityWarning {
			t.Errorf("%s severity = %s, want warning", w.Kind, w.Severity)
		}
	}
}

func TestDynamicRequiresTableField(t *testing.T) {
	tests := []struct {
		code   string
		module string
	}{
		{"local m = require(t.x)", "t.x"},
		{"local m = require(cfg.modules.net)", "cfg.modules.net"},
		{"local m = require( mods.ui )", "mods.ui"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got := DynamicRequires(tt.code)
			if len(got) != 1 {
				t.Fatalf("got %d warnings, want 1: %+v", len(got), got)
			}
			if got[0].Kind != KindTable || got[0].Module != tt.module {
				t.Errorf("warning = %+v, want kind=%s module=%q", got[0], KindTable, tt.module)
			}
		})
	}
}

func TestDynamicRequiresArgumentOnly(t *testing.T) {
	tests := []string{
		`local s = require("socket.http"); print(a .. b)`,
		`require("a.b"); print(a .. b)`,
		`local s = require("x") local y = mods[i]`,
		`local s = require "x" .. suffix`,
	}
	for _, code := range tests {
		t.Run(code, func(t *testing.T) {
			if got := DynamicRequires(code); len(got) != 0 {
				t.Errorf("expected no warnings, got %+v", got)
			}
		})
	}
}

func TestDynamicRequiresStaticOnly(t *testing.T) {
	got := DynamicRequires(`require("a.b")` + "\n" + `require 'c'`)
	if len(got) != 0 {
		t.Errorf("expected no warnings, got %+v", got)
	}
}
