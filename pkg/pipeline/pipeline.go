// Package pipeline runs package ingestion for the CLI and the HTTP API.
//
// A [Runner] loads the catalog, analyzes uploaded sources, builds the
// manifest and hands the result to one or more [Publisher]s. Centralizing
// this keeps both entry points producing identical manifests for identical
// input.
//
// # Usage
//
//	runner := pipeline.NewRunner(provider, logger)
//	res, err := runner.Build(ctx, pipeline.Request{
//	    Files: files,
//	    Type:  registry.Scripts,
//	    Tags:  pipeline.ParseTags("utility, chat"),
//	})
//	if err != nil {
//	    return err
//	}
//	err = runner.Publish(ctx, res, pipeline.RegistrySink{Registry: reg})
//
// When a Request carries [Overrides], metadata extraction and scanning are
// skipped and the builder runs on the supplied values, as when a reviewer
// edits the detected metadata before submitting.
package pipeline

import (
	"strings"

	"github.com/Deps-Tech/deps-registry/pkg/analysis"
	"github.com/Deps-Tech/deps-registry/pkg/manifest"
	"github.com/Deps-Tech/deps-registry/pkg/registry"
)

// Overrides replaces detected metadata, dependencies and security flags.
type Overrides struct {
	ID      string `json:"id" toml:"id"`
	Name    string `json:"name" toml:"name"`
	Version string `json:"version" toml:"version"`
	Author  string `json:"author,omitempty" toml:"author"`
	// Dependencies are catalog ids; ids missing from the catalog are dropped
	// when the manifest is built.
	Dependencies []string           `json:"dependencies" toml:"dependencies"`
	Security     *analysis.Security `json:"security,omitempty" toml:"security"`
}

// Request is one ingestion request.
type Request struct {
	Files []analysis.SourceFile
	// Type defaults to registry.Scripts.
	Type       registry.Type
	Tags       []string
	SourceURL  string
	Deprecated bool
	Provides   []string
	// ScanAll scans every file for dependencies instead of the main file only.
	ScanAll   bool
	Overrides *Overrides
}

// Result is a built package version.
type Result struct {
	Type     registry.Type
	Manifest *manifest.Manifest
	Files    []analysis.SourceFile
	// Author is the detected or overridden script author.
	Author string
	// Analysis is nil when the request carried overrides.
	Analysis *analysis.Result
}

// ParseTags splits a comma-separated tag list, trimming blanks and dropping
// empty entries.
func ParseTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
