package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/Deps-Tech/deps-registry/pkg/analysis"
	"github.com/Deps-Tech/deps-registry/pkg/errors"
	"github.com/Deps-Tech/deps-registry/pkg/pipeline"
	"github.com/Deps-Tech/deps-registry/pkg/registry"
)

// readSources loads Lua files in argument order. The first is the main
// script. Each must end in .lua and fit within limit bytes; limit <= 0
// disables the size check.
func readSources(paths []string, limit int64) ([]analysis.SourceFile, error) {
	files := make([]analysis.SourceFile, 0, len(paths))
	seen := make(map[string]string, len(paths))
	for _, path := range paths {
		name := filepath.Base(path)
		if err := errors.ValidateScriptFilename(name); err != nil {
			return nil, err
		}
		if prev, ok := seen[name]; ok {
			return nil, fmt.Errorf("%s and %s share the file name %s", prev, path, name)
		}
		seen[name] = path

		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if limit > 0 && info.Size() > limit {
			return nil, fmt.Errorf("%s exceeds the %d byte limit", path, limit)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		files = append(files, analysis.DecodeSource(name, data))
	}
	return files, nil
}

// readOverrides decodes a metadata override file, TOML for .toml and JSON
// otherwise.
func readOverrides(path string) (*pipeline.Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var o pipeline.Overrides
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &o); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &o); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	return &o, nil
}

// buildFlags are the manifest inputs shared by manifest and publish.
type buildFlags struct {
	pkgType    string
	tags       string
	sourceURL  string
	deprecated bool
	provides   []string
	scanAll    bool
	metadata   string
}

func (f *buildFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.pkgType, "type", "t", string(registry.Scripts), "package type (scripts, deps)")
	fl.StringVar(&f.tags, "tags", "", "comma-separated tags")
	fl.StringVar(&f.sourceURL, "source-url", "", "upstream source URL")
	fl.BoolVar(&f.deprecated, "deprecated", false, "mark the package deprecated")
	fl.StringSliceVar(&f.provides, "provides", nil, "module paths the package exposes")
	fl.BoolVar(&f.scanAll, "scan-all", false, "scan every file for dependencies, not only the first")
	fl.StringVar(&f.metadata, "metadata", "", "JSON or TOML file overriding detected metadata")
}

// request builds a pipeline request for files.
func (f *buildFlags) request(files []analysis.SourceFile) (pipeline.Request, error) {
	typ, err := registry.ParseType(f.pkgType)
	if err != nil {
		return pipeline.Request{}, err
	}
	if f.sourceURL != "" {
		if err := errors.ValidateURL(f.sourceURL); err != nil {
			return pipeline.Request{}, err
		}
	}
	req := pipeline.Request{
		Files:      files,
		Type:       typ,
		Tags:       pipeline.ParseTags(f.tags),
		SourceURL:  f.sourceURL,
		Deprecated: f.deprecated,
		Provides:   f.provides,
		ScanAll:    f.scanAll,
	}
	if f.metadata != "" {
		o, err := readOverrides(f.metadata)
		if err != nil {
			return pipeline.Request{}, err
		}
		req.Overrides = o
	}
	return req, nil
}
