package registry

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Deps-Tech/deps-registry/pkg/manifest"
)

// ProblemKind classifies a verification finding.
type ProblemKind string

const (
	ProblemMissing  ProblemKind = "missing"  // listed in dep.json, absent on disk
	ProblemUnlisted ProblemKind = "unlisted" // on disk, absent from dep.json
	ProblemDigest   ProblemKind = "digest"
	ProblemSize     ProblemKind = "size"
	ProblemSchema   ProblemKind = "schema"
	ProblemPath     ProblemKind = "path" // manifest id or version disagrees with its directory
)

// Problem is one verification finding for a package version.
type Problem struct {
	Kind    ProblemKind `json:"kind"`
	File    string      `json:"file,omitempty"`
	Message string      `json:"message"`
}

func (p Problem) String() string {
	if p.File == "" {
		return fmt.Sprintf("%s: %s", p.Kind, p.Message)
	}
	return fmt.Sprintf("%s: %s: %s", p.Kind, p.File, p.Message)
}

// Verify checks a published version against its directory. It returns the
// problems found, sorted by file name within each kind; an empty result means
// the version is consistent. The error is non-nil only if the directory could
// not be read.
func (r *Registry) Verify(e Entry) ([]Problem, error) {
	var problems []Problem

	raw, err := os.ReadFile(filepath.Join(e.Dir, manifest.FileName))
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	if err := manifest.Validate(raw); err != nil {
		problems = append(problems, Problem{Kind: ProblemSchema, Message: err.Error()})
	}

	m := e.Manifest
	if m == nil {
		if m, err = manifest.Parse(raw); err != nil {
			return append(problems, Problem{Kind: ProblemSchema, Message: err.Error()}), nil
		}
	}
	if m.ID != e.ID {
		problems = append(problems, Problem{Kind: ProblemPath, Message: fmt.Sprintf("manifest id %q in directory %q", m.ID, e.ID)})
	}
	if m.Version != e.Version {
		problems = append(problems, Problem{Kind: ProblemPath, Message: fmt.Sprintf("manifest version %q in directory %q", m.Version, e.Version)})
	}

	onDisk, err := readFiles(e.Dir)
	if err != nil {
		return nil, err
	}

	for _, name := range m.FileNames() {
		want := m.Files[name]
		content, ok := onDisk[name]
		if !ok {
			problems = append(problems, Problem{Kind: ProblemMissing, File: name, Message: "file not found"})
			continue
		}
		got := manifest.Digest(content)
		if got.SHA256 != want.SHA256 {
			problems = append(problems, Problem{Kind: ProblemDigest, File: name,
				Message: fmt.Sprintf("sha256 %s, manifest says %s", got.SHA256, want.SHA256)})
		}
		if got.Size != want.Size {
			problems = append(problems, Problem{Kind: ProblemSize, File: name,
				Message: fmt.Sprintf("%d bytes, manifest says %d", got.Size, want.Size)})
		}
	}
	for _, name := range sortedNames(onDisk) {
		if _, ok := m.Files[name]; !ok {
			problems = append(problems, Problem{Kind: ProblemUnlisted, File: name, Message: "not listed in manifest"})
		}
	}
	return problems, nil
}

// readFiles returns the contents of every file below dir except dep.json,
// keyed by slash-separated relative path.
func readFiles(dir string) (map[string]string, error) {
	files := make(map[string]string)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == manifest.FileName {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		files[rel] = string(data)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	return files, nil
}
