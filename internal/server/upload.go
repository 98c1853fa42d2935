package server

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/Deps-Tech/deps-registry/pkg/analysis"
	"github.com/Deps-Tech/deps-registry/pkg/errors"
	"github.com/Deps-Tech/deps-registry/pkg/pipeline"
	"github.com/Deps-Tech/deps-registry/pkg/registry"
)

// maxMemory is the part of a multipart body kept in memory; the rest spills
// to temporary files.
const maxMemory = 32 << 20

// uploadError is a client error detected before analysis.
type uploadError struct{ msg string }

func (e *uploadError) Error() string { return e.msg }

func badUpload(format string, args ...any) error {
	return &uploadError{msg: fmt.Sprintf(format, args...)}
}

// readFiles parses the multipart form and decodes every "files" part.
// A request without files yields an empty slice; the builder reports it.
func (s *Server) readFiles(r *http.Request) ([]analysis.SourceFile, error) {
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		return nil, badUpload("invalid multipart form: %v", err)
	}

	headers := r.MultipartForm.File["files"]
	for _, h := range headers {
		if err := errors.ValidateScriptFilename(h.Filename); err != nil {
			return nil, badUpload("File %s is not a .lua file", h.Filename)
		}
		if h.Size > s.maxFileSize {
			return nil, badUpload("File %s exceeds %s limit", h.Filename, formatSize(s.maxFileSize))
		}
	}

	files := make([]analysis.SourceFile, 0, len(headers))
	for _, h := range headers {
		data, err := readPart(h, s.maxFileSize)
		if err != nil {
			return nil, err
		}
		files = append(files, analysis.DecodeSource(h.Filename, data))
	}
	return files, nil
}

func readPart(h *multipart.FileHeader, limit int64) ([]byte, error) {
	f, err := h.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", h.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", h.Filename, err)
	}
	if int64(len(data)) > limit {
		return nil, badUpload("File %s exceeds %s limit", h.Filename, formatSize(limit))
	}
	return data, nil
}

// readRequest turns a manifest upload into a pipeline request.
func (s *Server) readRequest(r *http.Request) (pipeline.Request, error) {
	files, err := s.readFiles(r)
	if err != nil {
		return pipeline.Request{}, err
	}

	typ, err := registry.ParseType(r.FormValue("type"))
	if err != nil {
		return pipeline.Request{}, badUpload("%s", errors.UserMessage(err))
	}

	req := pipeline.Request{
		Files:     files,
		Type:      typ,
		Tags:      pipeline.ParseTags(r.FormValue("tags")),
		SourceURL: r.FormValue("sourceUrl"),
		ScanAll:   r.FormValue("scanAll") == "true",
	}
	if req.SourceURL != "" {
		if err := errors.ValidateURL(req.SourceURL); err != nil {
			return pipeline.Request{}, badUpload("sourceUrl: %s", errors.UserMessage(err))
		}
	}
	if raw := r.FormValue("metadata"); raw != "" {
		var o pipeline.Overrides
		if err := json.Unmarshal([]byte(raw), &o); err != nil {
			return pipeline.Request{}, badUpload("invalid metadata: %v", err)
		}
		req.Overrides = &o
	}
	return req, nil
}

func formatSize(n int64) string {
	switch {
	case n >= 1<<20 && n%(1<<20) == 0:
		return fmt.Sprintf("%dMB", n>>20)
	case n >= 1<<10 && n%(1<<10) == 0:
		return fmt.Sprintf("%dKB", n>>10)
	}
	return fmt.Sprintf("%d bytes", n)
}
