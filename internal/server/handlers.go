package server

import (
	stderrors "errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Deps-Tech/deps-registry/pkg/manifest"
	"github.com/Deps-Tech/deps-registry/pkg/registry"
)

// CatalogResponse is the body of GET /v1/catalog.
type CatalogResponse struct {
	Packages int               `json:"packages"`
	Versions map[string]string `json:"versions"`
}

// PublishResponse is the body of a successful POST /v1/publish.
type PublishResponse struct {
	Key      string             `json:"key"`
	Title    string             `json:"title"`
	Branch   string             `json:"branch"`
	Summary  string             `json:"summary"`
	Manifest *manifest.Manifest `json:"manifest"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	snap := s.runner.Snapshot(r.Context())
	writeJSON(w, http.StatusOK, CatalogResponse{Packages: snap.Len(), Versions: snap.Versions()})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	files, err := s.readFiles(r)
	if s.rejectUpload(w, err) {
		return
	}
	res, err := s.runner.Analyze(r.Context(), files, r.FormValue("scanAll") == "true")
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleManifest(w http.ResponseWriter, r *http.Request) {
	req, err := s.readRequest(r)
	if s.rejectUpload(w, err) {
		return
	}
	res, err := s.runner.Build(r.Context(), req)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}

	data, err := manifest.Encode(res.Manifest)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handlePublish(w http.ResponseWriter, r *http.Request) {
	if len(s.publishers) == 0 {
		writeError(w, http.StatusNotImplemented, "publishing is not configured")
		return
	}
	req, err := s.readRequest(r)
	if s.rejectUpload(w, err) {
		return
	}
	res, err := s.runner.Build(r.Context(), req)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	if err := s.runner.Publish(r.Context(), res, s.publishers...); err != nil {
		s.writeFailure(w, r, err)
		return
	}

	summary, err := registry.Summary(res.Type, res.Manifest, res.Author)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	m := res.Manifest
	writeJSON(w, http.StatusCreated, PublishResponse{
		Key:      string(res.Type) + "/" + m.ID + "/" + m.Version,
		Title:    registry.Title(res.Type, m),
		Branch:   registry.Branch(res.Type, m, strconv.FormatInt(time.Now().UnixMilli(), 10)),
		Summary:  summary,
		Manifest: m,
	})
}

// rejectUpload writes a 400 for upload errors and reports whether it did.
// Other errors are written as failures.
func (s *Server) rejectUpload(w http.ResponseWriter, err error) bool {
	if err == nil {
		return false
	}
	var uerr *uploadError
	if stderrors.As(err, &uerr) {
		writeError(w, http.StatusBadRequest, uerr.msg)
		return true
	}
	writeError(w, http.StatusInternalServerError, err.Error())
	return true
}
