package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/Deps-Tech/deps-registry/pkg/errors"
	"github.com/Deps-Tech/deps-registry/pkg/registry"
)

// errorResponse is the body of every failed request.
type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeFailure maps a pipeline error to a status code.
func (s *Server) writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	var verr *errors.ValidationError
	switch {
	case stderrors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: verr.Error(), Field: verr.Field})
	case stderrors.Is(err, registry.ErrExists):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, errors.ErrCodeInvalidInput), errors.Is(err, errors.ErrCodeInvalidPath):
		writeError(w, http.StatusBadRequest, errors.UserMessage(err))
	default:
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
