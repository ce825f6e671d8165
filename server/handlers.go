package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/xhad/askdocs/internal/types"
	"github.com/xhad/askdocs/pkg/loader"
	"github.com/xhad/askdocs/pkg/pipeline"
)

type ingestResponse struct {
	NumChunks int `json:"num_chunks"`
}

type urlsRequest struct {
	URLs []string `json:"urls"`
}

type queryRequest struct {
	Query string `json:"query"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

// statusForError maps the pipeline's error taxonomy onto HTTP statuses:
// client input problems are 400, upstream and processing failures are 500.
func statusForError(err error) int {
	var unsupported *loader.UnsupportedFileError
	var tooMany *loader.TooManyURLsError

	switch {
	case errors.Is(err, pipeline.ErrNotReady),
		errors.As(err, &unsupported),
		errors.As(err, &tooMany):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleUploadFiles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if err := r.ParseMultipartForm(s.config.MaxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart request")
		return
	}
	defer r.MultipartForm.RemoveAll()

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		writeError(w, http.StatusBadRequest, "no files provided")
		return
	}

	uploads := make([]types.Upload, 0, len(headers))
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			writeError(w, http.StatusBadRequest, "failed to read upload "+header.Filename)
			return
		}
		defer f.Close()

		uploads = append(uploads, types.Upload{Name: header.Filename, Body: f})
	}

	count, err := s.pipeline.IngestFiles(r.Context(), uploads)
	if err != nil {
		slog.Error("file ingestion failed", "error", err)
		writeError(w, statusForError(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, ingestResponse{NumChunks: count})
}

func (s *Server) handleProcessURLs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req urlsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	count, err := s.pipeline.IngestURLs(r.Context(), req.URLs)
	if err != nil {
		slog.Error("URL ingestion failed", "error", err)
		writeError(w, statusForError(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, ingestResponse{NumChunks: count})
}

func (s *Server) handleGenerateResponse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	answer, err := s.pipeline.Answer(r.Context(), req.Query)
	if err != nil {
		slog.Error("answer generation failed", "error", err)
		writeError(w, statusForError(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, answer)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
