package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/sozercan/datachat/apimodels"
	"github.com/sozercan/datachat/internal/analyzer"
	"github.com/sozercan/datachat/internal/dataset"
)

const maxUploadMemory = 32 << 20

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req apimodels.QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, apimodels.ErrorResponse{Detail: fmt.Sprintf("Invalid request: %v", err)})
		return
	}

	slog.Debug("Received query request", "prompt", req.Prompt)

	// A disconnecting client does not abort model calls in flight
	ctx := context.WithoutCancel(r.Context())
	answer, err := s.analyzer.Analyze(ctx, req.Prompt)
	if err != nil {
		slog.Warn("Query answered with fallback text", "error", err)
	}

	writeJSON(w, http.StatusOK, apimodels.QueryResponse{Response: analyzer.Respond(answer, err)})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeJSON(w, http.StatusBadRequest, apimodels.ErrorResponse{Detail: fmt.Sprintf("Invalid upload: %v", err)})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, apimodels.ErrorResponse{Detail: fmt.Sprintf("Missing file: %v", err)})
		return
	}
	defer file.Close()

	first, err := s.store.Replace(file)
	if err != nil {
		var parseErr *dataset.ParseError
		if errors.As(err, &parseErr) {
			slog.Warn("Rejected dataset upload", "filename", header.Filename, "error", err)
			writeJSON(w, http.StatusBadRequest, apimodels.ErrorResponse{Detail: fmt.Sprintf("Error processing file: %v", parseErr.Err)})
			return
		}
		slog.Error("Dataset upload failed", "filename", header.Filename, "error", err)
		writeJSON(w, http.StatusInternalServerError, apimodels.ErrorResponse{Detail: err.Error()})
		return
	}

	slog.Info("Dataset uploaded", "filename", header.Filename, "first_column", first)
	writeJSON(w, http.StatusOK, apimodels.UploadResponse{Message: first})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}
