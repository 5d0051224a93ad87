package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Dheerajdoppalapudi/design-generator-sub000/internal/generator"
	"github.com/Dheerajdoppalapudi/design-generator-sub000/internal/llm"
)

// handleGenerateWireframe answers 200 for every parsed document, valid or
// not; the report is in the body.
func (s *Server) handleGenerateWireframe(w http.ResponseWriter, r *http.Request) {
	var req WireframeRequest
	if !s.decode(w, r, &req) {
		return
	}

	res, err := s.pipeline.GenerateWireframe(r.Context(), req.toGenerator())
	if err != nil {
		writePipelineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleGeneratePages(w http.ResponseWriter, r *http.Request) {
	var req PagesRequest
	if !s.decode(w, r, &req) {
		return
	}

	res, err := s.pipeline.GeneratePages(r.Context(), req.Description)
	if err != nil {
		writePipelineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if !s.decode(w, r, &req) {
		return
	}

	raw := req.Reply
	if strings.TrimSpace(raw) == "" {
		raw = string(req.Document)
	}
	if strings.TrimSpace(raw) == "" || raw == "null" {
		writeError(w, http.StatusBadRequest, "MISSING_DOCUMENT", "reply or document is required")
		return
	}

	res, err := s.pipeline.ProcessReply(raw, req.Description)
	if err != nil {
		writePipelineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// decode reads a JSON body into v, answering 400 on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	defer r.Body.Close()
	body := http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "BODY_TOO_LARGE",
				fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			return false
		}
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body: "+err.Error())
		return false
	}
	return true
}

// writePipelineError maps pipeline errors to status codes.
func writePipelineError(w http.ResponseWriter, err error) {
	var genErr *llm.GenerationError
	var parseErr *generator.UnparsableJSONError
	switch {
	case errors.Is(err, generator.ErrEmptyDescription):
		writeError(w, http.StatusBadRequest, "EMPTY_DESCRIPTION", err.Error())
	case errors.As(err, &parseErr):
		writeError(w, http.StatusUnprocessableEntity, "UNPARSABLE_REPLY", err.Error())
	case errors.As(err, &genErr):
		writeError(w, http.StatusBadGateway, "GENERATION_FAILED", err.Error())
	default:
		slog.Error("unexpected pipeline error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// writeJSON marshals v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("writeJSON encode error", "error", err)
	}
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: message, Code: code})
}
