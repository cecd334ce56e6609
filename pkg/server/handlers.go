package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mnemoslabs/mnemos/pkg/memory"
)

type extractRequest struct {
	// Messages is intentionally loose: non-string entries are dropped by
	// the extractor's sanitization rather than rejected wholesale.
	Messages []any `json:"messages"`
}

type extractResponse struct {
	memory.ExtractionResult
	StorageWarning      string `json:"storage_warning,omitempty"`
	StorageWarningFacts string `json:"storage_warning_facts,omitempty"`
}

type transformRequest struct {
	Text string `json:"text"`
	Tone string `json:"tone"`
}

type transformResponse struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if len(req.Messages) == 0 {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "'messages' must be a non-empty list"})
		return
	}

	result := s.extractor.Extract(r.Context(), req.Messages)
	resp := extractResponse{ExtractionResult: result}

	// Persistence failures become warnings on the response; the extraction
	// result always reaches the caller.
	if err := s.store.WritePreferencesPatterns(r.Context(), result.Preferences, result.EmotionalPatterns); err != nil {
		s.logger.Error("Failed to store preferences and patterns", "error", err)
		resp.StorageWarning = "failed storing preferences/patterns: " + err.Error()
	}
	if err := s.store.WriteFacts(r.Context(), result.Facts); err != nil {
		s.logger.Error("Failed to store facts", "error", err)
		resp.StorageWarningFacts = "failed storing facts: " + err.Error()
	}

	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTransform(w http.ResponseWriter, r *http.Request) {
	var req transformRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing 'text'"})
		return
	}

	memories := s.store.RetrieveRelevant(r.Context(), req.Text, relevantMemoriesLimit)
	facts := s.store.RetrieveRecentFacts(r.Context(), recentFactsLimit)

	before, err := s.engine.Answer(r.Context(), req.Text, memories.Items, facts.Items)
	if err != nil {
		s.logger.Error("Answer generation failed", "error", err)
		s.writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
		return
	}

	after := s.engine.Rewrite(r.Context(), before, req.Tone)

	s.writeJSON(w, http.StatusOK, transformResponse{Before: before, After: after})
}

func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) {
	body, err := s.models.ListModels(r.Context())
	if err != nil {
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("Failed to encode response", "error", err)
	}
}
