package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"dataguardian/internal/domain/models"
	"dataguardian/internal/domain/services"
	"dataguardian/pkg/logger"
)

// AnalyzeHandler handles profile analysis requests
type AnalyzeHandler struct {
	analyzer *services.Analyzer
	logger   *logger.Logger
}

// NewAnalyzeHandler creates a new AnalyzeHandler
func NewAnalyzeHandler(analyzer *services.Analyzer, log *logger.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer: analyzer,
		logger:   log.WithComponent("analyze-handler"),
	}
}

// Analyze handles POST /api/v1/analyze. Validation stops at the two
// required fields; everything beyond that degrades inside the pipeline
// rather than failing the request.
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var profile models.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		h.logger.Debug().Err(err).Msg("invalid request body")
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(profile.FullName) == "" {
		h.respondError(w, http.StatusBadRequest, "full_name is required")
		return
	}
	if strings.TrimSpace(profile.PrimaryEmail) == "" {
		h.respondError(w, http.StatusBadRequest, "primary_email is required")
		return
	}

	result := h.analyzer.Analyze(r.Context(), profile)
	h.respondJSON(w, http.StatusOK, result)
}

func (h *AnalyzeHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *AnalyzeHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
