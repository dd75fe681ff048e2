package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/minhobin/mtt/internal/analyzer"
	"github.com/minhobin/mtt/internal/contracts"
	"github.com/minhobin/mtt/internal/report"
	"github.com/minhobin/mtt/pkg/logger"
)

// AnalysisHandler handles analysis API endpoints
// ⭐ SSOT: 분석 API 핸들러는 이 구조체에서만
type AnalysisHandler struct {
	analyzer *analyzer.Analyzer
	logger   *logger.Logger
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(a *analyzer.Analyzer, log *logger.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		analyzer: a,
		logger:   log,
	}
}

// AnalyzeRequest is the analyze request body
type AnalyzeRequest struct {
	Query string `json:"query"`
}

// AnalyzeResponse wraps an analysis report with its rendered text
type AnalyzeResponse struct {
	Success bool                      `json:"success"`
	Data    *contracts.AnalysisReport `json:"data"`
	Text    string                    `json:"text"`
}

// Analyze runs a trend-template analysis for free-text input
// POST /api/analyze {"query": "삼성전자"}
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		respondError(w, http.StatusBadRequest, "query is required")
		return
	}

	result, err := h.analyzer.Analyze(ctx, query)
	if err != nil {
		h.logger.WithError(err).WithField("query", query).Warn("Analysis failed")
		respondFailure(w, err)
		return
	}

	respondJSON(w, http.StatusOK, AnalyzeResponse{
		Success: true,
		Data:    result,
		Text:    report.Format(result.Stock.Name, result.DataDate, result.Checklist),
	})
}

// Suggest returns auto-suggest candidates for a partial query
// GET /api/suggest?q=삼성&limit=10
func (h *AnalysisHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		respondError(w, http.StatusBadRequest, "q is required")
		return
	}

	limit := 10
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if n, err := strconv.Atoi(limitStr); err == nil && n > 0 && n <= 50 {
			limit = n
		}
	}

	matches := h.analyzer.Suggest(query, limit)
	if matches == nil {
		matches = []contracts.Stock{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    matches,
	})
}
