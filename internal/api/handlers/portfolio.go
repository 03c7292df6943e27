package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/dmvaldez/finscope/internal/contracts"
	"github.com/dmvaldez/finscope/internal/universe"
)

// analyzeRequest is the POST /api/portfolio/analyze body.
type analyzeRequest struct {
	Weights      map[string]float64 `json:"weights"`
	LookbackDays int                `json:"lookback_days"`
}

// AnalyzePortfolio handles POST /api/portfolio/analyze.
func (h *Handler) AnalyzePortfolio(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.Weights) == 0 {
		respondError(w, http.StatusBadRequest, "weights are required")
		return
	}

	analysis, err := h.analyzer.Analyze(r.Context(), contracts.Weights(req.Weights), req.LookbackDays, nil)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, analysis)
}

// Multifactor handles GET /api/multifactor?market=nyse.
func (h *Handler) Multifactor(w http.ResponseWriter, r *http.Request) {
	symbols, err := h.marketSymbols(r, universe.FeatureMultifactor)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	result, err := h.scorer.Score(r.Context(), symbols, nil)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
