package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/dmvaldez/finscope/internal/contracts"
	"github.com/dmvaldez/finscope/internal/factor"
	"github.com/dmvaldez/finscope/internal/portfolio"
	"github.com/dmvaldez/finscope/internal/scan"
	"github.com/dmvaldez/finscope/internal/universe"
	"github.com/dmvaldez/finscope/pkg/logger"
)

// Handler bundles the analytic services behind the HTTP API.
type Handler struct {
	catalog      *universe.Catalog
	market       *scan.MarketScanner
	fundamentals *scan.FundamentalsScanner
	dividends    *scan.DividendScanner
	valuation    *scan.ValuationScanner
	analyzer     *portfolio.Analyzer
	scorer       *factor.Scorer
	logger       *logger.Logger
}

// New creates a new API handler.
func New(
	catalog *universe.Catalog,
	market *scan.MarketScanner,
	fundamentals *scan.FundamentalsScanner,
	dividends *scan.DividendScanner,
	valuation *scan.ValuationScanner,
	analyzer *portfolio.Analyzer,
	scorer *factor.Scorer,
	log *logger.Logger,
) *Handler {
	return &Handler{
		catalog:      catalog,
		market:       market,
		fundamentals: fundamentals,
		dividends:    dividends,
		valuation:    valuation,
		analyzer:     analyzer,
		scorer:       scorer,
		logger:       log,
	}
}

// marketSymbols resolves the ?market= query into a symbol list.
func (h *Handler) marketSymbols(r *http.Request, feature universe.Feature) ([]string, error) {
	market := universe.Market(r.URL.Query().Get("market"))
	if market == "" {
		market = universe.MarketNYSE
	}
	return h.catalog.Symbols(market, feature)
}

// ScanMarket handles GET /api/scan/market?market=nyse&window=30.
// Without a window parameter every default window is scanned.
func (h *Handler) ScanMarket(w http.ResponseWriter, r *http.Request) {
	symbols, err := h.marketSymbols(r, universe.FeatureMarket)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	if windowParam := r.URL.Query().Get("window"); windowParam != "" {
		windowDays, err := strconv.Atoi(windowParam)
		if err != nil {
			respondError(w, http.StatusBadRequest, "window must be an integer day count")
			return
		}
		result, err := h.market.Scan(r.Context(), symbols, windowDays)
		if err != nil {
			respondDomainError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, result)
		return
	}

	results, err := h.market.ScanAll(r.Context(), symbols, nil)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"windows": results})
}

// ScanFundamentals handles GET /api/scan/fundamentals?market=nyse.
func (h *Handler) ScanFundamentals(w http.ResponseWriter, r *http.Request) {
	symbols, err := h.marketSymbols(r, universe.FeatureFundamentals)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	results, err := h.fundamentals.Scan(r.Context(), symbols, nil)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"rankings": results})
}

// ScanDividends handles GET /api/scan/dividends?market=nyse&lookback_days=365.
func (h *Handler) ScanDividends(w http.ResponseWriter, r *http.Request) {
	symbols, err := h.marketSymbols(r, universe.FeatureDividends)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	lookbackDays, _ := strconv.Atoi(r.URL.Query().Get("lookback_days"))
	result, err := h.dividends.Scan(r.Context(), symbols, lookbackDays, nil)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// ScanPE handles GET /api/scan/pe?market=nyse.
func (h *Handler) ScanPE(w http.ResponseWriter, r *http.Request) {
	symbols, err := h.marketSymbols(r, universe.FeaturePE)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	result, err := h.valuation.ScanPE(r.Context(), symbols, nil)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// ScanPEG handles GET /api/scan/peg?market=nyse.
func (h *Handler) ScanPEG(w http.ResponseWriter, r *http.Request) {
	symbols, err := h.marketSymbols(r, universe.FeaturePEG)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	result, err := h.valuation.ScanPEG(r.Context(), symbols, nil)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondDomainError maps domain errors onto HTTP statuses: bad input
// is the caller's fault, thin data is unprocessable, the rest is
// upstream trouble.
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case contracts.IsConfigError(err):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, contracts.ErrInsufficientData),
		errors.Is(err, contracts.ErrInsufficientUniverse):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		respondError(w, http.StatusBadGateway, err.Error())
	}
}
