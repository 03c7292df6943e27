package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/dmvaldez/finscope/internal/api/handlers"
	"github.com/dmvaldez/finscope/pkg/logger"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(h *handlers.Handler, log *logger.Logger) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/scan/market", h.ScanMarket).Methods("GET")
	api.HandleFunc("/scan/fundamentals", h.ScanFundamentals).Methods("GET")
	api.HandleFunc("/scan/dividends", h.ScanDividends).Methods("GET")
	api.HandleFunc("/scan/pe", h.ScanPE).Methods("GET")
	api.HandleFunc("/scan/peg", h.ScanPEG).Methods("GET")

	api.HandleFunc("/portfolio/analyze", h.AnalyzePortfolio).Methods("POST")
	api.HandleFunc("/multifactor", h.Multifactor).Methods("GET")

	// WebSocket endpoints stream progress while the run executes.
	api.HandleFunc("/ws/multifactor", h.MultifactorStream)
	api.HandleFunc("/ws/scan/fundamentals", h.FundamentalsStream)

	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

// healthCheckHandler returns server health status
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "finscope-api",
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
