package handlers

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/dmvaldez/finscope/internal/contracts"
	"github.com/dmvaldez/finscope/internal/universe"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// streamMessage is one frame of a progress stream. Type is "progress"
// while the run executes, then a final "result" or "error".
type streamMessage struct {
	Type     string      `json:"type"`
	Fraction float64     `json:"fraction,omitempty"`
	Message  string      `json:"message,omitempty"`
	Data     interface{} `json:"data,omitempty"`
	Error    string      `json:"error,omitempty"`
}

// MultifactorStream handles GET /api/ws/multifactor: upgrades to a
// websocket, streams progress frames while the model runs, then sends
// the result and closes.
func (h *Handler) MultifactorStream(w http.ResponseWriter, r *http.Request) {
	h.streamRun(w, r, universe.FeatureMultifactor, func(symbols []string, progress contracts.ProgressFunc) (interface{}, error) {
		return h.scorer.Score(r.Context(), symbols, progress)
	})
}

// FundamentalsStream handles GET /api/ws/scan/fundamentals with the
// same frame protocol.
func (h *Handler) FundamentalsStream(w http.ResponseWriter, r *http.Request) {
	h.streamRun(w, r, universe.FeatureFundamentals, func(symbols []string, progress contracts.ProgressFunc) (interface{}, error) {
		return h.fundamentals.Scan(r.Context(), symbols, progress)
	})
}

func (h *Handler) streamRun(w http.ResponseWriter, r *http.Request, feature universe.Feature, run func([]string, contracts.ProgressFunc) (interface{}, error)) {
	symbols, err := h.marketSymbols(r, feature)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Warn("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	// Progress callbacks arrive from the run's goroutine; gorilla
	// connections allow one concurrent writer.
	var mu sync.Mutex
	send := func(msg streamMessage) {
		mu.Lock()
		defer mu.Unlock()
		if err := conn.WriteJSON(msg); err != nil {
			h.logger.WithError(err).Debug("WebSocket write failed")
		}
	}

	result, err := run(symbols, func(fraction float64, message string) {
		send(streamMessage{Type: "progress", Fraction: fraction, Message: message})
	})
	if err != nil {
		send(streamMessage{Type: "error", Error: err.Error()})
		return
	}
	send(streamMessage{Type: "result", Data: result})
}
