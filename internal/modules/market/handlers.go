package market

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handlers contains HTTP handlers for market data
type Handlers struct {
	service *Service
	log     zerolog.Logger
}

// NewHandlers creates a new market handlers instance
func NewHandlers(service *Service, log zerolog.Logger) *Handlers {
	return &Handlers{
		service: service,
		log:     log.With().Str("handler", "market").Logger(),
	}
}

// Routes registers market data routes
func (h *Handlers) Routes(r chi.Router) {
	r.Get("/trending", h.HandleTrending)
	r.Get("/sectors", h.HandleSectors)
}

// HandleTrending returns the current trending tickers
// GET /api/market/trending?count=10
func (h *Handlers) HandleTrending(w http.ResponseWriter, r *http.Request) {
	count := 10
	if raw := r.URL.Query().Get("count"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			count = n
		}
	}

	assets, err := h.service.Trending(count)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to fetch trending tickers")
		writeError(w, http.StatusBadGateway, "trending data unavailable")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"trending": assets})
}

// HandleSectors returns sector watchlists, or the ranked movers for one
// sector when the sector query parameter is present
// GET /api/market/sectors
// GET /api/market/sectors?sector=Tech
func (h *Handlers) HandleSectors(w http.ResponseWriter, r *http.Request) {
	sector := r.URL.Query().Get("sector")
	if sector == "" {
		writeJSON(w, http.StatusOK, map[string]interface{}{"sectors": h.service.Sectors()})
		return
	}

	movers, err := h.service.SectorMovers(sector)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, movers)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
