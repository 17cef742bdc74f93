package dashboards

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handlers contains HTTP handlers for asset dashboards
type Handlers struct {
	service *Service
	log     zerolog.Logger
}

// NewHandlers creates a new dashboards handlers instance
func NewHandlers(service *Service, log zerolog.Logger) *Handlers {
	return &Handlers{
		service: service,
		log:     log.With().Str("handler", "dashboards").Logger(),
	}
}

// Routes registers asset dashboard routes
func (h *Handlers) Routes(r chi.Router) {
	r.Get("/", h.HandleList)
	r.Get("/{symbol}", h.HandleDashboard)
	r.Get("/{symbol}/trend", h.HandleTrend)
	r.Get("/{symbol}/news", h.HandleNews)
}

// HandleList returns all assets that have dashboards
// GET /api/assets
func (h *Handlers) HandleList(w http.ResponseWriter, r *http.Request) {
	assets, err := h.service.List()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list dashboards")
		writeError(w, http.StatusInternalServerError, "failed to list assets")
		return
	}

	if assets == nil {
		assets = []RegisteredAsset{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"assets": assets})
}

// HandleDashboard returns the aggregated view for one asset
// GET /api/assets/{symbol}
func (h *Handlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	dashboard, err := h.service.Dashboard(symbol)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dashboard)
}

// HandleTrend returns the price trend with moving average overlay
// GET /api/assets/{symbol}/trend?period=6mo
func (h *Handlers) HandleTrend(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")
	period := r.URL.Query().Get("period")

	series, err := h.service.Trend(symbol, period)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, series)
}

// HandleNews returns recent headlines for one asset
// GET /api/assets/{symbol}/news?limit=5
func (h *Handlers) HandleNews(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	limit := newsPerDashboard
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	headlines, err := h.service.News(symbol, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"headlines": headlines})
}

func writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNotRegistered) {
		writeError(w, http.StatusNotFound, "asset has not been traded yet")
		return
	}
	writeError(w, http.StatusBadGateway, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
