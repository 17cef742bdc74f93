package analytics

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handlers contains HTTP handlers for portfolio analytics
type Handlers struct {
	service *Service
	log     zerolog.Logger
}

// NewHandlers creates a new analytics handlers instance
func NewHandlers(service *Service, log zerolog.Logger) *Handlers {
	return &Handlers{
		service: service,
		log:     log.With().Str("handler", "portfolio").Logger(),
	}
}

// Routes registers portfolio routes
func (h *Handlers) Routes(r chi.Router) {
	r.Get("/", h.HandleSummary)
	r.Get("/history", h.HandleHistory)
	r.Get("/themes", h.HandleThemes)
	r.Get("/risk", h.HandleRisk)
	r.Get("/health", h.HandleDiversification)
	r.Get("/dividends", h.HandleDividends)
}

// HandleSummary returns the full priced portfolio
// GET /api/portfolio
func (h *Handlers) HandleSummary(w http.ResponseWriter, r *http.Request) {
	summary := h.service.Summary()

	// Page views opportunistically sample the growth series; the session
	// enforces the minimum interval.
	h.service.session.AppendSnapshot(time.Now(), summary.TotalValue)

	writeJSON(w, http.StatusOK, summary)
}

// HandleHistory returns the snapshot series and growth stats
// GET /api/portfolio/history
func (h *Handlers) HandleHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.PerformanceSummary())
}

// HandleThemes returns the per-theme exposure breakdown
// GET /api/portfolio/themes
func (h *Handlers) HandleThemes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.ThemeBreakdown())
}

// HandleRisk returns the volatile-asset risk rating
// GET /api/portfolio/risk
func (h *Handlers) HandleRisk(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.RiskIndicator())
}

// HandleDiversification returns the portfolio health score
// GET /api/portfolio/health
func (h *Handlers) HandleDiversification(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.DiversificationScore())
}

// HandleDividends returns the estimated monthly dividend income
// GET /api/portfolio/dividends
func (h *Handlers) HandleDividends(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"estimated_monthly_dividends": h.service.EstimatedMonthlyDividends(),
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
