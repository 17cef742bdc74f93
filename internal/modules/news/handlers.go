package news

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handlers contains HTTP handlers for news feeds
type Handlers struct {
	service *Service
	log     zerolog.Logger
}

// NewHandlers creates a new news handlers instance
func NewHandlers(service *Service, log zerolog.Logger) *Handlers {
	return &Handlers{
		service: service,
		log:     log.With().Str("handler", "news").Logger(),
	}
}

// Routes registers news routes
func (h *Handlers) Routes(r chi.Router) {
	r.Get("/", h.HandleGeneral)
}

// HandleGeneral returns general market headlines
// GET /api/news?limit=10
func (h *Handlers) HandleGeneral(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	headlines := h.service.General(limit)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"headlines": headlines})
}
