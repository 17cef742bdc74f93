package advisor

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handlers contains HTTP handlers for the what-if simulator and the
// education content
type Handlers struct {
	service *Service
	log     zerolog.Logger
}

// NewHandlers creates a new advisor handlers instance
func NewHandlers(service *Service, log zerolog.Logger) *Handlers {
	return &Handlers{
		service: service,
		log:     log.With().Str("handler", "advisor").Logger(),
	}
}

// Routes registers what-if simulator routes
func (h *Handlers) Routes(r chi.Router) {
	r.Post("/chat", h.HandleChat)
	r.Post("/projection", h.HandleProjection)
}

// EducationRoutes registers education content routes
func (h *Handlers) EducationRoutes(r chi.Router) {
	r.Get("/tips", h.HandleTips)
	r.Get("/sectors", h.HandleSectors)
}

type chatRequest struct {
	Message string `json:"message"`
}

// HandleChat runs one simulator exchange
// POST /api/whatif/chat
func (h *Handlers) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	response, err := h.service.Chat(r.Context(), req.Message)
	if err != nil {
		if errors.Is(err, ErrNotConfigured) {
			writeError(w, http.StatusServiceUnavailable, "chat is not configured")
			return
		}
		h.log.Error().Err(err).Msg("Chat request failed")
		writeError(w, http.StatusBadGateway, "chat is unavailable right now")
		return
	}

	writeJSON(w, http.StatusOK, response)
}

type projectionRequest struct {
	MonthlyAmount float64 `json:"monthly_amount"`
	Months        int     `json:"months"`
	AnnualReturn  float64 `json:"annual_return"`
	Crash         bool    `json:"crash"`
	CrashMonth    int     `json:"crash_month"`
}

// HandleProjection runs a compound growth simulation for an explicit plan
// POST /api/whatif/projection
func (h *Handlers) HandleProjection(w http.ResponseWriter, r *http.Request) {
	var req projectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	projection, err := h.service.Project(req.MonthlyAmount, req.Months, req.AnnualReturn, req.Crash, req.CrashMonth)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, projection)
}

// HandleTips returns the rotating educational tips
// GET /api/education/tips
func (h *Handlers) HandleTips(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"tip":  h.service.NextTip(),
		"tips": h.service.Tips(),
	})
}

// HandleSectors returns the beginner sector explainers
// GET /api/education/sectors
func (h *Handlers) HandleSectors(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"sectors": h.service.SectorExplainers(),
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
