package catalog

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handlers contains HTTP handlers for the symbol directory
type Handlers struct {
	repo *Repository
	log  zerolog.Logger
}

// NewHandlers creates a new catalog handlers instance
func NewHandlers(repo *Repository, log zerolog.Logger) *Handlers {
	return &Handlers{
		repo: repo,
		log:  log.With().Str("handler", "catalog").Logger(),
	}
}

// Routes registers catalog routes
func (h *Handlers) Routes(r chi.Router) {
	r.Get("/", h.HandleSearch)
}

// HandleSearch returns the directory, filtered when a query is present
// GET /api/catalog?q=apple&limit=25
func (h *Handlers) HandleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	var entries []Entry
	var err error
	if q == "" {
		entries, err = h.repo.List()
	} else {
		entries, err = h.repo.Search(q, limit)
	}
	if err != nil {
		h.log.Error().Err(err).Msg("Catalog query failed")
		writeError(w, http.StatusInternalServerError, "catalog unavailable")
		return
	}

	if entries == nil {
		entries = []Entry{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"symbols": entries})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
