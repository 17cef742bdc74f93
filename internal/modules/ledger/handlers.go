package ledger

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// PriceSource supplies live prices for order execution. A nil price with a
// nil error means the ticker is unknown or currently unpriced.
type PriceSource interface {
	GetLivePrice(symbol string) (*float64, error)
}

// Handlers contains HTTP handlers for the trading API
type Handlers struct {
	session *Session
	prices  PriceSource
	log     zerolog.Logger
}

// NewHandlers creates a new trading handlers instance
func NewHandlers(session *Session, prices PriceSource, log zerolog.Logger) *Handlers {
	return &Handlers{
		session: session,
		prices:  prices,
		log:     log.With().Str("handler", "trading").Logger(),
	}
}

// Routes registers trading routes
func (h *Handlers) Routes(r chi.Router) {
	r.Post("/buy", h.HandleBuy)
	r.Post("/sell", h.HandleSell)
	r.Get("/", h.HandleGetTransactions)
	r.Get("/{symbol}", h.HandleGetTransactionsForSymbol)
}

type orderRequest struct {
	Symbol   string  `json:"symbol"`
	Quantity float64 `json:"quantity"`
}

// HandleBuy executes a buy order at the current live price
// POST /api/trades/buy
func (h *Handlers) HandleBuy(w http.ResponseWriter, r *http.Request) {
	h.handleOrder(w, r, h.session.Buy)
}

// HandleSell executes a sell order at the current live price
// POST /api/trades/sell
func (h *Handlers) HandleSell(w http.ResponseWriter, r *http.Request) {
	h.handleOrder(w, r, h.session.Sell)
}

func (h *Handlers) handleOrder(w http.ResponseWriter, r *http.Request, execute func(string, float64, float64) (Transaction, error)) {
	var req orderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	symbol := NormalizeSymbol(req.Symbol)
	if symbol == "" {
		writeError(w, http.StatusBadRequest, "symbol is required")
		return
	}

	// The order executes at the live price looked up right now. No usable
	// price means the order is rejected before the session is touched.
	price, err := h.prices.GetLivePrice(symbol)
	if err != nil || price == nil {
		if err != nil {
			h.log.Warn().Err(err).Str("symbol", symbol).Msg("Price lookup failed")
		}
		writeLedgerError(w, ErrPriceUnavailable)
		return
	}

	txn, err := execute(symbol, req.Quantity, *price)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"transaction":  txn,
		"cash_balance": h.session.CashBalance(),
	})
}

// HandleGetTransactions returns the transaction log, newest first
// GET /api/trades
func (h *Handlers) HandleGetTransactions(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		if parsed, err := strconv.Atoi(limitParam); err == nil {
			limit = parsed
		}
	}

	writeJSON(w, http.StatusOK, h.session.Transactions(limit))
}

// HandleGetTransactionsForSymbol returns the log subsequence for one symbol
// GET /api/trades/{symbol}
func (h *Handlers) HandleGetTransactionsForSymbol(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")
	writeJSON(w, http.StatusOK, h.session.TransactionsFor(symbol))
}

// writeLedgerError maps ledger rejections to advisory HTTP responses
func writeLedgerError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrInvalidQuantity):
		status = http.StatusBadRequest
	case errors.Is(err, ErrUnknownAsset):
		status = http.StatusNotFound
	case errors.Is(err, ErrInsufficientFunds), errors.Is(err, ErrPriceUnavailable):
		status = http.StatusUnprocessableEntity
	}
	writeError(w, status, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
