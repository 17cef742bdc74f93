package ledger

import (
	"errors"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/zentra/paper-trader/internal/events"
)

// Recoverable order rejections. All of them leave session state untouched and
// are reported to the user as advisory messages.
var (
	ErrPriceUnavailable  = errors.New("live price unavailable")
	ErrInsufficientFunds = errors.New("insufficient cash balance")
	ErrInvalidQuantity   = errors.New("invalid quantity")
	ErrUnknownAsset      = errors.New("asset not held")
)

// Share quantities are stored at a fixed precision. Anything at or below zero
// after rounding drops out of the holdings map.
const quantityPrecision = 6

// Snapshots are sampled at most once per interval. The log is trimmed to a
// bounded window so a long-lived session cannot grow it without limit.
const (
	snapshotMinInterval = 60 * time.Second
	snapshotMaxEntries  = 10080 // one week at one sample per minute
)

// Session owns the simulated account for one user: cash balance, holdings,
// the append-only transaction log and the portfolio value snapshot log. It is
// the single point of mutation for all of them; every write is serialized
// behind the mutex.
type Session struct {
	mu           sync.Mutex
	startingCash decimal.Decimal
	cash         decimal.Decimal
	holdings     map[string]decimal.Decimal
	transactions []Transaction
	snapshots    []Snapshot

	events *events.Manager
	log    zerolog.Logger
}

// NewSession creates a session funded with the starting cash amount
func NewSession(startingCash float64, ev *events.Manager, log zerolog.Logger) *Session {
	start := decimal.NewFromFloat(startingCash)
	return &Session{
		startingCash: start,
		cash:         start,
		holdings:     make(map[string]decimal.Decimal),
		events:       ev,
		log:          log.With().Str("component", "ledger").Logger(),
	}
}

// Buy executes a buy order at the supplied live price. The price comes from
// the market data lookup at call time; callers reject the order with
// ErrPriceUnavailable before touching the session when no price resolved.
func (s *Session) Buy(symbol string, quantity, unitPrice float64) (Transaction, error) {
	symbol = NormalizeSymbol(symbol)

	qty := decimal.NewFromFloat(quantity).Round(quantityPrecision)
	if !qty.IsPositive() {
		return Transaction{}, ErrInvalidQuantity
	}

	price, err := toPrice(unitPrice)
	if err != nil {
		return Transaction{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cost := price.Mul(qty)
	if cost.GreaterThan(s.cash) {
		return Transaction{}, ErrInsufficientFunds
	}

	_, alreadyHeld := s.holdings[symbol]

	s.cash = s.cash.Sub(cost)
	s.holdings[symbol] = s.holdings[symbol].Add(qty).Round(quantityPrecision)

	txn := s.appendTransaction(symbol, TradeSideBuy, qty, price, cost)

	s.log.Info().
		Str("symbol", symbol).
		Str("quantity", qty.String()).
		Str("price", price.String()).
		Msg("Buy executed")

	s.emitTrade(txn)
	if !alreadyHeld {
		s.events.Emit(events.AssetFirstTraded, "ledger", map[string]interface{}{
			"symbol": symbol,
		})
	}

	return txn, nil
}

// Sell executes a sell order at the supplied live price
func (s *Session) Sell(symbol string, quantity, unitPrice float64) (Transaction, error) {
	symbol = NormalizeSymbol(symbol)

	qty := decimal.NewFromFloat(quantity).Round(quantityPrecision)

	price, err := toPrice(unitPrice)
	if err != nil {
		return Transaction{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	held, ok := s.holdings[symbol]
	if !ok {
		return Transaction{}, ErrUnknownAsset
	}
	if !qty.IsPositive() || qty.GreaterThan(held) {
		return Transaction{}, ErrInvalidQuantity
	}

	proceeds := price.Mul(qty)
	s.cash = s.cash.Add(proceeds)

	remaining := held.Sub(qty).Round(quantityPrecision)
	if remaining.IsPositive() {
		s.holdings[symbol] = remaining
	} else {
		delete(s.holdings, symbol)
	}

	txn := s.appendTransaction(symbol, TradeSideSell, qty, price, proceeds)

	s.log.Info().
		Str("symbol", symbol).
		Str("quantity", qty.String()).
		Str("price", price.String()).
		Msg("Sell executed")

	s.emitTrade(txn)

	return txn, nil
}

// CashBalance returns the current cash balance
func (s *Session) CashBalance() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cash
}

// StartingCash returns the initial funding amount
func (s *Session) StartingCash() decimal.Decimal {
	return s.startingCash
}

// CurrentHoldings returns a copy of the holdings, sorted by symbol. The live
// map never leaves the session.
func (s *Session) CurrentHoldings() []Holding {
	s.mu.Lock()
	defer s.mu.Unlock()

	holdings := make([]Holding, 0, len(s.holdings))
	for symbol, qty := range s.holdings {
		holdings = append(holdings, Holding{Symbol: symbol, Quantity: qty})
	}
	sort.Slice(holdings, func(i, j int) bool {
		return holdings[i].Symbol < holdings[j].Symbol
	})

	return holdings
}

// HeldQuantity returns the stored quantity for a symbol, zero when not held
func (s *Session) HeldQuantity(symbol string) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.holdings[NormalizeSymbol(symbol)]
}

// HoldingCount returns the number of distinct held assets
func (s *Session) HoldingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.holdings)
}

// Transactions returns the most recent transactions, newest first. A limit of
// zero or less returns the full log.
func (s *Session) Transactions(limit int) []Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.transactions)
	if limit <= 0 || limit > n {
		limit = n
	}

	out := make([]Transaction, limit)
	for i := 0; i < limit; i++ {
		out[i] = s.transactions[n-1-i]
	}
	return out
}

// TransactionsFor returns the ordered subsequence of the log for one symbol.
// No transactions is an empty slice, not an error.
func (s *Session) TransactionsFor(symbol string) []Transaction {
	symbol = NormalizeSymbol(symbol)

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Transaction, 0)
	for _, txn := range s.transactions {
		if txn.Symbol == symbol {
			out = append(out, txn)
		}
	}
	return out
}

// TransactionCount returns the length of the transaction log
func (s *Session) TransactionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.transactions)
}

// AppendSnapshot records a portfolio value sample. It is rate-limited: the
// sample is dropped unless the log is empty or the minimum interval has
// elapsed since the last entry. Returns whether the sample was kept.
func (s *Session) AppendSnapshot(at time.Time, value decimal.Decimal) bool {
	s.mu.Lock()

	if n := len(s.snapshots); n > 0 {
		last := s.snapshots[n-1].Timestamp
		if at.Sub(last) < snapshotMinInterval {
			s.mu.Unlock()
			return false
		}
	}

	s.snapshots = append(s.snapshots, Snapshot{Timestamp: at, Value: value})
	if len(s.snapshots) > snapshotMaxEntries {
		s.snapshots = s.snapshots[len(s.snapshots)-snapshotMaxEntries:]
	}
	s.mu.Unlock()

	// Emitted outside the lock; handlers may read session state
	s.events.Emit(events.SnapshotRecorded, "ledger", map[string]interface{}{
		"value": value.InexactFloat64(),
	})
	return true
}

// Snapshots returns a copy of the snapshot log, oldest first
func (s *Session) Snapshots() []Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Snapshot, len(s.snapshots))
	copy(out, s.snapshots)
	return out
}

// appendTransaction appends a record to the log. Caller holds the mutex.
func (s *Session) appendTransaction(symbol string, side TradeSide, qty, price, total decimal.Decimal) Transaction {
	txn := Transaction{
		ID:         uuid.NewString(),
		Symbol:     symbol,
		Side:       side,
		Quantity:   qty,
		Price:      price,
		Total:      total,
		ExecutedAt: time.Now(),
	}
	s.transactions = append(s.transactions, txn)
	return txn
}

func (s *Session) emitTrade(txn Transaction) {
	s.events.Emit(events.TradeExecuted, "ledger", map[string]interface{}{
		"symbol":   txn.Symbol,
		"side":     string(txn.Side),
		"quantity": txn.Quantity.InexactFloat64(),
		"price":    txn.Price.InexactFloat64(),
		"total":    txn.Total.InexactFloat64(),
	})
}

func toPrice(unitPrice float64) (decimal.Decimal, error) {
	if unitPrice <= 0 || math.IsNaN(unitPrice) || math.IsInf(unitPrice, 0) {
		return decimal.Decimal{}, ErrPriceUnavailable
	}
	return decimal.NewFromFloat(unitPrice), nil
}

// NormalizeSymbol canonicalizes a ticker symbol
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
