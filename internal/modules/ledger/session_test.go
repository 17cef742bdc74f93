package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zentra/paper-trader/internal/events"
	"github.com/zentra/paper-trader/pkg/logger"
)

func newTestSession(startingCash float64) *Session {
	log := logger.New(logger.Config{Level: "error", Pretty: false})
	return NewSession(startingCash, events.NewManager(log), log)
}

func TestBuyThenSellScenario(t *testing.T) {
	s := newTestSession(100000)

	// Buy 5 shares of X at $100
	if _, err := s.Buy("X", 5, 100); err != nil {
		t.Fatalf("Buy failed: %v", err)
	}

	if got := s.CashBalance(); !got.Equal(decimal.NewFromInt(99500)) {
		t.Errorf("Expected cash 99500, got %s", got)
	}
	if got := s.HeldQuantity("X"); !got.Equal(decimal.NewFromInt(5)) {
		t.Errorf("Expected 5 shares of X, got %s", got)
	}
	if got := s.TransactionCount(); got != 1 {
		t.Errorf("Expected 1 transaction, got %d", got)
	}

	// Sell 2 shares of X at $120
	if _, err := s.Sell("X", 2, 120); err != nil {
		t.Fatalf("Sell failed: %v", err)
	}

	if got := s.CashBalance(); !got.Equal(decimal.NewFromInt(99740)) {
		t.Errorf("Expected cash 99740, got %s", got)
	}
	if got := s.HeldQuantity("X"); !got.Equal(decimal.NewFromInt(3)) {
		t.Errorf("Expected 3 shares of X, got %s", got)
	}
	if got := s.TransactionCount(); got != 2 {
		t.Errorf("Expected 2 transactions, got %d", got)
	}
}

func TestBuySellSameQuantityRestoresCash(t *testing.T) {
	s := newTestSession(100000)

	if _, err := s.Buy("AAPL", 3.141593, 173.37); err != nil {
		t.Fatalf("Buy failed: %v", err)
	}
	if _, err := s.Sell("AAPL", 3.141593, 173.37); err != nil {
		t.Fatalf("Sell failed: %v", err)
	}

	if got := s.CashBalance(); !got.Equal(s.StartingCash()) {
		t.Errorf("Expected cash restored to %s, got %s", s.StartingCash(), got)
	}
	if got := s.HoldingCount(); got != 0 {
		t.Errorf("Expected empty holdings, got %d entries", got)
	}
}

func TestBuyRejections(t *testing.T) {
	tests := []struct {
		name     string
		quantity float64
		price    float64
		wantErr  error
	}{
		{name: "zero quantity", quantity: 0, price: 100, wantErr: ErrInvalidQuantity},
		{name: "negative quantity", quantity: -2, price: 100, wantErr: ErrInvalidQuantity},
		{name: "zero price", quantity: 1, price: 0, wantErr: ErrPriceUnavailable},
		{name: "cost exceeds cash", quantity: 2000, price: 100, wantErr: ErrInsufficientFunds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(100000)

			_, err := s.Buy("MSFT", tt.quantity, tt.price)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Expected %v, got %v", tt.wantErr, err)
			}

			// Rejected orders leave state untouched
			if !s.CashBalance().Equal(s.StartingCash()) {
				t.Errorf("Cash mutated on rejected buy: %s", s.CashBalance())
			}
			if s.TransactionCount() != 0 {
				t.Errorf("Rejected buy appended to the log")
			}
			if s.HoldingCount() != 0 {
				t.Errorf("Rejected buy created a holding")
			}
		})
	}
}

func TestSellRejections(t *testing.T) {
	s := newTestSession(100000)
	if _, err := s.Buy("NVDA", 4, 500); err != nil {
		t.Fatalf("Buy failed: %v", err)
	}
	cashAfterBuy := s.CashBalance()

	tests := []struct {
		name     string
		symbol   string
		quantity float64
		price    float64
		wantErr  error
	}{
		{name: "not held", symbol: "TSLA", quantity: 1, price: 200, wantErr: ErrUnknownAsset},
		{name: "zero quantity", symbol: "NVDA", quantity: 0, price: 500, wantErr: ErrInvalidQuantity},
		{name: "exceeds holding", symbol: "NVDA", quantity: 4.000001, price: 500, wantErr: ErrInvalidQuantity},
		{name: "price unavailable", symbol: "NVDA", quantity: 1, price: -1, wantErr: ErrPriceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Sell(tt.symbol, tt.quantity, tt.price)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Expected %v, got %v", tt.wantErr, err)
			}
			if !s.CashBalance().Equal(cashAfterBuy) {
				t.Errorf("Cash mutated on rejected sell: %s", s.CashBalance())
			}
			if s.TransactionCount() != 1 {
				t.Errorf("Rejected sell appended to the log")
			}
		})
	}
}

func TestQuantityRoundingAndRemoval(t *testing.T) {
	s := newTestSession(100000)

	// Quantities are rounded to 6 decimal places after every mutation
	if _, err := s.Buy("ETH-USD", 0.12345649, 2000); err != nil {
		t.Fatalf("Buy failed: %v", err)
	}
	want := decimal.RequireFromString("0.123456")
	if got := s.HeldQuantity("ETH-USD"); !got.Equal(want) {
		t.Errorf("Expected %s after rounding, got %s", want, got)
	}

	// Selling down to zero removes the entry entirely
	if _, err := s.Sell("ETH-USD", 0.123456, 2100); err != nil {
		t.Fatalf("Sell failed: %v", err)
	}
	if got := s.HoldingCount(); got != 0 {
		t.Errorf("Expected holding removed at zero, got %d entries", got)
	}
	if got := s.HeldQuantity("ETH-USD"); !got.IsZero() {
		t.Errorf("Expected zero quantity for removed asset, got %s", got)
	}
}

func TestHoldingsAccumulateAcrossBuys(t *testing.T) {
	s := newTestSession(100000)

	for i := 0; i < 3; i++ {
		if _, err := s.Buy("SPY", 1.5, 400); err != nil {
			t.Fatalf("Buy %d failed: %v", i, err)
		}
	}
	if _, err := s.Sell("SPY", 2, 410); err != nil {
		t.Fatalf("Sell failed: %v", err)
	}

	// round(sum of buys - sum of sells, 6)
	want := decimal.RequireFromString("2.5")
	if got := s.HeldQuantity("SPY"); !got.Equal(want) {
		t.Errorf("Expected %s shares, got %s", want, got)
	}
	if got := s.TransactionCount(); got != 4 {
		t.Errorf("Expected 4 transactions, got %d", got)
	}
}

func TestTransactionQueries(t *testing.T) {
	s := newTestSession(100000)

	if _, err := s.Buy("AAPL", 1, 150); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Buy("MSFT", 2, 300); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Sell("AAPL", 1, 160); err != nil {
		t.Fatal(err)
	}

	// Newest first with limit
	recent := s.Transactions(2)
	if len(recent) != 2 {
		t.Fatalf("Expected 2 transactions, got %d", len(recent))
	}
	if recent[0].Symbol != "AAPL" || recent[0].Side != TradeSideSell {
		t.Errorf("Expected AAPL sell first, got %s %s", recent[0].Symbol, recent[0].Side)
	}

	// Per-symbol subsequence keeps insertion order
	aapl := s.TransactionsFor("aapl")
	if len(aapl) != 2 {
		t.Fatalf("Expected 2 AAPL transactions, got %d", len(aapl))
	}
	if aapl[0].Side != TradeSideBuy || aapl[1].Side != TradeSideSell {
		t.Errorf("Expected buy then sell, got %s then %s", aapl[0].Side, aapl[1].Side)
	}

	// Unknown symbol is an empty sequence, not an error
	if got := s.TransactionsFor("ZZZ"); len(got) != 0 {
		t.Errorf("Expected empty sequence, got %d entries", len(got))
	}
}

func TestSnapshotRateLimit(t *testing.T) {
	s := newTestSession(100000)
	base := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	value := decimal.NewFromInt(100000)

	if !s.AppendSnapshot(base, value) {
		t.Fatal("First snapshot should always be kept")
	}
	if s.AppendSnapshot(base.Add(30*time.Second), value) {
		t.Error("Snapshot within 60s should be dropped")
	}
	if !s.AppendSnapshot(base.Add(60*time.Second), value) {
		t.Error("Snapshot at 60s should be kept")
	}

	snaps := s.Snapshots()
	if len(snaps) != 2 {
		t.Fatalf("Expected 2 snapshots, got %d", len(snaps))
	}
	if snaps[1].Timestamp.Before(snaps[0].Timestamp) {
		t.Error("Snapshot timestamps must be non-decreasing")
	}
}

func TestCashNeverNegative(t *testing.T) {
	s := newTestSession(1000)

	// Exact full spend is allowed
	if _, err := s.Buy("QQQ", 2, 500); err != nil {
		t.Fatalf("Buy spending exact balance failed: %v", err)
	}
	if !s.CashBalance().IsZero() {
		t.Errorf("Expected zero cash, got %s", s.CashBalance())
	}

	// Anything more is rejected
	if _, err := s.Buy("QQQ", 1, 0.01); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("Expected ErrInsufficientFunds, got %v", err)
	}
}
