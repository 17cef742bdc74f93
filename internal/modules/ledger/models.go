package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TradeSide represents the trade direction (BUY or SELL)
type TradeSide string

const (
	TradeSideBuy  TradeSide = "BUY"
	TradeSideSell TradeSide = "SELL"
)

// IsValid checks if the trade side is valid
func (ts TradeSide) IsValid() bool {
	return ts == TradeSideBuy || ts == TradeSideSell
}

// TradeSideFromString creates TradeSide from string (case-insensitive)
func TradeSideFromString(value string) (TradeSide, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "BUY":
		return TradeSideBuy, nil
	case "SELL":
		return TradeSideSell, nil
	default:
		return "", fmt.Errorf("invalid trade side: %q", value)
	}
}

// Transaction is an immutable record of one executed trade. Records are only
// ever appended to the session log, never edited or removed.
type Transaction struct {
	ID         string          `json:"id"`
	Symbol     string          `json:"symbol"`
	Side       TradeSide       `json:"side"`
	Quantity   decimal.Decimal `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	Total      decimal.Decimal `json:"total"`
	ExecutedAt time.Time       `json:"executed_at"`
}

// Holding is a currently owned position
type Holding struct {
	Symbol   string          `json:"symbol"`
	Quantity decimal.Decimal `json:"quantity"`
}

// Snapshot is a timestamped total-portfolio-value sample
type Snapshot struct {
	Timestamp time.Time       `json:"timestamp"`
	Value     decimal.Decimal `json:"value"`
}
