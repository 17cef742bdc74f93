package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/zentra/paper-trader/internal/modules/ledger"
)

// HoldingValuation is one priced position in the portfolio summary
type HoldingValuation struct {
	Symbol       string           `json:"symbol"`
	Quantity     decimal.Decimal  `json:"quantity"`
	CurrentPrice *float64         `json:"current_price,omitempty"`
	Value        *decimal.Decimal `json:"value,omitempty"`
	Theme        string           `json:"theme"`
}

// PortfolioSummary is the full valuation of the account. UnpricedSymbols
// lists holdings excluded from TotalValue because no live price resolved;
// when it is non-empty the total is a lower bound.
type PortfolioSummary struct {
	CashBalance     decimal.Decimal    `json:"cash_balance"`
	StartingCash    decimal.Decimal    `json:"starting_cash"`
	Holdings        []HoldingValuation `json:"holdings"`
	InvestedValue   decimal.Decimal    `json:"invested_value"`
	TotalValue      decimal.Decimal    `json:"total_value"`
	UnpricedSymbols []string           `json:"unpriced_symbols,omitempty"`
}

// UnrealizedReturn is the average-cost-basis return for one asset
type UnrealizedReturn struct {
	Symbol        string          `json:"symbol"`
	AvgBuyPrice   decimal.Decimal `json:"avg_buy_price"`
	CurrentPrice  float64         `json:"current_price"`
	ReturnPercent decimal.Decimal `json:"return_percent"`
}

// ThemeSlice is the portfolio value attributed to one theme
type ThemeSlice struct {
	Theme string          `json:"theme"`
	Value decimal.Decimal `json:"value"`
}

// RiskLevel classifies the portfolio by volatile-asset concentration
type RiskLevel string

const (
	RiskNotApplicable RiskLevel = "N/A"
	RiskLow           RiskLevel = "Low"
	RiskMedium        RiskLevel = "Medium"
	RiskHigh          RiskLevel = "High"
)

// RiskAssessment is the qualitative risk rating
type RiskAssessment struct {
	Level         RiskLevel `json:"level"`
	VolatileRatio float64   `json:"volatile_ratio"`
	Message       string    `json:"message"`
}

// DiversificationGrade classifies the portfolio by distinct asset count
type DiversificationGrade string

const (
	DiversificationPoor    DiversificationGrade = "Poor"
	DiversificationAverage DiversificationGrade = "Average"
	DiversificationGood    DiversificationGrade = "Good"
	DiversificationGreat   DiversificationGrade = "Great"
)

// DiversificationScore is the health score with its advisory message
type DiversificationScore struct {
	Grade      DiversificationGrade `json:"grade"`
	AssetCount int                  `json:"asset_count"`
	Message    string               `json:"message"`
}

// PerformanceSummary describes the snapshot growth series
type PerformanceSummary struct {
	Snapshots        []ledger.Snapshot `json:"snapshots"`
	TotalGainPercent float64           `json:"total_gain_percent"`
	MeanReturn       float64           `json:"mean_interval_return"`
	ReturnVolatility float64           `json:"interval_return_volatility"`
}

// SnapshotResult reports the outcome of a snapshot attempt
type SnapshotResult struct {
	Recorded  bool            `json:"recorded"`
	Timestamp time.Time       `json:"timestamp"`
	Value     decimal.Decimal `json:"value"`
}
