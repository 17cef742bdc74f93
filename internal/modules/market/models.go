package market

import "time"

// SectorMover is one ranked ticker in a sector movers report
type SectorMover struct {
	Symbol        string  `json:"symbol"`
	GrowthPercent float64 `json:"growth_percent"`
	LastClose     float64 `json:"last_close"`
}

// SectorMovers is the top-performers report for one sector
type SectorMovers struct {
	Sector string        `json:"sector"`
	Period string        `json:"period"`
	AsOf   time.Time     `json:"as_of"`
	Movers []SectorMover `json:"movers"`
}

// TrendingAsset is one entry from the trending feed
type TrendingAsset struct {
	Symbol string  `json:"symbol"`
	Name   *string `json:"name,omitempty"`
}

// TrendPoint is one daily sample of a price trend series. SMA is nil until
// enough history has accumulated for the moving average window.
type TrendPoint struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
	SMA   *float64  `json:"sma,omitempty"`
}

// TrendSeries is the closing-price history of one asset with a simple
// moving average overlay
type TrendSeries struct {
	Symbol    string       `json:"symbol"`
	Period    string       `json:"period"`
	SMAWindow int          `json:"sma_window"`
	Points    []TrendPoint `json:"points"`
}
