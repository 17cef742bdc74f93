package yahoo

import "time"

// AssetInfo contains descriptive and fundamental figures for one asset.
// Every field except Symbol is optional; Yahoo omits most of them for
// crypto tickers and thinly covered instruments.
type AssetInfo struct {
	Symbol          string   `json:"symbol"`
	Name            *string  `json:"name,omitempty"`
	Sector          *string  `json:"sector,omitempty"`
	Industry        *string  `json:"industry,omitempty"`
	MarketCap       *int64   `json:"market_cap,omitempty"`
	PERatio         *float64 `json:"pe_ratio,omitempty"`
	DividendYield   *float64 `json:"dividend_yield,omitempty"`
	BusinessSummary *string  `json:"business_summary,omitempty"`
}

// HistoricalPrice represents a single OHLCV data point
type HistoricalPrice struct {
	Date     time.Time `json:"date"`
	Open     float64   `json:"open"`
	High     float64   `json:"high"`
	Low      float64   `json:"low"`
	Close    float64   `json:"close"`
	Volume   int64     `json:"volume"`
	AdjClose float64   `json:"adj_close"`
}

// TrendingQuote is one entry from the trending-tickers feed
type TrendingQuote struct {
	Symbol string  `json:"symbol"`
	Name   *string `json:"name,omitempty"`
}
