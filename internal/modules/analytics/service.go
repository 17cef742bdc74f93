package analytics

import (
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/zentra/paper-trader/internal/modules/ledger"
)

// MarketData supplies per-asset market figures. A nil value with a nil error
// means the figure is unknown; aggregates exclude such assets instead of
// erroring or zero-filling them.
type MarketData interface {
	GetLivePrice(symbol string) (*float64, error)
	GetDividendYield(symbol string) (*float64, error)
}

// Maximum concurrent market data fetches when pricing a portfolio
const priceFetchConcurrency = 4

// Service computes derived portfolio metrics. All computations are pull
// model: they read current session state plus live prices on demand and
// mutate nothing, except RecordSnapshot which appends to the session's
// snapshot log.
type Service struct {
	session *ledger.Session
	market  MarketData
	log     zerolog.Logger
}

// NewService creates a new analytics service
func NewService(session *ledger.Session, market MarketData, log zerolog.Logger) *Service {
	return &Service{
		session: session,
		market:  market,
		log:     log.With().Str("service", "analytics").Logger(),
	}
}

// fetchPrices resolves live prices for the given symbols concurrently.
// Lookups are read-only and independent, so they commute; a symbol that
// fails or returns no price is simply absent from the result.
func (s *Service) fetchPrices(symbols []string) map[string]float64 {
	prices := make(map[string]float64, len(symbols))

	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(priceFetchConcurrency)

	for _, symbol := range symbols {
		g.Go(func() error {
			price, err := s.market.GetLivePrice(symbol)
			if err != nil {
				s.log.Warn().Err(err).Str("symbol", symbol).Msg("Live price not available")
				return nil
			}
			if price != nil {
				mu.Lock()
				prices[symbol] = *price
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	return prices
}

// Summary values every holding at its live price and totals the account.
// Unpriced holdings are excluded from the sum (not treated as zero), which
// makes the total a lower bound; their symbols are reported so callers can
// see the degraded mode.
func (s *Service) Summary() PortfolioSummary {
	holdings := s.session.CurrentHoldings()

	symbols := make([]string, len(holdings))
	for i, h := range holdings {
		symbols[i] = h.Symbol
	}
	prices := s.fetchPrices(symbols)

	summary := PortfolioSummary{
		CashBalance:  s.session.CashBalance(),
		StartingCash: s.session.StartingCash(),
		Holdings:     make([]HoldingValuation, 0, len(holdings)),
	}

	invested := decimal.Zero
	for _, h := range holdings {
		valuation := HoldingValuation{
			Symbol:   h.Symbol,
			Quantity: h.Quantity,
			Theme:    ThemeFor(h.Symbol),
		}

		if price, ok := prices[h.Symbol]; ok {
			value := h.Quantity.Mul(decimal.NewFromFloat(price))
			valuation.CurrentPrice = &price
			valuation.Value = &value
			invested = invested.Add(value)
		} else {
			summary.UnpricedSymbols = append(summary.UnpricedSymbols, h.Symbol)
		}

		summary.Holdings = append(summary.Holdings, valuation)
	}

	summary.InvestedValue = invested
	summary.TotalValue = summary.CashBalance.Add(invested)

	return summary
}

// TotalValue is cash plus the live value of all priced holdings
func (s *Service) TotalValue() (decimal.Decimal, []string) {
	summary := s.Summary()
	return summary.TotalValue, summary.UnpricedSymbols
}

// RecordSnapshot computes the current total value and appends it to the
// session's snapshot log, subject to the log's minimum sampling interval.
func (s *Service) RecordSnapshot(at time.Time) SnapshotResult {
	value, _ := s.TotalValue()
	recorded := s.session.AppendSnapshot(at, value)

	return SnapshotResult{
		Recorded:  recorded,
		Timestamp: at,
		Value:     value,
	}
}

// UnrealizedReturn computes the percentage return against the average buy
// price. Sells do not reduce the cost pool in this model. The second return
// is false when the figure is not applicable: no buy transactions, a zero
// basis, or no current price.
func (s *Service) UnrealizedReturn(symbol string) (UnrealizedReturn, bool) {
	symbol = ledger.NormalizeSymbol(symbol)

	totalCost := decimal.Zero
	totalShares := decimal.Zero
	for _, txn := range s.session.TransactionsFor(symbol) {
		if txn.Side != ledger.TradeSideBuy {
			continue
		}
		totalCost = totalCost.Add(txn.Price.Mul(txn.Quantity))
		totalShares = totalShares.Add(txn.Quantity)
	}

	if totalShares.IsZero() {
		return UnrealizedReturn{}, false
	}

	avgBuyPrice := totalCost.Div(totalShares)
	if avgBuyPrice.IsZero() {
		return UnrealizedReturn{}, false
	}

	price, err := s.market.GetLivePrice(symbol)
	if err != nil || price == nil {
		return UnrealizedReturn{}, false
	}

	current := decimal.NewFromFloat(*price)
	returnPct := current.Sub(avgBuyPrice).Div(avgBuyPrice).Mul(decimal.NewFromInt(100))

	return UnrealizedReturn{
		Symbol:        symbol,
		AvgBuyPrice:   avgBuyPrice,
		CurrentPrice:  *price,
		ReturnPercent: returnPct,
	}, true
}

// ThemeBreakdown groups holdings by theme, summing live value per theme.
// Unpriced holdings contribute nothing to their theme.
func (s *Service) ThemeBreakdown() []ThemeSlice {
	holdings := s.session.CurrentHoldings()

	symbols := make([]string, len(holdings))
	for i, h := range holdings {
		symbols[i] = h.Symbol
	}
	prices := s.fetchPrices(symbols)

	totals := make(map[string]decimal.Decimal)
	for _, h := range holdings {
		price, ok := prices[h.Symbol]
		if !ok {
			continue
		}
		theme := ThemeFor(h.Symbol)
		totals[theme] = totals[theme].Add(h.Quantity.Mul(decimal.NewFromFloat(price)))
	}

	slices := make([]ThemeSlice, 0, len(totals))
	for theme, value := range totals {
		slices = append(slices, ThemeSlice{Theme: theme, Value: value})
	}
	sortThemeSlices(slices)

	return slices
}

// RiskIndicator classifies the portfolio by the fraction of invested value
// held in volatile assets. Cash is not part of the denominator; the measure
// is about what the user chose to buy, not how much they have left.
func (s *Service) RiskIndicator() RiskAssessment {
	summary := s.Summary()

	if summary.InvestedValue.IsZero() {
		return RiskAssessment{Level: RiskNotApplicable, Message: "No holdings yet"}
	}

	volatileValue := decimal.Zero
	for _, h := range summary.Holdings {
		if h.Value != nil && IsVolatile(h.Symbol) {
			volatileValue = volatileValue.Add(*h.Value)
		}
	}

	ratio := volatileValue.Div(summary.InvestedValue).InexactFloat64()

	switch {
	case ratio > 0.7:
		return RiskAssessment{
			Level:         RiskHigh,
			VolatileRatio: ratio,
			Message:       "High risk: too much in volatile assets",
		}
	case ratio > 0.4:
		return RiskAssessment{
			Level:         RiskMedium,
			VolatileRatio: ratio,
			Message:       "Medium risk",
		}
	default:
		return RiskAssessment{
			Level:         RiskLow,
			VolatileRatio: ratio,
			Message:       "Low risk",
		}
	}
}

// DiversificationScore grades the portfolio purely by distinct asset count
func (s *Service) DiversificationScore() DiversificationScore {
	count := s.session.HoldingCount()

	switch {
	case count == 0:
		return DiversificationScore{
			Grade:      DiversificationPoor,
			AssetCount: count,
			Message:    "You haven't diversified yet. Try investing in multiple assets.",
		}
	case count == 1:
		return DiversificationScore{
			Grade:      DiversificationAverage,
			AssetCount: count,
			Message:    "Try diversifying across industries or sectors.",
		}
	case count == 2:
		return DiversificationScore{
			Grade:      DiversificationGood,
			AssetCount: count,
			Message:    "Nice start! Add a few more asset types to reduce risk.",
		}
	default:
		return DiversificationScore{
			Grade:      DiversificationGreat,
			AssetCount: count,
			Message:    "Well-diversified portfolio. Keep reviewing your positions!",
		}
	}
}

// EstimatedMonthlyDividends sums quantity * price * (annual yield / 12) over
// all holdings. Assets with unknown yield or no live price contribute zero.
func (s *Service) EstimatedMonthlyDividends() decimal.Decimal {
	holdings := s.session.CurrentHoldings()

	symbols := make([]string, len(holdings))
	for i, h := range holdings {
		symbols[i] = h.Symbol
	}
	prices := s.fetchPrices(symbols)

	total := decimal.Zero
	months := decimal.NewFromInt(12)
	for _, h := range holdings {
		price, ok := prices[h.Symbol]
		if !ok {
			continue
		}

		yield, err := s.market.GetDividendYield(h.Symbol)
		if err != nil || yield == nil || *yield <= 0 {
			continue
		}

		monthly := h.Quantity.
			Mul(decimal.NewFromFloat(price)).
			Mul(decimal.NewFromFloat(*yield)).
			Div(months)
		total = total.Add(monthly)
	}

	return total
}

// PerformanceSummary reports the snapshot growth series with total gain
// versus starting cash and the mean/volatility of per-interval returns.
func (s *Service) PerformanceSummary() PerformanceSummary {
	snapshots := s.session.Snapshots()

	summary := PerformanceSummary{Snapshots: snapshots}
	if len(snapshots) == 0 {
		return summary
	}

	start := s.session.StartingCash()
	last := snapshots[len(snapshots)-1].Value
	summary.TotalGainPercent = last.Sub(start).
		Div(start).
		Mul(decimal.NewFromInt(100)).
		InexactFloat64()

	if len(snapshots) < 2 {
		return summary
	}

	returns := make([]float64, 0, len(snapshots)-1)
	for i := 1; i < len(snapshots); i++ {
		prev := snapshots[i-1].Value
		if prev.IsZero() {
			continue
		}
		r := snapshots[i].Value.Sub(prev).Div(prev).InexactFloat64()
		returns = append(returns, r)
	}
	if len(returns) == 0 {
		return summary
	}

	summary.MeanReturn = stat.Mean(returns, nil)
	if len(returns) > 1 {
		summary.ReturnVolatility = stat.StdDev(returns, nil)
	}

	return summary
}

func sortThemeSlices(slices []ThemeSlice) {
	// Largest exposure first; names break ties for stable output
	sort.Slice(slices, func(i, j int) bool {
		if !slices[i].Value.Equal(slices[j].Value) {
			return slices[i].Value.GreaterThan(slices[j].Value)
		}
		return slices[i].Theme < slices[j].Theme
	})
}
