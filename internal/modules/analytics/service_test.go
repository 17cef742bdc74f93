package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zentra/paper-trader/internal/events"
	"github.com/zentra/paper-trader/internal/modules/ledger"
	"github.com/zentra/paper-trader/pkg/logger"
)

// stubMarket serves canned prices and yields; absent symbols are unavailable
type stubMarket struct {
	prices map[string]float64
	yields map[string]float64
}

func (m *stubMarket) GetLivePrice(symbol string) (*float64, error) {
	if price, ok := m.prices[symbol]; ok {
		return &price, nil
	}
	return nil, nil
}

func (m *stubMarket) GetDividendYield(symbol string) (*float64, error) {
	if yield, ok := m.yields[symbol]; ok {
		return &yield, nil
	}
	return nil, nil
}

func newTestService(t *testing.T, market *stubMarket) (*Service, *ledger.Session) {
	t.Helper()
	log := logger.New(logger.Config{Level: "error", Pretty: false})
	session := ledger.NewSession(100000, events.NewManager(log), log)
	if market == nil {
		market = &stubMarket{}
	}
	return NewService(session, market, log), session
}

func TestTotalValueAllPricesUnavailable(t *testing.T) {
	svc, session := newTestService(t, &stubMarket{prices: map[string]float64{"AAPL": 150}})

	_, err := session.Buy("AAPL", 10, 150)
	require.NoError(t, err)
	_, err = session.Buy("MSFT", 5, 300) // will be unpriced afterwards
	require.NoError(t, err)

	total, unpriced := svc.TotalValue()

	// MSFT is excluded, not zero-filled: total = cash + AAPL value
	want := session.CashBalance().Add(decimal.NewFromInt(1500))
	assert.True(t, total.Equal(want), "got %s, want %s", total, want)
	assert.Equal(t, []string{"MSFT"}, unpriced)
}

func TestTotalValueEqualsCashWhenNothingPriced(t *testing.T) {
	svc, session := newTestService(t, &stubMarket{prices: map[string]float64{"AAPL": 150}})

	_, err := session.Buy("AAPL", 2, 150)
	require.NoError(t, err)

	// Drop all prices: the total degrades to exactly the cash balance
	svc.market = &stubMarket{}

	total, unpriced := svc.TotalValue()
	assert.True(t, total.Equal(session.CashBalance()))
	assert.Len(t, unpriced, 1)
}

func TestUnrealizedReturn(t *testing.T) {
	svc, session := newTestService(t, &stubMarket{prices: map[string]float64{"AAPL": 180}})

	_, err := session.Buy("AAPL", 10, 100)
	require.NoError(t, err)
	_, err = session.Buy("AAPL", 10, 200)
	require.NoError(t, err)

	ret, ok := svc.UnrealizedReturn("AAPL")
	require.True(t, ok)

	// Basis (10*100 + 10*200) / 20 = 150; at 180 the return is 20.00%
	assert.True(t, ret.AvgBuyPrice.Equal(decimal.NewFromInt(150)), "basis %s", ret.AvgBuyPrice)
	assert.True(t, ret.ReturnPercent.Equal(decimal.NewFromInt(20)), "return %s", ret.ReturnPercent)
}

func TestUnrealizedReturnIgnoresSells(t *testing.T) {
	svc, session := newTestService(t, &stubMarket{prices: map[string]float64{"X": 120}})

	_, err := session.Buy("X", 10, 100)
	require.NoError(t, err)
	_, err = session.Sell("X", 5, 110)
	require.NoError(t, err)

	ret, ok := svc.UnrealizedReturn("X")
	require.True(t, ok)

	// Sells do not touch the average-cost pool
	assert.True(t, ret.AvgBuyPrice.Equal(decimal.NewFromInt(100)))
	assert.True(t, ret.ReturnPercent.Equal(decimal.NewFromInt(20)))
}

func TestUnrealizedReturnNotApplicable(t *testing.T) {
	svc, _ := newTestService(t, &stubMarket{prices: map[string]float64{"AAPL": 180}})

	_, ok := svc.UnrealizedReturn("AAPL")
	assert.False(t, ok, "no buy transactions means not applicable")
}

func TestThemeBreakdown(t *testing.T) {
	market := &stubMarket{prices: map[string]float64{
		"AAPL":    100,
		"MSFT":    200,
		"BTC-USD": 50000,
		"ZZZT":    10,
	}}
	svc, session := newTestService(t, market)

	for symbol, qty := range map[string]float64{"AAPL": 10, "MSFT": 5, "BTC-USD": 0.01, "ZZZT": 3} {
		_, err := session.Buy(symbol, qty, market.prices[symbol])
		require.NoError(t, err)
	}

	// TSLA has no live price: its theme gets no contribution
	_, err := session.Buy("TSLA", 1, 250)
	require.NoError(t, err)
	delete(market.prices, "TSLA")

	byTheme := make(map[string]decimal.Decimal)
	for _, slice := range svc.ThemeBreakdown() {
		byTheme[slice.Theme] = slice.Value
	}

	assert.True(t, byTheme["Tech"].Equal(decimal.NewFromInt(2000)))
	assert.True(t, byTheme["Crypto"].Equal(decimal.NewFromInt(500)))
	assert.True(t, byTheme["Other"].Equal(decimal.NewFromInt(30)))
	_, hasGreen := byTheme["Green Energy"]
	assert.False(t, hasGreen)
}

func TestRiskIndicator(t *testing.T) {
	// The ratio is over invested value only; the large untouched cash
	// balance must not dilute it. Quantities are the crypto share of a
	// 100-unit investment at price 100.
	tests := []struct {
		name      string
		cryptoQty float64
		stockQty  float64
		want      RiskLevel
	}{
		{name: "low", cryptoQty: 0.10, stockQty: 0.90, want: RiskLow},
		{name: "boundary 40 percent is low", cryptoQty: 0.40, stockQty: 0.60, want: RiskLow},
		{name: "medium", cryptoQty: 0.50, stockQty: 0.50, want: RiskMedium},
		{name: "boundary 70 percent is medium", cryptoQty: 0.70, stockQty: 0.30, want: RiskMedium},
		{name: "high", cryptoQty: 0.80, stockQty: 0.20, want: RiskHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			market := &stubMarket{prices: map[string]float64{"BTC-USD": 100, "SPY": 100}}
			svc, session := newTestService(t, market)

			if tt.cryptoQty > 0 {
				_, err := session.Buy("BTC-USD", tt.cryptoQty, 100)
				require.NoError(t, err)
			}
			if tt.stockQty > 0 {
				_, err := session.Buy("SPY", tt.stockQty, 100)
				require.NoError(t, err)
			}

			assert.Equal(t, tt.want, svc.RiskIndicator().Level)
		})
	}
}

func TestRiskIndicatorIgnoresCash(t *testing.T) {
	market := &stubMarket{prices: map[string]float64{"BTC-USD": 50000}}
	svc, session := newTestService(t, market)

	// A small all-crypto position next to a large cash balance is still an
	// all-crypto portfolio.
	_, err := session.Buy("BTC-USD", 0.2, 50000)
	require.NoError(t, err)

	got := svc.RiskIndicator()
	assert.Equal(t, RiskHigh, got.Level)
	assert.InDelta(t, 1.0, got.VolatileRatio, 1e-9)
}

func TestRiskIndicatorNotApplicable(t *testing.T) {
	// Cash on its own is not a portfolio to rate
	svc, _ := newTestService(t, nil)

	got := svc.RiskIndicator()
	assert.Equal(t, RiskNotApplicable, got.Level)
}

func TestDiversificationScore(t *testing.T) {
	tests := []struct {
		holdings int
		want     DiversificationGrade
	}{
		{holdings: 0, want: DiversificationPoor},
		{holdings: 1, want: DiversificationAverage},
		{holdings: 2, want: DiversificationGood},
		{holdings: 3, want: DiversificationGreat},
		{holdings: 5, want: DiversificationGreat},
	}

	symbols := []string{"AAPL", "MSFT", "SPY", "QQQ", "PEP"}

	for _, tt := range tests {
		svc, session := newTestService(t, nil)
		for i := 0; i < tt.holdings; i++ {
			_, err := session.Buy(symbols[i], 1, 10)
			require.NoError(t, err)
		}

		got := svc.DiversificationScore()
		assert.Equal(t, tt.want, got.Grade, "%d holdings", tt.holdings)
		assert.Equal(t, tt.holdings, got.AssetCount)
		assert.NotEmpty(t, got.Message)
	}
}

func TestEstimatedMonthlyDividends(t *testing.T) {
	market := &stubMarket{
		prices: map[string]float64{"PEP": 150, "AAPL": 100, "MSFT": 200},
		yields: map[string]float64{"PEP": 0.03, "AAPL": 0.006},
	}
	svc, session := newTestService(t, market)

	_, err := session.Buy("PEP", 10, 150)
	require.NoError(t, err)
	_, err = session.Buy("AAPL", 20, 100)
	require.NoError(t, err)
	_, err = session.Buy("MSFT", 5, 200) // no yield known: contributes zero
	require.NoError(t, err)

	got := svc.EstimatedMonthlyDividends()

	// PEP: 10*150*0.03/12 = 3.75; AAPL: 20*100*0.006/12 = 1.00
	want := decimal.RequireFromString("4.75")
	assert.True(t, got.Equal(want), "got %s, want %s", got, want)
}

func TestRecordSnapshotRateLimited(t *testing.T) {
	svc, session := newTestService(t, nil)
	base := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	first := svc.RecordSnapshot(base)
	assert.True(t, first.Recorded)

	second := svc.RecordSnapshot(base.Add(30 * time.Second))
	assert.False(t, second.Recorded, "second snapshot within 60s must be dropped")

	assert.Len(t, session.Snapshots(), 1)
}

func TestPerformanceSummary(t *testing.T) {
	svc, session := newTestService(t, nil)
	base := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	values := []int64{100000, 101000, 99990}
	for i, v := range values {
		ok := session.AppendSnapshot(base.Add(time.Duration(i)*time.Minute), decimal.NewFromInt(v))
		require.True(t, ok)
	}

	summary := svc.PerformanceSummary()
	require.Len(t, summary.Snapshots, 3)
	assert.InDelta(t, -0.01, summary.TotalGainPercent, 1e-9)
	assert.NotZero(t, summary.MeanReturn)
	assert.NotZero(t, summary.ReturnVolatility)
}
