package dashboards

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zentra/paper-trader/internal/clients/yahoo"
	"github.com/zentra/paper-trader/internal/database"
	"github.com/zentra/paper-trader/internal/events"
	"github.com/zentra/paper-trader/internal/modules/analytics"
	"github.com/zentra/paper-trader/internal/modules/ledger"
	"github.com/zentra/paper-trader/internal/modules/market"
	"github.com/zentra/paper-trader/internal/modules/news"
	"github.com/zentra/paper-trader/pkg/logger"
)

type stubMarketData struct {
	price  *float64
	info   *yahoo.AssetInfo
	series market.TrendSeries
}

func (s *stubMarketData) GetLivePrice(symbol string) (*float64, error) {
	return s.price, nil
}

func (s *stubMarketData) GetAssetInfo(symbol string) (*yahoo.AssetInfo, error) {
	return s.info, nil
}

func (s *stubMarketData) TrendSeries(symbol string, period string) (market.TrendSeries, error) {
	return s.series, nil
}

type stubReturns struct {
	ret analytics.UnrealizedReturn
	ok  bool
}

func (s *stubReturns) UnrealizedReturn(symbol string) (analytics.UnrealizedReturn, bool) {
	return s.ret, s.ok
}

type stubNewsFeed struct {
	headlines []news.Headline
}

func (s *stubNewsFeed) ForAsset(symbol string, limit int) []news.Headline {
	return s.headlines
}

type fixture struct {
	service *Service
	session *ledger.Session
}

func newFixture(t *testing.T, marketData *stubMarketData) *fixture {
	t.Helper()

	log := logger.New(logger.Config{Level: "error", Pretty: false})

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate())

	ev := events.NewManager(log)
	session := ledger.NewSession(100000, ev, log)

	if marketData == nil {
		marketData = &stubMarketData{}
	}

	service := NewService(
		NewRepository(db.Conn(), log),
		session,
		marketData,
		&stubReturns{},
		&stubNewsFeed{},
		ev,
		log,
	)

	return &fixture{service: service, session: session}
}

func TestFirstTradeRegistersDashboard(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.session.Buy("AAPL", 2, 150)
	require.NoError(t, err)

	assets, err := f.service.List()
	require.NoError(t, err)
	require.Len(t, assets, 1)
	assert.Equal(t, "AAPL", assets[0].Symbol)

	// A second trade in the same asset does not create another entry
	_, err = f.session.Buy("AAPL", 1, 150)
	require.NoError(t, err)

	assets, err = f.service.List()
	require.NoError(t, err)
	assert.Len(t, assets, 1)
}

func TestDashboardRequiresRegistration(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.service.Dashboard("ZZZT")
	assert.ErrorIs(t, err, ErrNotRegistered)

	_, err = f.service.Trend("ZZZT", "6mo")
	assert.ErrorIs(t, err, ErrNotRegistered)

	_, err = f.service.News("ZZZT", 5)
	assert.ErrorIs(t, err, ErrNotRegistered)
}

func TestDashboardAggregation(t *testing.T) {
	price := 180.0
	name := "Apple Inc."
	f := newFixture(t, &stubMarketData{
		price: &price,
		info:  &yahoo.AssetInfo{Symbol: "AAPL", Name: &name},
	})

	_, err := f.session.Buy("AAPL", 2, 150)
	require.NoError(t, err)

	dashboard, err := f.service.Dashboard("aapl")
	require.NoError(t, err)

	assert.Equal(t, "AAPL", dashboard.Symbol)
	require.NotNil(t, dashboard.Info)
	assert.Equal(t, "Apple Inc.", *dashboard.Info.Name)
	require.NotNil(t, dashboard.LivePrice)
	assert.Equal(t, 180.0, *dashboard.LivePrice)
	assert.Len(t, dashboard.Transactions, 1)
}
