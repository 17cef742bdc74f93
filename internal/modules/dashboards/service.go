package dashboards

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/zentra/paper-trader/internal/clients/yahoo"
	"github.com/zentra/paper-trader/internal/events"
	"github.com/zentra/paper-trader/internal/modules/analytics"
	"github.com/zentra/paper-trader/internal/modules/ledger"
	"github.com/zentra/paper-trader/internal/modules/market"
	"github.com/zentra/paper-trader/internal/modules/news"
)

// ErrNotRegistered is returned for assets that have never been traded
var ErrNotRegistered = errors.New("asset has no dashboard")

const newsPerDashboard = 5

// marketData is the slice of the market service the dashboards consume
type marketData interface {
	GetLivePrice(symbol string) (*float64, error)
	GetAssetInfo(symbol string) (*yahoo.AssetInfo, error)
	TrendSeries(symbol string, period string) (market.TrendSeries, error)
}

// returnSource computes per-asset unrealized returns
type returnSource interface {
	UnrealizedReturn(symbol string) (analytics.UnrealizedReturn, bool)
}

// newsFeed supplies per-asset headlines
type newsFeed interface {
	ForAsset(symbol string, limit int) []news.Headline
}

// Service maintains the asset dashboard registry and assembles dashboard
// views. An asset gets a dashboard the first time it is traded; the
// registration happens through the event stream, not in the trade path.
type Service struct {
	repo    *Repository
	session *ledger.Session
	market  marketData
	returns returnSource
	news    newsFeed
	log     zerolog.Logger
}

// NewService creates a new dashboards service and subscribes it to
// first-trade events
func NewService(
	repo *Repository,
	session *ledger.Session,
	marketData marketData,
	returns returnSource,
	newsFeed newsFeed,
	ev *events.Manager,
	log zerolog.Logger,
) *Service {
	s := &Service{
		repo:    repo,
		session: session,
		market:  marketData,
		returns: returns,
		news:    newsFeed,
		log:     log.With().Str("service", "dashboards").Logger(),
	}

	ev.Subscribe(events.AssetFirstTraded, s.onAssetFirstTraded)

	return s
}

func (s *Service) onAssetFirstTraded(e events.Event) {
	symbol, ok := e.Data["symbol"].(string)
	if !ok || symbol == "" {
		s.log.Warn().Interface("data", e.Data).Msg("First-trade event without symbol")
		return
	}

	if err := s.repo.Register(symbol, e.Timestamp); err != nil {
		s.log.Error().Err(err).Str("symbol", symbol).Msg("Failed to register dashboard")
		return
	}

	s.log.Info().Str("symbol", symbol).Msg("Dashboard registered")
}

// List returns all registered assets
func (s *Service) List() ([]RegisteredAsset, error) {
	return s.repo.List()
}

// Dashboard assembles the full view for one registered asset. Market data
// failures degrade to absent fields; only an unregistered symbol is an
// error.
func (s *Service) Dashboard(symbol string) (AssetDashboard, error) {
	symbol = ledger.NormalizeSymbol(symbol)

	registered, err := s.repo.IsRegistered(symbol)
	if err != nil {
		return AssetDashboard{}, err
	}
	if !registered {
		return AssetDashboard{}, ErrNotRegistered
	}

	dashboard := AssetDashboard{
		Symbol:       symbol,
		Transactions: s.session.TransactionsFor(symbol),
		News:         s.news.ForAsset(symbol, newsPerDashboard),
	}

	if info, err := s.market.GetAssetInfo(symbol); err == nil {
		dashboard.Info = info
	} else {
		s.log.Warn().Err(err).Str("symbol", symbol).Msg("Asset info unavailable")
	}

	if price, err := s.market.GetLivePrice(symbol); err == nil {
		dashboard.LivePrice = price
	}

	if ret, ok := s.returns.UnrealizedReturn(symbol); ok {
		dashboard.Unrealized = &ret
	}

	return dashboard, nil
}

// Trend returns the price trend series for one registered asset
func (s *Service) Trend(symbol string, period string) (market.TrendSeries, error) {
	symbol = ledger.NormalizeSymbol(symbol)

	registered, err := s.repo.IsRegistered(symbol)
	if err != nil {
		return market.TrendSeries{}, err
	}
	if !registered {
		return market.TrendSeries{}, ErrNotRegistered
	}

	return s.market.TrendSeries(symbol, period)
}

// News returns recent headlines for one registered asset
func (s *Service) News(symbol string, limit int) ([]news.Headline, error) {
	symbol = ledger.NormalizeSymbol(symbol)

	registered, err := s.repo.IsRegistered(symbol)
	if err != nil {
		return nil, err
	}
	if !registered {
		return nil, ErrNotRegistered
	}

	return s.news.ForAsset(symbol, limit), nil
}
