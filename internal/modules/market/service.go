package market

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/markcheno/go-talib"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/zentra/paper-trader/internal/clients/yahoo"
	"github.com/zentra/paper-trader/internal/modules/ledger"
)

// Fixed sector watchlists for the movers report
var sectorTickers = map[string][]string{
	"Tech":         {"AAPL", "MSFT", "NVDA", "GOOGL", "AMZN"},
	"ETFs":         {"SPY", "QQQ", "VTI", "VOO", "ARKK"},
	"Banking":      {"JPM", "BAC", "WFC", "C", "GS"},
	"Green Energy": {"TSLA", "ICLN", "ENPH", "NEE", "PLUG"},
	"Crypto":       {"BTC-USD", "ETH-USD", "SOL-USD", "ADA-USD", "XRP-USD"},
}

const (
	moversPeriod   = "3mo"
	moversTopN     = 5
	moversCacheTTL = time.Hour
	priceCacheTTL  = 30 * time.Second

	trendPeriod    = "6mo"
	trendSMAWindow = 20

	historyFetchConcurrency = 4
)

// quoteAPI is the slice of the Yahoo client the market service consumes
type quoteAPI interface {
	GetLivePrice(symbol string) (*float64, error)
	GetDividendYield(symbol string) (*float64, error)
	GetAssetInfo(symbol string) (*yahoo.AssetInfo, error)
	GetHistoricalPrices(symbol string, period string) ([]yahoo.HistoricalPrice, error)
	GetTrending(region string, count int) ([]yahoo.TrendingQuote, error)
}

type cachedPrice struct {
	price     *float64
	fetchedAt time.Time
}

type cachedMovers struct {
	movers    SectorMovers
	fetchedAt time.Time
}

// Service fronts the market data provider with short-lived caching. It is
// the price source for trade execution and valuation, so a quote fetched
// for one request is reused by the next within the cache window.
type Service struct {
	client quoteAPI
	log    zerolog.Logger

	mu          sync.Mutex
	priceCache  map[string]cachedPrice
	moversCache map[string]cachedMovers
}

// NewService creates a new market data service
func NewService(client quoteAPI, log zerolog.Logger) *Service {
	return &Service{
		client:      client,
		log:         log.With().Str("service", "market").Logger(),
		priceCache:  make(map[string]cachedPrice),
		moversCache: make(map[string]cachedMovers),
	}
}

// GetLivePrice returns the current price for a symbol, or nil when the
// provider has no usable quote. Results are cached briefly.
func (s *Service) GetLivePrice(symbol string) (*float64, error) {
	symbol = ledger.NormalizeSymbol(symbol)

	s.mu.Lock()
	if cached, ok := s.priceCache[symbol]; ok && time.Since(cached.fetchedAt) < priceCacheTTL {
		s.mu.Unlock()
		return cached.price, nil
	}
	s.mu.Unlock()

	price, err := s.client.GetLivePrice(symbol)
	if err != nil {
		s.log.Warn().Err(err).Str("symbol", symbol).Msg("Live price fetch failed")
		return nil, err
	}

	s.mu.Lock()
	s.priceCache[symbol] = cachedPrice{price: price, fetchedAt: time.Now()}
	s.mu.Unlock()

	return price, nil
}

// GetDividendYield returns the trailing annual dividend yield, nil if unknown
func (s *Service) GetDividendYield(symbol string) (*float64, error) {
	return s.client.GetDividendYield(ledger.NormalizeSymbol(symbol))
}

// GetAssetInfo returns descriptive data for one asset
func (s *Service) GetAssetInfo(symbol string) (*yahoo.AssetInfo, error) {
	return s.client.GetAssetInfo(ledger.NormalizeSymbol(symbol))
}

// Sectors lists the available sector watchlists in stable order
func (s *Service) Sectors() []string {
	names := make([]string, 0, len(sectorTickers))
	for name := range sectorTickers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SectorMovers ranks a sector's watchlist by three-month growth. Tickers
// whose history cannot be fetched are skipped rather than failing the
// report. Results are cached for an hour per sector.
func (s *Service) SectorMovers(sector string) (SectorMovers, error) {
	tickers, ok := sectorTickers[sector]
	if !ok {
		return SectorMovers{}, fmt.Errorf("unknown sector %q", sector)
	}

	s.mu.Lock()
	if cached, ok := s.moversCache[sector]; ok && time.Since(cached.fetchedAt) < moversCacheTTL {
		s.mu.Unlock()
		return cached.movers, nil
	}
	s.mu.Unlock()

	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(historyFetchConcurrency)

	movers := make([]SectorMover, 0, len(tickers))
	for _, ticker := range tickers {
		g.Go(func() error {
			prices, err := s.client.GetHistoricalPrices(ticker, moversPeriod)
			if err != nil {
				s.log.Warn().Err(err).Str("symbol", ticker).Msg("Sector history fetch failed")
				return nil
			}
			if len(prices) < 2 || prices[0].Close <= 0 {
				return nil
			}

			first := prices[0].Close
			last := prices[len(prices)-1].Close
			growth := (last - first) / first * 100

			mu.Lock()
			movers = append(movers, SectorMover{
				Symbol:        ticker,
				GrowthPercent: growth,
				LastClose:     last,
			})
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(movers, func(i, j int) bool {
		if movers[i].GrowthPercent != movers[j].GrowthPercent {
			return movers[i].GrowthPercent > movers[j].GrowthPercent
		}
		return movers[i].Symbol < movers[j].Symbol
	})
	if len(movers) > moversTopN {
		movers = movers[:moversTopN]
	}

	report := SectorMovers{
		Sector: sector,
		Period: moversPeriod,
		AsOf:   time.Now(),
		Movers: movers,
	}

	s.mu.Lock()
	s.moversCache[sector] = cachedMovers{movers: report, fetchedAt: time.Now()}
	s.mu.Unlock()

	return report, nil
}

// Trending returns the current trending tickers
func (s *Service) Trending(count int) ([]TrendingAsset, error) {
	if count <= 0 {
		count = 10
	}

	quotes, err := s.client.GetTrending("US", count)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trending tickers: %w", err)
	}

	assets := make([]TrendingAsset, 0, len(quotes))
	for _, q := range quotes {
		assets = append(assets, TrendingAsset{Symbol: q.Symbol, Name: q.Name})
		if len(assets) == count {
			break
		}
	}

	return assets, nil
}

// TrendSeries returns the daily closing history of one asset with a simple
// moving average overlay. The SMA is absent on points before the window
// has filled.
func (s *Service) TrendSeries(symbol string, period string) (TrendSeries, error) {
	symbol = ledger.NormalizeSymbol(symbol)
	if period == "" {
		period = trendPeriod
	}

	history, err := s.client.GetHistoricalPrices(symbol, period)
	if err != nil {
		return TrendSeries{}, fmt.Errorf("failed to fetch history: %w", err)
	}

	series := TrendSeries{
		Symbol:    symbol,
		Period:    period,
		SMAWindow: trendSMAWindow,
		Points:    make([]TrendPoint, 0, len(history)),
	}

	closes := make([]float64, len(history))
	for i, p := range history {
		closes[i] = p.Close
	}

	var sma []float64
	if len(closes) >= trendSMAWindow {
		sma = talib.Sma(closes, trendSMAWindow)
	}

	for i, p := range history {
		point := TrendPoint{Date: p.Date, Close: p.Close}
		if sma != nil && i >= trendSMAWindow-1 {
			v := sma[i]
			point.SMA = &v
		}
		series.Points = append(series.Points, point)
	}

	return series, nil
}
