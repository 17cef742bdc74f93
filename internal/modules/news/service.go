package news

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/zentra/paper-trader/internal/clients/finnhub"
	"github.com/zentra/paper-trader/internal/modules/ledger"
)

const (
	defaultLimit      = 10
	companyNewsWindow = 7 * 24 * time.Hour
)

// Headline is one article reference surfaced to the client
type Headline struct {
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Source      string    `json:"source,omitempty"`
	PublishedAt time.Time `json:"published_at"`
}

// newsAPI is the slice of the Finnhub client the news service consumes
type newsAPI interface {
	Configured() bool
	GeneralNews() ([]finnhub.NewsItem, error)
	CompanyNews(symbol string, from, to time.Time) ([]finnhub.NewsItem, error)
}

// Service serves market and company headlines. News is decoration, not a
// dependency: every failure path degrades to an empty list so the pages
// that embed headlines keep rendering.
type Service struct {
	client newsAPI
	log    zerolog.Logger
}

// NewService creates a new news service
func NewService(client newsAPI, log zerolog.Logger) *Service {
	return &Service{
		client: client,
		log:    log.With().Str("service", "news").Logger(),
	}
}

// General returns up to limit general market headlines
func (s *Service) General(limit int) []Headline {
	if !s.client.Configured() {
		return []Headline{}
	}

	items, err := s.client.GeneralNews()
	if err != nil {
		s.log.Warn().Err(err).Msg("General news fetch failed")
		return []Headline{}
	}

	return toHeadlines(items, limit)
}

// ForAsset returns up to limit recent headlines for one symbol
func (s *Service) ForAsset(symbol string, limit int) []Headline {
	if !s.client.Configured() {
		return []Headline{}
	}

	symbol = ledger.NormalizeSymbol(symbol)
	now := time.Now()

	items, err := s.client.CompanyNews(symbol, now.Add(-companyNewsWindow), now)
	if err != nil {
		s.log.Warn().Err(err).Str("symbol", symbol).Msg("Company news fetch failed")
		return []Headline{}
	}

	return toHeadlines(items, limit)
}

func toHeadlines(items []finnhub.NewsItem, limit int) []Headline {
	if limit <= 0 {
		limit = defaultLimit
	}

	headlines := make([]Headline, 0, limit)
	for _, item := range items {
		headlines = append(headlines, Headline{
			Title:       item.Headline,
			URL:         item.URL,
			Source:      item.Source,
			PublishedAt: item.PublishedAt,
		})
		if len(headlines) == limit {
			break
		}
	}

	return headlines
}
