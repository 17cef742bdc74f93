package finnhub

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

// NewsItem is one article from the Finnhub news feeds
type NewsItem struct {
	Headline    string    `json:"headline"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	Summary     string    `json:"summary,omitempty"`
	PublishedAt time.Time `json:"published_at"`
}

// Client is a Finnhub API client
type Client struct {
	apiKey string
	client *http.Client
	log    zerolog.Logger
}

// NewClient creates a new Finnhub client. An empty API key is allowed; all
// calls will then fail and callers are expected to degrade.
func NewClient(apiKey string, log zerolog.Logger) *Client {
	return &Client{
		apiKey: apiKey,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
		log: log.With().Str("client", "finnhub").Logger(),
	}
}

// Configured reports whether an API key is present
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// finnhubArticle matches the wire format of both news endpoints
type finnhubArticle struct {
	Headline string `json:"headline"`
	URL      string `json:"url"`
	Source   string `json:"source"`
	Summary  string `json:"summary"`
	Datetime int64  `json:"datetime"`
}

// GeneralNews fetches the general market news feed
func (c *Client) GeneralNews() ([]NewsItem, error) {
	params := url.Values{}
	params.Add("category", "general")

	return c.fetchNews("/news", params)
}

// CompanyNews fetches news for one company over a date window
func (c *Client) CompanyNews(symbol string, from, to time.Time) ([]NewsItem, error) {
	params := url.Values{}
	params.Add("symbol", symbol)
	params.Add("from", from.Format("2006-01-02"))
	params.Add("to", to.Format("2006-01-02"))

	return c.fetchNews("/company-news", params)
}

func (c *Client) fetchNews(path string, params url.Values) ([]NewsItem, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("finnhub API key not configured")
	}

	params.Add("token", c.apiKey)
	reqURL := "https://finnhub.io/api/v1" + path + "?" + params.Encode()

	req, err := http.NewRequest("GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch news: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("Finnhub API returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var articles []finnhubArticle
	if err := json.Unmarshal(body, &articles); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	items := make([]NewsItem, 0, len(articles))
	for _, a := range articles {
		if a.Headline == "" {
			continue
		}
		items = append(items, NewsItem{
			Headline:    a.Headline,
			URL:         a.URL,
			Source:      a.Source,
			Summary:     a.Summary,
			PublishedAt: time.Unix(a.Datetime, 0),
		})
	}

	return items, nil
}
