package yahoo

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

// Client is a Yahoo Finance API client
type Client struct {
	client *http.Client
	log    zerolog.Logger
}

// NewClient creates a new Yahoo Finance client
func NewClient(log zerolog.Logger) *Client {
	return &Client{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log.With().Str("client", "yahoo").Logger(),
	}
}

// yahooQuoteResponse represents the response from Yahoo Finance quote API
type yahooQuoteResponse struct {
	QuoteResponse struct {
		Result []map[string]interface{} `json:"result"`
		Error  interface{}              `json:"error"`
	} `json:"quoteResponse"`
}

// GetLivePrice fetches the current price for a symbol with retry logic.
// A nil price with a nil error means Yahoo knows the symbol but has no
// usable quote right now.
func (c *Client) GetLivePrice(symbol string) (*float64, error) {
	const maxRetries = 3

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		info, err := c.getQuoteInfo(symbol)
		if err != nil {
			lastErr = err
			if attempt < maxRetries-1 {
				waitTime := time.Duration(1<<uint(attempt)) * time.Second
				c.log.Warn().Err(err).
					Str("symbol", symbol).
					Int("attempt", attempt+1).
					Dur("wait", waitTime).
					Msg("Failed to get price, retrying")
				time.Sleep(waitTime)
				continue
			}
			break
		}

		// Try currentPrice first, then regularMarketPrice
		if price := getFloat64(info, "currentPrice"); price != nil && *price > 0 {
			return price, nil
		}

		if price := getFloat64(info, "regularMarketPrice"); price != nil && *price > 0 {
			return price, nil
		}

		return nil, nil
	}

	return nil, fmt.Errorf("failed after %d attempts: %w", maxRetries, lastErr)
}

// GetAssetInfo fetches descriptive and fundamental data for one asset
func (c *Client) GetAssetInfo(symbol string) (*AssetInfo, error) {
	info, err := c.getQuoteInfo(symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to get quote info: %w", err)
	}

	name := getStringPtr(info, "longName")
	if name == nil {
		name = getStringPtr(info, "shortName")
	}

	return &AssetInfo{
		Symbol:          symbol,
		Name:            name,
		Sector:          getStringPtr(info, "sector"),
		Industry:        getStringPtr(info, "industry"),
		MarketCap:       getInt64(info, "marketCap"),
		PERatio:         getFloat64(info, "trailingPE"),
		DividendYield:   getFloat64(info, "dividendYield"),
		BusinessSummary: getStringPtr(info, "longBusinessSummary"),
	}, nil
}

// GetDividendYield fetches the trailing annual dividend yield as a fraction
func (c *Client) GetDividendYield(symbol string) (*float64, error) {
	info, err := c.getQuoteInfo(symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to get quote info: %w", err)
	}

	if yield := getFloat64(info, "dividendYield"); yield != nil && *yield > 0 {
		return yield, nil
	}

	return nil, nil
}

// getQuoteInfo fetches quote information from Yahoo Finance API
func (c *Client) getQuoteInfo(symbol string) (map[string]interface{}, error) {
	baseURL := "https://query1.finance.yahoo.com/v7/finance/quote"

	params := url.Values{}
	params.Add("symbols", symbol)
	params.Add("fields", "symbol,regularMarketPrice,currentPrice,industry,sector,"+
		"trailingPE,marketCap,dividendYield,longBusinessSummary,"+
		"quoteType,longName,shortName")

	reqURL := baseURL + "?" + params.Encode()

	req, err := http.NewRequest("GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Set headers to mimic browser
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch quote: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("Yahoo Finance API returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var result yahooQuoteResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if result.QuoteResponse.Error != nil {
		return nil, fmt.Errorf("Yahoo Finance API error: %v", result.QuoteResponse.Error)
	}

	if len(result.QuoteResponse.Result) == 0 {
		return nil, fmt.Errorf("no quote data returned for symbol %s", symbol)
	}

	return result.QuoteResponse.Result[0], nil
}

// GetHistoricalPrices fetches historical OHLCV data from Yahoo Finance.
//
// Supports periods: 1d, 5d, 1mo, 3mo, 6mo, 1y, 2y, 5y, 10y, ytd, max
func (c *Client) GetHistoricalPrices(symbol string, period string) ([]HistoricalPrice, error) {
	// Chart API returns JSON, more reliable than the CSV download endpoint
	baseURL := "https://query1.finance.yahoo.com/v8/finance/chart/" + url.QueryEscape(symbol)

	params := url.Values{}
	params.Add("interval", "1d")
	params.Add("range", period)

	reqURL := baseURL + "?" + params.Encode()

	req, err := http.NewRequest("GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch historical data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("Yahoo Finance API returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var result struct {
		Chart struct {
			Result []struct {
				Timestamp  []int64 `json:"timestamp"`
				Indicators struct {
					Quote []struct {
						Open   []float64 `json:"open"`
						High   []float64 `json:"high"`
						Low    []float64 `json:"low"`
						Close  []float64 `json:"close"`
						Volume []int64   `json:"volume"`
					} `json:"quote"`
					AdjClose []struct {
						AdjClose []float64 `json:"adjclose"`
					} `json:"adjclose"`
				} `json:"indicators"`
			} `json:"result"`
			Error interface{} `json:"error"`
		} `json:"chart"`
	}

	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if result.Chart.Error != nil {
		return nil, fmt.Errorf("Yahoo Finance API error: %v", result.Chart.Error)
	}

	if len(result.Chart.Result) == 0 {
		c.log.Warn().Str("symbol", symbol).Msg("No historical data returned")
		return []HistoricalPrice{}, nil
	}

	chartData := result.Chart.Result[0]
	timestamps := chartData.Timestamp
	if len(chartData.Indicators.Quote) == 0 {
		c.log.Warn().Str("symbol", symbol).Msg("No quote data in response")
		return []HistoricalPrice{}, nil
	}

	quote := chartData.Indicators.Quote[0]

	var adjCloseData []float64
	if len(chartData.Indicators.AdjClose) > 0 {
		adjCloseData = chartData.Indicators.AdjClose[0].AdjClose
	}

	var prices []HistoricalPrice
	for i := range timestamps {
		if i >= len(quote.Open) || i >= len(quote.High) || i >= len(quote.Low) || i >= len(quote.Close) {
			continue
		}

		// Yahoo sometimes returns null values
		if quote.Open[i] == 0 && quote.High[i] == 0 && quote.Low[i] == 0 && quote.Close[i] == 0 {
			continue
		}

		adjClose := quote.Close[i]
		if i < len(adjCloseData) && adjCloseData[i] != 0 {
			adjClose = adjCloseData[i]
		}

		volume := int64(0)
		if i < len(quote.Volume) {
			volume = quote.Volume[i]
		}

		prices = append(prices, HistoricalPrice{
			Date:     time.Unix(timestamps[i], 0),
			Open:     quote.Open[i],
			High:     quote.High[i],
			Low:      quote.Low[i],
			Close:    quote.Close[i],
			Volume:   volume,
			AdjClose: adjClose,
		})
	}

	c.log.Info().
		Str("symbol", symbol).
		Str("period", period).
		Int("count", len(prices)).
		Msg("Fetched historical prices")

	return prices, nil
}

// GetTrending fetches the trending-tickers feed for a region
func (c *Client) GetTrending(region string, count int) ([]TrendingQuote, error) {
	if region == "" {
		region = "US"
	}

	baseURL := "https://query1.finance.yahoo.com/v1/finance/trending/" + url.QueryEscape(region)

	params := url.Values{}
	if count > 0 {
		params.Add("count", fmt.Sprintf("%d", count))
	}

	reqURL := baseURL
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequest("GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trending tickers: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("Yahoo Finance API returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var result struct {
		Finance struct {
			Result []struct {
				Quotes []map[string]interface{} `json:"quotes"`
			} `json:"result"`
			Error interface{} `json:"error"`
		} `json:"finance"`
	}

	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if result.Finance.Error != nil {
		return nil, fmt.Errorf("Yahoo Finance API error: %v", result.Finance.Error)
	}

	if len(result.Finance.Result) == 0 {
		return []TrendingQuote{}, nil
	}

	var quotes []TrendingQuote
	for _, q := range result.Finance.Result[0].Quotes {
		symbol := getString(q, "symbol", "")
		if symbol == "" {
			continue
		}
		quotes = append(quotes, TrendingQuote{
			Symbol: symbol,
			Name:   getStringPtr(q, "shortName"),
		})
	}

	return quotes, nil
}

// Helper functions to safely extract values from map

func getFloat64(m map[string]interface{}, key string) *float64 {
	if val, ok := m[key]; ok && val != nil {
		switch v := val.(type) {
		case float64:
			return &v
		case int:
			f := float64(v)
			return &f
		case int64:
			f := float64(v)
			return &f
		}
	}
	return nil
}

func getInt64(m map[string]interface{}, key string) *int64 {
	if val, ok := m[key]; ok && val != nil {
		switch v := val.(type) {
		case float64:
			i := int64(v)
			return &i
		case int:
			i := int64(v)
			return &i
		case int64:
			return &v
		}
	}
	return nil
}

func getString(m map[string]interface{}, key string, defaultVal string) string {
	if val, ok := m[key]; ok && val != nil {
		if s, ok := val.(string); ok {
			return s
		}
	}
	return defaultVal
}

func getStringPtr(m map[string]interface{}, key string) *string {
	if val, ok := m[key]; ok && val != nil {
		if s, ok := val.(string); ok && s != "" {
			return &s
		}
	}
	return nil
}
