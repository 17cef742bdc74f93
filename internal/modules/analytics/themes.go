package analytics

// Static asset-to-theme table for the exposure breakdown. Assets not listed
// fall into the "Other" bucket.
var themeMap = map[string]string{
	"AAPL":  "Tech",
	"MSFT":  "Tech",
	"NVDA":  "Tech",
	"GOOGL": "Tech",
	"META":  "Tech",

	"TSLA": "Green Energy",
	"ICLN": "Green Energy",

	"AMZN": "Consumer",
	"PEP":  "Consumer",

	"BTC-USD": "Crypto",
	"ETH-USD": "Crypto",

	"SPY": "Index ETF",
	"QQQ": "Index ETF",
}

const themeOther = "Other"
const themeCrypto = "Crypto"

// ThemeFor returns the theme bucket for a symbol
func ThemeFor(symbol string) string {
	if theme, ok := themeMap[symbol]; ok {
		return theme
	}
	return themeOther
}

// IsVolatile reports whether a symbol counts toward the volatile-asset ratio
// of the risk indicator. Crypto tickers are the volatile set.
func IsVolatile(symbol string) bool {
	return themeMap[symbol] == themeCrypto
}
