package catalog

// Built-in directory. Trading is not restricted to these symbols; the
// catalog exists so the UI has something to search before any trades
// happen.
var seedEntries = []Entry{
	{Symbol: "AAPL", Name: "Apple Inc.", Theme: "Tech"},
	{Symbol: "MSFT", Name: "Microsoft Corporation", Theme: "Tech"},
	{Symbol: "NVDA", Name: "NVIDIA Corporation", Theme: "Tech"},
	{Symbol: "GOOGL", Name: "Alphabet Inc.", Theme: "Tech"},
	{Symbol: "META", Name: "Meta Platforms, Inc.", Theme: "Tech"},

	{Symbol: "AMZN", Name: "Amazon.com, Inc.", Theme: "Consumer"},
	{Symbol: "PEP", Name: "PepsiCo, Inc.", Theme: "Consumer"},

	{Symbol: "TSLA", Name: "Tesla, Inc.", Theme: "Green Energy"},
	{Symbol: "ICLN", Name: "iShares Global Clean Energy ETF", Theme: "Green Energy"},
	{Symbol: "ENPH", Name: "Enphase Energy, Inc.", Theme: "Green Energy"},
	{Symbol: "NEE", Name: "NextEra Energy, Inc.", Theme: "Green Energy"},
	{Symbol: "PLUG", Name: "Plug Power Inc.", Theme: "Green Energy"},

	{Symbol: "BTC-USD", Name: "Bitcoin USD", Theme: "Crypto"},
	{Symbol: "ETH-USD", Name: "Ethereum USD", Theme: "Crypto"},
	{Symbol: "SOL-USD", Name: "Solana USD", Theme: "Crypto"},
	{Symbol: "ADA-USD", Name: "Cardano USD", Theme: "Crypto"},
	{Symbol: "XRP-USD", Name: "XRP USD", Theme: "Crypto"},

	{Symbol: "SPY", Name: "SPDR S&P 500 ETF Trust", Theme: "Index ETF"},
	{Symbol: "QQQ", Name: "Invesco QQQ Trust", Theme: "Index ETF"},
	{Symbol: "VTI", Name: "Vanguard Total Stock Market ETF", Theme: "Index ETF"},
	{Symbol: "VOO", Name: "Vanguard S&P 500 ETF", Theme: "Index ETF"},
	{Symbol: "ARKK", Name: "ARK Innovation ETF", Theme: "Index ETF"},

	{Symbol: "JPM", Name: "JPMorgan Chase & Co.", Theme: "Banking"},
	{Symbol: "BAC", Name: "Bank of America Corporation", Theme: "Banking"},
	{Symbol: "WFC", Name: "Wells Fargo & Company", Theme: "Banking"},
	{Symbol: "C", Name: "Citigroup Inc.", Theme: "Banking"},
	{Symbol: "GS", Name: "The Goldman Sachs Group, Inc.", Theme: "Banking"},
}
