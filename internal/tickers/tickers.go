// Package tickers holds static reference lists of well-known symbols per
// asset class, used by the markets listing command.
package tickers

import "sort"

var markets = map[string][]string{
	"crypto": {
		"BTC-USD", "ETH-USD", "SOL1-USD", "ADA-USD", "XRP-USD", "DOT1-USD",
		"LUNA1-USD", "DOGE-USD", "AVAX-USD", "SHIB-USD", "ALGO-USD", "LTC-USD",
		"UNI3-USD", "BCH-USD", "XLM-USD", "TRX-USD", "TON-USD", "BNB-USD",
	},
	"indices": {
		"^DJI", "^GSPC", "^IXIC", "^VIX", "^HSI", "^N225", "DX-Y.NYB",
	},
	"forex": {
		"EURUSD=X", "JPY=X", "GBPUSD=X", "EURJPY=X",
	},
	"stocks": {
		"AAPL", "MSFT", "GOOGL", "AMZN", "TSLA", "META", "NVDA", "NFLX", "AMD", "INTC",
		"CRM", "ADBE", "PYPL", "UBER", "LYFT", "ZM", "SQ", "ROKU", "SPOT", "TWTR",
		"BABA", "JD", "PDD", "NIO", "XPEV", "LI", "BIDU", "TME", "VIPS", "YMM",
		"JPM", "BAC", "WFC", "GS", "MS", "C", "USB", "PNC", "TFC", "COF",
	},
	"commodities": {
		"GC=F", "SI=F", "ZN=F", "ZS=F",
	},
	"etf": {
		"SPY", "IVV", "VOO", "QQQ", "DIA", "VTI", "EEM", "GLD", "SLV", "USO", "IAU",
	},
	"bonds": {
		"FVX", "TNX", "TYX",
	},
}

// Markets returns the known market names, sorted.
func Markets() []string {
	names := make([]string, 0, len(markets))
	for name := range markets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ForMarket returns the ticker list for a market name, or false when the
// market is unknown.
func ForMarket(name string) ([]string, bool) {
	list, ok := markets[name]
	return list, ok
}
