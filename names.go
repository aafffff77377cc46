package folio212

import "strings"

// NameTable maps broker tickers to display names for instruments whose
// details endpoint returns no usable name (mostly ETFs and funds).
type NameTable map[string]string

// DisplayName picks the name to show for a ticker. A meaningful
// API-provided name wins; raw ticker-shaped names ("VUAGl_EQ") fall back
// to the table, then to the ticker itself.
func (t NameTable) DisplayName(ticker, apiName string) string {
	if apiName != "" && apiName != ticker && !strings.HasSuffix(apiName, "_EQ") {
		return apiName
	}
	if name, ok := t[ticker]; ok {
		return name
	}
	return ticker
}

// DefaultNames returns the built-in ticker naming table, collected from
// instruments the upstream API would not name.
func DefaultNames() NameTable {
	return NameTable{
		// ETFs and funds
		"VUAGl_EQ": "Vanguard S&P 500 (Acc)",
		"FXACa_EQ": "iShares China Large Cap (Acc)",
		"EXICd_EQ": "iShares Core DAX DE (Dist)",
		"IINDl_EQ": "iShares MSCI India (Acc)",
		"IITU_EQ":  "iShares S&P 500 Information Technology Sector (Acc)",
		"INTLl_EQ": "WisdomTree Artificial Intelligence (Acc)",
		"SGLNl_EQ": "iShares Physical Gold",
		"CNX1_EQ":  "iShares NASDAQ 100 (Acc)",
		"RMVl_EQ":  "Rightmove",
		"R1GRl_EQ": "iShares Russell 1000 Growth",
		"BLKCa_EQ": "iShares Blockchain Technology",
		"VGERl_EQ": "Vanguard Germany All Cap",
		"SMGBl_EQ": "VanEck Semiconductor (Acc)",
		"VWRPl_EQ": "Vanguard FTSE All-World (Acc)",
		"RBODl_EQ": "iShares Automation & Robotics (Dist)",

		// US stocks
		"PLTR_US_EQ":  "Palantir",
		"NVDA_US_EQ":  "Nvidia",
		"ORCL_US_EQ":  "Oracle",
		"AVGO_US_EQ":  "Broadcom",
		"SHOP_US_EQ":  "Shopify",
		"MSFT_US_EQ":  "Microsoft",
		"V_US_EQ":     "Visa",
		"SPOT_US_EQ":  "Spotify Technology",
		"FB_US_EQ":    "Meta Platforms",
		"META_US_EQ":  "Meta Platforms",
		"MA_US_EQ":    "Mastercard",
		"NFLX_US_EQ":  "Netflix",
		"AAXN_US_EQ":  "Axon Enterprise",
		"GOOGL_US_EQ": "Alphabet (Class A)",
		"UBER_US_EQ":  "Uber Technologies",
		"OAC_US_EQ":   "Hims & Hers Health",
		"HIMS_US_EQ":  "Hims & Hers Health",
		"RDDT_US_EQ":  "Reddit",
		"MSTR_US_EQ":  "MicroStrategy",
		"ASML_US_EQ":  "ASML",
		"AMZN_US_EQ":  "Amazon",
		"PGR_US_EQ":   "Progressive",
		"ISRG_US_EQ":  "Intuitive Surgical",
	}
}
