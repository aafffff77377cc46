package folio212

// Position is one priced holding in one account.
//
// AveragePrice and CurrentPrice are quoted in Currency after unit
// normalization. Currency is the code reported by the upstream feed and
// may be wrong; the corrected currency is computed on demand with
// CurrencyRules.Classify so the raw record stays auditable.
//
// All valuation figures are derived from the three stored numeric fields
// and are never stored, to prevent drift.
type Position struct {
	Ticker       string
	Name         string // display name; falls back to the ticker if unresolved
	Shares       Quantity
	AveragePrice Money
	CurrentPrice Money
	Currency     string
	Account      string // owning account name
}

// MarketValue returns shares × current price.
func (p Position) MarketValue() Money { return p.CurrentPrice.Mul(p.Shares) }

// CostBasis returns shares × average price.
func (p Position) CostBasis() Money { return p.AveragePrice.Mul(p.Shares) }

// ProfitLoss returns market value − cost basis.
func (p Position) ProfitLoss() Money { return p.MarketValue().Sub(p.CostBasis()) }

// ProfitLossPercent returns profit/loss relative to the cost basis.
// A zero cost basis yields exactly 0; this is a deliberate domain
// convention, not a generic fallback.
func (p Position) ProfitLossPercent() Percent {
	return p.ProfitLoss().PercentOf(p.CostBasis())
}

// AccountSummary is one account's cash plus portfolio rollup.
// Invested and Result are sums over exactly the positions whose Account
// matches; see Summarize.
type AccountSummary struct {
	Account   string
	Currency  string
	FreeFunds Money
	Invested  Money // Σ market value
	Result    Money // Σ profit/loss
}
