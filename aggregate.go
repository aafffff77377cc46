package folio212

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// RawRecord is one raw brokerage position record, as fetched. The numeric
// fields are pointers because the upstream payload may omit them: a
// missing required field is a construction error, never silently zero.
type RawRecord struct {
	Ticker       string
	Name         string // optional display name from the details endpoint
	Quantity     *decimal.Decimal
	AveragePrice *decimal.Decimal
	CurrentPrice *decimal.Decimal
	CurrencyCode string // optional; the account currency applies when empty
}

// RecordError reports a single malformed raw record. The caller decides
// whether to skip the record or abort the run.
type RecordError struct {
	Ticker string
	Err    error
}

func (e *RecordError) Error() string { return fmt.Sprintf("record %q: %v", e.Ticker, e.Err) }
func (e *RecordError) Unwrap() error { return e.Err }

// Aggregator builds Positions from raw records and rolls them up into
// account summaries. Every method is a pure function of its inputs; it is
// safe to run concurrently for independent accounts.
type Aggregator struct {
	Normalizer *UnitNormalizer
	Names      NameTable
}

// BuildPositions constructs one Position per well-formed record,
// correcting minor-unit prices first so downstream arithmetic is
// unit-consistent. Records missing a required numeric field are returned
// as RecordErrors alongside the positions built from the rest.
//
// The currency classifier is deliberately not applied here: positions
// keep the reported code so the raw record stays auditable.
func (a *Aggregator) BuildPositions(records []RawRecord, account, accountCurrency string) ([]Position, []error) {
	positions := make([]Position, 0, len(records))
	var errs []error
	for _, rec := range records {
		p, err := a.buildPosition(rec, account, accountCurrency)
		if err != nil {
			errs = append(errs, &RecordError{Ticker: rec.Ticker, Err: err})
			continue
		}
		positions = append(positions, p)
	}
	return positions, errs
}

func (a *Aggregator) buildPosition(rec RawRecord, account, accountCurrency string) (Position, error) {
	switch {
	case rec.Quantity == nil:
		return Position{}, fmt.Errorf("missing required field quantity")
	case rec.AveragePrice == nil:
		return Position{}, fmt.Errorf("missing required field averagePrice")
	case rec.CurrentPrice == nil:
		return Position{}, fmt.Errorf("missing required field currentPrice")
	}

	currency := rec.CurrencyCode
	if currency == "" {
		currency = accountCurrency
	}
	avg := M(*rec.AveragePrice, currency)
	current := M(*rec.CurrentPrice, currency)

	// Correct both prices, or neither, so the position stays
	// unit-consistent.
	if a.Normalizer != nil && a.Normalizer.IsMinorUnitPriced(rec.Ticker, current) {
		avg = a.Normalizer.ToMajorUnit(avg)
		current = a.Normalizer.ToMajorUnit(current)
	}

	return Position{
		Ticker:       rec.Ticker,
		Name:         a.Names.DisplayName(rec.Ticker, rec.Name),
		Shares:       Q(*rec.Quantity),
		AveragePrice: avg,
		CurrentPrice: current,
		Currency:     currency,
		Account:      account,
	}, nil
}

// Summarize rolls up the positions belonging to the named account. Only
// positions whose Account matches contribute, so totals cannot double
// count across accounts.
func Summarize(positions []Position, account string, freeFunds Money, currency string) AccountSummary {
	var invested, result decimal.Decimal
	for _, p := range positions {
		if p.Account != account {
			continue
		}
		invested = invested.Add(p.MarketValue().value)
		result = result.Add(p.ProfitLoss().value)
	}
	return AccountSummary{
		Account:   account,
		Currency:  currency,
		FreeFunds: freeFunds,
		Invested:  Money{value: invested, cur: currency},
		Result:    Money{value: result, cur: currency},
	}
}

// AccountPositions is one account's slice of an aggregated position list.
type AccountPositions struct {
	Account   string
	Positions []Position
}

// GroupByAccount splits positions into per-account groups, preserving the
// first-seen account order and the original position order within each
// group. It serves callers holding a flat cross-account list, such as one
// reloaded from a CSV export; the fetch pipeline keeps accounts separate
// from the start and does not need it.
func GroupByAccount(positions []Position) []AccountPositions {
	index := make(map[string]int)
	var groups []AccountPositions
	for _, p := range positions {
		i, ok := index[p.Account]
		if !ok {
			i = len(groups)
			index[p.Account] = i
			groups = append(groups, AccountPositions{Account: p.Account})
		}
		groups[i].Positions = append(groups[i].Positions, p)
	}
	return groups
}

// Combined returns the cross-account total, but only when every summary
// shares one currency. Mixing currencies in a sum would be a silently
// wrong answer, so the combined total is omitted instead.
func Combined(summaries []AccountSummary) (AccountSummary, bool) {
	if len(summaries) == 0 {
		return AccountSummary{}, false
	}
	currency := summaries[0].Currency
	var free, invested, result decimal.Decimal
	for _, s := range summaries {
		if s.Currency != currency {
			return AccountSummary{}, false
		}
		free = free.Add(s.FreeFunds.value)
		invested = invested.Add(s.Invested.value)
		result = result.Add(s.Result.value)
	}
	return AccountSummary{
		Account:   "All Accounts",
		Currency:  currency,
		FreeFunds: Money{value: free, cur: currency},
		Invested:  Money{value: invested, cur: currency},
		Result:    Money{value: result, cur: currency},
	}, true
}

// SortByMarketValue orders positions by descending market value for
// presentation. The sort is stable: ties keep the original fetch order.
func SortByMarketValue(positions []Position) {
	sort.SliceStable(positions, func(i, j int) bool {
		return positions[i].MarketValue().value.GreaterThan(positions[j].MarketValue().value)
	})
}
