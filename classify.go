package folio212

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencyRules classifies the true quoting currency of a price when the
// upstream-reported code cannot be trusted. The tables are injectable so
// that newly mispriced instruments can be added without code changes.
//
// Classification is strictly for display and reconciliation; it never
// mutates stored prices (that is UnitNormalizer's job, and only for its
// allow-listed tickers).
type CurrencyRules struct {
	// USSuffix marks a US listing (e.g. "_US_EQ"). US prices are never
	// misreported, so the match wins unconditionally.
	USSuffix string
	// EuroMarkers are substrings denoting a euro-denominated listing
	// (e.g. the Xetra "d_EQ" and Amsterdam "a_EQ" suffixes).
	EuroMarkers []string
	// UKSuffix marks a London listing (e.g. "l_EQ").
	UKSuffix string
	// PenceThreshold: a UK price above this is almost certainly quoted in
	// pence, since pence prices for typical retail holdings are
	// numerically 100× their pound equivalent.
	PenceThreshold decimal.Decimal
	// HighPence lists UK tickers empirically known to quote high pence
	// values, classified GBX above the lower HighPenceThreshold.
	HighPence          []string
	HighPenceThreshold decimal.Decimal
}

// DefaultCurrencyRules returns the tuned rule set for Trading212-style
// tickers. The thresholds and the override list come from manual audits of
// known mispriced instruments.
func DefaultCurrencyRules() CurrencyRules {
	return CurrencyRules{
		USSuffix:           "_US_EQ",
		EuroMarkers:        []string{"d_EQ", "a_EQ"},
		UKSuffix:           "l_EQ",
		PenceThreshold:     decimal.NewFromInt(1000),
		HighPence:          []string{"RMVl_EQ", "IINDl_EQ", "RBODl_EQ"},
		HighPenceThreshold: decimal.NewFromInt(500),
	}
}

// Classify infers the actual currency of a quoted price from the ticker's
// naming convention and the price magnitude, falling back to the reported
// code. A zero or negative price never fails classification: the
// magnitude branches simply do not trigger.
func (r CurrencyRules) Classify(ticker string, price Money, reported string) string {
	if r.USSuffix != "" && strings.HasSuffix(ticker, r.USSuffix) {
		return USD
	}
	for _, marker := range r.EuroMarkers {
		if strings.Contains(ticker, marker) {
			return EUR
		}
	}
	if r.UKSuffix != "" && strings.HasSuffix(ticker, r.UKSuffix) {
		if price.value.GreaterThan(r.PenceThreshold) {
			return GBX
		}
		for _, t := range r.HighPence {
			if t == ticker && price.value.GreaterThan(r.HighPenceThreshold) {
				return GBX
			}
		}
		return GBP
	}
	return reported
}
