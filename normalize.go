package folio212

import (
	"strings"

	"github.com/shopspring/decimal"
)

// minorUnitScale is the minor/major scale for the currencies handled here
// (pence per pound, cents per dollar).
var minorUnitScale = decimal.NewFromInt(100)

// UnitNormalizer corrects the stored prices of instruments confirmed, via
// manual audit against a reference dataset, to be quoted in minor units
// by the upstream feed regardless of magnitude.
//
// Membership in the allow-list is the sole trigger. Magnitude-based
// auto-correction of stored prices risks double-correcting values that
// are already right, so magnitude heuristics are left to CurrencyRules,
// which only affects display and reconciliation.
type UnitNormalizer struct {
	pence    map[string]struct{}
	usSuffix string
}

// NewUnitNormalizer builds a normalizer from an allow-list of tickers.
// Tickers carrying usSuffix are excluded from correction even when
// listed.
func NewUnitNormalizer(tickers []string, usSuffix string) *UnitNormalizer {
	n := &UnitNormalizer{pence: make(map[string]struct{}, len(tickers)), usSuffix: usSuffix}
	for _, t := range tickers {
		n.pence[t] = struct{}{}
	}
	return n
}

// IsMinorUnitPriced reports whether the upstream price for ticker is
// quoted in minor units and must be corrected. The price is accepted for
// contract symmetry with CurrencyRules but deliberately ignored: only the
// allow-list decides.
func (n *UnitNormalizer) IsMinorUnitPriced(ticker string, price Money) bool {
	if n.usSuffix != "" && strings.HasSuffix(ticker, n.usSuffix) {
		return false
	}
	_, ok := n.pence[ticker]
	return ok
}

// ToMajorUnit converts a minor-unit value to major units (÷100).
func (n *UnitNormalizer) ToMajorUnit(v Money) Money {
	return Money{value: v.value.Div(minorUnitScale), cur: v.cur}
}
