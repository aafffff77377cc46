package folio212

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ReportingCurrency is the single currency all cross-account combined
// figures are expressed in.
const ReportingCurrency = GBP

// RateTable converts classified values into the reporting currency using
// static approximate rates. The rates are adequate for informational
// reporting, not trading decisions; AsOf records when they were last
// reviewed so staleness is at least observable.
//
// Conversion is used only for cross-currency reporting and
// reconciliation. It must never feed back into stored Position fields.
type RateTable struct {
	AsOf   time.Time
	USDGBP decimal.Decimal
	EURGBP decimal.Decimal
}

// DefaultRates returns the built-in approximations, last reviewed on the
// AsOf date.
func DefaultRates() RateTable {
	return RateTable{
		AsOf:   time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC),
		USDGBP: decimal.NewFromFloat(0.79),
		EURGBP: decimal.NewFromFloat(0.86),
	}
}

// ToReportingCurrency converts a value quoted in the given classified
// currency into GBP. Unknown currencies are an error so callers can
// decide between skipping the conversion and aborting; an implicit wrong
// conversion is never produced.
func (t RateTable) ToReportingCurrency(v Money, currency string) (Money, error) {
	switch currency {
	case GBP:
		return Money{value: v.value, cur: GBP}, nil
	case GBX:
		return Money{value: v.value.Div(minorUnitScale), cur: GBP}, nil
	case USD:
		return Money{value: v.value.Mul(t.USDGBP), cur: GBP}, nil
	case EUR:
		return Money{value: v.value.Mul(t.EURGBP), cur: GBP}, nil
	}
	return Money{}, fmt.Errorf("no %s rate for currency %q (as of %s)", ReportingCurrency, currency, t.AsOf.Format("2006-01-02"))
}
