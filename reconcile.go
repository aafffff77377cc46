package folio212

import (
	"log"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Severity tiers a discrepancy by financial impact.
type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// Fields a Discrepancy can report on.
const (
	FieldMarketValue     = "market_value"
	FieldProfitLoss      = "profit_loss"
	FieldMissingPosition = "missing_position"
)

// Discrepancy is one detected mismatch between computed and reference
// data, in the reporting currency.
type Discrepancy struct {
	PositionName   string
	Field          string
	Computed       Money
	Reference      Money
	Difference     Money
	PercentageDiff Percent
	Severity       Severity
}

// Reconciler matches computed positions against a reference dataset and
// classifies the deltas. Discrepancies exist only for the duration of one
// report.
type Reconciler struct {
	Rules      CurrencyRules
	Rates      RateTable
	Normalizer *UnitNormalizer

	// NoiseFloor is the absolute difference below which a matched pair is
	// not worth recording (reporting-currency units).
	NoiseFloor decimal.Decimal
	// MaterialityFloor is the reference value below which a missing
	// position is not worth flagging.
	MaterialityFloor decimal.Decimal
}

// NewReconciler returns a reconciler with the given classification config
// and the audited default floors (0.10 noise, 10 materiality).
func NewReconciler(rules CurrencyRules, rates RateTable, normalizer *UnitNormalizer) *Reconciler {
	return &Reconciler{
		Rules:            rules,
		Rates:            rates,
		Normalizer:       normalizer,
		NoiseFloor:       decimal.NewFromFloat(0.10),
		MaterialityFloor: decimal.NewFromInt(10),
	}
}

// TrueCurrency resolves the currency a position's values are actually
// quoted in. Allow-listed tickers were corrected to pounds at build time,
// so the allow-list takes precedence over the pattern rules.
func (r *Reconciler) TrueCurrency(p Position) string {
	if r.Normalizer != nil && r.Normalizer.IsMinorUnitPriced(p.Ticker, p.CurrentPrice) {
		return GBP
	}
	return r.Rules.Classify(p.Ticker, p.CurrentPrice, p.Currency)
}

// toGBP converts a position value to the reporting currency. When no rate
// is configured for the classified currency the value is compared as-is;
// a warning is logged rather than inventing a conversion.
func (r *Reconciler) toGBP(p Position, v Money) Money {
	converted, err := r.Rates.ToReportingCurrency(v, r.TrueCurrency(p))
	if err != nil {
		log.Printf("warning: %s: %v, comparing unconverted value", p.Ticker, err)
		return Money{value: v.value, cur: GBP}
	}
	return converted
}

// Reconcile compares computed positions against the reference snapshot.
//
// Matching is primarily an exact (name, account) pair; a case-insensitive
// substring match on the name within the same account absorbs
// naming-format drift between the live feed and the snapshot. Reference
// entries that match nothing and exceed the materiality floor become
// CRITICAL missing-position discrepancies. Computed entries absent from
// the reference are expected (new positions since the snapshot) and are
// not flagged.
func (r *Reconciler) Reconcile(computed []Position, reference []ReferenceRow) []Discrepancy {
	var discrepancies []Discrepancy
	matched := make([]bool, len(reference))

	for _, pos := range computed {
		ref := r.match(pos, reference, matched)
		if ref == nil {
			continue
		}
		mv := r.toGBP(pos, pos.MarketValue())
		discrepancies = r.appendDelta(discrepancies, pos.Name, FieldMarketValue, mv, ref.Value, ref.Value.value)

		pl := r.toGBP(pos, pos.ProfitLoss())
		// percentage for profit/loss is relative to its magnitude, since
		// the sign of a reference loss would flip the ratio.
		discrepancies = r.appendDelta(discrepancies, pos.Name, FieldProfitLoss, pl, ref.Change, ref.Change.value.Abs())
	}

	for i, ref := range reference {
		if matched[i] || !ref.Value.value.GreaterThan(r.MaterialityFloor) {
			continue
		}
		discrepancies = append(discrepancies, Discrepancy{
			PositionName:   ref.Name,
			Field:          FieldMissingPosition,
			Computed:       M(0, GBP),
			Reference:      ref.Value,
			Difference:     ref.Value.Neg(),
			PercentageDiff: -100,
			Severity:       SeverityCritical,
		})
	}
	return discrepancies
}

// match finds the reference row for a computed position and marks it used.
func (r *Reconciler) match(pos Position, reference []ReferenceRow, matched []bool) *ReferenceRow {
	for i := range reference {
		if reference[i].Name == pos.Name && reference[i].Account == pos.Account {
			matched[i] = true
			return &reference[i]
		}
	}
	posName := strings.ToLower(pos.Name)
	for i := range reference {
		if reference[i].Account != pos.Account {
			continue
		}
		refName := strings.ToLower(reference[i].Name)
		if strings.Contains(posName, refName) || strings.Contains(refName, posName) {
			matched[i] = true
			return &reference[i]
		}
	}
	return nil
}

// appendDelta records one field comparison if it clears the noise floor.
// denominator is the reference magnitude percentage is computed against;
// zero yields a 0 percentage rather than an error.
func (r *Reconciler) appendDelta(ds []Discrepancy, name, field string, computed, reference Money, denominator decimal.Decimal) []Discrepancy {
	diff := computed.value.Sub(reference.value)
	if !diff.Abs().GreaterThan(r.NoiseFloor) {
		return ds
	}
	var pct Percent
	if !denominator.IsZero() {
		pct = Percent(diff.Div(denominator).InexactFloat64() * 100)
	}
	return append(ds, Discrepancy{
		PositionName:   name,
		Field:          field,
		Computed:       computed,
		Reference:      reference,
		Difference:     Money{value: diff, cur: GBP},
		PercentageDiff: pct,
		Severity:       severityOf(pct),
	})
}

// severityOf tiers a percentage difference. Boundaries are exclusive: an
// exact 50% is HIGH, not CRITICAL.
func severityOf(pct Percent) Severity {
	abs := pct
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs > 50:
		return SeverityCritical
	case abs > 20:
		return SeverityHigh
	case abs > 5:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// Totals returns the computed and reference portfolio totals in the
// reporting currency, for the report's executive summary.
func (r *Reconciler) Totals(computed []Position, reference []ReferenceRow) (computedTotal, referenceTotal Money) {
	var ct, rt decimal.Decimal
	for _, p := range computed {
		ct = ct.Add(r.toGBP(p, p.MarketValue()).value)
	}
	for _, ref := range reference {
		rt = rt.Add(ref.Value.value)
	}
	return Money{value: ct, cur: GBP}, Money{value: rt, cur: GBP}
}

// SortByImpact orders discrepancies by descending absolute difference,
// the order reports present them in.
func SortByImpact(ds []Discrepancy) {
	sort.SliceStable(ds, func(i, j int) bool {
		return ds[i].Difference.value.Abs().GreaterThan(ds[j].Difference.value.Abs())
	})
}
