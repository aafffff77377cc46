package folio212

import (
	"testing"

	"github.com/shopspring/decimal"
)

func testReconciler() *Reconciler {
	cfg := DefaultConfig()
	return NewReconciler(cfg.Rules, cfg.Rates, cfg.NewNormalizer())
}

func TestSeverityOf(t *testing.T) {
	tests := []struct {
		pct  Percent
		want Severity
	}{
		{1, SeverityLow},
		{5, SeverityLow},
		{5.1, SeverityMedium},
		{20, SeverityMedium},
		{20.1, SeverityHigh},
		{50, SeverityHigh},
		{50.1, SeverityCritical},
		{-60, SeverityCritical},
		{-20, SeverityMedium},
	}
	for _, tt := range tests {
		if got := severityOf(tt.pct); got != tt.want {
			t.Errorf("severityOf(%v) = %q, want %q", float64(tt.pct), got, tt.want)
		}
	}
}

func TestReconciler_TrueCurrency(t *testing.T) {
	r := testReconciler()
	tests := []struct {
		name string
		pos  Position
		want string
	}{
		// Allow-listed tickers were already corrected to pounds, even when
		// their suffix pattern says euro.
		{"allow-listed euro suffix", Position{Ticker: "FXACa_EQ", CurrentPrice: M(0.95, GBP), Currency: GBP}, GBP},
		{"allow-listed uk suffix", Position{Ticker: "VUAGl_EQ", CurrentPrice: M(87.12, GBP), Currency: GBP}, GBP},
		{"us listing", Position{Ticker: "NVDA_US_EQ", CurrentPrice: M(150, USD), Currency: USD}, USD},
		{"unlisted euro suffix", Position{Ticker: "AIRa_EQ", CurrentPrice: M(140, GBP), Currency: GBP}, EUR},
		{"unlisted pence magnitude", Position{Ticker: "HSBAl_EQ", CurrentPrice: M(6500, GBP), Currency: GBP}, GBX},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.TrueCurrency(tt.pos); got != tt.want {
				t.Errorf("TrueCurrency(%q) = %q, want %q", tt.pos.Ticker, got, tt.want)
			}
		})
	}
}

func TestReconciler_Reconcile_MatchedDelta(t *testing.T) {
	r := testReconciler()
	computed := []Position{{
		Ticker:       "NVDA_US_EQ",
		Name:         "Nvidia",
		Account:      "Invest Account",
		Shares:       Q(2),
		AveragePrice: M(100, USD),
		CurrentPrice: M(150, USD),
		Currency:     USD,
	}}
	// Computed MV: $300 × 0.79 = £237. Reference says £200: 18.5% off.
	reference := []ReferenceRow{{
		Ticker:  "NVDA_US_EQ",
		Name:    "Nvidia",
		Account: "Invest Account",
		Value:   M(200, GBP),
		Change:  M(79, GBP),
	}}
	ds := r.Reconcile(computed, reference)
	if len(ds) != 1 {
		t.Fatalf("Reconcile() = %v, want exactly the market_value delta", ds)
	}
	d := ds[0]
	if d.Field != FieldMarketValue {
		t.Errorf("Field = %q, want %q", d.Field, FieldMarketValue)
	}
	if got, want := d.Difference, M(37, GBP); !got.Equal(want) {
		t.Errorf("Difference = %v, want %v", got, want)
	}
	if !d.PercentageDiff.Equal(18.5) {
		t.Errorf("PercentageDiff = %v, want 18.5", d.PercentageDiff)
	}
	if d.Severity != SeverityMedium {
		t.Errorf("Severity = %q, want %q", d.Severity, SeverityMedium)
	}
}

func TestReconciler_Reconcile_NoiseFloor(t *testing.T) {
	r := testReconciler()
	computed := []Position{{
		Ticker:       "RMVl_EQ",
		Name:         "Rightmove",
		Account:      "Invest Account",
		Shares:       Q(1),
		AveragePrice: M(7, GBP),
		CurrentPrice: M(7.05, GBP),
		Currency:     GBP,
	}}
	reference := []ReferenceRow{{
		Ticker:  "RMVl_EQ",
		Name:    "Rightmove",
		Account: "Invest Account",
		Value:   M(7, GBP),
		Change:  M(0.05, GBP),
	}}
	if ds := r.Reconcile(computed, reference); len(ds) != 0 {
		t.Errorf("Reconcile() = %v, want sub-noise deltas dropped", ds)
	}
}

func TestReconciler_Reconcile_MissingPosition(t *testing.T) {
	r := testReconciler()
	reference := []ReferenceRow{
		{Ticker: "GONE_EQ", Name: "Vanished Holdings", Account: "Invest Account", Value: M(50, GBP)},
		{Ticker: "DUST_EQ", Name: "Dust", Account: "Invest Account", Value: M(5, GBP)},
	}
	ds := r.Reconcile(nil, reference)
	if len(ds) != 1 {
		t.Fatalf("Reconcile() = %v, want one missing-position discrepancy", ds)
	}
	d := ds[0]
	if d.Field != FieldMissingPosition || d.Severity != SeverityCritical {
		t.Errorf("got %q/%q, want %q/%q", d.Field, d.Severity, FieldMissingPosition, SeverityCritical)
	}
	if !d.PercentageDiff.Equal(-100) {
		t.Errorf("PercentageDiff = %v, want -100", d.PercentageDiff)
	}
	if got, want := d.Difference, M(-50, GBP); !got.Equal(want) {
		t.Errorf("Difference = %v, want %v", got, want)
	}
}

func TestReconciler_Reconcile_SubstringMatch(t *testing.T) {
	r := testReconciler()
	computed := []Position{{
		Ticker:       "VUAGl_EQ",
		Name:         "Vanguard S&P 500 (Acc)",
		Account:      "Stocks & Shares ISA",
		Shares:       Q(10),
		AveragePrice: M(87.12, GBP),
		CurrentPrice: M(87.12, GBP),
		Currency:     GBP,
	}}
	reference := []ReferenceRow{
		// Same name in another account must not absorb the match.
		{Name: "Vanguard S&P 500", Account: "Invest Account", Value: M(999, GBP)},
		{Name: "Vanguard S&P 500", Account: "Stocks & Shares ISA", Value: M(871.2, GBP)},
	}
	ds := r.Reconcile(computed, reference)
	// The same-account row matches by substring, so the only finding is
	// the other account's row going unmatched and missing.
	if len(ds) != 1 || ds[0].Field != FieldMissingPosition || !ds[0].Reference.Equal(M(999, GBP)) {
		t.Errorf("Reconcile() = %v, want only the other account's row missing", ds)
	}
}

func TestReconciler_Reconcile_UnmatchedComputedNotFlagged(t *testing.T) {
	r := testReconciler()
	computed := []Position{{
		Ticker:       "RDDT_US_EQ",
		Name:         "Reddit",
		Account:      "Invest Account",
		Shares:       Q(1),
		AveragePrice: M(60, USD),
		CurrentPrice: M(80, USD),
		Currency:     USD,
	}}
	if ds := r.Reconcile(computed, nil); len(ds) != 0 {
		t.Errorf("Reconcile() = %v, want new positions unflagged", ds)
	}
}

func TestReconciler_Totals(t *testing.T) {
	r := testReconciler()
	computed := []Position{
		{Ticker: "NVDA_US_EQ", Shares: Q(2), CurrentPrice: M(150, USD), Currency: USD},
		{Ticker: "RMVl_EQ", Shares: Q(10), CurrentPrice: M(7, GBP), Currency: GBP},
	}
	reference := []ReferenceRow{
		{Ticker: "NVDA_US_EQ", Value: M(237, GBP)},
		{Ticker: "RMVl_EQ", Value: M(70, GBP)},
	}
	ct, rt := r.Totals(computed, reference)
	if want := M(307, GBP); !ct.Equal(want) {
		t.Errorf("computed total = %v, want %v", ct, want)
	}
	if want := M(307, GBP); !rt.Equal(want) {
		t.Errorf("reference total = %v, want %v", rt, want)
	}
}

func TestSortByImpact(t *testing.T) {
	ds := []Discrepancy{
		{PositionName: "small", Difference: M(2, GBP)},
		{PositionName: "big", Difference: M(-40, GBP)},
		{PositionName: "mid", Difference: M(10, GBP)},
	}
	SortByImpact(ds)
	want := []string{"big", "mid", "small"}
	for i, name := range want {
		if ds[i].PositionName != name {
			t.Errorf("ds[%d] = %q, want %q", i, ds[i].PositionName, name)
		}
	}
}

func TestReconciler_CustomFloors(t *testing.T) {
	r := testReconciler()
	r.NoiseFloor = decimal.NewFromInt(100)
	computed := []Position{{
		Ticker:       "RMVl_EQ",
		Name:         "Rightmove",
		Account:      "Invest Account",
		Shares:       Q(10),
		AveragePrice: M(5, GBP),
		CurrentPrice: M(12, GBP),
		Currency:     GBP,
	}}
	reference := []ReferenceRow{{
		Name:    "Rightmove",
		Account: "Invest Account",
		Value:   M(70, GBP),
		Change:  M(20, GBP),
	}}
	if ds := r.Reconcile(computed, reference); len(ds) != 0 {
		t.Errorf("Reconcile() = %v, want everything under the raised floor dropped", ds)
	}
}
