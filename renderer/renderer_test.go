package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/etzold/folio212"
)

func testReport() *Report {
	positions := []folio212.Position{
		{
			Ticker:       "NVDA_US_EQ",
			Name:         "Nvidia",
			Account:      "Invest Account",
			Shares:       folio212.Q(2),
			AveragePrice: folio212.M(100, folio212.USD),
			CurrentPrice: folio212.M(150, folio212.USD),
			Currency:     folio212.USD,
		},
		{
			Ticker:       "VUAGl_EQ",
			Name:         "Vanguard S&P 500 (Acc)",
			Account:      "Invest Account",
			Shares:       folio212.Q(10),
			AveragePrice: folio212.M(90, folio212.GBP),
			CurrentPrice: folio212.M(87.12, folio212.GBP),
			Currency:     folio212.GBP,
		},
	}
	return &Report{
		GeneratedAt: time.Date(2025, time.August, 1, 12, 0, 0, 0, time.UTC),
		Accounts: []AccountSection{{
			Summary: folio212.AccountSummary{
				Account:   "Invest Account",
				Currency:  folio212.GBP,
				FreeFunds: folio212.M(50, folio212.GBP),
				Invested:  folio212.M(1108.2, folio212.GBP),
				Result:    folio212.M(71.2, folio212.GBP),
			},
			Positions: positions,
		}},
	}
}

// headings parses a markdown document and returns its heading texts in
// order.
func headings(t *testing.T, doc string) []string {
	t.Helper()
	src := []byte(doc)
	root := goldmark.DefaultParser().Parse(text.NewReader(src))
	var out []string
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if h, ok := n.(*ast.Heading); ok && entering {
			out = append(out, string(h.Text(src)))
		}
		return ast.WalkContinue, nil
	})
	return out
}

func TestMarkdown_Structure(t *testing.T) {
	doc := Markdown(testReport())

	want := []string{
		"Trading 212 Portfolio",
		"Invest Account Positions",
		"Invest Account Summary",
	}
	got := headings(t, doc)
	if len(got) != len(want) {
		t.Fatalf("headings = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("headings[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	for _, cell := range []string{
		"*Generated on 2025-08-01 12:00:00*",
		"Nvidia",
		"$150.00",
		"🟢 +$100.00",
		"🔴 -£28.80",
		"**FREE FUNDS**",
		"£1,108.20",
	} {
		if !strings.Contains(doc, cell) {
			t.Errorf("document missing %q:\n%s", cell, doc)
		}
	}
}

func TestMarkdown_CombinedSection(t *testing.T) {
	r := testReport()
	combined := folio212.AccountSummary{
		Account:   "All Accounts",
		Currency:  folio212.GBP,
		FreeFunds: folio212.M(60, folio212.GBP),
		Invested:  folio212.M(2000, folio212.GBP),
		Result:    folio212.M(100, folio212.GBP),
	}
	r.Combined = &combined

	doc := Markdown(r)
	got := headings(t, doc)
	if got[len(got)-1] != "All Accounts Summary" {
		t.Errorf("last heading = %q, want the combined summary", got[len(got)-1])
	}
}

func TestWriteCSV(t *testing.T) {
	var buf strings.Builder
	if err := WriteCSV(&buf, testReport()); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}
	out := buf.String()

	for _, line := range []string{
		"Trading 212 Portfolio Positions - Generated on 2025-08-01 12:00:00",
		"ACCOUNT,NAME,SHARES,AVERAGE_PRICE,CURRENT_PRICE,MARKET_VALUE,RESULT,RESULT_%,CURRENCY",
		"Invest Account,Nvidia,2,100.00,150.00,300.00,100.00,50.00,USD",
		"Invest Account,Vanguard S&P 500 (Acc),10,90.00,87.12,871.20,-28.80,-3.20,GBP",
		"ACCOUNT,FREE_FUNDS,INVESTED,RESULT,CURRENCY",
		"Invest Account,50.00,1108.20,71.20,GBP",
	} {
		if !strings.Contains(out, line) {
			t.Errorf("CSV missing %q:\n%s", line, out)
		}
	}
}
