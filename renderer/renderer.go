// Package renderer turns valuation and reconciliation results into
// markdown and CSV reports.
package renderer

import (
	"bytes"
	"fmt"
	"time"

	md "github.com/nao1215/markdown"

	"github.com/etzold/folio212"
)

// AccountSection is one account's slice of a report: its summary and its
// positions, already sorted for presentation.
type AccountSection struct {
	Summary   folio212.AccountSummary
	Positions []folio212.Position
}

// Report is the renderer-facing view of one full export run.
type Report struct {
	GeneratedAt time.Time
	Accounts    []AccountSection
	// Combined is present only when every account reports in the same
	// currency.
	Combined *folio212.AccountSummary
}

// Markdown renders the portfolio report.
func Markdown(r *Report) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Trading 212 Portfolio")
	doc.PlainText(fmt.Sprintf("*Generated on %s*", r.GeneratedAt.Format("2006-01-02 15:04:05")))

	for _, section := range r.Accounts {
		doc.H2(section.Summary.Account + " Positions")
		table := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
			},
			Header: []string{"NAME", "SHARES", "AVERAGE PRICE", "CURRENT PRICE", "MARKET VALUE", "RESULT", "RESULT %"},
		}
		for _, p := range section.Positions {
			table.Rows = append(table.Rows, []string{
				p.Name,
				p.Shares.String(),
				p.AveragePrice.String(),
				p.CurrentPrice.String(),
				p.MarketValue().String(),
				markedMoney(p.ProfitLoss()),
				markedPercent(p.ProfitLossPercent()),
			})
		}
		doc.Table(table)

		doc.H2(section.Summary.Account + " Summary")
		doc.Table(summaryTable(section.Summary))
	}

	if r.Combined != nil {
		doc.H2("All Accounts Summary")
		doc.Table(summaryTable(*r.Combined))
	}

	return doc.String()
}

func summaryTable(s folio212.AccountSummary) md.TableSet {
	return md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"", ""},
		Rows: [][]string{
			{md.Bold("FREE FUNDS"), s.FreeFunds.String()},
			{md.Bold("PORTFOLIO"), s.Invested.String()},
			{md.Bold("RESULT"), markedMoney(s.Result)},
		},
	}
}

// markedMoney prefixes a signed money value with its gain/loss marker.
func markedMoney(m folio212.Money) string {
	return marker(m.IsPositive(), m.IsNegative()) + " " + m.SignedString()
}

func markedPercent(p folio212.Percent) string {
	return marker(p > 0, p < 0) + " " + p.SignedString()
}

func marker(positive, negative bool) string {
	switch {
	case positive:
		return "🟢"
	case negative:
		return "🔴"
	default:
		return "⚪"
	}
}
