package renderer

import (
	"bytes"
	"fmt"
	"time"

	md "github.com/nao1215/markdown"

	"github.com/etzold/folio212"
)

// Reconciliation is the renderer-facing view of one reconciliation run.
// Totals are in the reporting currency.
type Reconciliation struct {
	GeneratedAt    time.Time
	ComputedTotal  folio212.Money
	ReferenceTotal folio212.Money
	Discrepancies  []folio212.Discrepancy
}

// ReconciliationMarkdown renders the discrepancy report: executive
// summary, severity breakdown, discrepancies by financial impact and the
// critical issues needing attention.
func ReconciliationMarkdown(r *Reconciliation) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Portfolio Discrepancy Report")
	doc.PlainText(fmt.Sprintf("*Generated on %s*", r.GeneratedAt.Format("2006-01-02 15:04:05")))

	diff := r.ComputedTotal.Sub(r.ReferenceTotal)
	doc.H2("Executive Summary")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"", ""},
		Rows: [][]string{
			{md.Bold("Computed Total"), r.ComputedTotal.String()},
			{md.Bold("Reference Total"), r.ReferenceTotal.String()},
			{md.Bold("Total Discrepancy"), fmt.Sprintf("%s (%s)", diff.SignedString(), diff.PercentOf(r.ReferenceTotal).SignedString())},
		},
	})

	doc.H2("Severity Breakdown")
	counts := make(map[folio212.Severity]int)
	for _, d := range r.Discrepancies {
		counts[d.Severity]++
	}
	breakdown := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Severity", "Issues"},
	}
	for _, sev := range []folio212.Severity{
		folio212.SeverityCritical,
		folio212.SeverityHigh,
		folio212.SeverityMedium,
		folio212.SeverityLow,
	} {
		breakdown.Rows = append(breakdown.Rows, []string{string(sev), fmt.Sprintf("%d", counts[sev])})
	}
	doc.Table(breakdown)

	if len(r.Discrepancies) > 0 {
		sorted := make([]folio212.Discrepancy, len(r.Discrepancies))
		copy(sorted, r.Discrepancies)
		folio212.SortByImpact(sorted)

		doc.H2("Discrepancies by Financial Impact")
		table := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignLeft,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
				md.AlignLeft,
			},
			Header: []string{"Position", "Field", "Computed", "Reference", "Difference", "% Diff", "Severity"},
		}
		for _, d := range sorted {
			table.Rows = append(table.Rows, []string{
				d.PositionName,
				d.Field,
				d.Computed.String(),
				d.Reference.String(),
				d.Difference.SignedString(),
				d.PercentageDiff.SignedString(),
				string(d.Severity),
			})
		}
		doc.Table(table)

		critical := false
		for _, d := range sorted {
			if d.Severity == folio212.SeverityCritical {
				critical = true
				break
			}
		}
		if critical {
			doc.H2("Critical Issues Requiring Attention")
			for _, d := range sorted {
				if d.Severity != folio212.SeverityCritical {
					continue
				}
				doc.PlainText(fmt.Sprintf("- %s (%s): %s difference (%s)",
					md.Bold(d.PositionName), d.Field, d.Difference.SignedString(), d.PercentageDiff.SignedString()))
			}
		}
	} else {
		doc.PlainText("No discrepancies above the noise floor.")
	}

	return doc.String()
}
