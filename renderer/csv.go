package renderer

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/etzold/folio212"
)

// WriteCSV writes the positions of every account followed by the account
// summaries, in the layout reconciliation tooling expects: a title line,
// a blank line, then headed sections. Monetary cells are plain decimals,
// without symbols or separators.
func WriteCSV(w io.Writer, r *Report) error {
	cw := csv.NewWriter(w)

	title := fmt.Sprintf("Trading 212 Portfolio Positions - Generated on %s", r.GeneratedAt.Format("2006-01-02 15:04:05"))
	records := [][]string{
		{title},
		{},
		{"ACCOUNT", "NAME", "SHARES", "AVERAGE_PRICE", "CURRENT_PRICE", "MARKET_VALUE", "RESULT", "RESULT_%", "CURRENCY"},
	}
	for _, section := range r.Accounts {
		for _, p := range section.Positions {
			records = append(records, []string{
				p.Account,
				p.Name,
				p.Shares.String(),
				p.AveragePrice.Amount().StringFixed(2),
				p.CurrentPrice.Amount().StringFixed(2),
				p.MarketValue().Amount().StringFixed(2),
				p.ProfitLoss().Amount().StringFixed(2),
				fmt.Sprintf("%.2f", float64(p.ProfitLossPercent())),
				p.Currency,
			})
		}
	}

	records = append(records,
		nil,
		[]string{"ACCOUNT", "FREE_FUNDS", "INVESTED", "RESULT", "CURRENCY"},
	)
	for _, section := range r.Accounts {
		records = append(records, summaryRecord(section.Summary))
	}
	if r.Combined != nil {
		records = append(records, summaryRecord(*r.Combined))
	}

	for _, record := range records {
		if record == nil {
			record = []string{}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func summaryRecord(s folio212.AccountSummary) []string {
	return []string{
		s.Account,
		s.FreeFunds.Amount().StringFixed(2),
		s.Invested.Amount().StringFixed(2),
		s.Result.Amount().StringFixed(2),
		s.Currency,
	}
}
