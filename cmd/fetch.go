package cmd

import (
	"log"
	"time"

	"github.com/etzold/folio212"
	"github.com/etzold/folio212/renderer"
	"github.com/etzold/folio212/t212"
)

// FetchAccount pulls one account's raw data and computes its positions
// and summary. The portfolio listing itself is required; the optional
// endpoints (metadata, details, cash) degrade to documented fallbacks
// because partial data is more useful than none for a reporting tool.
func FetchAccount(client *t212.Client, cfg folio212.Config) ([]folio212.Position, folio212.AccountSummary, error) {
	currency, err := client.GetAccountInfo()
	if err != nil {
		log.Printf("%s: cannot fetch account metadata (%v), assuming %s", client.Account, err, folio212.GBP)
		currency = folio212.GBP
	}

	entries, err := client.GetPortfolio()
	if err != nil {
		return nil, folio212.AccountSummary{}, err
	}

	records := make([]folio212.RawRecord, 0, len(entries))
	for _, e := range entries {
		name, err := client.GetPositionDetails(e.Ticker)
		if err != nil {
			// DisplayName falls back to the naming table, then the ticker.
			name = ""
		}
		records = append(records, folio212.RawRecord{
			Ticker:       e.Ticker,
			Name:         name,
			Quantity:     e.Quantity,
			AveragePrice: e.AveragePrice,
			CurrentPrice: e.CurrentPrice,
			CurrencyCode: e.CurrencyCode,
		})
	}

	agg := folio212.Aggregator{Normalizer: cfg.NewNormalizer(), Names: cfg.Names}
	positions, errs := agg.BuildPositions(records, client.Account, currency)
	for _, err := range errs {
		log.Printf("%s: skipping malformed %v", client.Account, err)
	}

	free := folio212.M(0, currency)
	if cash, err := client.GetAccountCash(); err != nil {
		log.Printf("%s: cannot fetch cash balance (%v), assuming 0", client.Account, err)
	} else {
		free = folio212.M(cash, currency)
	}

	summary := folio212.Summarize(positions, client.Account, free, currency)
	folio212.SortByMarketValue(positions)
	return positions, summary, nil
}

// FetchAll computes every configured account and assembles the report.
// It also returns the flat position list for reconciliation.
func FetchAll(clients []*t212.Client, cfg folio212.Config) (*renderer.Report, []folio212.Position, error) {
	report := &renderer.Report{GeneratedAt: time.Now()}
	var all []folio212.Position
	var summaries []folio212.AccountSummary

	for _, client := range clients {
		positions, summary, err := FetchAccount(client, cfg)
		if err != nil {
			return nil, nil, err
		}
		report.Accounts = append(report.Accounts, renderer.AccountSection{
			Summary:   summary,
			Positions: positions,
		})
		all = append(all, positions...)
		summaries = append(summaries, summary)
	}

	if combined, ok := folio212.Combined(summaries); ok && len(summaries) > 1 {
		report.Combined = &combined
	}
	return report, all, nil
}
