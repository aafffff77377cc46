package t212

import (
	"fmt"
	"net/url"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// PortfolioEntry is one raw position record from /equity/portfolio.
// Numeric fields are pointers: the payload may omit them, and a missing
// required field must be visible to the caller, not a silent zero.
type PortfolioEntry struct {
	Ticker       string           `json:"ticker"`
	Quantity     *decimal.Decimal `json:"quantity"`
	AveragePrice *decimal.Decimal `json:"averagePrice"`
	CurrentPrice *decimal.Decimal `json:"currentPrice"`
	CurrencyCode string           `json:"currencyCode"`
}

// GetPortfolio fetches all open positions of the account.
func (c *Client) GetPortfolio() ([]PortfolioEntry, error) {
	entries := make([]PortfolioEntry, 0)
	if err := c.jwget("/equity/portfolio", &entries); err != nil {
		return nil, fmt.Errorf("cannot fetch portfolio for %s: %w", c.Account, err)
	}
	return entries, nil
}

// GetPositionDetails fetches the display name for a ticker. The response
// shape varies between instrument classes, so the name is extracted with
// a jsonpath probe instead of a rigid struct. Best effort: callers fall
// back to the ticker on error.
func (c *Client) GetPositionDetails(ticker string) (name string, err error) {
	var jobj any
	if err := c.jwget("/equity/portfolio/"+url.PathEscape(ticker), &jobj); err != nil {
		return "", err
	}
	for _, path := range []string{"$.name", "$.shortName", "$.instrument.name"} {
		jval, err := jsonpath.Get(path, jobj)
		if err != nil {
			continue
		}
		if s, ok := jval.(string); ok && s != "" {
			return s, nil
		}
	}
	return "", fmt.Errorf("no name in details for %q", ticker)
}

// GetAccountCash fetches the free cash balance. Best effort: restricted
// API keys cannot read it, and callers fall back to zero.
func (c *Client) GetAccountCash() (free decimal.Decimal, err error) {
	var payload struct {
		Free *decimal.Decimal `json:"free"`
	}
	if err := c.jwget("/equity/account/cash", &payload); err != nil {
		return decimal.Decimal{}, err
	}
	if payload.Free == nil {
		return decimal.Decimal{}, fmt.Errorf("no free balance in cash payload")
	}
	return *payload.Free, nil
}

// GetAccountInfo fetches the account's currency code. Best effort:
// callers fall back to a default currency.
func (c *Client) GetAccountInfo() (currency string, err error) {
	var payload struct {
		CurrencyCode string `json:"currencyCode"`
	}
	if err := c.jwget("/equity/account/info", &payload); err != nil {
		return "", err
	}
	if payload.CurrencyCode == "" {
		return "", fmt.Errorf("no currency code in account metadata")
	}
	return payload.CurrencyCode, nil
}
