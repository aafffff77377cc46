package folio212

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

// ReferenceRow is one position of the independently sourced reference
// dataset, with every monetary column already expressed in GBP.
type ReferenceRow struct {
	Ticker       string
	Name         string
	Account      string
	Quantity     Quantity
	PriceOwned   Money
	CurrentPrice Money
	Value        Money
	Change       Money
}

// ReferenceError is the single structured error surfaced when a reference
// dataset cannot be read, so the caller can still display whatever was
// computed.
type ReferenceError struct {
	Err error
}

func (e *ReferenceError) Error() string { return fmt.Sprintf("reference dataset unreadable: %v", e.Err) }
func (e *ReferenceError) Unwrap() error { return e.Err }

// referenceColumns is the header contract a reference dataset must carry.
var referenceColumns = []string{
	"Ticker",
	"Name",
	"Account Type",
	"Quantity of Shares",
	"Price Owned (GBP)",
	"Current Price (GBP)",
	"Value (GBP)",
	"Change (GBP)",
}

// ReadReference parses a reference dataset in its CSV row format. Title
// or preamble lines before the header are tolerated; rows without a
// ticker are skipped. Any failure comes back as a *ReferenceError.
func ReadReference(r io.Reader) ([]ReferenceRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	index, err := findReferenceHeader(cr)
	if err != nil {
		return nil, &ReferenceError{Err: err}
	}

	var rows []ReferenceRow
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ReferenceError{Err: err}
		}
		field := func(name string) string {
			i := index[name]
			if i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}
		if field("Ticker") == "" {
			continue
		}
		row := ReferenceRow{
			Ticker:  field("Ticker"),
			Name:    field("Name"),
			Account: field("Account Type"),
		}
		quantity, err := ParseMoneyString(field("Quantity of Shares"))
		if err != nil {
			return nil, &ReferenceError{Err: fmt.Errorf("row %q: %w", row.Ticker, err)}
		}
		row.Quantity = Q(quantity)
		for _, col := range []struct {
			name string
			dst  *Money
		}{
			{"Price Owned (GBP)", &row.PriceOwned},
			{"Current Price (GBP)", &row.CurrentPrice},
			{"Value (GBP)", &row.Value},
			{"Change (GBP)", &row.Change},
		} {
			v, err := ParseMoneyString(field(col.name))
			if err != nil {
				return nil, &ReferenceError{Err: fmt.Errorf("row %q, column %q: %w", row.Ticker, col.name, err)}
			}
			*col.dst = M(v, GBP)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// findReferenceHeader reads until it sees the row carrying the reference
// columns and returns a column→index map.
func findReferenceHeader(cr *csv.Reader) (map[string]int, error) {
	for {
		record, err := cr.Read()
		if err == io.EOF {
			return nil, fmt.Errorf("no header row with columns %v", referenceColumns)
		}
		if err != nil {
			return nil, err
		}
		index := make(map[string]int)
		for i, cell := range record {
			index[strings.TrimSpace(cell)] = i
		}
		complete := true
		for _, col := range referenceColumns {
			if _, ok := index[col]; !ok {
				complete = false
				break
			}
		}
		if complete {
			return index, nil
		}
	}
}

// ParseMoneyString parses reference-dataset money notation into a major
// unit decimal: currency symbols, thousands separators, explicit plus
// signs and a trailing % are stripped; the "p1,234.0" pence prefix
// divides by 100. The empty string is zero.
func ParseMoneyString(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, nil
	}
	pence := false
	if strings.HasPrefix(s, "p") {
		pence = true
		s = s[1:]
	}
	cleaned := strings.NewReplacer("£", "", "$", "", "€", "", "+", "", ",", "", "%", "", `"`, "").Replace(s)
	v, err := decimal.NewFromString(strings.TrimSpace(cleaned))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("cannot parse money value %q: %w", s, err)
	}
	if pence {
		v = v.Div(minorUnitScale)
	}
	return v, nil
}
