// Package folio212 computes a currency-normalized valuation of raw
// brokerage position records.
//
// The upstream feed reports a currency code per position, but that code is
// not trustworthy for every instrument class: a subset of London-listed
// instruments is quoted in pence while labelled GBP. The package therefore
// carries three distinct mechanisms:
//
//   - UnitNormalizer corrects the stored prices of an explicitly
//     enumerated set of instruments confirmed to be quoted in minor
//     units, before any Position is built.
//   - CurrencyRules classifies the true quoting currency of a price from
//     ticker-naming conventions and price magnitude, on demand, for
//     display and reconciliation. It never mutates stored prices.
//   - RateTable converts classified values into the reporting currency
//     (GBP) using static approximate rates.
//
// Positions and account summaries are rebuilt from raw input on every
// run; derived figures (market value, cost basis, profit/loss) are always
// recomputed from the stored fields, never cached.
//
// This package is the foundational logic for the `f212` command-line
// tool.
package folio212
