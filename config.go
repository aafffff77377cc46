package folio212

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/shopspring/decimal"
)

// Config aggregates every injectable table the valuation engine depends
// on: currency classification rules, the minor-unit allow-list, FX rates
// and the naming table. New mispriced instruments are added here, not in
// code.
type Config struct {
	Rules        CurrencyRules
	PenceTickers []string
	Rates        RateTable
	Names        NameTable
}

// DefaultConfig returns the built-in tables, tuned against the audited
// reference datasets.
func DefaultConfig() Config {
	return Config{
		Rules: DefaultCurrencyRules(),
		PenceTickers: []string{
			"IITU_EQ",
			"INTLl_EQ",
			"SGLNl_EQ",
			"CNX1_EQ",
			"VUAGl_EQ",
			"VGERl_EQ",
			"SMGBl_EQ",
			"VWRPl_EQ",
			"RBODl_EQ",
			"IINDl_EQ",
			"FXACa_EQ",
			"EXICd_EQ",
		},
		Rates: DefaultRates(),
		Names: DefaultNames(),
	}
}

// NewNormalizer builds the unit normalizer for this config's allow-list.
func (c Config) NewNormalizer() *UnitNormalizer {
	return NewUnitNormalizer(c.PenceTickers, c.Rules.USSuffix)
}

// tomlConfig is the on-disk shape; every field is optional and overlays
// the defaults.
type tomlConfig struct {
	Classifier struct {
		USSuffix           string   `toml:"us_suffix"`
		EuroMarkers        []string `toml:"euro_markers"`
		UKSuffix           string   `toml:"uk_suffix"`
		PenceThreshold     *float64 `toml:"pence_threshold"`
		HighPence          []string `toml:"high_pence"`
		HighPenceThreshold *float64 `toml:"high_pence_threshold"`
	} `toml:"classifier"`
	Normalizer struct {
		PenceTickers []string `toml:"pence_tickers"`
	} `toml:"normalizer"`
	Rates struct {
		AsOf   string   `toml:"as_of"`
		USDGBP *float64 `toml:"usd_gbp"`
		EURGBP *float64 `toml:"eur_gbp"`
	} `toml:"rates"`
	Names map[string]string `toml:"names"`
}

// ReadConfig overlays a TOML document onto the defaults.
func ReadConfig(r io.Reader) (Config, error) {
	c := DefaultConfig()
	var t tomlConfig
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&t); err != nil {
		return Config{}, fmt.Errorf("cannot parse config: %w", err)
	}

	if t.Classifier.USSuffix != "" {
		c.Rules.USSuffix = t.Classifier.USSuffix
	}
	if t.Classifier.EuroMarkers != nil {
		c.Rules.EuroMarkers = t.Classifier.EuroMarkers
	}
	if t.Classifier.UKSuffix != "" {
		c.Rules.UKSuffix = t.Classifier.UKSuffix
	}
	if t.Classifier.PenceThreshold != nil {
		c.Rules.PenceThreshold = decimal.NewFromFloat(*t.Classifier.PenceThreshold)
	}
	if t.Classifier.HighPence != nil {
		c.Rules.HighPence = t.Classifier.HighPence
	}
	if t.Classifier.HighPenceThreshold != nil {
		c.Rules.HighPenceThreshold = decimal.NewFromFloat(*t.Classifier.HighPenceThreshold)
	}
	if t.Normalizer.PenceTickers != nil {
		c.PenceTickers = t.Normalizer.PenceTickers
	}
	if t.Rates.AsOf != "" {
		asOf, err := time.Parse("2006-01-02", t.Rates.AsOf)
		if err != nil {
			return Config{}, fmt.Errorf("cannot parse rates.as_of: %w", err)
		}
		c.Rates.AsOf = asOf
	}
	if t.Rates.USDGBP != nil {
		c.Rates.USDGBP = decimal.NewFromFloat(*t.Rates.USDGBP)
	}
	if t.Rates.EURGBP != nil {
		c.Rates.EURGBP = decimal.NewFromFloat(*t.Rates.EURGBP)
	}
	for ticker, name := range t.Names {
		c.Names[ticker] = name
	}
	return c, nil
}

// LoadConfig reads a TOML config file, or returns the defaults when path
// is empty.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()
	return ReadConfig(f)
}
