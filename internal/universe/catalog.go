package universe

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dmvaldez/finscope/internal/contracts"
)

// Market identifies a supported exchange.
type Market string

const (
	MarketNYSE Market = "nyse"
	MarketBYMA Market = "byma"
)

// Valid reports whether the market is known.
func (m Market) Valid() bool {
	return m == MarketNYSE || m == MarketBYMA
}

// Feature selects the symbol list sized for a given scan. The full
// list covers the market scanner; the rest are curated subsets kept
// small enough for per-symbol downloads.
type Feature string

const (
	FeatureMarket       Feature = "market"
	FeatureFundamentals Feature = "fundamentals"
	FeatureDividends    Feature = "dividends"
	FeaturePE           Feature = "pe"
	FeaturePEG          Feature = "peg"
	FeatureMultifactor  Feature = "multifactor"
)

// Lists holds one market's symbol lists.
type Lists struct {
	Full         []string `yaml:"full"`
	Fundamentals []string `yaml:"fundamentals"`
	Dividends    []string `yaml:"dividends"`
	PE           []string `yaml:"pe"`
	PEG          []string `yaml:"peg"`
	Multifactor  []string `yaml:"multifactor"`
}

// Catalog maps markets to their symbol lists.
type Catalog struct {
	Markets map[Market]Lists `yaml:"markets"`
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return &Catalog{Markets: map[Market]Lists{
		MarketNYSE: {
			Full:         nyseFull,
			Fundamentals: nyseFundamentals,
			Dividends:    nyseDividends,
			PE:           nysePE,
			PEG:          nysePEG,
			Multifactor:  nyseMultifactor,
		},
		MarketBYMA: {
			Full:         bymaFull,
			Fundamentals: bymaSubset,
			Dividends:    bymaSubset,
			PE:           bymaPE,
			Multifactor:  bymaSubset,
		},
	}}
}

// Load reads a catalog from a YAML file. An empty path returns the
// built-in defaults.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read universe file: %w", err)
	}

	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parse universe file: %w", err)
	}
	if len(catalog.Markets) == 0 {
		return nil, &contracts.ConfigError{Field: "markets", Reason: "universe file defines no markets"}
	}
	return &catalog, nil
}

// Symbols returns the list for a market/feature pair. An unknown
// market or an empty list is a configuration error.
func (c *Catalog) Symbols(market Market, feature Feature) ([]string, error) {
	if !market.Valid() {
		return nil, &contracts.ConfigError{Field: "market", Reason: fmt.Sprintf("unknown market %q", market)}
	}
	lists, ok := c.Markets[market]
	if !ok {
		return nil, &contracts.ConfigError{Field: "market", Reason: fmt.Sprintf("market %q not in catalog", market)}
	}

	var symbols []string
	switch feature {
	case FeatureMarket:
		symbols = lists.Full
	case FeatureFundamentals:
		symbols = lists.Fundamentals
	case FeatureDividends:
		symbols = lists.Dividends
	case FeaturePE:
		symbols = lists.PE
	case FeaturePEG:
		symbols = lists.PEG
	case FeatureMultifactor:
		symbols = lists.Multifactor
	default:
		return nil, &contracts.ConfigError{Field: "feature", Reason: fmt.Sprintf("unknown feature %q", feature)}
	}

	if len(symbols) == 0 {
		return nil, &contracts.ConfigError{
			Field:  "universe",
			Reason: fmt.Sprintf("no %s symbols for market %q", feature, market),
		}
	}
	return symbols, nil
}
