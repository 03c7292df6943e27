package universe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dmvaldez/finscope/internal/contracts"
)

func TestDefault_AllFeaturesResolvable(t *testing.T) {
	catalog := Default()

	cases := []struct {
		market  Market
		feature Feature
	}{
		{MarketNYSE, FeatureMarket},
		{MarketNYSE, FeatureFundamentals},
		{MarketNYSE, FeatureDividends},
		{MarketNYSE, FeaturePE},
		{MarketNYSE, FeaturePEG},
		{MarketNYSE, FeatureMultifactor},
		{MarketBYMA, FeatureMarket},
		{MarketBYMA, FeatureFundamentals},
		{MarketBYMA, FeatureDividends},
		{MarketBYMA, FeaturePE},
		{MarketBYMA, FeatureMultifactor},
	}
	for _, tc := range cases {
		symbols, err := catalog.Symbols(tc.market, tc.feature)
		if err != nil {
			t.Errorf("%s/%s: %v", tc.market, tc.feature, err)
			continue
		}
		if len(symbols) == 0 {
			t.Errorf("%s/%s: empty list", tc.market, tc.feature)
		}
	}
}

func TestDefault_SubsetsSmallerThanFull(t *testing.T) {
	catalog := Default()
	full, _ := catalog.Symbols(MarketNYSE, FeatureMarket)
	subset, _ := catalog.Symbols(MarketNYSE, FeatureFundamentals)
	if len(subset) >= len(full) {
		t.Errorf("fundamentals subset (%d) not smaller than full list (%d)", len(subset), len(full))
	}
}

func TestSymbols_BYMAHasNoPEGList(t *testing.T) {
	_, err := Default().Symbols(MarketBYMA, FeaturePEG)
	if !contracts.IsConfigError(err) {
		t.Fatalf("err = %v, want ConfigError", err)
	}
}

func TestSymbols_UnknownMarketAndFeature(t *testing.T) {
	catalog := Default()
	if _, err := catalog.Symbols(Market("lse"), FeatureMarket); !contracts.IsConfigError(err) {
		t.Errorf("unknown market: err = %v, want ConfigError", err)
	}
	if _, err := catalog.Symbols(MarketNYSE, Feature("bonds")); !contracts.IsConfigError(err) {
		t.Errorf("unknown feature: err = %v, want ConfigError", err)
	}
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "universe.yaml")
	doc := `
markets:
  nyse:
    full: [AAA, BBB, CCC]
    multifactor: [AAA, BBB]
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	catalog, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	full, err := catalog.Symbols(MarketNYSE, FeatureMarket)
	if err != nil {
		t.Fatalf("Symbols failed: %v", err)
	}
	if len(full) != 3 || full[0] != "AAA" {
		t.Errorf("full = %v, want [AAA BBB CCC]", full)
	}

	// Lists absent from the file are simply missing, not inherited.
	if _, err := catalog.Symbols(MarketNYSE, FeaturePE); !contracts.IsConfigError(err) {
		t.Errorf("pe: err = %v, want ConfigError", err)
	}
	if _, err := catalog.Symbols(MarketBYMA, FeatureMarket); !contracts.IsConfigError(err) {
		t.Errorf("byma: err = %v, want ConfigError", err)
	}
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	catalog, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, err := catalog.Symbols(MarketNYSE, FeatureMarket); err != nil {
		t.Errorf("defaults not usable: %v", err)
	}
}

func TestLoad_BadFile(t *testing.T) {
	if _, err := Load("/nonexistent/universe.yaml"); err == nil {
		t.Error("missing file must fail")
	}

	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("markets: ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("malformed YAML must fail")
	}
}
