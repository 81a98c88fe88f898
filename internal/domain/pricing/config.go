package pricing

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"packquote/internal/core/types"
	"packquote/internal/domain/catalogs/product"
)

// Config is the on-disk shape of the rate table. Rates are decimal
// strings to keep the file free of float literals.
type Config struct {
	BaseRates map[string]string `json:"base_rates"`
	Overrides []OverrideConfig  `json:"overrides"`
}

// OverrideConfig is one serialized override rule.
type OverrideConfig struct {
	Name string `json:"name"`
	Expr string `json:"expr"`
	Rate string `json:"rate"`
}

// RuleSetFromConfig parses and compiles a configured rate table.
func RuleSetFromConfig(cfg Config) (*RuleSet, error) {
	base := make(map[product.Category]types.Rate, len(cfg.BaseRates))
	for category, raw := range cfg.BaseRates {
		rate, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("pricing: base rate %q: %w", category, err)
		}
		base[product.Category(category)] = rate
	}

	overrides := make([]OverrideRule, 0, len(cfg.Overrides))
	for _, ov := range cfg.Overrides {
		rate, err := decimal.NewFromString(ov.Rate)
		if err != nil {
			return nil, fmt.Errorf("pricing: override %q rate: %w", ov.Name, err)
		}
		overrides = append(overrides, OverrideRule{Name: ov.Name, Expr: ov.Expr, Rate: rate})
	}
	return NewRuleSet(base, overrides)
}

// LoadRuleSet reads a rate table from a JSON file. An empty path
// returns the built-in default table.
func LoadRuleSet(path string) (*RuleSet, error) {
	if path == "" {
		return DefaultRuleSet(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("pricing: read rules: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("pricing: parse rules: %w", err)
	}
	return RuleSetFromConfig(cfg)
}
