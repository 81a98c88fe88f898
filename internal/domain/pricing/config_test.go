package pricing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"packquote/internal/domain/catalogs/product"
)

func TestRuleSetFromConfig(t *testing.T) {
	rs, err := RuleSetFromConfig(Config{
		BaseRates: map[string]string{"POT": "9.75", "BOX": "15"},
		Overrides: []OverrideConfig{
			{Name: "lids", Expr: `name.contains("LID")`, Rate: "0"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "9.75", rs.RateFor(product.CategoryPot, "Pot").StringFixed(2))
	assert.Equal(t, "15.00", rs.RateFor(product.CategoryBox, "Box").StringFixed(2))
	assert.True(t, rs.RateFor(product.CategoryBox, "Lid for box").IsZero())
}

func TestRuleSetFromConfigBadRate(t *testing.T) {
	_, err := RuleSetFromConfig(Config{BaseRates: map[string]string{"POT": "abc"}})
	require.Error(t, err)

	_, err = RuleSetFromConfig(Config{Overrides: []OverrideConfig{{Name: "x", Expr: "true", Rate: "??"}}})
	require.Error(t, err)
}

func TestLoadRuleSet(t *testing.T) {
	rs, err := LoadRuleSet("")
	require.NoError(t, err)
	assert.Equal(t, "9.75", rs.RateFor(product.CategoryPot, "Pot").StringFixed(2))

	path := filepath.Join(t.TempDir(), "rules.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"base_rates": {"POT": "8.00", "BOX": "2.00"},
		"overrides": [{"name": "promo", "expr": "name.contains(\"PROMO\")", "rate": "0"}]
	}`), 0o600))

	rs, err = LoadRuleSet(path)
	require.NoError(t, err)
	assert.Equal(t, "8.00", rs.RateFor(product.CategoryPot, "Pot").StringFixed(2))
	assert.True(t, rs.RateFor(product.CategoryPot, "promo pot").IsZero())

	_, err = LoadRuleSet(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}
