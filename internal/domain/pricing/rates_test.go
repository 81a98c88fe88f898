package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"packquote/internal/core/types"
	"packquote/internal/domain/catalogs/product"
)

func TestDefaultRuleSetBaseRates(t *testing.T) {
	rs := DefaultRuleSet()

	assert.Equal(t, "9.75", rs.RateFor(product.CategoryPot, "Round pot 500ml").StringFixed(2))
	assert.Equal(t, "3.25", rs.RateFor(product.CategoryBox, "Box 20x20x10").StringFixed(2))
}

func TestDefaultRuleSetOverrides(t *testing.T) {
	rs := DefaultRuleSet()

	// Overrides win regardless of category and input casing.
	assert.True(t, rs.RateFor(product.CategoryPot, "Lid for pot 250ml").IsZero())
	assert.True(t, rs.RateFor(product.CategoryBox, "tampa pote 500").IsZero())
	assert.True(t, rs.RateFor(product.CategoryBox, "Box with SILKSCREEN logo").IsZero())
	assert.True(t, rs.RateFor(product.CategoryPot, "pote serigrafia 1L").IsZero())
}

func TestDefaultRuleSetUnknownCategory(t *testing.T) {
	rs := DefaultRuleSet()
	assert.True(t, rs.RateFor(product.Category("OTHER"), "Something").IsZero())
}

func TestNewRuleSetCustomOverride(t *testing.T) {
	rs, err := NewRuleSet(
		map[product.Category]types.Rate{product.CategoryBox: types.MustMoney("15.00")},
		[]OverrideRule{{
			Name: "promo",
			Expr: `category == "BOX" && name.contains("PROMO")`,
			Rate: types.MustMoney("1.00"),
		}},
	)
	require.NoError(t, err)

	assert.Equal(t, "15.00", rs.RateFor(product.CategoryBox, "Plain box").StringFixed(2))
	assert.Equal(t, "1.00", rs.RateFor(product.CategoryBox, "Promo box").StringFixed(2))
}

func TestNewRuleSetRejectsBadPredicates(t *testing.T) {
	_, err := NewRuleSet(nil, []OverrideRule{{Name: "broken", Expr: `name.contains(`}})
	require.Error(t, err)

	_, err = NewRuleSet(nil, []OverrideRule{{Name: "not-bool", Expr: `name`}})
	require.Error(t, err)
}
