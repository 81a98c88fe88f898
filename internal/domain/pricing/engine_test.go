package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"packquote/internal/core/apperror"
	"packquote/internal/core/types"
	"packquote/internal/domain/catalogs/product"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(DefaultRuleSet())
}

func TestComputeTotalsBackCalcPotExample(t *testing.T) {
	e := newTestEngine(t)

	totals, err := e.ComputeTotals([]ItemInput{{
		ProductID:   "p1",
		ProductName: "Round pot 500ml",
		Category:    product.CategoryPot,
		Quantity:    100,
		UnitPrice:   types.MustMoney("1.00"),
	}}, EntityA, ModeBackCalc)
	require.NoError(t, err)

	require.Len(t, totals.Items, 1)
	item := totals.Items[0]
	assert.Equal(t, "91.12", item.Subtotal.StringFixed(2))
	assert.Equal(t, "8.88", item.TaxAmount.StringFixed(2))
	assert.Equal(t, "0.9112", item.UnitPriceExTax.StringFixed(4))
	assert.Equal(t, "91.12", totals.ProductTotal.StringFixed(2))
	assert.Equal(t, "8.88", totals.Tax.StringFixed(2))
}

func TestBackCalcBasePlusTaxEqualsInput(t *testing.T) {
	e := newTestEngine(t)

	cases := []struct {
		name     string
		category product.Category
		prodName string
		price    string
		qty      int
	}{
		{"pot 9.75", product.CategoryPot, "Pot 250ml", "3.37", 13},
		{"box 3.25", product.CategoryBox, "Box 30x30", "12.99", 7},
		{"lid 0", product.CategoryPot, "LID for pot 500ml", "0.55", 201},
		{"silkscreen 0", product.CategoryBox, "Box silkscreen print", "8.41", 33},
		{"sub-cent price", product.CategoryPot, "Pot 1L", "0.01", 999},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			totals, err := e.ComputeTotals([]ItemInput{{
				ProductID:   "p1",
				ProductName: tc.prodName,
				Category:    tc.category,
				Quantity:    tc.qty,
				UnitPrice:   types.MustMoney(tc.price),
			}}, EntityA, ModeBackCalc)
			require.NoError(t, err)

			line := types.Round2(types.MustMoney(tc.price).Mul(decimal.NewFromInt(int64(tc.qty))))
			item := totals.Items[0]
			assert.True(t, item.Subtotal.Add(item.TaxAmount).Equal(line),
				"base %s + tax %s != line %s", item.Subtotal, item.TaxAmount, line)
		})
	}
}

func TestExemptEntityForcesZeroTax(t *testing.T) {
	e := newTestEngine(t)

	for _, ent := range []InvoicingEntity{EntityB, EntityC} {
		totals, err := e.ComputeTotals([]ItemInput{{
			ProductID:   "p1",
			ProductName: "Pot 500ml",
			Category:    product.CategoryPot,
			Quantity:    10,
			UnitPrice:   types.MustMoney("2.50"),
		}}, ent, ModeBackCalc)
		require.NoError(t, err)

		assert.True(t, totals.Tax.IsZero(), "entity %s should carry zero tax", ent)
		assert.Equal(t, "25.00", totals.ProductTotal.StringFixed(2))
		assert.True(t, totals.Items[0].Rate.IsZero())
	}
}

func TestForwardModeComputesTaxOnStoredSubtotal(t *testing.T) {
	e := newTestEngine(t)

	totals, err := e.ComputeTotals([]ItemInput{{
		ProductID:   "p1",
		ProductName: "Pot 500ml",
		Category:    product.CategoryPot,
		Quantity:    100,
		Subtotal:    types.MustMoney("91.12"),
	}}, EntityA, ModeForward)
	require.NoError(t, err)

	item := totals.Items[0]
	assert.Equal(t, "91.12", item.Subtotal.StringFixed(2))
	assert.Equal(t, "8.88", item.TaxAmount.StringFixed(2))
	assert.Equal(t, "0.9112", item.UnitPriceExTax.StringFixed(4))
}

func TestForwardModeIsIdempotent(t *testing.T) {
	e := newTestEngine(t)
	items := []ItemInput{
		{ProductID: "p1", ProductName: "Pot 250ml", Category: product.CategoryPot, Quantity: 37, Subtotal: types.MustMoney("48.23")},
		{ProductID: "p2", ProductName: "Box 20x20", Category: product.CategoryBox, Quantity: 12, Subtotal: types.MustMoney("99.41")},
	}

	first, err := e.ComputeTotals(items, EntityA, ModeForward)
	require.NoError(t, err)
	second, err := e.ComputeTotals(items, EntityA, ModeForward)
	require.NoError(t, err)

	assert.True(t, first.ProductTotal.Equal(second.ProductTotal))
	assert.True(t, first.Tax.Equal(second.Tax))
	for i := range first.Items {
		assert.True(t, first.Items[i].Subtotal.Equal(second.Items[i].Subtotal))
		assert.True(t, first.Items[i].TaxAmount.Equal(second.Items[i].TaxAmount))
	}
}

func TestComputeTotalsValidation(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.ComputeTotals(nil, EntityA, ModeBackCalc)
	requireValidation(t, err)

	_, err = e.ComputeTotals([]ItemInput{{
		ProductID: "", Quantity: 1, UnitPrice: types.MustMoney("1"),
	}}, EntityA, ModeBackCalc)
	requireValidation(t, err)

	_, err = e.ComputeTotals([]ItemInput{{
		ProductID: "p1", Quantity: 0, UnitPrice: types.MustMoney("1"),
	}}, EntityA, ModeBackCalc)
	requireValidation(t, err)

	_, err = e.ComputeTotals([]ItemInput{{
		ProductID: "p1", Quantity: 1, UnitPrice: types.MustMoney("-1"),
	}}, EntityA, ModeBackCalc)
	requireValidation(t, err)

	_, err = e.ComputeTotals([]ItemInput{{
		ProductID: "p1", Quantity: 1, UnitPrice: types.MustMoney("1"),
	}}, InvoicingEntity("ENTITY_X"), ModeBackCalc)
	requireValidation(t, err)
}

func requireValidation(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestGrandTotal(t *testing.T) {
	pt := types.MustMoney("200.00")
	tax := types.MustMoney("0.00")
	freight := types.MustMoney("50.00")

	assert.Equal(t, "250.00", GrandTotal(pt, tax, freight, false).StringFixed(2))
	assert.Equal(t, "200.00", GrandTotal(pt, tax, freight, true).StringFixed(2))
}

func TestGrandTotalExemptionNeverNegative(t *testing.T) {
	pt := types.MustMoney("10.00")
	tax := types.MustMoney("0.98")
	freight := types.MustMoney("9999.99")

	exempt := GrandTotal(pt, tax, freight, true)
	assert.Equal(t, "10.98", exempt.StringFixed(2))
	assert.False(t, exempt.IsNegative())
}
