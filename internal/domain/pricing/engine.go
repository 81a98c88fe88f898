package pricing

import (
	"github.com/shopspring/decimal"

	"packquote/internal/core/apperror"
	"packquote/internal/core/types"
	"packquote/internal/domain/catalogs/product"
)

// Mode selects how the unit price on an item input is interpreted.
type Mode int

const (
	// ModeBackCalc treats the unit price as tax-inclusive: the pre-tax
	// base is extracted so that base + tax equals the input to the cent.
	// Used at quotation creation.
	ModeBackCalc Mode = iota

	// ModeForward treats the unit price as pre-tax and computes tax on
	// top of the stored subtotal. Used at finalization recomputes.
	ModeForward
)

// ItemInput is one (product, quantity, price) tuple to price.
// UnitPrice is consulted in ModeBackCalc (tax-inclusive caller price);
// Subtotal is consulted in ModeForward (the stored pre-tax line amount).
type ItemInput struct {
	ProductID   string
	ProductName string
	Category    product.Category
	Quantity    int
	UnitPrice   types.Money
	Subtotal    types.Money
}

// ItemResult is the priced line. Subtotal and TaxAmount carry 2 decimal
// places; UnitPriceExTax carries 4 to avoid cent drift when dividing by
// quantity.
type ItemResult struct {
	ProductID      string
	Subtotal       types.Money
	TaxAmount      types.Money
	UnitPriceExTax types.Money
	Rate           types.Rate
}

// Totals is the quotation-level aggregate.
type Totals struct {
	Items        []ItemResult
	ProductTotal types.Money
	Tax          types.Money
}

// Engine converts item tuples plus an invoicing entity into consistent
// totals. It is stateless and safe for concurrent use.
type Engine struct {
	rules *RuleSet
}

// NewEngine creates a pricing engine over the given rate rules.
func NewEngine(rules *RuleSet) *Engine {
	return &Engine{rules: rules}
}

// ComputeTotals prices every item and aggregates. It is a pure function:
// identical inputs yield identical outputs whether invoked at creation
// or at finalization.
func (e *Engine) ComputeTotals(items []ItemInput, entity InvoicingEntity, mode Mode) (*Totals, error) {
	if !entity.Valid() {
		return nil, apperror.NewValidation("unknown invoicing entity").
			WithDetail("entity", string(entity))
	}
	if len(items) == 0 {
		return nil, apperror.NewValidation("quotation must contain at least one item")
	}

	totals := &Totals{
		Items:        make([]ItemResult, 0, len(items)),
		ProductTotal: types.Zero,
		Tax:          types.Zero,
	}

	for i, item := range items {
		if item.ProductID == "" {
			return nil, apperror.NewValidation("item references no product").
				WithDetail("index", i)
		}
		if item.Quantity <= 0 {
			return nil, apperror.NewValidation("item quantity must be positive").
				WithDetail("product_id", item.ProductID).
				WithDetail("quantity", item.Quantity)
		}
		rate := types.Zero
		if entity.TaxApplies() {
			rate = e.rules.RateFor(item.Category, item.ProductName)
		}

		qty := decimal.NewFromInt(int64(item.Quantity))

		var result ItemResult
		switch mode {
		case ModeForward:
			if item.Subtotal.IsNegative() {
				return nil, apperror.NewValidation("item subtotal must not be negative").
					WithDetail("product_id", item.ProductID)
			}
			result = priceForward(types.Round2(item.Subtotal), qty, rate)
		default:
			if item.UnitPrice.IsNegative() {
				return nil, apperror.NewValidation("item unit price must not be negative").
					WithDetail("product_id", item.ProductID)
			}
			line := types.Round2(item.UnitPrice.Mul(qty))
			result = priceBackCalc(line, qty, rate)
		}
		result.ProductID = item.ProductID

		totals.Items = append(totals.Items, result)
		totals.ProductTotal = totals.ProductTotal.Add(result.Subtotal)
		totals.Tax = totals.Tax.Add(result.TaxAmount)
	}

	// Exempt entities never accumulate tax, but force the aggregate to
	// an exact zero so no residue survives a rule-set change.
	if !entity.TaxApplies() {
		totals.Tax = types.Zero
	}
	return totals, nil
}

// priceBackCalc splits a tax-inclusive line amount so base + tax == line
// to the cent: base is rounded once, tax is the exact remainder.
func priceBackCalc(line, qty decimal.Decimal, rate types.Rate) ItemResult {
	divisor := decimal.NewFromInt(1).Add(rate.Div(types.Hundred))
	base := types.Round2(line.DivRound(divisor, 8))
	tax := line.Sub(base)
	return ItemResult{
		Subtotal:       base,
		TaxAmount:      tax,
		UnitPriceExTax: types.Round4(base.DivRound(qty, 8)),
		Rate:           rate,
	}
}

// priceForward computes tax on top of an already pre-tax subtotal.
// The subtotal is never re-derived, so re-running on unchanged inputs
// yields identical results.
func priceForward(subtotal, qty decimal.Decimal, rate types.Rate) ItemResult {
	tax := types.Round2(subtotal.Mul(rate).Div(types.Hundred))
	return ItemResult{
		Subtotal:       subtotal,
		TaxAmount:      tax,
		UnitPriceExTax: types.Round4(subtotal.DivRound(qty, 8)),
		Rate:           rate,
	}
}

// GrandTotal combines product, tax and freight totals. Exemption zeroes
// the freight contribution exactly; the quoted freight value itself is
// stored unchanged by the caller.
func GrandTotal(productTotal, tax, freightPrice types.Money, freightExempt bool) types.Money {
	total := productTotal.Add(tax)
	if !freightExempt {
		total = total.Add(freightPrice)
	}
	return types.Round2(total)
}
