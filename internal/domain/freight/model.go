// Package freight talks to the external carrier quoting API and turns
// quotation items into shippable box manifests. The engine never calls
// this during finalize; callers fetch options first, pick one, then
// pass the choice into the quotation lifecycle.
package freight

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"packquote/internal/core/apperror"
	"packquote/internal/core/types"
)

// Option is one carrier price/lead-time candidate.
type Option struct {
	CarrierName  string      `json:"carrier_name"`
	ServiceCode  string      `json:"service_code"`
	Price        types.Money `json:"price"`
	LeadTimeDays int         `json:"lead_time_days"`
}

// Dimensions are outer box measurements in centimeters.
type Dimensions struct {
	LengthCm decimal.Decimal `json:"length_cm"`
	WidthCm  decimal.Decimal `json:"width_cm"`
	HeightCm decimal.Decimal `json:"height_cm"`
}

// ParseDimensions parses the catalog's "LxWxH" notation, e.g. "30x20x10".
func ParseDimensions(raw string) (Dimensions, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(raw)), "x")
	if len(parts) != 3 {
		return Dimensions{}, apperror.NewValidation("box dimensions must be LxWxH").
			WithDetail("dimensions", raw)
	}
	vals := make([]decimal.Decimal, 3)
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || f <= 0 {
			return Dimensions{}, apperror.NewValidation("box dimensions must be positive numbers").
				WithDetail("dimensions", raw)
		}
		vals[i] = decimal.NewFromFloat(f)
	}
	return Dimensions{LengthCm: vals[0], WidthCm: vals[1], HeightCm: vals[2]}, nil
}

// BoxesFor returns how many boxes a quantity occupies, rounding up.
func BoxesFor(quantity, unitsPerBox int) int {
	if unitsPerBox < 1 {
		unitsPerBox = 1
	}
	return (quantity + unitsPerBox - 1) / unitsPerBox
}

// Recommendation is the suggested choice among carrier options.
type Recommendation struct {
	// Best is the cheapest option, nil when no carrier responded.
	Best *Option `json:"best,omitempty"`

	// ManualNegotiation signals that the cheapest quote exceeds 10% of
	// the product total and freight should be negotiated by hand.
	ManualNegotiation bool `json:"manual_negotiation"`

	Reason string `json:"reason"`
}

// Recommend picks the cheapest option and flags manual negotiation when
// its price exceeds 10% of the quotation's product total.
func Recommend(options []Option, productTotal types.Money) Recommendation {
	if len(options) == 0 {
		return Recommendation{
			ManualNegotiation: true,
			Reason:            "no carrier returned a quote",
		}
	}

	best := options[0]
	for _, opt := range options[1:] {
		if opt.Price.LessThan(best.Price) {
			best = opt
		}
	}

	if productTotal.IsPositive() {
		threshold := productTotal.Mul(decimal.NewFromInt(10)).Div(types.Hundred)
		if best.Price.GreaterThan(threshold) {
			return Recommendation{
				Best:              &best,
				ManualNegotiation: true,
				Reason:            "cheapest quote exceeds 10% of the product total",
			}
		}
	}
	return Recommendation{Best: &best, Reason: "cheapest carrier quote"}
}
