package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"packquote/internal/domain/pricing"
	"packquote/internal/domain/quotation"
)

// CreateQuotationItemRequest is one requested line. UnitPrice is
// tax-inclusive; when omitted the product's base price applies.
type CreateQuotationItemRequest struct {
	ProductID string           `json:"product_id" binding:"required"`
	Quantity  int              `json:"quantity" binding:"required"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// CreateQuotationRequest submits a draft.
type CreateQuotationRequest struct {
	ClientID          string                       `json:"client_id" binding:"required"`
	InvoicingEntity   string                       `json:"invoicing_entity" binding:"required"`
	ManualOrderNumber string                       `json:"manual_order_number"`
	PaymentTerms      string                       `json:"payment_terms"`
	FreightType       string                       `json:"freight_type"`
	Notes             string                       `json:"notes"`
	Items             []CreateQuotationItemRequest `json:"items" binding:"required"`
}

// ToInput maps the request to the lifecycle input.
func (r CreateQuotationRequest) ToInput() quotation.CreateInput {
	input := quotation.CreateInput{
		ClientID:          r.ClientID,
		Entity:            pricing.InvoicingEntity(r.InvoicingEntity),
		ManualOrderNumber: r.ManualOrderNumber,
		PaymentTerms:      r.PaymentTerms,
		FreightType:       r.FreightType,
		Notes:             r.Notes,
	}
	for _, item := range r.Items {
		input.Items = append(input.Items, quotation.CreateItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return input
}

// FinalizeQuotationRequest attaches carrier and freight data.
type FinalizeQuotationRequest struct {
	CarrierName       *string          `json:"carrier_name,omitempty"`
	FreightPrice      *decimal.Decimal `json:"freight_price,omitempty"`
	LeadTimeDays      *int             `json:"lead_time_days,omitempty"`
	InvoiceNumber     *string          `json:"invoice_number,omitempty"`
	PickupDate        *time.Time       `json:"pickup_date,omitempty"`
	FreightType       *string          `json:"freight_type,omitempty"`
	ManualOrderNumber *string          `json:"manual_order_number,omitempty"`
}

// ToInput maps the request to the finalize input.
func (r FinalizeQuotationRequest) ToInput() quotation.FinalizeInput {
	return quotation.FinalizeInput{
		CarrierName:       r.CarrierName,
		FreightPrice:      r.FreightPrice,
		LeadTimeDays:      r.LeadTimeDays,
		InvoiceNumber:     r.InvoiceNumber,
		PickupDate:        r.PickupDate,
		FreightType:       r.FreightType,
		ManualOrderNumber: r.ManualOrderNumber,
	}
}

// UpdateQuotationRequest patches scalar fields.
type UpdateQuotationRequest struct {
	ManualOrderNumber *string          `json:"manual_order_number,omitempty"`
	PaymentTerms      *string          `json:"payment_terms,omitempty"`
	FreightType       *string          `json:"freight_type,omitempty"`
	Notes             *string          `json:"notes,omitempty"`
	CarrierName       *string          `json:"carrier_name,omitempty"`
	FreightPrice      *decimal.Decimal `json:"freight_price,omitempty"`
	LeadTimeDays      *int             `json:"lead_time_days,omitempty"`
	InvoiceNumber     *string          `json:"invoice_number,omitempty"`
	PickupDate        *time.Time       `json:"pickup_date,omitempty"`
}

// ToInput maps the request to the patch input.
func (r UpdateQuotationRequest) ToInput() quotation.UpdateInput {
	return quotation.UpdateInput{
		ManualOrderNumber: r.ManualOrderNumber,
		PaymentTerms:      r.PaymentTerms,
		FreightType:       r.FreightType,
		Notes:             r.Notes,
		CarrierName:       r.CarrierName,
		FreightPrice:      r.FreightPrice,
		LeadTimeDays:      r.LeadTimeDays,
		InvoiceNumber:     r.InvoiceNumber,
		PickupDate:        r.PickupDate,
	}
}

// UpdateStatusRequest overwrites the lifecycle status.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// QuotationListQuery extends the common query with lifecycle filters.
type QuotationListQuery struct {
	ListQuery

	Status   string     `form:"status"`
	ClientID string     `form:"client_id"`
	DateFrom *time.Time `form:"date_from" time_format:"2006-01-02"`
	DateTo   *time.Time `form:"date_to" time_format:"2006-01-02"`
}

// ToFilter maps the query to the quotation filter.
func (q QuotationListQuery) ToFilter() quotation.ListFilter {
	return quotation.ListFilter{
		ListFilter: q.ListQuery.ToFilter(),
		Status:     quotation.Status(q.Status),
		ClientID:   q.ClientID,
		DateFrom:   q.DateFrom,
		DateTo:     q.DateTo,
	}
}

// StatsQuery bounds the status breakdown report.
type StatsQuery struct {
	DateFrom *time.Time `form:"date_from" time_format:"2006-01-02"`
	DateTo   *time.Time `form:"date_to" time_format:"2006-01-02"`
}
