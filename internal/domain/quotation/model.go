// Package quotation owns the quotation aggregate and its lifecycle:
// creation, freight finalization, status management and removal.
package quotation

import (
	"strings"
	"time"

	"packquote/internal/core/apperror"
	"packquote/internal/core/entity"
	"packquote/internal/core/types"
	"packquote/internal/domain/catalogs/product"
	"packquote/internal/domain/pricing"
)

// Status is the quotation lifecycle state.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusSent     Status = "SENT"
	StatusCanceled Status = "CANCELED"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusSent, StatusCanceled:
		return true
	}
	return false
}

// Terminal reports whether s admits no further automatic transitions.
func (s Status) Terminal() bool { return s == StatusCanceled }

// CarrierToCoordinate is the pseudo-carrier signaling that freight must
// still be negotiated manually. Finalizing with it keeps the quotation
// in PENDING; any other carrier advances it to APPROVED.
const CarrierToCoordinate = "TO_COORDINATE"

// Item is one priced line, owned exclusively by its quotation.
// Product name, category and price are captured at creation so later
// catalog edits never alter an existing quotation.
type Item struct {
	ID          string           `json:"id" db:"id"`
	QuotationID string           `json:"quotation_id" db:"quotation_id"`
	ProductID   string           `json:"product_id" db:"product_id"`
	ProductName string           `json:"product_name" db:"product_name"`
	Category    product.Category `json:"category" db:"category"`
	Quantity    int              `json:"quantity" db:"quantity"`

	// UnitPrice is the caller-supplied (tax-inclusive) price at creation.
	UnitPrice types.Money `json:"unit_price" db:"unit_price"`

	// UnitPriceExTax is the derived pre-tax unit price, 4 decimal places.
	UnitPriceExTax types.Money `json:"unit_price_ex_tax" db:"unit_price_ex_tax"`

	// Subtotal is the pre-tax line amount, 2 decimal places.
	Subtotal  types.Money `json:"subtotal" db:"subtotal"`
	TaxAmount types.Money `json:"tax_amount" db:"tax_amount"`
	TaxRate   types.Rate  `json:"tax_rate" db:"tax_rate"`
}

// Quotation is the aggregate root.
type Quotation struct {
	entity.Document

	ClientID string                  `json:"client_id" db:"client_id"`
	Entity   pricing.InvoicingEntity `json:"invoicing_entity" db:"invoicing_entity"`

	// ManualOrderNumber is a caller-supplied reference, unique among
	// non-empty values only. Absent is stored as NULL, never "".
	ManualOrderNumber *string `json:"manual_order_number,omitempty" db:"manual_order_number"`

	PaymentTerms string `json:"payment_terms" db:"payment_terms"`
	FreightType  string `json:"freight_type" db:"freight_type"`
	Notes        string `json:"notes" db:"notes"`
	Status       Status `json:"status" db:"status"`

	ProductTotal types.Money `json:"product_total" db:"product_total"`
	TaxTotal     types.Money `json:"tax_total" db:"tax_total"`

	// Freight fields are empty until finalize. FreightPrice always keeps
	// the carrier-quoted value even when waived from the grand total.
	CarrierName  string      `json:"carrier_name" db:"carrier_name"`
	FreightPrice types.Money `json:"freight_price" db:"freight_price"`
	LeadTimeDays int         `json:"lead_time_days" db:"lead_time_days"`

	GrandTotal types.Money `json:"grand_total" db:"grand_total"`

	InvoiceNumber string     `json:"invoice_number" db:"invoice_number"`
	PickupDate    *time.Time `json:"pickup_date,omitempty" db:"pickup_date"`

	UserID string `json:"user_id" db:"user_id"`

	Items []Item `json:"items" db:"-"`
}

// TableName returns the storage table for the root.
func (Quotation) TableName() string { return "doc_quotations" }

// NormalizeManualNumber converts an empty or whitespace-only manual
// order number into nil, preserving the non-empty-uniqueness invariant.
func NormalizeManualNumber(raw string) *string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// Validate enforces the aggregate invariants checked before any write.
func (q *Quotation) Validate() error {
	if q.ClientID == "" {
		return apperror.NewValidation("client is required")
	}
	if !q.Entity.Valid() {
		return apperror.NewValidation("unknown invoicing entity").
			WithDetail("entity", string(q.Entity))
	}
	if !q.Status.Valid() {
		return apperror.NewValidation("unknown quotation status").
			WithDetail("status", string(q.Status))
	}
	if len(q.Items) == 0 {
		return apperror.NewValidation("quotation must contain at least one item")
	}
	for _, item := range q.Items {
		if item.ProductID == "" {
			return apperror.NewValidation("item references no product")
		}
		if item.Quantity <= 0 {
			return apperror.NewValidation("item quantity must be positive").
				WithDetail("product_id", item.ProductID)
		}
	}
	return nil
}
