// Package pricing computes per-item and per-quotation monetary totals.
// It is pure: no persistence, no I/O. The quotation lifecycle owns the
// writes; this package owns the arithmetic and the tax-rate selection.
package pricing

// InvoicingEntity is the legal entity issuing the invoice.
// It selects the tax rule branch and is fixed at quotation creation.
type InvoicingEntity string

const (
	// EntityA is subject to item-category-dependent tax extraction.
	EntityA InvoicingEntity = "ENTITY_A"

	// EntityB and EntityC are tax-exempt for this domain.
	EntityB InvoicingEntity = "ENTITY_B"
	EntityC InvoicingEntity = "ENTITY_C"
)

// Valid reports whether e is a known invoicing entity.
func (e InvoicingEntity) Valid() bool {
	return e == EntityA || e == EntityB || e == EntityC
}

// TaxApplies reports whether tax extraction applies for this entity.
func (e InvoicingEntity) TaxApplies() bool {
	return e == EntityA
}
