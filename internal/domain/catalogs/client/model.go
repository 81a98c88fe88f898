// Package client is the directory of purchasing clients.
package client

import (
	"strings"

	"packquote/internal/core/apperror"
	"packquote/internal/core/entity"
)

// Client is a purchaser. Name on the embedded catalog holds the legal name.
type Client struct {
	entity.Catalog

	TradeName   string `json:"trade_name" db:"trade_name"`
	TaxDocument string `json:"tax_document" db:"tax_document"`

	// Address, used by the freight quoter as shipping destination.
	Street     string `json:"street" db:"street"`
	City       string `json:"city" db:"city"`
	State      string `json:"state" db:"state"`
	PostalCode string `json:"postal_code" db:"postal_code"`

	// DefaultEntity is the invoicing entity usually billing this client.
	// Advisory only; the entity on each quotation is authoritative.
	DefaultEntity string `json:"default_entity" db:"default_entity"`
}

// TableName returns the storage table.
func (Client) TableName() string { return "cat_clients" }

// Validate enforces the directory invariants.
func (c *Client) Validate() error {
	c.NormalizeCode()
	c.Name = strings.TrimSpace(c.Name)
	c.TradeName = strings.TrimSpace(c.TradeName)
	c.TaxDocument = strings.TrimSpace(c.TaxDocument)

	if c.Code == "" {
		return apperror.NewValidation("client code is required")
	}
	if c.Name == "" {
		return apperror.NewValidation("client legal name is required")
	}
	return nil
}
