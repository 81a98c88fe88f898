package dto

import "packquote/internal/domain/catalogs/client"

// CreateClientRequest creates a directory entry. Name is the legal name.
type CreateClientRequest struct {
	Code          string `json:"code" binding:"required"`
	Name          string `json:"name" binding:"required"`
	TradeName     string `json:"trade_name"`
	TaxDocument   string `json:"tax_document"`
	Street        string `json:"street"`
	City          string `json:"city"`
	State         string `json:"state"`
	PostalCode    string `json:"postal_code"`
	DefaultEntity string `json:"default_entity"`
}

// ToEntity maps the request to a client.
func (r CreateClientRequest) ToEntity() *client.Client {
	c := &client.Client{
		TradeName:     r.TradeName,
		TaxDocument:   r.TaxDocument,
		Street:        r.Street,
		City:          r.City,
		State:         r.State,
		PostalCode:    r.PostalCode,
		DefaultEntity: r.DefaultEntity,
	}
	c.Code = r.Code
	c.Name = r.Name
	return c
}

// UpdateClientRequest updates a directory entry.
type UpdateClientRequest struct {
	Name          string `json:"name" binding:"required"`
	TradeName     string `json:"trade_name"`
	TaxDocument   string `json:"tax_document"`
	Street        string `json:"street"`
	City          string `json:"city"`
	State         string `json:"state"`
	PostalCode    string `json:"postal_code"`
	DefaultEntity string `json:"default_entity"`
	Version       int    `json:"version" binding:"required"`
}

// ApplyTo copies updatable fields onto the loaded client.
func (r UpdateClientRequest) ApplyTo(c *client.Client) {
	c.Name = r.Name
	c.TradeName = r.TradeName
	c.TaxDocument = r.TaxDocument
	c.Street = r.Street
	c.City = r.City
	c.State = r.State
	c.PostalCode = r.PostalCode
	c.DefaultEntity = r.DefaultEntity
	c.Version = r.Version
}
