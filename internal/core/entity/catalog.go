package entity

import "strings"

// Catalog is the base for reference data (clients, products).
// Catalogs carry a unique business code and a display name.
type Catalog struct {
	BaseEntity
	Code        string `json:"code" db:"code"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description,omitempty" db:"description"`
}

func (c *Catalog) GetCode() string     { return c.Code }
func (c *Catalog) SetCode(code string) { c.Code = code }
func (c *Catalog) GetName() string     { return c.Name }

// NormalizeCode trims and uppercases the business code.
func (c *Catalog) NormalizeCode() {
	c.Code = strings.ToUpper(strings.TrimSpace(c.Code))
}
