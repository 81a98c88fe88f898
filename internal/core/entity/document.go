package entity

import "time"

// Document is the base for numbered business documents (quotations).
// Documents carry a generated number and a business date.
type Document struct {
	BaseEntity
	Number string    `json:"number" db:"number"`
	Date   time.Time `json:"date" db:"date"`
}

func (d *Document) GetNumber() string       { return d.Number }
func (d *Document) SetNumber(number string) { d.Number = number }
func (d *Document) GetDate() time.Time      { return d.Date }
