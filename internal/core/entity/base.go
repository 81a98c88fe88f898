// Package entity defines the base building blocks shared by all
// persisted domain objects.
package entity

import "time"

// Validatable is implemented by entities that enforce their own invariants.
type Validatable interface {
	Validate() error
}

// Identifiable exposes the entity primary key.
type Identifiable interface {
	GetID() string
	SetID(id string)
}

// Versioned exposes the optimistic locking counter.
type Versioned interface {
	GetVersion() int
	SetVersion(v int)
}

// BaseEntity is embedded by every persisted record.
type BaseEntity struct {
	ID           string    `json:"id" db:"id"`
	DeletionMark bool      `json:"deletion_mark" db:"deletion_mark"`
	Version      int       `json:"version" db:"version"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

func (e *BaseEntity) GetID() string      { return e.ID }
func (e *BaseEntity) SetID(id string)    { e.ID = id }
func (e *BaseEntity) GetVersion() int    { return e.Version }
func (e *BaseEntity) SetVersion(v int)   { e.Version = v }
func (e *BaseEntity) IsDeleted() bool    { return e.DeletionMark }
func (e *BaseEntity) MarkDeleted()       { e.DeletionMark = true }
func (e *BaseEntity) UnmarkDeleted()     { e.DeletionMark = false }
