// Package domain contains the core data types for the assistant address book.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (validate, book, store, service).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// BirthdayLayout is the accepted wire and display format for birthdays.
const BirthdayLayout = "02.01.2006"

// Record represents a single contact in the address book.
// The ID is assigned at creation and never changes. Name is unique within a
// book under case-insensitive comparison. Phones and Email hold canonical
// values produced by the validate package; they are never stored raw.
// The JSON tags define the persisted file schema.
type Record struct {
	ID       uuid.UUID  `json:"id"`
	Name     string     `json:"name"`
	Phones   []string   `json:"phones,omitempty"`
	Email    string     `json:"email,omitempty"`
	Address  string     `json:"address,omitempty"`
	Birthday *time.Time `json:"birthday,omitempty"` // nil when unknown
	Notes    []Note     `json:"notes,omitempty"`    // ordered, owned exclusively
}

// Clone returns a deep copy of the record. The book hands out clones so
// callers can never mutate its state directly.
func (r Record) Clone() Record {
	out := r
	if r.Phones != nil {
		out.Phones = append([]string(nil), r.Phones...)
	}
	if r.Birthday != nil {
		d := *r.Birthday
		out.Birthday = &d
	}
	if r.Notes != nil {
		out.Notes = make([]Note, len(r.Notes))
		for i, n := range r.Notes {
			out.Notes[i] = n.Clone()
		}
	}
	return out
}
