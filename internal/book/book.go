// Package book implements the in-memory address book aggregate.
// All records and notes are created, mutated, and deleted only through Book
// methods; callers receive deep copies and can never alias internal state.
// Validation runs before every mutation, so a failed call leaves the book
// exactly as it was.
package book

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"

	"github.com/dkovalov/addressbook/internal/domain"
	"github.com/dkovalov/addressbook/internal/validate"
)

// Book is the aggregate collection of contact records.
// records is the source of truth; names is a secondary index from
// case-folded name to record id, updated in the same step as records on
// every insert, rename, and delete. The clock is injected so that
// birthday and future-date rules are testable.
type Book struct {
	clk     clock.Clock
	records map[uuid.UUID]*domain.Record
	names   map[string]uuid.UUID
}

// New returns an empty Book using the given clock.
// Production callers pass clock.New(); tests pass clock.NewMock().
func New(clk clock.Clock) *Book {
	return &Book{
		clk:     clk,
		records: make(map[uuid.UUID]*domain.Record),
		names:   make(map[string]uuid.UUID),
	}
}

// foldName is the index key for a contact name.
func foldName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// today returns the current calendar date at midnight UTC.
func (b *Book) today() time.Time {
	y, m, d := b.clk.Now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Len returns the number of records in the book.
func (b *Book) Len() int { return len(b.records) }

// AddRecord creates a new record with the given name and returns a copy.
// Returns ErrValidation for a blank name and ErrDuplicateName when another
// record already holds the name under case-insensitive comparison.
func (b *Book) AddRecord(name string) (domain.Record, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Record{}, fmt.Errorf("book.Book.AddRecord: %w: name is required", domain.ErrValidation)
	}
	key := foldName(name)
	if _, exists := b.names[key]; exists {
		return domain.Record{}, fmt.Errorf("book.Book.AddRecord: %w: %q", domain.ErrDuplicateName, name)
	}
	rec := &domain.Record{ID: uuid.New(), Name: name}
	b.records[rec.ID] = rec
	b.names[key] = rec.ID
	return rec.Clone(), nil
}

// Record returns a copy of the record with the given id.
func (b *Book) Record(id uuid.UUID) (domain.Record, error) {
	rec, ok := b.records[id]
	if !ok {
		return domain.Record{}, fmt.Errorf("book.Book.Record: %w", domain.ErrNotFound)
	}
	return rec.Clone(), nil
}

// FindByName looks a record up through the name index, case-insensitively.
func (b *Book) FindByName(name string) (domain.Record, error) {
	id, ok := b.names[foldName(name)]
	if !ok {
		return domain.Record{}, fmt.Errorf("book.Book.FindByName: %w: contact %q", domain.ErrNotFound, name)
	}
	return b.records[id].Clone(), nil
}

// Records returns a snapshot of all records ordered by name
// (case-insensitive, ties broken by id for determinism).
func (b *Book) Records() []domain.Record {
	out := make([]domain.Record, 0, len(b.records))
	for _, rec := range b.records {
		out = append(out, rec.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		ni, nj := foldName(out[i].Name), foldName(out[j].Name)
		if ni != nj {
			return ni < nj
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}

// Rename changes a record's name and updates the name index in the same
// step. Returns ErrDuplicateName when the new name belongs to a different
// record; renaming a record to a different casing of its own name is allowed.
func (b *Book) Rename(id uuid.UUID, name string) error {
	rec, ok := b.records[id]
	if !ok {
		return fmt.Errorf("book.Book.Rename: %w", domain.ErrNotFound)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("book.Book.Rename: %w: name is required", domain.ErrValidation)
	}
	oldKey, newKey := foldName(rec.Name), foldName(name)
	if other, exists := b.names[newKey]; exists && other != id {
		return fmt.Errorf("book.Book.Rename: %w: %q", domain.ErrDuplicateName, name)
	}
	delete(b.names, oldKey)
	b.names[newKey] = id
	rec.Name = name
	return nil
}

// SetEmail validates and sets the record's email. An empty value clears it.
func (b *Book) SetEmail(id uuid.UUID, email string) error {
	rec, ok := b.records[id]
	if !ok {
		return fmt.Errorf("book.Book.SetEmail: %w", domain.ErrNotFound)
	}
	if strings.TrimSpace(email) == "" {
		rec.Email = ""
		return nil
	}
	canonical, err := validate.Email(email)
	if err != nil {
		return fmt.Errorf("book.Book.SetEmail: %w", err)
	}
	rec.Email = canonical
	return nil
}

// SetAddress sets the record's free-text address. An empty value clears it.
func (b *Book) SetAddress(id uuid.UUID, address string) error {
	rec, ok := b.records[id]
	if !ok {
		return fmt.Errorf("book.Book.SetAddress: %w", domain.ErrNotFound)
	}
	rec.Address = strings.TrimSpace(address)
	return nil
}

// SetBirthday parses and sets the record's birthday (DD.MM.YYYY, not in the
// future).
func (b *Book) SetBirthday(id uuid.UUID, value string) error {
	rec, ok := b.records[id]
	if !ok {
		return fmt.Errorf("book.Book.SetBirthday: %w", domain.ErrNotFound)
	}
	t, err := validate.Birthday(value, b.today())
	if err != nil {
		return fmt.Errorf("book.Book.SetBirthday: %w", err)
	}
	rec.Birthday = &t
	return nil
}

// AddPhone validates a phone and appends its canonical form to the record.
// A phone already present on the record is rejected with ErrValidation.
func (b *Book) AddPhone(id uuid.UUID, phone string) error {
	rec, ok := b.records[id]
	if !ok {
		return fmt.Errorf("book.Book.AddPhone: %w", domain.ErrNotFound)
	}
	canonical, err := validate.Phone(phone)
	if err != nil {
		return fmt.Errorf("book.Book.AddPhone: %w", err)
	}
	for _, p := range rec.Phones {
		if p == canonical {
			return fmt.Errorf("book.Book.AddPhone: %w: phone %s already present", domain.ErrValidation, canonical)
		}
	}
	rec.Phones = append(rec.Phones, canonical)
	return nil
}

// RemovePhone removes a phone from the record. The input is canonicalized
// first, so any accepted spelling of the number matches.
func (b *Book) RemovePhone(id uuid.UUID, phone string) error {
	rec, ok := b.records[id]
	if !ok {
		return fmt.Errorf("book.Book.RemovePhone: %w", domain.ErrNotFound)
	}
	canonical, err := validate.Phone(phone)
	if err != nil {
		return fmt.Errorf("book.Book.RemovePhone: %w", err)
	}
	for i, p := range rec.Phones {
		if p == canonical {
			rec.Phones = append(rec.Phones[:i], rec.Phones[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("book.Book.RemovePhone: %w: phone %s", domain.ErrNotFound, canonical)
}

// EditPhone replaces an existing phone with a new one, keeping its position.
// The new value must not duplicate another phone on the record.
func (b *Book) EditPhone(id uuid.UUID, oldPhone, newPhone string) error {
	rec, ok := b.records[id]
	if !ok {
		return fmt.Errorf("book.Book.EditPhone: %w", domain.ErrNotFound)
	}
	oldCanonical, err := validate.Phone(oldPhone)
	if err != nil {
		return fmt.Errorf("book.Book.EditPhone: %w", err)
	}
	newCanonical, err := validate.Phone(newPhone)
	if err != nil {
		return fmt.Errorf("book.Book.EditPhone: %w", err)
	}
	at := -1
	for i, p := range rec.Phones {
		if p == oldCanonical {
			at = i
		} else if p == newCanonical {
			return fmt.Errorf("book.Book.EditPhone: %w: phone %s already present", domain.ErrValidation, newCanonical)
		}
	}
	if at < 0 {
		return fmt.Errorf("book.Book.EditPhone: %w: phone %s", domain.ErrNotFound, oldCanonical)
	}
	rec.Phones[at] = newCanonical
	return nil
}

// RemoveRecord deletes a record and all notes it owns, and drops its name
// from the index in the same step.
func (b *Book) RemoveRecord(id uuid.UUID) error {
	rec, ok := b.records[id]
	if !ok {
		return fmt.Errorf("book.Book.RemoveRecord: %w", domain.ErrNotFound)
	}
	delete(b.names, foldName(rec.Name))
	delete(b.records, id)
	return nil
}

// Restore replaces the book's contents with a persisted snapshot, rebuilding
// the name index and re-validating every field. Any breach makes the whole
// snapshot unusable and is reported as ErrCorruptData; the book keeps its
// previous contents in that case. A nil snapshot restores an empty book.
func (b *Book) Restore(records []domain.Record) error {
	recs := make(map[uuid.UUID]*domain.Record, len(records))
	names := make(map[string]uuid.UUID, len(records))
	for _, in := range records {
		rec := in.Clone()
		if rec.ID == uuid.Nil {
			return fmt.Errorf("book.Book.Restore: %w: record without id", domain.ErrCorruptData)
		}
		if _, dup := recs[rec.ID]; dup {
			return fmt.Errorf("book.Book.Restore: %w: duplicate record id %s", domain.ErrCorruptData, rec.ID)
		}
		if strings.TrimSpace(rec.Name) == "" {
			return fmt.Errorf("book.Book.Restore: %w: record %s has no name", domain.ErrCorruptData, rec.ID)
		}
		key := foldName(rec.Name)
		if _, dup := names[key]; dup {
			return fmt.Errorf("book.Book.Restore: %w: duplicate name %q", domain.ErrCorruptData, rec.Name)
		}
		seen := make(map[string]bool, len(rec.Phones))
		for _, p := range rec.Phones {
			canonical, err := validate.Phone(p)
			if err != nil || canonical != p || seen[p] {
				return fmt.Errorf("book.Book.Restore: %w: record %q has invalid phone %q", domain.ErrCorruptData, rec.Name, p)
			}
			seen[p] = true
		}
		if rec.Email != "" {
			canonical, err := validate.Email(rec.Email)
			if err != nil || canonical != rec.Email {
				return fmt.Errorf("book.Book.Restore: %w: record %q has invalid email %q", domain.ErrCorruptData, rec.Name, rec.Email)
			}
		}
		noteIDs := make(map[uuid.UUID]bool, len(rec.Notes))
		for i, n := range rec.Notes {
			if n.ID == uuid.Nil || noteIDs[n.ID] {
				return fmt.Errorf("book.Book.Restore: %w: record %q has a note with a missing or duplicate id", domain.ErrCorruptData, rec.Name)
			}
			noteIDs[n.ID] = true
			if strings.TrimSpace(n.Text) == "" {
				return fmt.Errorf("book.Book.Restore: %w: record %q has an empty note", domain.ErrCorruptData, rec.Name)
			}
			rec.Notes[i].Tags = normalizeTags(n.Tags)
		}
		recs[rec.ID] = &rec
		names[key] = rec.ID
	}
	b.records = recs
	b.names = names
	return nil
}
