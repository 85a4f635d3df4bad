// Package service exposes the address book to the command layer.
// Assistant is a thin facade: it forwards to the book and the store, adds
// call-site context to errors, and performs no validation of its own — error
// kinds pass through unchanged for the command layer to translate.
package service

import (
	"errors"
	"fmt"
	"iter"

	"github.com/google/uuid"

	"github.com/dkovalov/addressbook/internal/book"
	"github.com/dkovalov/addressbook/internal/domain"
	"github.com/dkovalov/addressbook/internal/store"
)

// Assistant is the public API surface consumed by the interactive loop.
type Assistant struct {
	book  *book.Book
	store store.Store
}

// New constructs an Assistant over the given book and store.
func New(b *book.Book, s store.Store) *Assistant {
	return &Assistant{book: b, store: s}
}

// AddContact creates a new contact with the given name.
func (a *Assistant) AddContact(name string) (domain.Record, error) {
	rec, err := a.book.AddRecord(name)
	if err != nil {
		return domain.Record{}, fmt.Errorf("service.Assistant.AddContact: %w", err)
	}
	return rec, nil
}

// Contact returns the contact with the given id.
func (a *Assistant) Contact(id uuid.UUID) (domain.Record, error) {
	rec, err := a.book.Record(id)
	if err != nil {
		return domain.Record{}, fmt.Errorf("service.Assistant.Contact: %w", err)
	}
	return rec, nil
}

// FindContact resolves a contact by name, case-insensitively.
func (a *Assistant) FindContact(name string) (domain.Record, error) {
	rec, err := a.book.FindByName(name)
	if err != nil {
		return domain.Record{}, fmt.Errorf("service.Assistant.FindContact: %w", err)
	}
	return rec, nil
}

// Contacts returns all contacts ordered by name.
func (a *Assistant) Contacts() []domain.Record {
	return a.book.Records()
}

// RenameContact changes a contact's name.
func (a *Assistant) RenameContact(id uuid.UUID, name string) error {
	if err := a.book.Rename(id, name); err != nil {
		return fmt.Errorf("service.Assistant.RenameContact: %w", err)
	}
	return nil
}

// RemoveContact deletes a contact together with all its notes.
func (a *Assistant) RemoveContact(id uuid.UUID) error {
	if err := a.book.RemoveRecord(id); err != nil {
		return fmt.Errorf("service.Assistant.RemoveContact: %w", err)
	}
	return nil
}

// AddPhone adds a phone number to a contact.
func (a *Assistant) AddPhone(id uuid.UUID, phone string) error {
	if err := a.book.AddPhone(id, phone); err != nil {
		return fmt.Errorf("service.Assistant.AddPhone: %w", err)
	}
	return nil
}

// RemovePhone removes a phone number from a contact.
func (a *Assistant) RemovePhone(id uuid.UUID, phone string) error {
	if err := a.book.RemovePhone(id, phone); err != nil {
		return fmt.Errorf("service.Assistant.RemovePhone: %w", err)
	}
	return nil
}

// EditPhone replaces one of a contact's phone numbers.
func (a *Assistant) EditPhone(id uuid.UUID, oldPhone, newPhone string) error {
	if err := a.book.EditPhone(id, oldPhone, newPhone); err != nil {
		return fmt.Errorf("service.Assistant.EditPhone: %w", err)
	}
	return nil
}

// SetEmail sets (or clears, with an empty value) a contact's email.
func (a *Assistant) SetEmail(id uuid.UUID, email string) error {
	if err := a.book.SetEmail(id, email); err != nil {
		return fmt.Errorf("service.Assistant.SetEmail: %w", err)
	}
	return nil
}

// SetAddress sets (or clears, with an empty value) a contact's address.
func (a *Assistant) SetAddress(id uuid.UUID, address string) error {
	if err := a.book.SetAddress(id, address); err != nil {
		return fmt.Errorf("service.Assistant.SetAddress: %w", err)
	}
	return nil
}

// SetBirthday sets a contact's birthday from a DD.MM.YYYY string.
func (a *Assistant) SetBirthday(id uuid.UUID, value string) error {
	if err := a.book.SetBirthday(id, value); err != nil {
		return fmt.Errorf("service.Assistant.SetBirthday: %w", err)
	}
	return nil
}

// AddNote attaches a tagged note to a contact.
func (a *Assistant) AddNote(id uuid.UUID, text string, tags []string) (domain.Note, error) {
	note, err := a.book.AddNote(id, text, tags)
	if err != nil {
		return domain.Note{}, fmt.Errorf("service.Assistant.AddNote: %w", err)
	}
	return note, nil
}

// EditNote replaces the text of a contact's note.
func (a *Assistant) EditNote(id, noteID uuid.UUID, text string) error {
	if err := a.book.EditNote(id, noteID, text); err != nil {
		return fmt.Errorf("service.Assistant.EditNote: %w", err)
	}
	return nil
}

// RemoveNote deletes a contact's note.
func (a *Assistant) RemoveNote(id, noteID uuid.UUID) error {
	if err := a.book.RemoveNote(id, noteID); err != nil {
		return fmt.Errorf("service.Assistant.RemoveNote: %w", err)
	}
	return nil
}

// Notes returns a contact's notes in their stored order.
func (a *Assistant) Notes(id uuid.UUID) ([]domain.Note, error) {
	notes, err := a.book.Notes(id)
	if err != nil {
		return nil, fmt.Errorf("service.Assistant.Notes: %w", err)
	}
	return notes, nil
}

// SortNotes returns one contact's notes ordered by the given key.
func (a *Assistant) SortNotes(id uuid.UUID, key book.NoteSortKey) ([]domain.Note, error) {
	notes, err := a.book.SortNotes(id, key)
	if err != nil {
		return nil, fmt.Errorf("service.Assistant.SortNotes: %w", err)
	}
	return notes, nil
}

// AllNotesSorted returns every note in the book ordered by the given key.
func (a *Assistant) AllNotesSorted(key book.NoteSortKey) []domain.Note {
	return a.book.AllNotesSorted(key)
}

// Search returns a restartable lazy sequence of matching contacts.
func (a *Assistant) Search(query string, scopes book.Scope) iter.Seq[domain.Record] {
	return a.book.Search(query, scopes)
}

// UpcomingBirthdays returns contacts to congratulate within the window.
func (a *Assistant) UpcomingBirthdays(withinDays int) ([]domain.Reminder, error) {
	reminders, err := a.book.UpcomingBirthdays(withinDays)
	if err != nil {
		return nil, fmt.Errorf("service.Assistant.UpcomingBirthdays: %w", err)
	}
	return reminders, nil
}

// Save persists the current book state. A failed save leaves both the
// previously persisted file and the in-memory book intact.
func (a *Assistant) Save() error {
	if err := a.store.Save(a.book.Records()); err != nil {
		return fmt.Errorf("service.Assistant.Save: %w", err)
	}
	return nil
}

// Load replaces the book's contents with the persisted state.
// A store that has never been saved to is treated as an empty book.
func (a *Assistant) Load() error {
	records, err := a.store.Load()
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			records = nil
		} else {
			return fmt.Errorf("service.Assistant.Load: %w", err)
		}
	}
	if err := a.book.Restore(records); err != nil {
		return fmt.Errorf("service.Assistant.Load: %w", err)
	}
	return nil
}
