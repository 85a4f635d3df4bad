package book

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/dkovalov/addressbook/internal/domain"
)

// NoteSortKey selects the ordering for note listings.
type NoteSortKey int

const (
	// SortNotesByTag orders notes by their lexicographically smallest tag.
	// Untagged notes sort after tagged ones. Ties break by note id.
	SortNotesByTag NoteSortKey = iota
	// SortNotesByText orders notes by text (case-insensitive), ties by id.
	SortNotesByText
)

// normalizeTags trims, lowercases, deduplicates, and sorts a tag set.
// Empty tags are dropped. The result is nil when no tags survive.
func normalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	var out []string
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// AddNote appends a note to the record and returns a copy of it.
// Returns ErrValidation when the text is blank.
func (b *Book) AddNote(recordID uuid.UUID, text string, tags []string) (domain.Note, error) {
	rec, ok := b.records[recordID]
	if !ok {
		return domain.Note{}, fmt.Errorf("book.Book.AddNote: %w", domain.ErrNotFound)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Note{}, fmt.Errorf("book.Book.AddNote: %w: note text is required", domain.ErrValidation)
	}
	note := domain.Note{ID: uuid.New(), Text: text, Tags: normalizeTags(tags)}
	rec.Notes = append(rec.Notes, note)
	return note.Clone(), nil
}

// EditNote replaces the text of an existing note, keeping its tags and its
// position in the record's note sequence.
func (b *Book) EditNote(recordID, noteID uuid.UUID, text string) error {
	rec, ok := b.records[recordID]
	if !ok {
		return fmt.Errorf("book.Book.EditNote: %w", domain.ErrNotFound)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("book.Book.EditNote: %w: note text is required", domain.ErrValidation)
	}
	for i := range rec.Notes {
		if rec.Notes[i].ID == noteID {
			rec.Notes[i].Text = text
			return nil
		}
	}
	return fmt.Errorf("book.Book.EditNote: %w: note %s", domain.ErrNotFound, noteID)
}

// RemoveNote deletes a note from the record.
func (b *Book) RemoveNote(recordID, noteID uuid.UUID) error {
	rec, ok := b.records[recordID]
	if !ok {
		return fmt.Errorf("book.Book.RemoveNote: %w", domain.ErrNotFound)
	}
	for i := range rec.Notes {
		if rec.Notes[i].ID == noteID {
			rec.Notes = append(rec.Notes[:i], rec.Notes[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("book.Book.RemoveNote: %w: note %s", domain.ErrNotFound, noteID)
}

// Notes returns a copy of the record's notes in their stored order.
func (b *Book) Notes(recordID uuid.UUID) ([]domain.Note, error) {
	rec, ok := b.records[recordID]
	if !ok {
		return nil, fmt.Errorf("book.Book.Notes: %w", domain.ErrNotFound)
	}
	out := make([]domain.Note, len(rec.Notes))
	for i, n := range rec.Notes {
		out[i] = n.Clone()
	}
	return out, nil
}

// SortNotes returns one record's notes ordered by the given key.
func (b *Book) SortNotes(recordID uuid.UUID, key NoteSortKey) ([]domain.Note, error) {
	rec, ok := b.records[recordID]
	if !ok {
		return nil, fmt.Errorf("book.Book.SortNotes: %w", domain.ErrNotFound)
	}
	notes := make([]domain.Note, len(rec.Notes))
	for i, n := range rec.Notes {
		notes[i] = n.Clone()
	}
	sortNotes(notes, key)
	return notes, nil
}

// AllNotesSorted returns every note in the book ordered by the given key.
// Always returns a non-nil slice so callers can safely range over it.
func (b *Book) AllNotesSorted(key NoteSortKey) []domain.Note {
	notes := []domain.Note{}
	for _, rec := range b.records {
		for _, n := range rec.Notes {
			notes = append(notes, n.Clone())
		}
	}
	sortNotes(notes, key)
	return notes
}

// sortNotes orders notes in place. The tie-break on note id keeps the order
// deterministic regardless of map iteration order.
func sortNotes(notes []domain.Note, key NoteSortKey) {
	sort.Slice(notes, func(i, j int) bool {
		a, b := notes[i], notes[j]
		switch key {
		case SortNotesByText:
			ta, tb := strings.ToLower(a.Text), strings.ToLower(b.Text)
			if ta != tb {
				return ta < tb
			}
		default: // SortNotesByTag
			switch {
			case a.HasTags() && !b.HasTags():
				return true
			case !a.HasTags() && b.HasTags():
				return false
			case a.HasTags() && b.HasTags() && a.Tags[0] != b.Tags[0]:
				return a.Tags[0] < b.Tags[0]
			}
		}
		return a.ID.String() < b.ID.String()
	})
}
