package book_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkovalov/addressbook/internal/book"
	"github.com/dkovalov/addressbook/internal/domain"
)

// ---- AddNote ---------------------------------------------------------------

func TestBook_AddNote_NormalizesTags(t *testing.T) {
	b := newBook(t)
	rec, err := b.AddRecord("Alice")
	require.NoError(t, err)

	note, err := b.AddNote(rec.ID, "file the return", []string{" Tax ", "URGENT", "tax", ""})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, note.ID)
	assert.Equal(t, []string{"tax", "urgent"}, note.Tags, "tags are trimmed, folded, deduplicated, sorted")
}

func TestBook_AddNote_EmptyText(t *testing.T) {
	b := newBook(t)
	rec, err := b.AddRecord("Alice")
	require.NoError(t, err)

	_, err = b.AddNote(rec.ID, "   ", nil)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestBook_AddNote_MissingRecord(t *testing.T) {
	b := newBook(t)

	_, err := b.AddNote(uuid.New(), "text", nil)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- EditNote / RemoveNote -------------------------------------------------

func TestBook_EditNote(t *testing.T) {
	b := newBook(t)
	rec, err := b.AddRecord("Alice")
	require.NoError(t, err)
	note, err := b.AddNote(rec.ID, "old text", []string{"tax"})
	require.NoError(t, err)

	require.NoError(t, b.EditNote(rec.ID, note.ID, "new text"))

	notes, err := b.Notes(rec.ID)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "new text", notes[0].Text)
	assert.Equal(t, []string{"tax"}, notes[0].Tags, "editing text keeps tags")
}

func TestBook_RemoveNote_MissingNote(t *testing.T) {
	b := newBook(t)
	rec, err := b.AddRecord("Alice")
	require.NoError(t, err)

	err = b.RemoveNote(rec.ID, uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBook_Notes_KeepsInsertionOrder(t *testing.T) {
	b := newBook(t)
	rec, err := b.AddRecord("Alice")
	require.NoError(t, err)
	for _, text := range []string{"third?", "first!", "second"} {
		_, err := b.AddNote(rec.ID, text, nil)
		require.NoError(t, err)
	}

	notes, err := b.Notes(rec.ID)

	require.NoError(t, err)
	require.Len(t, notes, 3)
	assert.Equal(t, "third?", notes[0].Text)
	assert.Equal(t, "first!", notes[1].Text)
	assert.Equal(t, "second", notes[2].Text)
}

// ---- Sorting ---------------------------------------------------------------

func TestBook_SortNotes_ByTag(t *testing.T) {
	b := newBook(t)
	rec, err := b.AddRecord("Alice")
	require.NoError(t, err)
	_, err = b.AddNote(rec.ID, "untagged", nil)
	require.NoError(t, err)
	_, err = b.AddNote(rec.ID, "zebra note", []string{"zoo", "animals"})
	require.NoError(t, err)
	_, err = b.AddNote(rec.ID, "tax note", []string{"tax"})
	require.NoError(t, err)

	notes, err := b.SortNotes(rec.ID, book.SortNotesByTag)

	require.NoError(t, err)
	require.Len(t, notes, 3)
	// "animals" < "tax"; smallest tag per note decides; untagged sorts last.
	assert.Equal(t, "zebra note", notes[0].Text)
	assert.Equal(t, "tax note", notes[1].Text)
	assert.Equal(t, "untagged", notes[2].Text)
}

// TestBook_SortNotes_TagTieBreaksByID verifies that notes sharing their
// smallest tag order deterministically by note id.
func TestBook_SortNotes_TagTieBreaksByID(t *testing.T) {
	b := newBook(t)
	rec, err := b.AddRecord("Alice")
	require.NoError(t, err)
	first, err := b.AddNote(rec.ID, "one", []string{"tax"})
	require.NoError(t, err)
	second, err := b.AddNote(rec.ID, "two", []string{"tax"})
	require.NoError(t, err)

	wantFirst, wantSecond := first.ID, second.ID
	if wantSecond.String() < wantFirst.String() {
		wantFirst, wantSecond = wantSecond, wantFirst
	}

	for range 3 {
		notes, err := b.SortNotes(rec.ID, book.SortNotesByTag)
		require.NoError(t, err)
		require.Len(t, notes, 2)
		assert.Equal(t, wantFirst, notes[0].ID)
		assert.Equal(t, wantSecond, notes[1].ID)
	}
}

func TestBook_SortNotes_ByText(t *testing.T) {
	b := newBook(t)
	rec, err := b.AddRecord("Alice")
	require.NoError(t, err)
	_, err = b.AddNote(rec.ID, "banana", nil)
	require.NoError(t, err)
	_, err = b.AddNote(rec.ID, "Apple", nil)
	require.NoError(t, err)

	notes, err := b.SortNotes(rec.ID, book.SortNotesByText)

	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "Apple", notes[0].Text, "text sort is case-insensitive")
	assert.Equal(t, "banana", notes[1].Text)
}

func TestBook_AllNotesSorted_SpansRecords(t *testing.T) {
	b := newBook(t)
	alice, err := b.AddRecord("Alice")
	require.NoError(t, err)
	bob, err := b.AddRecord("Bob")
	require.NoError(t, err)
	_, err = b.AddNote(alice.ID, "alice note", []string{"zoo"})
	require.NoError(t, err)
	_, err = b.AddNote(bob.ID, "bob note", []string{"art"})
	require.NoError(t, err)

	notes := b.AllNotesSorted(book.SortNotesByTag)

	require.Len(t, notes, 2)
	assert.Equal(t, "bob note", notes[0].Text)
	assert.Equal(t, "alice note", notes[1].Text)
}

func TestBook_AllNotesSorted_EmptyBook(t *testing.T) {
	b := newBook(t)

	notes := b.AllNotesSorted(book.SortNotesByTag)

	assert.NotNil(t, notes)
	assert.Empty(t, notes)
}
