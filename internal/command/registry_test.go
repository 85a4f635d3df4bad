package command_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkovalov/addressbook/internal/book"
	"github.com/dkovalov/addressbook/internal/command"
	"github.com/dkovalov/addressbook/internal/service"
	"github.com/dkovalov/addressbook/internal/store"
)

// newRegistry wires a registry over a real book and a file store in a
// temporary directory, with the clock pinned to Saturday 2024-06-01.
func newRegistry(t *testing.T) *command.Registry {
	t.Helper()
	mock := clock.NewMock()
	mock.Set(time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC))
	fileStore := store.NewFileStore(filepath.Join(t.TempDir(), "addressbook.json"))
	return command.NewRegistry(service.New(book.New(mock), fileStore), 7)
}

// run parses a full input line and executes it.
func run(r *command.Registry, line string) string {
	name, args := command.Parse(line)
	return r.Execute(name, args)
}

// ---- Parse -----------------------------------------------------------------

func TestParse(t *testing.T) {
	name, args := command.Parse("  ADD  Alice   0501234567 ")
	assert.Equal(t, "add", name)
	assert.Equal(t, []string{"Alice", "0501234567"}, args)

	name, args = command.Parse("   ")
	assert.Empty(t, name)
	assert.Nil(t, args)
}

// ---- Dispatch --------------------------------------------------------------

func TestExecute_AddAndShow(t *testing.T) {
	r := newRegistry(t)

	assert.Equal(t, "Contact added.", run(r, "add Alice 0501234567"))
	assert.Equal(t, "Contact updated.", run(r, "add Alice 0679876543"))

	out := run(r, "phone Alice")
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "0501234567")
	assert.Contains(t, out, "0679876543")
}

func TestExecute_Hello(t *testing.T) {
	r := newRegistry(t)
	assert.Equal(t, "How can I help you?", run(r, "hello"))
}

func TestExecute_AllEmpty(t *testing.T) {
	r := newRegistry(t)
	assert.Equal(t, "Sorry, your address book is empty.", run(r, "all"))
}

func TestExecute_MissingArgsShowsUsage(t *testing.T) {
	r := newRegistry(t)
	assert.Equal(t, "Usage: add <name> <phone>", run(r, "add Alice"))
}

func TestExecute_BirthdayFlow(t *testing.T) {
	r := newRegistry(t)
	require.Equal(t, "Contact added.", run(r, "add Alice 0501234567"))

	assert.Equal(t, "Contact birthday added.", run(r, "add-birthday Alice 05.06.1990"))
	assert.Equal(t, "05.06.1990", run(r, "show-birthday Alice"))

	out := run(r, "birthdays")
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "05.06.2024")
}

func TestExecute_BirthdaysRejectsBadDays(t *testing.T) {
	r := newRegistry(t)
	assert.Contains(t, run(r, "birthdays soon"), "days must be a number")
}

func TestExecute_NotesFlow(t *testing.T) {
	r := newRegistry(t)
	require.Equal(t, "Contact added.", run(r, "add Alice 0501234567"))

	out := run(r, "add-note Alice file the return #tax #deadline")
	assert.Contains(t, out, "added.")

	out = run(r, "show-notes Alice")
	assert.Contains(t, out, "file the return")
	assert.Contains(t, out, "deadline, tax")

	out = run(r, "find-notes tax")
	assert.Contains(t, out, "Alice")

	assert.Equal(t, "No contacts with that tag.", run(r, "find-notes cooking"))
}

func TestExecute_SearchScopes(t *testing.T) {
	r := newRegistry(t)
	require.Equal(t, "Contact added.", run(r, "add Alice 0501234567"))
	require.Equal(t, "Contact email added.", run(r, "add-email Alice alice@example.com"))

	assert.Contains(t, run(r, "search alice email"), "Alice")
	assert.Equal(t, "Nothing found.", run(r, "search alice phone"))
	assert.Contains(t, run(r, "search bogus-scope alice nope"), "Invalid input:")
}

// ---- Error translation -----------------------------------------------------

func TestExecute_UserFacingErrors(t *testing.T) {
	r := newRegistry(t)
	require.Equal(t, "Contact added.", run(r, "add Alice 0501234567"))

	assert.Equal(t, "Contact not found or no contact information.", run(r, "phone Bob"))
	assert.Equal(t, "The date cannot be in the future.", run(r, "add-birthday Alice 02.06.2024"))
	out := run(r, "add-email Alice not-an-email")
	assert.Contains(t, out, "Invalid value:")
	assert.Contains(t, out, "exactly one @")
}

// ---- Suggestions and completions -------------------------------------------

func TestSuggest(t *testing.T) {
	r := newRegistry(t)

	got, ok := r.Suggest("ad")
	require.True(t, ok)
	assert.Equal(t, "add", got)

	got, ok = r.Suggest("birthdais")
	require.True(t, ok)
	assert.Equal(t, "birthdays", got)

	_, ok = r.Suggest("xyzzy")
	assert.False(t, ok)
}

func TestExecute_UnknownCommandSuggests(t *testing.T) {
	r := newRegistry(t)
	assert.Equal(t, `Invalid command. Did you mean "add"?`, run(r, "ad Alice 0501234567"))
}

func TestCompletions_Prefix(t *testing.T) {
	r := newRegistry(t)

	got := r.Completions("add-")

	assert.Equal(t, []string{"add-address", "add-birthday", "add-email", "add-note"}, got)
}

func TestCompletions_FuzzyFallback(t *testing.T) {
	r := newRegistry(t)

	got := r.Completions("serach")

	require.NotEmpty(t, got)
	assert.Equal(t, "search", got[0])
}

func TestCompletions_EmptyListsAll(t *testing.T) {
	r := newRegistry(t)
	assert.Equal(t, r.Commands(), r.Completions(""))
}

// ---- Terminal commands -----------------------------------------------------

func TestTerminalCommands(t *testing.T) {
	r := newRegistry(t)

	assert.True(t, r.IsTerminal("exit"))
	assert.True(t, r.IsTerminal("close"))
	assert.False(t, r.IsTerminal("add"))
	assert.Equal(t, "Good bye!", run(r, "exit"))
}

// ---- Save ------------------------------------------------------------------

func TestExecute_Save(t *testing.T) {
	r := newRegistry(t)
	require.Equal(t, "Contact added.", run(r, "add Alice 0501234567"))

	assert.Equal(t, "Address book saved.", run(r, "save"))
}
