// Package command maps user-entered command lines onto the service facade.
// It owns command parsing, dispatch, fuzzy correction of mistyped commands,
// and completion hints, and it translates error kinds into user-facing
// messages. No domain logic lives here.
package command

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/agext/levenshtein"

	"github.com/dkovalov/addressbook/internal/domain"
	"github.com/dkovalov/addressbook/internal/service"
)

// Similarity cutoffs, matching the upstream assistant: 0.6 for "did you
// mean" suggestions, 0.4 for completion hints.
const (
	suggestCutoff    = 0.6
	completionCutoff = 0.4
)

// Command is one dispatchable entry in the registry.
type Command struct {
	Name    string
	Usage   string
	MinArgs int
	// Terminal marks commands that end the session (exit, close).
	Terminal bool
	run      func(args []string) (string, error)
}

// Registry holds the command table over one Assistant.
type Registry struct {
	assistant    *service.Assistant
	birthdayDays int
	commands     map[string]Command
	names        []string
}

// NewRegistry builds the command table. birthdayDays is the default window
// for the birthdays command when the user gives no argument.
func NewRegistry(a *service.Assistant, birthdayDays int) *Registry {
	r := &Registry{
		assistant:    a,
		birthdayDays: birthdayDays,
		commands:     make(map[string]Command),
	}
	r.install()
	r.names = make([]string, 0, len(r.commands))
	for name := range r.commands {
		r.names = append(r.names, name)
	}
	sort.Strings(r.names)
	return r
}

// Parse splits a raw input line into a lowercased command and its arguments.
// Returns an empty command for a blank line.
func Parse(line string) (string, []string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	return strings.ToLower(fields[0]), fields[1:]
}

// Commands returns all command names in sorted order.
func (r *Registry) Commands() []string {
	return append([]string(nil), r.names...)
}

// IsTerminal reports whether name ends the session.
func (r *Registry) IsTerminal(name string) bool {
	return r.commands[name].Terminal
}

// Execute runs a parsed command and returns the text to show the user.
// Unknown commands answer with the closest suggestion; errors from the
// facade are translated into user-facing messages without changing their
// meaning.
func (r *Registry) Execute(name string, args []string) string {
	cmd, ok := r.commands[name]
	if !ok {
		if s, found := r.Suggest(name); found {
			return fmt.Sprintf("Invalid command. Did you mean %q?", s)
		}
		return "Invalid command."
	}
	if len(args) < cmd.MinArgs {
		return "Usage: " + cmd.Usage
	}
	out, err := cmd.run(args)
	if err != nil {
		return messageFor(err)
	}
	return out
}

// Suggest returns the registered command closest to input, when its
// similarity clears the suggestion cutoff.
func (r *Registry) Suggest(input string) (string, bool) {
	input = strings.ToLower(strings.TrimSpace(input))
	best, bestScore := "", 0.0
	for _, name := range r.names {
		if score := levenshtein.Match(input, name, nil); score > bestScore {
			best, bestScore = name, score
		}
	}
	if bestScore < suggestCutoff {
		return "", false
	}
	return best, true
}

// Completions returns candidate commands for a partially typed first word,
// for a line editor to offer as hints. Prefix matches come first in sorted
// order; when there is none, fuzzy matches are ranked by similarity.
func (r *Registry) Completions(prefix string) []string {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return r.Commands()
	}
	var out []string
	for _, name := range r.names {
		if strings.HasPrefix(name, prefix) {
			out = append(out, name)
		}
	}
	if len(out) > 0 {
		return out
	}
	type scored struct {
		name  string
		score float64
	}
	var fuzzy []scored
	for _, name := range r.names {
		if score := levenshtein.Match(prefix, name, nil); score >= completionCutoff {
			fuzzy = append(fuzzy, scored{name, score})
		}
	}
	sort.SliceStable(fuzzy, func(i, j int) bool { return fuzzy[i].score > fuzzy[j].score })
	for _, f := range fuzzy {
		out = append(out, f.name)
	}
	return out
}

// messageFor translates an error kind into the message shown to the user.
// The kind decides the category; the wrapped detail is not repeated because
// the categories carry the full meaning for the console.
func messageFor(err error) string {
	switch {
	case errors.Is(err, domain.ErrDuplicateName):
		return "A contact with that name already exists."
	case errors.Is(err, domain.ErrFutureDate):
		return "The date cannot be in the future."
	case errors.Is(err, domain.ErrInvalidFormat):
		return "Invalid value: " + detail(err)
	case errors.Is(err, domain.ErrValidation):
		return "Invalid input: " + detail(err)
	case errors.Is(err, domain.ErrNotFound):
		return "Contact not found or no contact information."
	case errors.Is(err, domain.ErrCorruptData):
		return "The address book file is corrupt."
	case errors.Is(err, domain.ErrIO):
		return "Could not access the address book file."
	default:
		return "Something went wrong: " + err.Error()
	}
}

// detail extracts the text after the sentinel in a wrapped error chain,
// e.g. "service.Assistant.AddPhone: book.Book.AddPhone: invalid format:
// phone must have between 7 and 15 digits" → "phone must have between 7 and
// 15 digits". Falls back to the full message.
func detail(err error) string {
	msg := err.Error()
	for _, sentinel := range []string{
		domain.ErrInvalidFormat.Error(),
		domain.ErrValidation.Error(),
	} {
		if i := strings.LastIndex(msg, sentinel+": "); i >= 0 {
			return msg[i+len(sentinel)+2:]
		}
	}
	return msg
}
