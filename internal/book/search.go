package book

import (
	"iter"
	"strings"

	"github.com/dkovalov/addressbook/internal/domain"
)

// Scope selects which record fields a search matches against.
// Scopes combine with bitwise or.
type Scope uint8

const (
	ScopeName Scope = 1 << iota
	ScopePhone
	ScopeEmail
	ScopeTag
)

// ScopeAll matches against every searchable field.
const ScopeAll = ScopeName | ScopePhone | ScopeEmail | ScopeTag

// Search returns a lazy sequence of records whose selected fields contain
// query as a case-insensitive substring. The sequence is restartable:
// ranging over it again re-runs the search against the current book state
// with no side effects. Records are yielded in name order and as copies.
func (b *Book) Search(query string, scopes Scope) iter.Seq[domain.Record] {
	q := strings.ToLower(strings.TrimSpace(query))
	return func(yield func(domain.Record) bool) {
		for _, rec := range b.Records() {
			if matches(rec, q, scopes) {
				if !yield(rec) {
					return
				}
			}
		}
	}
}

// matches reports whether any selected field of rec contains q.
func matches(rec domain.Record, q string, scopes Scope) bool {
	if scopes&ScopeName != 0 && strings.Contains(strings.ToLower(rec.Name), q) {
		return true
	}
	if scopes&ScopePhone != 0 {
		for _, p := range rec.Phones {
			if strings.Contains(p, q) {
				return true
			}
		}
	}
	if scopes&ScopeEmail != 0 && rec.Email != "" && strings.Contains(rec.Email, q) {
		return true
	}
	if scopes&ScopeTag != 0 {
		for _, n := range rec.Notes {
			for _, t := range n.Tags {
				if strings.Contains(t, q) {
					return true
				}
			}
		}
	}
	return false
}
