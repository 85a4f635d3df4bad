package domain

import "github.com/google/uuid"

// Note is a tagged text entry owned by exactly one Record.
// Tags are normalized by the book on write: trimmed, lowercased,
// deduplicated, and sorted, so Tags[0] is always the smallest tag.
type Note struct {
	ID   uuid.UUID `json:"id"`
	Text string    `json:"text"`
	Tags []string  `json:"tags,omitempty"`
}

// Clone returns a copy of the note with its own tags slice.
func (n Note) Clone() Note {
	out := n
	if n.Tags != nil {
		out.Tags = append([]string(nil), n.Tags...)
	}
	return out
}

// HasTags reports whether the note carries at least one tag.
func (n Note) HasTags() bool { return len(n.Tags) > 0 }
