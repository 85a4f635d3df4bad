// Package render turns result slices into tabular text for the console.
// It consumes structured results only and contains no domain logic; the
// book never formats strings for display itself.
package render

import (
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/dkovalov/addressbook/internal/domain"
)

// Records renders contacts as a table, one row per contact.
func Records(records []domain.Record) string {
	var sb strings.Builder
	t := newTable(&sb, []string{"Name", "Phones", "Birthday", "E-mail", "Address", "Notes"})
	for _, rec := range records {
		birthday := ""
		if rec.Birthday != nil {
			birthday = rec.Birthday.Format(domain.BirthdayLayout)
		}
		t.Append([]string{
			rec.Name,
			strings.Join(rec.Phones, "; "),
			birthday,
			rec.Email,
			rec.Address,
			noteSummary(rec.Notes),
		})
	}
	t.Render()
	return sb.String()
}

// Notes renders notes as a table with their short ids and tags.
func Notes(notes []domain.Note) string {
	var sb strings.Builder
	t := newTable(&sb, []string{"ID", "Text", "Tags"})
	for _, n := range notes {
		t.Append([]string{n.ID.String()[:8], n.Text, strings.Join(n.Tags, ", ")})
	}
	t.Render()
	return sb.String()
}

// Reminders renders upcoming birthday congratulation dates.
func Reminders(reminders []domain.Reminder) string {
	var sb strings.Builder
	t := newTable(&sb, []string{"Name", "Congratulation date"})
	for _, rem := range reminders {
		t.Append([]string{rem.Record.Name, rem.Date.Format(domain.BirthdayLayout)})
	}
	t.Render()
	return sb.String()
}

func newTable(sb *strings.Builder, header []string) *tablewriter.Table {
	t := tablewriter.NewWriter(sb)
	t.SetHeader(header)
	t.SetAutoWrapText(false)
	t.SetAlignment(tablewriter.ALIGN_LEFT)
	return t
}

// noteSummary shows the note count rather than the notes themselves;
// show-notes renders them in full.
func noteSummary(notes []domain.Note) string {
	switch len(notes) {
	case 0:
		return ""
	case 1:
		return "1 note"
	default:
		return strconv.Itoa(len(notes)) + " notes"
	}
}
