package book

import (
	"fmt"
	"sort"
	"time"

	"github.com/dkovalov/addressbook/internal/domain"
)

// UpcomingBirthdays returns the contacts whose next birthday congratulation
// falls within [today, today+withinDays], both ends inclusive.
//
// The next occurrence of each birthday is computed in the current year, or
// the next one when it has already passed (the window wraps across the year
// boundary). An occurrence landing on Saturday or Sunday shifts forward to
// the following Monday, and the window test applies to the shifted date.
// Results are ordered by shifted date ascending, ties by name ascending.
func (b *Book) UpcomingBirthdays(withinDays int) ([]domain.Reminder, error) {
	if withinDays < 0 {
		return nil, fmt.Errorf("book.Book.UpcomingBirthdays: %w: days must not be negative", domain.ErrValidation)
	}
	today := b.today()
	last := today.AddDate(0, 0, withinDays)

	out := []domain.Reminder{}
	for _, rec := range b.records {
		if rec.Birthday == nil {
			continue
		}
		shifted := nextWorkingOccurrence(*rec.Birthday, today)
		if shifted.Before(today) || shifted.After(last) {
			continue
		}
		out = append(out, domain.Reminder{Record: rec.Clone(), Date: shifted})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return foldName(out[i].Record.Name) < foldName(out[j].Record.Name)
	})
	return out, nil
}

// nextWorkingOccurrence returns the birthday's next occurrence on or after
// today, shifted forward past the weekend. Feb 29 birthdays normalize to
// Mar 1 in non-leap years via time.Date.
func nextWorkingOccurrence(birthday, today time.Time) time.Time {
	_, m, d := birthday.Date()
	next := time.Date(today.Year(), m, d, 0, 0, 0, 0, time.UTC)
	if next.Before(today) {
		next = time.Date(today.Year()+1, m, d, 0, 0, 0, 0, time.UTC)
	}
	for next.Weekday() == time.Saturday || next.Weekday() == time.Sunday {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
