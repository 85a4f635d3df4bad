// Package validate holds the pure validation rules for contact fields.
// Each function either returns a canonical value or a typed failure wrapping
// one of the domain sentinels. Nothing here has side effects; "today" is a
// parameter wherever a rule depends on the current date.
package validate

import (
	"fmt"
	"strings"
	"time"

	"github.com/dkovalov/addressbook/internal/domain"
)

// Phone digit-count bounds. Seven digits covers short national numbers,
// fifteen is the E.164 maximum.
const (
	MinPhoneDigits = 7
	MaxPhoneDigits = 15
)

// Phone checks a phone string and returns its canonical form: an optional
// leading "+" followed by bare digits. Accepted separators are space, "-",
// ".", "(" and ")"; they are stripped. Any other character, or a digit count
// outside [MinPhoneDigits, MaxPhoneDigits], fails with ErrInvalidFormat.
//
// Canonical output is a fixed point: Phone(Phone(s)) == Phone(s).
func Phone(s string) (string, error) {
	s = strings.TrimSpace(s)
	var digits strings.Builder
	plus := false
	for i, r := range s {
		switch {
		case r == '+' && i == 0:
			plus = true
		case r >= '0' && r <= '9':
			digits.WriteRune(r)
		case r == ' ' || r == '-' || r == '.' || r == '(' || r == ')':
			// separator, dropped
		default:
			return "", fmt.Errorf("%w: phone may contain only digits, separators, and a leading +", domain.ErrInvalidFormat)
		}
	}
	n := digits.Len()
	if n < MinPhoneDigits || n > MaxPhoneDigits {
		return "", fmt.Errorf("%w: phone must have between %d and %d digits", domain.ErrInvalidFormat, MinPhoneDigits, MaxPhoneDigits)
	}
	if plus {
		return "+" + digits.String(), nil
	}
	return digits.String(), nil
}

// Email checks an email address and returns it trimmed and lowercased.
// The rule is deliberately simple: exactly one "@", non-empty local and
// domain parts, and at least one "." strictly inside the domain.
func Email(s string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if strings.Count(s, "@") != 1 {
		return "", fmt.Errorf("%w: email must contain exactly one @", domain.ErrInvalidFormat)
	}
	local, dom, _ := strings.Cut(s, "@")
	if local == "" || dom == "" {
		return "", fmt.Errorf("%w: email must have a local part and a domain", domain.ErrInvalidFormat)
	}
	if strings.ContainsAny(s, " \t") {
		return "", fmt.Errorf("%w: email must not contain whitespace", domain.ErrInvalidFormat)
	}
	if len(dom) < 3 || !strings.Contains(dom[1:len(dom)-1], ".") {
		return "", fmt.Errorf("%w: email domain must contain a dot", domain.ErrInvalidFormat)
	}
	return s, nil
}

// Birthday parses a date in DD.MM.YYYY form and checks it is not after
// today. Parse failures wrap ErrInvalidFormat, future dates ErrFutureDate.
// The returned time is the date at midnight UTC; today is compared by
// calendar date, its time-of-day is ignored.
func Birthday(s string, today time.Time) (time.Time, error) {
	t, err := time.ParseInLocation(domain.BirthdayLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: birthday must be in format DD.MM.YYYY", domain.ErrInvalidFormat)
	}
	y, m, d := today.Date()
	if t.After(time.Date(y, m, d, 0, 0, 0, 0, time.UTC)) {
		return time.Time{}, fmt.Errorf("%w: birthday %s is after today", domain.ErrFutureDate, t.Format(domain.BirthdayLayout))
	}
	return t, nil
}
