package validate_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkovalov/addressbook/internal/domain"
	"github.com/dkovalov/addressbook/internal/validate"
)

// ---- Phone -----------------------------------------------------------------

func TestPhone_CanonicalForms(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0501234567", "0501234567"},
		{"+38 (050) 123-45-67", "+380501234567"},
		{"  050 123 45 67  ", "0501234567"},
		{"050.123.45.67", "0501234567"},
		{"+441632960961", "+441632960961"},
	}
	for _, tc := range cases {
		got, err := validate.Phone(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestPhone_Rejected(t *testing.T) {
	cases := []string{
		"",
		"123456",            // too few digits
		"1234567890123456",  // too many digits
		"050123456x",        // letter
		"050+1234567",       // + not leading
		"phone",
	}
	for _, in := range cases {
		_, err := validate.Phone(in)
		assert.ErrorIs(t, err, domain.ErrInvalidFormat, "input %q", in)
	}
}

// TestPhone_NormalizationIdempotent verifies that re-validating a canonical
// phone returns it unchanged: normalize(normalize(x)) == normalize(x).
func TestPhone_NormalizationIdempotent(t *testing.T) {
	for _, in := range []string{"+38 (050) 123-45-67", "050 123 4567", "0501234567"} {
		once, err := validate.Phone(in)
		require.NoError(t, err)
		twice, err := validate.Phone(once)
		require.NoError(t, err)
		assert.Equal(t, once, twice)
	}
}

// ---- Email -----------------------------------------------------------------

func TestEmail_Accepted(t *testing.T) {
	got, err := validate.Email("  John.Doe@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "john.doe@example.com", got)
}

func TestEmail_Rejected(t *testing.T) {
	cases := []string{
		"",
		"not-an-email",
		"two@@example.com",
		"a@b@example.com",
		"@example.com",   // empty local part
		"user@",          // empty domain
		"user@localhost", // no dot in domain
		"user@.com",      // dot leads the domain
		"user@com.",      // dot ends the domain
	}
	for _, in := range cases {
		_, err := validate.Email(in)
		assert.ErrorIs(t, err, domain.ErrInvalidFormat, "input %q", in)
	}
}

// ---- Birthday --------------------------------------------------------------

func TestBirthday_Accepted(t *testing.T) {
	today := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	got, err := validate.Birthday("05.06.1990", today)

	require.NoError(t, err)
	assert.Equal(t, time.Date(1990, time.June, 5, 0, 0, 0, 0, time.UTC), got)
}

func TestBirthday_TodayIsNotFuture(t *testing.T) {
	// Time-of-day on "today" must not matter: a birthday equal to today's
	// date is accepted even when today carries a clock reading.
	today := time.Date(2024, time.June, 1, 15, 30, 0, 0, time.UTC)

	_, err := validate.Birthday("01.06.2024", today)

	require.NoError(t, err)
}

func TestBirthday_Future(t *testing.T) {
	today := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	_, err := validate.Birthday("02.06.2024", today)

	assert.ErrorIs(t, err, domain.ErrFutureDate)
}

func TestBirthday_BadFormat(t *testing.T) {
	today := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"1990-06-05", "05/06/1990", "32.01.1990", "", "birthday"} {
		_, err := validate.Birthday(in, today)
		assert.ErrorIs(t, err, domain.ErrInvalidFormat, "input %q", in)
	}
}
