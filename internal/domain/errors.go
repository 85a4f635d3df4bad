package domain

import "errors"

// Sentinel errors returned by the book, store, and service layers.
// Callers match them with errors.Is; every layer adds context with
// fmt.Errorf("pkg.Type.Method: %w", err) without changing the kind.
var (
	// ErrNotFound is returned when an operation targets a record, note,
	// phone, or storage location that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation is returned when input breaks a business rule that is
	// not a format problem (blank name, duplicate phone, empty note text).
	ErrValidation = errors.New("validation error")

	// ErrInvalidFormat is returned for malformed phone, email, or date input.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrFutureDate is returned when a birthday lies after today.
	ErrFutureDate = errors.New("date is in the future")

	// ErrDuplicateName is returned when adding or renaming a contact would
	// collide with an existing name. Names are compared case-insensitively.
	ErrDuplicateName = errors.New("duplicate name")

	// ErrCorruptData is returned when a persisted address book cannot be
	// decoded or fails schema validation on load.
	ErrCorruptData = errors.New("corrupt data")

	// ErrIO is returned for underlying storage failures during save or load.
	ErrIO = errors.New("storage failure")
)
