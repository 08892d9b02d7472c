// Package entities contains core business entities and errors.
package entities

import "errors"

var (
	// ErrActivityNotFound is returned when no activity has the requested name.
	ErrActivityNotFound = errors.New("activity not found")
	// ErrAlreadySignedUp signals the email is already on the roster.
	ErrAlreadySignedUp = errors.New("student already signed up")
	// ErrActivityFull signals the roster reached max participants.
	ErrActivityFull = errors.New("activity is full")
	// ErrNotSignedUp signals removal of an email that is not on the roster.
	ErrNotSignedUp = errors.New("student not signed up")
	// ErrInvalidArgument signals failed input validation.
	ErrInvalidArgument = errors.New("invalid argument")
)

// IsNotFound reports whether err refers to an unknown activity.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrActivityNotFound)
}

// IsConflict reports whether err is a roster invariant violation on an existing activity.
func IsConflict(err error) bool {
	return errors.Is(err, ErrAlreadySignedUp) ||
		errors.Is(err, ErrActivityFull) ||
		errors.Is(err, ErrNotSignedUp)
}
