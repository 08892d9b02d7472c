// Package entities contains core business entities.
package entities

import "fmt"

// EnrollmentAction enumerates roster transitions.
type EnrollmentAction string

const (
	// ActionSignedUp marks an email added to a roster.
	ActionSignedUp EnrollmentAction = "signed_up"
	// ActionUnregistered marks an email removed from a roster.
	ActionUnregistered EnrollmentAction = "unregistered"
)

// Enrollment confirms a successful roster transition.
type Enrollment struct {
	Action   EnrollmentAction
	Email    string
	Activity Activity
}

// Message renders the confirmation shown to the student.
func (e Enrollment) Message() string {
	if e.Action == ActionUnregistered {
		return fmt.Sprintf("Unregistered %s from %s", e.Email, e.Activity.Name)
	}
	return fmt.Sprintf("Signed up %s for %s", e.Email, e.Activity.Name)
}
