package entities

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorKinds(t *testing.T) {
	require.True(t, IsNotFound(fmt.Errorf("lookup: %w", ErrActivityNotFound)))
	require.False(t, IsConflict(ErrActivityNotFound))

	for _, err := range []error{ErrAlreadySignedUp, ErrActivityFull, ErrNotSignedUp} {
		require.True(t, IsConflict(err), err.Error())
		require.False(t, IsNotFound(err), err.Error())
	}
	require.False(t, IsConflict(ErrInvalidArgument))
}

func TestEnrollmentMessage(t *testing.T) {
	a := Activity{Name: "Soccer Team"}

	signup := Enrollment{Action: ActionSignedUp, Email: "newstudent@mergington.edu", Activity: a}
	require.Equal(t, "Signed up newstudent@mergington.edu for Soccer Team", signup.Message())

	unregister := Enrollment{Action: ActionUnregistered, Email: "alex@mergington.edu", Activity: a}
	require.Equal(t, "Unregistered alex@mergington.edu from Soccer Team", unregister.Message())
}

func TestActivityCloneIsIndependent(t *testing.T) {
	a := Activity{Name: "Chess Club", MaxParticipants: 2, Participants: []string{"a@x"}}
	c := a.Clone()
	c.Participants = append(c.Participants, "b@x")
	c.Participants[0] = "z@x"

	require.Equal(t, []string{"a@x"}, a.Participants)
	require.True(t, c.Full())
	require.Equal(t, 1, a.SpotsLeft())
	require.NotNil(t, Activity{}.Clone().Participants)
}
