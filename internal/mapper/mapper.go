// Package mapper converts between domain models and transport DTOs.
package mapper

import (
	"bytes"
	"encoding/json"

	"mergington-activities/internal/entities"
)

// ActivityDetails is the JSON shape of one activity in the listing.
type ActivityDetails struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// NamedActivity pairs an activity name with its details.
type NamedActivity struct {
	Name    string
	Details ActivityDetails
}

// ActivityList encodes as a JSON object keyed by activity name, keeping catalog order.
type ActivityList []NamedActivity

// MarshalJSON implements json.Marshaler.
func (l ActivityList) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, a := range l {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(a.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(a.Details)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MessageResponse is returned by successful roster changes.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse carries a human readable failure detail.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// ToActivityList maps domain activities to the listing DTO.
func ToActivityList(activities []entities.Activity) ActivityList {
	out := make(ActivityList, 0, len(activities))
	for _, a := range activities {
		participants := a.Participants
		if participants == nil {
			participants = []string{}
		}
		out = append(out, NamedActivity{
			Name: a.Name,
			Details: ActivityDetails{
				Description:     a.Description,
				Schedule:        a.Schedule,
				MaxParticipants: a.MaxParticipants,
				Participants:    participants,
			},
		})
	}
	return out
}

// ToMessage maps a confirmed enrollment to its response body.
func ToMessage(e entities.Enrollment) MessageResponse {
	return MessageResponse{Message: e.Message()}
}
