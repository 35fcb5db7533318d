// Package event defines roster domain events published when students join or
// leave an activity.
package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/mergington/activities/internal/catalog"
)

// Event types carried in RosterEvent.EventType.
const (
	TypeStudentSignedUp     = "student_signed_up"
	TypeStudentUnregistered = "student_unregistered"
)

// RosterEvent is the canonical shape of a roster change.
type RosterEvent struct {
	ID           string    `json:"id"`
	EventType    string    `json:"event_type"`
	OccurredAt   time.Time `json:"occurred_at"`
	ActivityID   string    `json:"activity_id"`
	ActivityName string    `json:"activity_name"`
	Email        string    `json:"email"`
	SpotsLeft    int       `json:"spots_left"`
}

func newID() string { return uuid.NewString() }

// NewStudentSignedUp builds the event for a successful signup.
func NewStudentSignedUp(a catalog.Activity, email string) RosterEvent {
	return RosterEvent{
		ID:           newID(),
		EventType:    TypeStudentSignedUp,
		OccurredAt:   time.Now(),
		ActivityID:   a.ID,
		ActivityName: a.Name,
		Email:        email,
		SpotsLeft:    a.SpotsLeft(),
	}
}

// NewStudentUnregistered builds the event for a successful unregister.
func NewStudentUnregistered(a catalog.Activity, email string) RosterEvent {
	return RosterEvent{
		ID:           newID(),
		EventType:    TypeStudentUnregistered,
		OccurredAt:   time.Now(),
		ActivityID:   a.ID,
		ActivityName: a.Name,
		Email:        email,
		SpotsLeft:    a.SpotsLeft(),
	}
}
