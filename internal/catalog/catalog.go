// Package catalog provides the activity catalog: the record type, the store
// interface, and a buntdb-backed in-memory implementation.
package catalog

import (
	"context"
	"errors"
	"time"
)

// Activity is a single extracurricular activity and its roster.
type Activity struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	Schedule        string    `json:"schedule"`
	Tags            []string  `json:"tags,omitempty"`
	MaxParticipants int       `json:"max_participants"`
	Participants    []string  `json:"participants"`
	Popularity      int       `json:"popularity"`
	CreatedAt       time.Time `json:"created_at,omitzero"`
}

// SpotsLeft returns the remaining roster capacity.
func (a Activity) SpotsLeft() int {
	return a.MaxParticipants - len(a.Participants)
}

// Available reports whether the activity still has open spots.
func (a Activity) Available() bool {
	return len(a.Participants) < a.MaxParticipants
}

var (
	// ErrNotFound is returned when no activity matches the given identifier.
	ErrNotFound = errors.New("activity not found")

	// ErrAlreadyRegistered is returned when a student signs up twice.
	ErrAlreadyRegistered = errors.New("student is already signed up")

	// ErrNotRegistered is returned when unregistering a student who never
	// signed up.
	ErrNotRegistered = errors.New("student is not signed up for this activity")

	// ErrFull is returned when a signup would exceed max participants.
	ErrFull = errors.New("activity is full")
)

// Store is the catalog's read/write interface. List returns activities in
// insertion (catalog) order; that order is the tiebreak baseline for every
// downstream sort.
type Store interface {
	// Put inserts or replaces an activity. Insertion order is assigned on
	// first Put and preserved on replace.
	Put(ctx context.Context, a Activity) error

	// Get returns the activity with the given ID.
	Get(ctx context.Context, id string) (Activity, error)

	// GetByName returns the activity with the given display name. Names act
	// as a secondary identifier in the simplified signup API.
	GetByName(ctx context.Context, name string) (Activity, error)

	// List returns all activities in catalog order.
	List(ctx context.Context) ([]Activity, error)

	// Signup adds email to the roster. The membership check and the write
	// happen atomically.
	Signup(ctx context.Context, id, email string) (Activity, error)

	// Unregister removes email from the roster, atomically with its check.
	Unregister(ctx context.Context, id, email string) (Activity, error)
}
