package entities

import "time"

// Participant represents a user's participation in an event.
type Participant struct {
	ID        int64
	EventID   int64
	UserID    int64
	Status    string
	CreatedAt time.Time
}
