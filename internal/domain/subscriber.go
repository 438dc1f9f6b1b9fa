package domain

import "time"

// Subscriber is a user who receives the daily broadcasts.
// This is a pure domain model without database-specific concerns.
type Subscriber struct {
	ID           UserID
	SubscribedAt time.Time
}

// IsValid checks if the subscriber has valid data.
func (s Subscriber) IsValid() bool {
	return s.ID != 0
}
