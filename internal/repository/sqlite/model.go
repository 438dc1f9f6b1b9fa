package sqlite

import "time"

// Subscriber is a user registered for the daily broadcasts
type Subscriber struct {
	UserID    int64
	CreatedAt time.Time
}
