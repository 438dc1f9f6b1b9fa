package domain

import (
	"habit-bot/internal/repository/sqlite"
)

// SubscriberMapper handles conversion between domain and database Subscriber models.
type SubscriberMapper struct{}

// NewSubscriberMapper creates a new SubscriberMapper instance.
func NewSubscriberMapper() *SubscriberMapper {
	return &SubscriberMapper{}
}

// ToDatabase converts a domain Subscriber to a database Subscriber.
func (m *SubscriberMapper) ToDatabase(s Subscriber) sqlite.Subscriber {
	return sqlite.Subscriber{
		UserID:    int64(s.ID),
		CreatedAt: s.SubscribedAt,
	}
}

// FromDatabase converts a database Subscriber to a domain Subscriber.
func (m *SubscriberMapper) FromDatabase(s sqlite.Subscriber) Subscriber {
	return Subscriber{
		ID:           UserID(s.UserID),
		SubscribedAt: s.CreatedAt,
	}
}

// FromDatabaseSlice converts a slice of database Subscribers to domain Subscribers.
func (m *SubscriberMapper) FromDatabaseSlice(dbSubs []*sqlite.Subscriber) []Subscriber {
	subs := make([]Subscriber, len(dbSubs))
	for i, s := range dbSubs {
		subs[i] = m.FromDatabase(*s)
	}
	return subs
}

// Mapper provides a unified interface for all mapping operations.
type Mapper struct {
	Subscriber *SubscriberMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers.
func NewMapper() *Mapper {
	return &Mapper{
		Subscriber: NewSubscriberMapper(),
	}
}
