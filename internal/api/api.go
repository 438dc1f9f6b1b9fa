package api

import (
	"context"

	"habit-bot/internal/domain"
	"habit-bot/internal/repository/sqlite"
	"habit-bot/internal/validation"
)

// API defines the subscriber registry operations.
type API interface {
	// AddSubscriber registers user; created is false when it was already known.
	AddSubscriber(ctx context.Context, user domain.UserID) (sub *domain.Subscriber, created bool, err error)
	GetSubscriber(ctx context.Context, user domain.UserID) (*domain.Subscriber, error)
	ListSubscribers(ctx context.Context) ([]domain.Subscriber, error)
	// UserIDs lists subscriber ids in registration order.
	UserIDs(ctx context.Context) ([]domain.UserID, error)
}

type apiImpl struct {
	repo      sqlite.Repository
	mapper    *domain.Mapper
	validator *validation.Validator
}

// New creates a new API instance.
func New(repo sqlite.Repository) API {
	return &apiImpl{
		repo:      repo,
		mapper:    domain.NewMapper(),
		validator: validation.NewValidator(),
	}
}

func (a *apiImpl) AddSubscriber(ctx context.Context, user domain.UserID) (*domain.Subscriber, bool, error) {
	if err := a.validator.ValidateUserID(int64(user)); err != nil {
		return nil, false, err
	}

	dbSub := a.mapper.Subscriber.ToDatabase(domain.Subscriber{ID: user})
	created, err := a.repo.AddSubscriber(ctx, &dbSub)
	if err != nil {
		return nil, false, err
	}
	if !created {
		existing, err := a.GetSubscriber(ctx, user)
		return existing, false, err
	}
	sub := a.mapper.Subscriber.FromDatabase(dbSub)
	return &sub, true, nil
}

func (a *apiImpl) GetSubscriber(ctx context.Context, user domain.UserID) (*domain.Subscriber, error) {
	if err := a.validator.ValidateUserID(int64(user)); err != nil {
		return nil, err
	}

	dbSub, err := a.repo.GetSubscriber(ctx, int64(user))
	if err != nil {
		return nil, err
	}
	sub := a.mapper.Subscriber.FromDatabase(*dbSub)
	return &sub, nil
}

func (a *apiImpl) ListSubscribers(ctx context.Context) ([]domain.Subscriber, error) {
	dbSubs, err := a.repo.ListSubscribers(ctx)
	if err != nil {
		return nil, err
	}
	return a.mapper.Subscriber.FromDatabaseSlice(dbSubs), nil
}

func (a *apiImpl) UserIDs(ctx context.Context) ([]domain.UserID, error) {
	subs, err := a.ListSubscribers(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]domain.UserID, len(subs))
	for i, s := range subs {
		ids[i] = s.ID
	}
	return ids, nil
}
