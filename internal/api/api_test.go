package api

import (
	"context"
	"testing"

	"habit-bot/internal/domain"
	"habit-bot/internal/errors"
	"habit-bot/internal/repository/sqlite"
	"habit-bot/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestAPI(t *testing.T) API {
	t.Helper()
	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return New(repo)
}

func TestAPI_AddSubscriber(t *testing.T) {
	api := setupTestAPI(t)
	ctx := context.Background()

	sub, created, err := api.AddSubscriber(ctx, 42)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, domain.UserID(42), sub.ID)
	assert.False(t, sub.SubscribedAt.IsZero())

	again, created, err := api.AddSubscriber(ctx, 42)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, sub.ID, again.ID)
	assert.True(t, sub.SubscribedAt.Equal(again.SubscribedAt))
}

func TestAPI_AddSubscriber_InvalidID(t *testing.T) {
	api := setupTestAPI(t)

	for _, id := range []domain.UserID{0, -5} {
		_, _, err := api.AddSubscriber(context.Background(), id)
		require.Error(t, err)
		assert.True(t, validation.IsValidationError(err))
	}
}

func TestAPI_GetSubscriber(t *testing.T) {
	api := setupTestAPI(t)
	ctx := context.Background()

	_, err := api.GetSubscriber(ctx, 7)
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))

	_, _, err = api.AddSubscriber(ctx, 7)
	require.NoError(t, err)

	sub, err := api.GetSubscriber(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, domain.UserID(7), sub.ID)
}

func TestAPI_ListSubscribersAndUserIDs(t *testing.T) {
	api := setupTestAPI(t)
	ctx := context.Background()

	ids, err := api.UserIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)

	for _, id := range []domain.UserID{3, 1, 2, 1} {
		_, _, err := api.AddSubscriber(ctx, id)
		require.NoError(t, err)
	}

	subs, err := api.ListSubscribers(ctx)
	require.NoError(t, err)
	assert.Len(t, subs, 3)

	ids, err = api.UserIDs(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []domain.UserID{1, 2, 3}, ids)
}
