package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingCommand struct {
	args []string
	err  error
}

func (c *recordingCommand) Execute(_ context.Context, args []string) error {
	c.args = args
	return c.err
}

func TestNewCommandRegistry(t *testing.T) {
	app := setupTestApp(t, nil)

	registry := NewCommandRegistry(app.App)

	assert.NotNil(t, registry)
	for _, name := range []string{"run", "today", "habits", "toggle", "command", "subscribe", "users", "resolve"} {
		assert.Contains(t, registry.commands, name)
	}
}

func TestCommandRegistry_Execute(t *testing.T) {
	app := setupTestApp(t, sheetCells())
	registry := NewCommandRegistry(app.App)
	ctx := context.Background()

	t.Run("executes subscribe command", func(t *testing.T) {
		err := registry.Execute(ctx, "subscribe", []string{"42"})
		require.NoError(t, err)

		ids, err := app.api.UserIDs(ctx)
		require.NoError(t, err)
		assert.Len(t, ids, 1)
	})

	t.Run("executes today command", func(t *testing.T) {
		err := registry.Execute(ctx, "today", []string{"42"})
		assert.NoError(t, err)
	})

	t.Run("executes resolve command", func(t *testing.T) {
		err := registry.Execute(ctx, "resolve", []string{})
		assert.NoError(t, err)
	})

	t.Run("handles unknown command", func(t *testing.T) {
		err := registry.Execute(ctx, "unknown", []string{})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unknown command")
	})

	t.Run("handles empty command", func(t *testing.T) {
		err := registry.Execute(ctx, "", []string{})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unknown command")
	})

	t.Run("propagates argument errors", func(t *testing.T) {
		assert.Error(t, registry.Execute(ctx, "today", []string{}))
		assert.Error(t, registry.Execute(ctx, "toggle", []string{"42"}))
	})
}

func TestCommandRegistry_Register(t *testing.T) {
	app := setupTestApp(t, nil)
	registry := NewCommandRegistry(app.App)

	cmd := &recordingCommand{err: errors.New("boom")}
	registry.Register("today", cmd)

	err := registry.Execute(context.Background(), "today", []string{"1", "2"})
	assert.EqualError(t, err, "boom")
	assert.Equal(t, []string{"1", "2"}, cmd.args)
}

func TestCommandRegistry_GetUsage(t *testing.T) {
	app := setupTestApp(t, nil)
	registry := NewCommandRegistry(app.App)

	usage := registry.GetUsage()
	assert.NotEmpty(t, usage)

	for name := range registry.commands {
		assert.Contains(t, usage, "hb "+name)
	}
}
