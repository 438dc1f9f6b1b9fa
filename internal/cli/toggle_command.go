package cli

import (
	"context"
	"fmt"
	"strings"

	"habit-bot/internal/api"
	"habit-bot/internal/notify"
)

// ToggleCommand handles the toggle command
type ToggleCommand struct {
	businessAPI api.BusinessAPI
	app         *App
}

// NewToggleCommand creates a new toggle command handler
func NewToggleCommand(app *App) *ToggleCommand {
	return &ToggleCommand{businessAPI: app.businessAPI, app: app}
}

// Execute presses a checklist button. The argument is either raw callback
// data ("task_D43", "habit_toggle_1") or a bare cell reference, which is
// taken as a task.
//
// A CLI process starts with an empty cache, so the list the button belongs to
// is loaded first.
func (c *ToggleCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: hb toggle <user> <callback>")
	}
	user, err := parseUserID(args[0])
	if err != nil {
		return err
	}

	data := callbackData(args[1])
	cb, err := api.ParseCallback(data)
	if err != nil {
		return NewErrorHandler().Handle("toggle", err)
	}

	switch cb.Kind {
	case api.CallbackTask:
		_, err = c.businessAPI.Today(ctx, user)
	case api.CallbackHabit:
		_, err = c.businessAPI.Habits(ctx, user)
	}
	if err != nil {
		return NewErrorHandler().Handle("load checklist", err)
	}

	res, err := c.businessAPI.HandleCallback(ctx, user, data)
	if err != nil {
		return NewErrorHandler().Handle("toggle", err)
	}

	if !res.Closed {
		printMessage(c.app.out, res.Message)
	}
	printNotice(c.app.out, res.Notice)
	return nil
}

// callbackData expands a bare cell reference into task callback data
func callbackData(arg string) string {
	arg = strings.TrimSpace(arg)
	if arg == notify.DoneCallback || strings.Contains(arg, "_") {
		return arg
	}
	return notify.TaskCallback(strings.ToUpper(arg))
}
