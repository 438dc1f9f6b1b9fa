package cli

import (
	"context"
	"fmt"

	"habit-bot/internal/api"
)

// TodayCommand handles the today command
type TodayCommand struct {
	businessAPI api.BusinessAPI
	app         *App
}

// NewTodayCommand creates a new today command handler
func NewTodayCommand(app *App) *TodayCommand {
	return &TodayCommand{businessAPI: app.businessAPI, app: app}
}

// Execute prints the user's task checklist for today
func (c *TodayCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: hb today <user>")
	}
	user, err := parseUserID(args[0])
	if err != nil {
		return err
	}

	msg, err := c.businessAPI.Today(ctx, user)
	if err != nil {
		return NewErrorHandler().Handle("load tasks", err)
	}
	printMessage(c.app.out, msg)
	return nil
}

// HabitsCommand handles the habits command
type HabitsCommand struct {
	businessAPI api.BusinessAPI
	app         *App
}

// NewHabitsCommand creates a new habits command handler
func NewHabitsCommand(app *App) *HabitsCommand {
	return &HabitsCommand{businessAPI: app.businessAPI, app: app}
}

// Execute re-reads and prints the user's habits for today
func (c *HabitsCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: hb habits <user>")
	}
	user, err := parseUserID(args[0])
	if err != nil {
		return err
	}

	msg, err := c.businessAPI.Habits(ctx, user)
	if err != nil {
		return NewErrorHandler().Handle("load habits", err)
	}
	printMessage(c.app.out, msg)
	return nil
}
