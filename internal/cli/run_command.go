package cli

import (
	"context"
	"fmt"

	"habit-bot/internal/notify"
	"habit-bot/internal/scheduler"
)

// RunCommand handles the run command
type RunCommand struct {
	app *App
}

// NewRunCommand creates a new run command handler
func NewRunCommand(app *App) *RunCommand {
	return &RunCommand{app: app}
}

// Execute starts the scheduler and blocks until ctx is canceled
func (c *RunCommand) Execute(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("run takes no arguments")
	}
	return c.newScheduler(notify.NewConsole(c.app.out)).Run(ctx)
}

// newScheduler wires the scheduler to the app's lists and subscriber registry
func (c *RunCommand) newScheduler(notifier notify.Notifier) *scheduler.Scheduler {
	cfg := c.app.config
	return scheduler.New(c.app.lists, c.app.api, notifier, scheduler.Config{
		Lead:          cfg.Schedule.ReminderLead,
		Interval:      cfg.Schedule.TickInterval,
		TaskDigestAt:  cfg.TaskDigestClock(),
		HabitDigestAt: cfg.HabitDigestClock(),
	}, scheduler.WithClock(c.app.now))
}
