package cli

import (
	"context"
	"fmt"

	"habit-bot/internal/api"
	"habit-bot/internal/notify"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
)

var bold = color.New(color.Bold).SprintFunc()

// ResolveCommand prints the sheet cells used on a date
type ResolveCommand struct {
	businessAPI api.BusinessAPI
	app         *App
}

// NewResolveCommand creates a new resolve command handler
func NewResolveCommand(app *App) *ResolveCommand {
	return &ResolveCommand{businessAPI: app.businessAPI, app: app}
}

// Execute resolves today, or the YYYY-MM-DD date given as the only argument
func (c *ResolveCommand) Execute(ctx context.Context, args []string) error {
	now := c.app.now()
	date := now
	switch len(args) {
	case 0:
	case 1:
		d, err := parseDate(args[0], now.Location())
		if err != nil {
			return NewErrorHandler().HandleSimple(err)
		}
		date = d
	default:
		return fmt.Errorf("usage: hb resolve [YYYY-MM-DD]")
	}

	layout := c.businessAPI.Layout(date)
	fmt.Fprintf(c.app.out, "%s (week %d)\n\n", bold(notify.FormatDate(layout.Date)), layout.Week)

	tasks := uitable.New()
	tasks.Separator = "  "
	tasks.AddRow(bold("TASK"), bold("TEXT"), bold("DONE"))
	for _, s := range layout.Tasks {
		tasks.AddRow(s.Index, s.Text, s.Check)
	}
	fmt.Fprintln(c.app.out, tasks)
	fmt.Fprintln(c.app.out)

	habits := uitable.New()
	habits.Separator = "  "
	habits.AddRow(bold("HABIT"), bold("NAME"), bold("TIME"), bold("DONE"))
	for _, s := range layout.Habits {
		habits.AddRow(s.Index+1, s.Name, s.Time, s.Check)
	}
	fmt.Fprintln(c.app.out, habits)
	return nil
}
