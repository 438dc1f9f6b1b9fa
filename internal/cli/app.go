package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"habit-bot/internal/api"
	"habit-bot/internal/checklist"
	"habit-bot/internal/config"
	"habit-bot/internal/domain"
	"habit-bot/internal/errors"

	"github.com/fatih/color"
)

// dateLayout is the format accepted for --date style arguments
const dateLayout = "2006-01-02"

// App represents the main CLI application
type App struct {
	api         api.API
	businessAPI api.BusinessAPI
	lists       *checklist.Cache
	config      *config.Config
	out         io.Writer
	registry    *CommandRegistry
}

// NewApp creates a new CLI application instance with dependency injection
func NewApp(apiInstance api.API, businessAPI api.BusinessAPI, lists *checklist.Cache, cfg *config.Config) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	app := &App{
		api:         apiInstance,
		businessAPI: businessAPI,
		lists:       lists,
		config:      cfg,
		out:         color.Output,
	}
	app.registry = NewCommandRegistry(app)
	return app
}

// SetOutput redirects command output; tests use it to capture what is printed
func (a *App) SetOutput(w io.Writer) {
	a.out = w
}

// Run executes the CLI application with the given arguments
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%s", a.registry.GetUsage())
	}

	commandName := args[0]
	commandArgs := args[1:]

	return a.registry.Execute(ctx, commandName, commandArgs)
}

// now returns the current time in the configured time zone
func (a *App) now() time.Time {
	if a.lists != nil {
		return a.lists.Now()
	}
	return time.Now()
}

// parseUserID parses a chat user ID argument
func parseUserID(s string) (domain.UserID, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewInvalidInputError("user", s, "must be a positive chat ID")
	}
	return domain.UserID(id), nil
}

// parseDate parses a YYYY-MM-DD argument in loc
func parseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, errors.NewInvalidInputError("date", s, "expected "+dateLayout)
	}
	return t, nil
}
