package cli

import (
	"context"

	"habit-bot/internal/errors"
)

// Command represents a CLI command
type Command interface {
	Execute(ctx context.Context, args []string) error
}

// CommandRegistry manages all available commands
type CommandRegistry struct {
	commands map[string]Command
}

// NewCommandRegistry creates a new command registry
func NewCommandRegistry(app *App) *CommandRegistry {
	registry := &CommandRegistry{
		commands: make(map[string]Command),
	}

	// Register all commands
	registry.Register("run", NewRunCommand(app))
	registry.Register("today", NewTodayCommand(app))
	registry.Register("habits", NewHabitsCommand(app))
	registry.Register("toggle", NewToggleCommand(app))
	registry.Register("command", NewChatCommand(app))
	registry.Register("subscribe", NewSubscribeCommand(app))
	registry.Register("users", NewUsersCommand(app))
	registry.Register("resolve", NewResolveCommand(app))

	return registry
}

// Register adds a command to the registry
func (r *CommandRegistry) Register(name string, command Command) {
	r.commands[name] = command
}

// Execute runs the specified command with the given arguments
func (r *CommandRegistry) Execute(ctx context.Context, commandName string, args []string) error {
	command, exists := r.commands[commandName]
	if !exists {
		return errors.NewInvalidInputError("command", commandName, "unknown command")
	}
	return command.Execute(ctx, args)
}

// GetUsage returns the usage string for the CLI
func (r *CommandRegistry) GetUsage() string {
	return "usage: hb run or hb today <user> or hb habits <user> or hb toggle <user> <callback> or hb command <user> </command> or hb subscribe <user> or hb users or hb resolve [YYYY-MM-DD]"
}
