package cli

import (
	"context"
	"fmt"
	"strings"

	"habit-bot/internal/api"
	"habit-bot/internal/errors"
	"habit-bot/internal/notify"
)

// ChatCommand replays a slash command as if the user had typed it in chat
type ChatCommand struct {
	businessAPI api.BusinessAPI
	app         *App
}

// NewChatCommand creates a new chat command handler
func NewChatCommand(app *App) *ChatCommand {
	return &ChatCommand{businessAPI: app.businessAPI, app: app}
}

// Execute runs the command and prints the reply. Failures are printed the way
// the chat would show them and also returned.
func (c *ChatCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: hb command <user> </command>")
	}
	user, err := parseUserID(args[0])
	if err != nil {
		return err
	}

	text := strings.Join(args[1:], " ")
	msg, err := c.businessAPI.HandleCommand(ctx, user, text)
	if err != nil {
		printMessage(c.app.out, notify.Failure(errors.GetUserMessage(err)))
		return NewErrorHandler().Handle("run command", err)
	}
	printMessage(c.app.out, msg)
	return nil
}
