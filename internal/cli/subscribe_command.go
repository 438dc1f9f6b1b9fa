package cli

import (
	"context"
	"fmt"

	"habit-bot/internal/api"

	"github.com/gosuri/uitable"
)

// SubscribeCommand handles the subscribe command
type SubscribeCommand struct {
	businessAPI api.BusinessAPI
	app         *App
}

// NewSubscribeCommand creates a new subscribe command handler
func NewSubscribeCommand(app *App) *SubscribeCommand {
	return &SubscribeCommand{businessAPI: app.businessAPI, app: app}
}

// Execute adds a user to the broadcast list
func (c *SubscribeCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: hb subscribe <user>")
	}
	user, err := parseUserID(args[0])
	if err != nil {
		return err
	}

	res, err := c.businessAPI.Subscribe(ctx, user)
	if err != nil {
		return NewErrorHandler().Handle("subscribe", err)
	}
	if res.Created {
		fmt.Fprintf(c.app.out, "Subscribed user %d\n", user)
	} else {
		fmt.Fprintf(c.app.out, "User %d is already subscribed\n", user)
	}
	return nil
}

// UsersCommand handles the users command
type UsersCommand struct {
	api api.API
	app *App
}

// NewUsersCommand creates a new users command handler
func NewUsersCommand(app *App) *UsersCommand {
	return &UsersCommand{api: app.api, app: app}
}

// Execute prints every subscriber in subscription order
func (c *UsersCommand) Execute(ctx context.Context, args []string) error {
	subs, err := c.api.ListSubscribers(ctx)
	if err != nil {
		return NewErrorHandler().Handle("list subscribers", err)
	}
	if len(subs) == 0 {
		fmt.Fprintln(c.app.out, "No subscribers")
		return nil
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold("USER"), bold("SUBSCRIBED"))
	for _, s := range subs {
		tbl.AddRow(s.ID, s.SubscribedAt.In(c.app.now().Location()).Format("2006-01-02 15:04"))
	}
	fmt.Fprintln(c.app.out, tbl)
	return nil
}
