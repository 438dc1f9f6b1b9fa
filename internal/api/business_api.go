package api

import (
	"context"
	"strings"
	"time"

	"habit-bot/internal/checklist"
	"habit-bot/internal/domain"
	"habit-bot/internal/errors"
	"habit-bot/internal/logging"
	"habit-bot/internal/notify"
	"habit-bot/internal/sheet"
	"habit-bot/internal/validation"
)

// Chat commands understood by HandleCommand.
const (
	CommandStart  = "/start"
	CommandID     = "/id"
	CommandToday  = "/today"
	CommandHabits = "/habits"
)

// SubscribeResult reports a subscription attempt.
type SubscribeResult struct {
	Subscriber domain.Subscriber
	Created    bool
}

// CallbackResult is what a button press produced. Message is the list to
// redraw; it is empty when Closed is set.
type CallbackResult struct {
	Callback Callback
	Toggle   *checklist.ToggleResult
	Message  notify.Message
	Notice   string
	Closed   bool
}

// Layout describes where one day's data lives in the sheet.
type Layout struct {
	Date   time.Time
	Week   int
	Tasks  []sheet.TaskSlot
	Habits []sheet.HabitSlot
}

// BusinessAPI defines the chat-facing workflows
type BusinessAPI interface {
	// ========== Subscriptions ==========

	// Subscribe adds user to the broadcast list; repeating it is harmless
	Subscribe(ctx context.Context, user domain.UserID) (*SubscribeResult, error)

	// ========== Checklists ==========

	// Today renders today's task list, loading it on first use
	Today(ctx context.Context, user domain.UserID) (notify.Message, error)

	// Habits re-reads today's habits and renders them
	Habits(ctx context.Context, user domain.UserID) (notify.Message, error)

	// HandleCallback applies a button press from a rendered list
	HandleCallback(ctx context.Context, user domain.UserID, data string) (*CallbackResult, error)

	// HandleCommand answers a slash command
	HandleCommand(ctx context.Context, user domain.UserID, command string) (notify.Message, error)

	// ========== Diagnostics ==========

	// Layout resolves the sheet addresses used on date
	Layout(date time.Time) *Layout
}

type businessAPIImpl struct {
	registry  API
	cache     *checklist.Cache
	validator *validation.Validator
}

// NewBusinessAPI creates a new BusinessAPI instance
func NewBusinessAPI(registry API, cache *checklist.Cache) BusinessAPI {
	return &businessAPIImpl{
		registry:  registry,
		cache:     cache,
		validator: validation.NewValidator(),
	}
}

func (b *businessAPIImpl) Subscribe(ctx context.Context, user domain.UserID) (*SubscribeResult, error) {
	sub, created, err := b.registry.AddSubscriber(ctx, user)
	if err != nil {
		return nil, err
	}
	if created {
		logging.Infof("subscribed user %d", user)
	}
	return &SubscribeResult{Subscriber: *sub, Created: created}, nil
}

func (b *businessAPIImpl) Today(ctx context.Context, user domain.UserID) (notify.Message, error) {
	tasks, err := b.cache.LoadTasks(ctx, user)
	if err != nil {
		return notify.Message{}, err
	}
	return notify.TaskList(b.cache.Now(), tasks), nil
}

func (b *businessAPIImpl) Habits(ctx context.Context, user domain.UserID) (notify.Message, error) {
	habits, err := b.cache.LoadHabits(ctx, user)
	if err != nil {
		return notify.Message{}, err
	}
	return notify.HabitList(b.cache.Now(), habits), nil
}

func (b *businessAPIImpl) HandleCallback(ctx context.Context, user domain.UserID, data string) (*CallbackResult, error) {
	if err := b.validator.ValidateCallbackData(data); err != nil {
		return nil, errors.NewValidationError("invalid callback", err)
	}
	cb, err := ParseCallback(data)
	if err != nil {
		return nil, err
	}

	now := b.cache.Now()
	switch cb.Kind {
	case CallbackTask:
		var res *checklist.TaskToggle
		if cb.Positional() {
			res, err = b.cache.ToggleTaskAt(ctx, user, cb.Index)
		} else {
			res, err = b.cache.ToggleTask(ctx, user, cb.Key)
		}
		if err != nil {
			return nil, err
		}
		return &CallbackResult{
			Callback: cb,
			Toggle:   &res.ToggleResult,
			Message:  notify.TaskList(now, res.Tasks),
			Notice:   toggleNotice(res.ToggleResult),
		}, nil

	case CallbackHabit:
		var res *checklist.HabitToggle
		if cb.Positional() {
			res, err = b.cache.ToggleHabitAt(ctx, user, cb.Index)
		} else {
			res, err = b.cache.ToggleHabit(ctx, user, cb.Key)
		}
		if err != nil {
			return nil, err
		}
		return &CallbackResult{
			Callback: cb,
			Toggle:   &res.ToggleResult,
			Message:  notify.HabitList(now, res.Habits),
			Notice:   toggleNotice(res.ToggleResult),
		}, nil
	}

	return &CallbackResult{Callback: cb, Notice: "Saved.", Closed: true}, nil
}

func toggleNotice(res checklist.ToggleResult) string {
	if !res.Confirmed {
		return "Saved here, but the sheet did not confirm the change."
	}
	return ""
}

func (b *businessAPIImpl) HandleCommand(ctx context.Context, user domain.UserID, command string) (notify.Message, error) {
	switch normalizeCommand(command) {
	case CommandStart:
		if _, err := b.Subscribe(ctx, user); err != nil {
			return notify.Message{}, err
		}
		return notify.Welcome(), nil
	case CommandID:
		if _, err := b.Subscribe(ctx, user); err != nil {
			return notify.Message{}, err
		}
		return notify.ChatID(user), nil
	case CommandToday:
		return b.Today(ctx, user)
	case CommandHabits:
		return b.Habits(ctx, user)
	}
	return notify.Message{}, errors.NewInvalidInputError("command", command, "unknown command")
}

// normalizeCommand lowercases the command word and drops a "@botname" suffix.
func normalizeCommand(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	cmd := strings.ToLower(fields[0])
	if i := strings.IndexByte(cmd, '@'); i > 0 {
		cmd = cmd[:i]
	}
	return cmd
}

func (b *businessAPIImpl) Layout(date time.Time) *Layout {
	return &Layout{
		Date:   date,
		Week:   sheet.WeekNumber(date),
		Tasks:  sheet.TaskSlots(date),
		Habits: sheet.HabitSlots(date),
	}
}
