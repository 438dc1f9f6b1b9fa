// Package notify renders checklists into chat messages and delivers them.
package notify

import (
	"fmt"
	"strings"
	"time"

	"habit-bot/internal/domain"
)

// Callback data prefixes carried by inline buttons.
const (
	TaskCallbackPrefix  = "task_"
	HabitCallbackPrefix = "habit_"
	DoneCallback        = "done"
)

const (
	checkedBox   = "✅"
	uncheckedBox = "☑️"
)

// Button is one inline keyboard button.
type Button struct {
	Text string
	Data string
}

// Message is a chat message with an optional inline keyboard, one row per slice.
type Message struct {
	Text     string
	Keyboard [][]Button
}

// HasKeyboard reports whether the message carries any buttons.
func (m Message) HasKeyboard() bool {
	return len(m.Keyboard) > 0
}

// Buttons flattens the keyboard in display order.
func (m Message) Buttons() []Button {
	var out []Button
	for _, row := range m.Keyboard {
		out = append(out, row...)
	}
	return out
}

// FormatDate renders the long date used in list headers.
func FormatDate(t time.Time) string {
	return t.Format("Monday, 2 January 2006")
}

// Checkbox returns the checkbox glyph for a done flag.
func Checkbox(done bool) string {
	if done {
		return checkedBox
	}
	return uncheckedBox
}

// TaskCallback builds the callback data for a task toggle.
func TaskCallback(key string) string {
	return TaskCallbackPrefix + key
}

// HabitCallback builds the callback data for a habit toggle.
func HabitCallback(key string) string {
	return HabitCallbackPrefix + key
}

// TaskList renders the day's to-do list. An empty list gets a "no plans" text
// and no keyboard.
func TaskList(date time.Time, tasks []domain.TaskItem) Message {
	if len(tasks) == 0 {
		return Message{Text: fmt.Sprintf("📅 No plans for %s.", FormatDate(date))}
	}

	msg := Message{Text: fmt.Sprintf("📅 Plans for %s:", FormatDate(date))}
	for _, t := range tasks {
		msg.Keyboard = append(msg.Keyboard, []Button{{
			Text: Checkbox(t.Done) + " " + t.Text,
			Data: TaskCallback(t.Key()),
		}})
	}
	msg.Keyboard = append(msg.Keyboard, []Button{{Text: "Done", Data: DoneCallback}})
	return msg
}

// HabitList renders the day's habits with their times.
func HabitList(date time.Time, habits []domain.HabitItem) Message {
	if len(habits) == 0 {
		return Message{Text: fmt.Sprintf("🔁 No habits scheduled for %s.", FormatDate(date))}
	}

	msg := Message{Text: fmt.Sprintf("🔁 Habits for %s:", FormatDate(date))}
	for _, h := range habits {
		msg.Keyboard = append(msg.Keyboard, []Button{{
			Text: Checkbox(h.Done) + " " + h.String(),
			Data: HabitCallback(h.Key()),
		}})
	}
	msg.Keyboard = append(msg.Keyboard, []Button{{Text: "Done", Data: DoneCallback}})
	return msg
}

// Reminder renders the heads-up sent ahead of a habit's time.
func Reminder(h domain.HabitItem) Message {
	var b strings.Builder
	b.WriteString("⏰ ")
	b.WriteString(h.Name)
	if h.Time != nil {
		fmt.Fprintf(&b, " at %s", h.Time)
	}
	return Message{
		Text: b.String(),
		Keyboard: [][]Button{{{
			Text: Checkbox(h.Done) + " Mark done",
			Data: HabitCallback(h.Key()),
		}}},
	}
}

// Welcome is the reply to a new subscription.
func Welcome() Message {
	return Message{Text: "Hi! I will send you notifications about your plans."}
}

// ChatID is the reply to an id request.
func ChatID(user domain.UserID) Message {
	return Message{Text: fmt.Sprintf("Your chat ID: %d", user)}
}

// Failure is the reply sent when a request could not be served.
func Failure(reason string) Message {
	return Message{Text: "❌ " + reason}
}
