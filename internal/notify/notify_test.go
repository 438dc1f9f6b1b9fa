package notify

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"habit-bot/internal/domain"
	"habit-bot/internal/sheet"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var monday = time.Date(2026, time.October, 19, 10, 0, 0, 0, time.UTC)

func TestTaskList(t *testing.T) {
	tasks := []domain.TaskItem{
		{Text: "Write report", Done: true, CheckCell: sheet.CellAddress{Column: "C", Row: 43}},
		{Text: "Call bank", CheckCell: sheet.CellAddress{Column: "C", Row: 44}},
	}

	msg := TaskList(monday, tasks)
	assert.Equal(t, "📅 Plans for Monday, 19 October 2026:", msg.Text)

	buttons := msg.Buttons()
	require.Len(t, buttons, 3)
	assert.Equal(t, Button{Text: "✅ Write report", Data: "task_C43"}, buttons[0])
	assert.Equal(t, Button{Text: "☑️ Call bank", Data: "task_C44"}, buttons[1])
	assert.Equal(t, Button{Text: "Done", Data: DoneCallback}, buttons[2])
}

func TestTaskList_Empty(t *testing.T) {
	msg := TaskList(monday, nil)
	assert.Equal(t, "📅 No plans for Monday, 19 October 2026.", msg.Text)
	assert.False(t, msg.HasKeyboard())
}

func TestHabitList(t *testing.T) {
	at := sheet.Clock{Hour: 7, Minute: 5}
	habits := []domain.HabitItem{
		{Name: "Run", Time: &at, CheckCell: sheet.CellAddress{Column: "AI", Row: 4}},
	}

	msg := HabitList(monday, habits)
	assert.Equal(t, "🔁 Habits for Monday, 19 October 2026:", msg.Text)
	buttons := msg.Buttons()
	require.Len(t, buttons, 2)
	assert.Equal(t, Button{Text: "☑️ Run (07:05)", Data: "habit_AI4"}, buttons[0])

	assert.False(t, HabitList(monday, nil).HasKeyboard())
}

func TestReminder(t *testing.T) {
	at := sheet.Clock{Hour: 21}
	msg := Reminder(domain.HabitItem{Name: "Meditate", Time: &at, CheckCell: sheet.CellAddress{Column: "AI", Row: 5}})

	assert.Equal(t, "⏰ Meditate at 21:00", msg.Text)
	assert.Equal(t, []Button{{Text: "☑️ Mark done", Data: "habit_AI5"}}, msg.Buttons())
}

func TestReplies(t *testing.T) {
	assert.Equal(t, "Your chat ID: 42", ChatID(42).Text)
	assert.NotEmpty(t, Welcome().Text)
	assert.Equal(t, "❌ boom", Failure("boom").Text)
}

func TestConsole(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	c := NewConsole(&buf)

	err := c.Send(context.Background(), 42, Message{
		Text:     "📅 Plans",
		Keyboard: [][]Button{{{Text: "☑️ Read", Data: "task_C43"}}},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "to 42")
	assert.Contains(t, out, "📅 Plans")
	assert.Contains(t, out, "[☑️ Read] task_C43")
}

func TestConsole_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := NewConsole(&buf).Send(ctx, 1, Welcome())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, buf.String())
}

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	ctx := context.Background()

	require.NoError(t, r.Send(ctx, 1, Welcome()))
	require.NoError(t, r.Send(ctx, 2, ChatID(2)))

	boom := errors.New("chat down")
	r.FailWith(boom)
	assert.ErrorIs(t, r.Send(ctx, 1, Welcome()), boom)

	assert.Len(t, r.Sent(), 2)
	assert.Len(t, r.SentTo(2), 1)
}
