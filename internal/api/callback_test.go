package api

import (
	"testing"

	"habit-bot/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCallback(t *testing.T) {
	tests := []struct {
		data     string
		expected Callback
	}{
		{"done", Callback{Kind: CallbackDone, Index: -1}},
		{"task_C43", Callback{Kind: CallbackTask, Key: "C43", Index: -1}},
		{"task_aa53", Callback{Kind: CallbackTask, Key: "AA53", Index: -1}},
		{"habit_AI4", Callback{Kind: CallbackHabit, Key: "AI4", Index: -1}},
		{"toggle_2", Callback{Kind: CallbackTask, Index: 2}},
		{"habit_toggle_0", Callback{Kind: CallbackHabit, Index: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.data, func(t *testing.T) {
			cb, err := ParseCallback(tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cb)
		})
	}
}

func TestParseCallback_Invalid(t *testing.T) {
	for _, data := range []string{"", "nope", "toggle_x", "toggle_-1", "habit_toggle_", "task_43", "habit_"} {
		t.Run(data, func(t *testing.T) {
			_, err := ParseCallback(data)
			require.Error(t, err)
			assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
		})
	}
}

func TestCallback_Positional(t *testing.T) {
	assert.True(t, Callback{Kind: CallbackTask, Index: 0}.Positional())
	assert.False(t, Callback{Kind: CallbackTask, Key: "C43", Index: -1}.Positional())
	assert.Equal(t, "habit", CallbackHabit.String())
}
