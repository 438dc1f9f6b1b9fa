package api

import (
	"strconv"
	"strings"

	"habit-bot/internal/errors"
	"habit-bot/internal/notify"
	"habit-bot/internal/sheet"
)

// Prefixes still carried by keyboards rendered before items had stable keys.
const (
	legacyTaskPrefix  = "toggle_"
	legacyHabitPrefix = "habit_toggle_"
)

// CallbackKind says what a button press asks for.
type CallbackKind int

const (
	CallbackDone CallbackKind = iota
	CallbackTask
	CallbackHabit
)

func (k CallbackKind) String() string {
	switch k {
	case CallbackTask:
		return "task"
	case CallbackHabit:
		return "habit"
	default:
		return "done"
	}
}

// Callback is a parsed button payload. Key is set for keyed toggles and
// Index for positional ones; Index is -1 when unused.
type Callback struct {
	Kind  CallbackKind
	Key   string
	Index int
}

// Positional reports whether the callback addresses an item by list index.
func (c Callback) Positional() bool {
	return c.Index >= 0
}

// ParseCallback decodes "done", "task_<cell>", "habit_<cell>" and the older
// "toggle_<n>" and "habit_toggle_<n>" payloads.
func ParseCallback(data string) (Callback, error) {
	switch {
	case data == notify.DoneCallback:
		return Callback{Kind: CallbackDone, Index: -1}, nil
	case strings.HasPrefix(data, legacyHabitPrefix):
		return parseIndex(CallbackHabit, data, strings.TrimPrefix(data, legacyHabitPrefix))
	case strings.HasPrefix(data, legacyTaskPrefix):
		return parseIndex(CallbackTask, data, strings.TrimPrefix(data, legacyTaskPrefix))
	case strings.HasPrefix(data, notify.HabitCallbackPrefix):
		return parseKey(CallbackHabit, data, strings.TrimPrefix(data, notify.HabitCallbackPrefix))
	case strings.HasPrefix(data, notify.TaskCallbackPrefix):
		return parseKey(CallbackTask, data, strings.TrimPrefix(data, notify.TaskCallbackPrefix))
	}
	return Callback{}, errors.NewInvalidInputError("callback", data, "unknown callback")
}

func parseIndex(kind CallbackKind, data, raw string) (Callback, error) {
	i, err := strconv.Atoi(raw)
	if err != nil || i < 0 {
		return Callback{}, errors.NewInvalidInputError("callback", data, "index must be a non-negative integer")
	}
	return Callback{Kind: kind, Index: i}, nil
}

func parseKey(kind CallbackKind, data, raw string) (Callback, error) {
	cell, err := sheet.ParseCellAddress(raw)
	if err != nil {
		return Callback{}, errors.NewInvalidInputError("callback", data, "key must be a cell reference")
	}
	return Callback{Kind: kind, Key: cell.String(), Index: -1}, nil
}
