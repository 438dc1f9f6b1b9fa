package domain

import (
	"habit-bot/internal/sheet"
)

// UserID identifies a chat user.
type UserID int64

// TaskItem is one row of the day's to-do list.
type TaskItem struct {
	Text      string
	Done      bool
	CheckCell sheet.CellAddress
}

// Key returns the stable identifier used by toggle callbacks.
func (t TaskItem) Key() string {
	return t.CheckCell.String()
}

// String returns the task text for display purposes.
func (t TaskItem) String() string {
	return t.Text
}

// CloneTasks returns a copy of items that callers may mutate freely.
func CloneTasks(items []TaskItem) []TaskItem {
	if items == nil {
		return nil
	}
	out := make([]TaskItem, len(items))
	copy(out, items)
	return out
}
