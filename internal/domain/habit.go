package domain

import (
	"fmt"

	"habit-bot/internal/sheet"
)

// HabitItem is one recurring daily habit.
type HabitItem struct {
	Name      string
	Time      *sheet.Clock // nil when the sheet has no usable time
	Done      bool
	CheckCell sheet.CellAddress
}

// HabitPlaceholderName names a habit whose name cell is empty. slot is 0-based.
func HabitPlaceholderName(slot int) string {
	return fmt.Sprintf("Habit %d", slot+1)
}

// Key returns the stable identifier used by toggle callbacks.
func (h HabitItem) Key() string {
	return h.CheckCell.String()
}

// HasTime reports whether the habit can be scheduled.
func (h HabitItem) HasTime() bool {
	return h.Time != nil
}

// String returns the habit name with its time, if any.
func (h HabitItem) String() string {
	if h.Time == nil {
		return h.Name
	}
	return fmt.Sprintf("%s (%s)", h.Name, h.Time)
}

// CloneHabits returns a deep copy of items.
func CloneHabits(items []HabitItem) []HabitItem {
	if items == nil {
		return nil
	}
	out := make([]HabitItem, len(items))
	for i, h := range items {
		if h.Time != nil {
			t := *h.Time
			h.Time = &t
		}
		out[i] = h
	}
	return out
}
