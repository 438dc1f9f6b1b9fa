package sheet

import (
	"time"
)

const (
	// TaskSlotCount is the number of task rows in a day's block.
	TaskSlotCount = 8
	// HabitSlotCount is the number of rows in the habit table.
	HabitSlotCount = 5

	taskRowBase     = 2
	weekBlockHeight = 10

	habitNameColumn    = "C"
	habitFirstRow      = 4
	habitFirstDayIndex = 17 // column Q holds day 1
)

// taskColumns are 6 columns apart: one block of columns per weekday.
var taskColumns = map[time.Weekday]string{
	time.Monday:    "D",
	time.Tuesday:   "J",
	time.Wednesday: "P",
	time.Thursday:  "V",
	time.Friday:    "AB",
	time.Saturday:  "AH",
	time.Sunday:    "AN",
}

// habitTimeColumns is indexed by time.Weekday (Sunday first); the sheet lists
// Monday first, so Sunday sits at the end of the row.
var habitTimeColumns = [7]string{"J", "D", "E", "F", "G", "H", "I"}

// WeekNumber returns the 1-based week block of the month that date falls in.
//
// The counter starts at 2 when the date is not a Sunday and the month has a
// Sunday before it; the backing sheet's week blocks are laid out to match.
func WeekNumber(date time.Time) int {
	day := date.Day()
	weekday := int(date.Weekday())

	week, anchor := 1, day+weekday
	if weekday != 0 && day-weekday > 0 {
		week, anchor = 2, day-weekday
	}
	for ; anchor > 7; anchor -= 7 {
		week++
	}
	return week
}

// TaskColumn returns the task text column for a weekday.
func TaskColumn(weekday time.Weekday) string {
	if col, ok := taskColumns[weekday]; ok {
		return col
	}
	return taskColumns[time.Monday]
}

// HabitTimeColumn returns the column holding each habit's time for a weekday.
func HabitTimeColumn(weekday time.Weekday) string {
	return habitTimeColumns[int(weekday)%7]
}

// HabitCompletionColumn returns the done-flag column for a day of the month.
func HabitCompletionColumn(dayOfMonth int) string {
	return ColumnName(habitFirstDayIndex + dayOfMonth - 1)
}

// TaskSlot addresses one task row of a day's block.
type TaskSlot struct {
	Index int // 1-based slot number
	Text  CellAddress
	Check CellAddress
}

// HabitSlot addresses one habit row for a given day.
type HabitSlot struct {
	Index int // 0-based slot number
	Name  CellAddress
	Time  CellAddress
	Check CellAddress
}

// TaskSlots resolves the eight task rows for date.
func TaskSlots(date time.Time) []TaskSlot {
	week := WeekNumber(date)
	column := TaskColumn(date.Weekday())
	check := CompletionColumn(column)

	slots := make([]TaskSlot, 0, TaskSlotCount)
	for i := 1; i <= TaskSlotCount; i++ {
		row := taskRowBase + weekBlockHeight*week + i
		slots = append(slots, TaskSlot{
			Index: i,
			Text:  CellAddress{Column: column, Row: row},
			Check: CellAddress{Column: check, Row: row},
		})
	}
	return slots
}

// HabitSlots resolves the five habit rows for date.
func HabitSlots(date time.Time) []HabitSlot {
	timeColumn := HabitTimeColumn(date.Weekday())
	checkColumn := HabitCompletionColumn(date.Day())

	slots := make([]HabitSlot, 0, HabitSlotCount)
	for i := 0; i < HabitSlotCount; i++ {
		row := habitFirstRow + i
		slots = append(slots, HabitSlot{
			Index: i,
			Name:  CellAddress{Column: habitNameColumn, Row: row},
			Time:  CellAddress{Column: timeColumn, Row: row},
			Check: CellAddress{Column: checkColumn, Row: row},
		})
	}
	return slots
}
