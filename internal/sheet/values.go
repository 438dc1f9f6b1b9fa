package sheet

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"
)

const minutesPerDay = 24 * 60

// doneValues is the complete set of raw cell values that mean "done".
var doneValues = map[interface{}]bool{
	true:   true,
	"TRUE": true,
	"1":    true,
}

// DecodeDone interprets a raw cell value as a completion flag.
func DecodeDone(v interface{}) bool {
	switch v.(type) {
	case bool, string:
		return doneValues[v]
	default:
		return false
	}
}

// EncodeDone is the string written back to a completion cell.
func EncodeDone(done bool) string {
	if done {
		return "TRUE"
	}
	return "FALSE"
}

// Clock is a time of day with minute precision.
type Clock struct {
	Hour   int
	Minute int
}

// Minutes returns minutes since midnight.
func (c Clock) Minutes() int {
	return c.Hour*60 + c.Minute
}

// String formats the clock as HH:MM.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// ClockFromMinutes builds a Clock from minutes since midnight, clamped to the day.
func ClockFromMinutes(minutes int) Clock {
	if minutes < 0 {
		minutes = 0
	}
	if minutes >= minutesPerDay {
		minutes = minutesPerDay - 1
	}
	return Clock{Hour: minutes / 60, Minute: minutes % 60}
}

// ClockOf returns the clock time of t.
func ClockOf(t time.Time) Clock {
	return Clock{Hour: t.Hour(), Minute: t.Minute()}
}

var clockPattern = regexp.MustCompile(`(\d{1,2}):(\d{2})`)

// ParseClock parses the first HH:MM found in s.
func ParseClock(s string) (Clock, bool) {
	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return Clock{}, false
	}
	h, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if h > 23 || minute > 59 {
		return Clock{}, false
	}
	return Clock{Hour: h, Minute: minute}, true
}

// ParseHabitTime reads a habit time cell. Spreadsheet times arrive either as a
// fraction of a day or as text containing HH:MM.
func ParseHabitTime(v interface{}) (Clock, bool) {
	switch t := v.(type) {
	case float64:
		return clockFromDayFraction(t)
	case float32:
		return clockFromDayFraction(float64(t))
	case int:
		return clockFromDayFraction(float64(t))
	case int64:
		return clockFromDayFraction(float64(t))
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Clock{}, false
		}
		return clockFromDayFraction(f)
	case string:
		return ParseClock(t)
	default:
		return Clock{}, false
	}
}

func clockFromDayFraction(f float64) (Clock, bool) {
	if f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return Clock{}, false
	}
	// Date-time serials carry whole days in the integer part.
	minutes := int(math.Round(f*minutesPerDay)) % minutesPerDay
	return Clock{Hour: minutes / 60, Minute: minutes % 60}, true
}
