package availability

import (
	"strings"
	"time"
)

// Weekday is a canonical lowercase day-of-week key.
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// WeekdayOrder fixes the iteration order for recurring-hours maps.
var WeekdayOrder = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// weekdayByIndex follows time.Weekday numbering (Sunday=0 .. Saturday=6).
var weekdayByIndex = [7]Weekday{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// WeekdayOf maps a calendar date to its weekday key.
func WeekdayOf(date time.Time) Weekday {
	return weekdayByIndex[int(date.Weekday())]
}

// ParseWeekday normalizes a raw day name. It returns false for keys outside
// the seven canonical names.
func ParseWeekday(raw string) (Weekday, bool) {
	key := Weekday(strings.ToLower(strings.TrimSpace(raw)))
	for _, day := range WeekdayOrder {
		if day == key {
			return day, true
		}
	}
	return "", false
}
