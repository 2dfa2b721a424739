package availability

import "time"

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// ClockRange is the boundary shape of a recurring interval.
type ClockRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ClassEntry is the boundary shape of a dated class occupying teacher time.
// Time strings may carry a trailing ":SS" which is ignored.
type ClassEntry struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// SchedulePayload is the upstream schedule snapshot the engine consumes.
type SchedulePayload struct {
	WorkHours   map[string][]ClockRange `json:"workHours"`
	BreakHours  map[string][]ClockRange `json:"breakHours"`
	WorkingDays []string                `json:"workingDays"`
	Classes     []ClassEntry            `json:"classes"`
}

type booking struct {
	id       string
	interval Interval
}

// Schedule is a validated, immutable view over a teacher's recurring weekly
// availability and concrete bookings. Malformed entries in the payload are
// skipped during construction, never fatal.
type Schedule struct {
	work        map[Weekday][]Interval
	breaks      map[Weekday][]Interval
	workingDays map[Weekday]bool
	booked      map[string][]booking
}

// NewSchedule normalizes an upstream payload into a Schedule. Unrecognized
// weekday keys, unparsable clock strings and zero or negative length
// intervals are dropped. An absent workingDays list defaults to Monday-Friday.
func NewSchedule(payload SchedulePayload) *Schedule {
	s := &Schedule{
		work:        normalizeHours(payload.WorkHours),
		breaks:      normalizeHours(payload.BreakHours),
		workingDays: make(map[Weekday]bool, 7),
		booked:      make(map[string][]booking),
	}
	if len(payload.WorkingDays) == 0 {
		for _, day := range []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday} {
			s.workingDays[day] = true
		}
	} else {
		for _, raw := range payload.WorkingDays {
			if day, ok := ParseWeekday(raw); ok {
				s.workingDays[day] = true
			}
		}
	}
	s.AddClasses(payload.Classes)
	return s
}

// AddClasses appends further dated bookings, typically the current student's
// tentative classes. They block slot computation exactly like committed ones.
func (s *Schedule) AddClasses(classes []ClassEntry) {
	for _, class := range classes {
		if class.Date == "" {
			continue
		}
		if _, err := time.Parse(DateLayout, class.Date); err != nil {
			continue
		}
		iv, ok := parseInterval(class.StartTime, class.EndTime)
		if !ok {
			continue
		}
		s.booked[class.Date] = append(s.booked[class.Date], booking{id: class.ID, interval: iv})
	}
}

// IsWorkingDay reports whether the weekday is flagged as working and has at
// least one work interval configured.
func (s *Schedule) IsWorkingDay(day Weekday) bool {
	return s.workingDays[day] && len(s.work[day]) > 0
}

// InWorkingDays reports membership in the working-days set alone, regardless
// of configured hours.
func (s *Schedule) InWorkingDays(day Weekday) bool {
	return s.workingDays[day]
}

// WorkIntervals returns the ordered work blocks for a weekday.
func (s *Schedule) WorkIntervals(day Weekday) []Interval {
	return s.work[day]
}

// BreakIntervals returns the ordered break blocks for a weekday.
func (s *Schedule) BreakIntervals(day Weekday) []Interval {
	return s.breaks[day]
}

// BookedIntervals returns every booking on the exact date, excluding the
// class identified by excludeID when rescheduling.
func (s *Schedule) BookedIntervals(date time.Time, excludeID string) []Interval {
	return s.bookedOn(date.Format(DateLayout), excludeID)
}

func (s *Schedule) bookedOn(date, excludeID string) []Interval {
	entries := s.booked[date]
	if len(entries) == 0 {
		return nil
	}
	intervals := make([]Interval, 0, len(entries))
	for _, b := range entries {
		if excludeID != "" && b.id == excludeID {
			continue
		}
		intervals = append(intervals, b.interval)
	}
	return intervals
}

func normalizeHours(raw map[string][]ClockRange) map[Weekday][]Interval {
	hours := make(map[Weekday][]Interval, len(raw))
	for key, ranges := range raw {
		day, ok := ParseWeekday(key)
		if !ok {
			continue
		}
		for _, r := range ranges {
			if iv, ok := parseInterval(r.Start, r.End); ok {
				hours[day] = append(hours[day], iv)
			}
		}
	}
	return hours
}
