package availability

import "time"

// Reason identifies why a candidate class time is illegal.
type Reason string

const (
	ReasonMissingInput          Reason = "MissingInput"
	ReasonNonWorkingDay         Reason = "NonWorkingDay"
	ReasonNoWorkHoursConfigured Reason = "NoWorkHoursConfigured"
	ReasonOutsideWorkHours      Reason = "OutsideWorkHours"
	ReasonOverlapsBreak         Reason = "OverlapsBreak"
	ReasonOverlapsExistingClass Reason = "OverlapsExistingClass"
)

// Result is the outcome of validating a candidate class time. It is an
// ordinary return value, never an error: legality failures are user feedback.
type Result struct {
	Valid  bool   `json:"valid"`
	Reason Reason `json:"reason,omitempty"`
}

func invalid(reason Reason) Result {
	return Result{Reason: reason}
}

// Validate decides whether the candidate [start, end) on the given date is
// legal against the schedule snapshot. Checks run in a fixed order and the
// first failure wins. excludeClassID skips the class currently being
// rescheduled when testing booking overlaps.
func (s *Schedule) Validate(date, start, end, excludeClassID string) Result {
	if date == "" || start == "" || end == "" {
		return invalid(ReasonMissingInput)
	}
	parsedDate, err := time.Parse(DateLayout, date)
	if err != nil {
		return invalid(ReasonMissingInput)
	}
	candidate, ok := parseInterval(start, end)
	if !ok {
		return invalid(ReasonMissingInput)
	}

	day := WeekdayOf(parsedDate)
	if !s.InWorkingDays(day) {
		return invalid(ReasonNonWorkingDay)
	}
	work := s.WorkIntervals(day)
	if len(work) == 0 {
		return invalid(ReasonNoWorkHoursConfigured)
	}

	inside := false
	for _, iv := range work {
		if iv.Contains(candidate) {
			inside = true
			break
		}
	}
	if !inside {
		return invalid(ReasonOutsideWorkHours)
	}

	if overlapsAny(candidate, s.BreakIntervals(day)) {
		return invalid(ReasonOverlapsBreak)
	}
	if overlapsAny(candidate, s.bookedOn(date, excludeClassID)) {
		return invalid(ReasonOverlapsExistingClass)
	}
	return Result{Valid: true}
}
