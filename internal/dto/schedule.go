package dto

import "time"

// ClockRangeInput is a single HH:MM clock range in a schedule payload.
type ClockRangeInput struct {
	Start string `json:"start" validate:"required"`
	End   string `json:"end" validate:"required"`
}

// UpsertScheduleRequest replaces a teacher's weekly working pattern.
// Maps are keyed by lowercase day names (monday..sunday).
type UpsertScheduleRequest struct {
	WorkHours   map[string][]ClockRangeInput `json:"workHours" validate:"required"`
	BreakHours  map[string][]ClockRangeInput `json:"breakHours"`
	WorkingDays []string                     `json:"workingDays"`
}

// ScheduleResponse renders a stored weekly schedule.
type ScheduleResponse struct {
	TeacherID   string                       `json:"teacherId"`
	WorkHours   map[string][]ClockRangeInput `json:"workHours"`
	BreakHours  map[string][]ClockRangeInput `json:"breakHours"`
	WorkingDays []string                     `json:"workingDays"`
	UpdatedAt   time.Time                    `json:"updatedAt"`
}
