package dto

import "time"

// SlotListRequest captures query parameters for the bookable slot feed.
type SlotListRequest struct {
	TeacherID string
	StudentID string
	Weeks     int
	Duration  int
}

// SlotResponse represents a single bookable block.
type SlotResponse struct {
	Date      string `json:"date"`
	Weekday   string `json:"weekday"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// WeekOverviewRequest captures query parameters for the week overview.
type WeekOverviewRequest struct {
	TeacherID string
	StartDate *time.Time
	EndDate   *time.Time
}

// TimeRange is a clock range rendered as HH:MM strings.
type TimeRange struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// DayOverviewResponse describes a single calendar day in the overview.
type DayOverviewResponse struct {
	Date    string      `json:"date"`
	Weekday string      `json:"weekday"`
	Holiday bool        `json:"holiday"`
	Free    []TimeRange `json:"free"`
	Breaks  []TimeRange `json:"breaks"`
	Classes []TimeRange `json:"classes"`
}

// WeekOverviewResponse is the full overview payload including the
// rendering axis bounds in minutes since midnight.
type WeekOverviewResponse struct {
	Days      []DayOverviewResponse `json:"days"`
	AxisStart int                   `json:"axisStart"`
	AxisEnd   int                   `json:"axisEnd"`
}

// ValidateClassTimeRequest captures a candidate class time for validation.
type ValidateClassTimeRequest struct {
	TeacherID         string `json:"teacherId" validate:"required"`
	StudentID         string `json:"studentId"`
	Date              string `json:"date" validate:"required"`
	StartTime         string `json:"startTime" validate:"required"`
	EndTime           string `json:"endTime" validate:"required"`
	RescheduleClassID string `json:"rescheduleClassId"`
}

// ValidateClassTimeResponse reports the validation verdict.
type ValidateClassTimeResponse struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}
