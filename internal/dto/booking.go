package dto

// CreateBookingRequest schedules a class for a teacher and student.
type CreateBookingRequest struct {
	TeacherID string `json:"teacherId" validate:"required"`
	StudentID string `json:"studentId" validate:"required"`
	Date      string `json:"date" validate:"required"`
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
	Tentative bool   `json:"tentative"`
}

// RescheduleBookingRequest moves an existing class to a new time.
type RescheduleBookingRequest struct {
	Date      string `json:"date" validate:"required"`
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
}
