package models

import "time"

// BookingStatus represents the lifecycle of a class booking.
type BookingStatus string

// Possible booking statuses. Tentative bookings block a teacher's
// calendar the same way confirmed ones do.
const (
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusTentative BookingStatus = "TENTATIVE"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// ClassBooking captures a single scheduled class between a teacher and a
// student. Times are stored as HH:MM:SS strings in the teacher's
// operating timezone.
type ClassBooking struct {
	ID        string        `db:"id" json:"id"`
	TeacherID string        `db:"teacher_id" json:"teacher_id"`
	StudentID string        `db:"student_id" json:"student_id"`
	ClassDate time.Time     `db:"class_date" json:"class_date"`
	StartTime string        `db:"start_time" json:"start_time"`
	EndTime   string        `db:"end_time" json:"end_time"`
	Status    BookingStatus `db:"status" json:"status"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt time.Time     `db:"updated_at" json:"updated_at"`
}

// BookingFilter captures filtering options for listing bookings.
type BookingFilter struct {
	TeacherID string
	StudentID string
	Status    BookingStatus
	DateFrom  *time.Time
	DateTo    *time.Time
	Page      int
	PageSize  int
}
