package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/openlingua/academy-api/internal/models"
)

// BookingRepository manages persistence for class bookings.
type BookingRepository struct {
	db *sqlx.DB
}

// NewBookingRepository constructs a BookingRepository.
func NewBookingRepository(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// FindByID fetches a booking by ID.
func (r *BookingRepository) FindByID(ctx context.Context, id string) (*models.ClassBooking, error) {
	const query = `SELECT id, teacher_id, student_id, class_date, start_time, end_time, status, created_at, updated_at FROM class_bookings WHERE id = $1`
	var booking models.ClassBooking
	if err := r.db.GetContext(ctx, &booking, query, id); err != nil {
		return nil, err
	}
	return &booking, nil
}

// List returns bookings matching filters along with total count.
func (r *BookingRepository) List(ctx context.Context, filter models.BookingFilter) ([]models.ClassBooking, int, error) {
	base := "FROM class_bookings WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.TeacherID != "" {
		conditions = append(conditions, fmt.Sprintf("teacher_id = $%d", len(args)+1))
		args = append(args, filter.TeacherID)
	}
	if filter.StudentID != "" {
		conditions = append(conditions, fmt.Sprintf("student_id = $%d", len(args)+1))
		args = append(args, filter.StudentID)
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}
	if filter.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("class_date >= $%d", len(args)+1))
		args = append(args, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("class_date <= $%d", len(args)+1))
		args = append(args, *filter.DateTo)
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT id, teacher_id, student_id, class_date, start_time, end_time, status, created_at, updated_at %s ORDER BY class_date ASC, start_time ASC LIMIT %d OFFSET %d", base, size, offset)
	var bookings []models.ClassBooking
	if err := r.db.SelectContext(ctx, &bookings, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list bookings: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count bookings: %w", err)
	}

	return bookings, total, nil
}

// ListActiveBetween returns non-cancelled bookings for a teacher within
// an inclusive date range, ordered by date and start time.
func (r *BookingRepository) ListActiveBetween(ctx context.Context, teacherID string, from, to time.Time) ([]models.ClassBooking, error) {
	const query = `SELECT id, teacher_id, student_id, class_date, start_time, end_time, status, created_at, updated_at
		FROM class_bookings
		WHERE teacher_id = $1 AND class_date >= $2 AND class_date <= $3 AND status <> $4
		ORDER BY class_date ASC, start_time ASC`
	var bookings []models.ClassBooking
	if err := r.db.SelectContext(ctx, &bookings, query, teacherID, from, to, models.BookingStatusCancelled); err != nil {
		return nil, fmt.Errorf("list active bookings: %w", err)
	}
	return bookings, nil
}

// Create inserts a new booking record.
func (r *BookingRepository) Create(ctx context.Context, booking *models.ClassBooking) error {
	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = now
	}
	booking.UpdatedAt = now

	const query = `INSERT INTO class_bookings (id, teacher_id, student_id, class_date, start_time, end_time, status, created_at, updated_at)
		VALUES (:id, :teacher_id, :student_id, :class_date, :start_time, :end_time, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, booking); err != nil {
		return fmt.Errorf("create booking: %w", err)
	}
	return nil
}

// Update modifies an existing booking record.
func (r *BookingRepository) Update(ctx context.Context, booking *models.ClassBooking) error {
	booking.UpdatedAt = time.Now().UTC()
	const query = `UPDATE class_bookings SET class_date = :class_date, start_time = :start_time, end_time = :end_time, status = :status, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, booking); err != nil {
		return fmt.Errorf("update booking: %w", err)
	}
	return nil
}

// Cancel marks a booking cancelled without deleting the row.
func (r *BookingRepository) Cancel(ctx context.Context, id string) error {
	const query = `UPDATE class_bookings SET status = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, models.BookingStatusCancelled, time.Now().UTC()); err != nil {
		return fmt.Errorf("cancel booking: %w", err)
	}
	return nil
}
