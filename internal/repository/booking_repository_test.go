package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openlingua/academy-api/internal/models"
)

func newBookingRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestBookingRepositoryCreateAssignsID(t *testing.T) {
	db, mock, cleanup := newBookingRepoMock(t)
	defer cleanup()
	repo := NewBookingRepository(db)

	mock.ExpectExec("INSERT INTO class_bookings").
		WithArgs(sqlmock.AnyArg(), "teacher-1", "student-1", sqlmock.AnyArg(), "10:00:00", "11:00:00", string(models.BookingStatusConfirmed), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	booking := &models.ClassBooking{
		TeacherID: "teacher-1",
		StudentID: "student-1",
		ClassDate: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00:00",
		EndTime:   "11:00:00",
		Status:    models.BookingStatusConfirmed,
	}
	err := repo.Create(context.Background(), booking)
	require.NoError(t, err)
	assert.NotEmpty(t, booking.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepositoryListActiveBetweenExcludesCancelled(t *testing.T) {
	db, mock, cleanup := newBookingRepoMock(t)
	defer cleanup()
	repo := NewBookingRepository(db)

	now := time.Now()
	from := time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "teacher_id", "student_id", "class_date", "start_time", "end_time", "status", "created_at", "updated_at"}).
		AddRow("booking-1", "teacher-1", "student-1", from.AddDate(0, 0, 1), "10:00:00", "11:00:00", "CONFIRMED", now, now).
		AddRow("booking-2", "teacher-1", "student-2", from.AddDate(0, 0, 2), "14:00:00", "15:00:00", "TENTATIVE", now, now)
	mock.ExpectQuery("SELECT (.+) FROM class_bookings").
		WithArgs("teacher-1", from, to, string(models.BookingStatusCancelled)).
		WillReturnRows(rows)

	bookings, err := repo.ListActiveBetween(context.Background(), "teacher-1", from, to)
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, models.BookingStatusTentative, bookings[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepositoryListFilters(t *testing.T) {
	db, mock, cleanup := newBookingRepoMock(t)
	defer cleanup()
	repo := NewBookingRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "teacher_id", "student_id", "class_date", "start_time", "end_time", "status", "created_at", "updated_at"}).
		AddRow("booking-1", "teacher-1", "student-1", now, "10:00:00", "11:00:00", "CONFIRMED", now, now)
	mock.ExpectQuery("SELECT (.+) FROM class_bookings WHERE 1=1 AND teacher_id = \\$1 AND status = \\$2").
		WithArgs("teacher-1", string(models.BookingStatusConfirmed)).
		WillReturnRows(rows)
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM class_bookings").
		WithArgs("teacher-1", string(models.BookingStatusConfirmed)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	bookings, total, err := repo.List(context.Background(), models.BookingFilter{
		TeacherID: "teacher-1",
		Status:    models.BookingStatusConfirmed,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, bookings, 1)
	assert.Equal(t, "booking-1", bookings[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepositoryCancel(t *testing.T) {
	db, mock, cleanup := newBookingRepoMock(t)
	defer cleanup()
	repo := NewBookingRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE class_bookings SET status = $2, updated_at = $3 WHERE id = $1")).
		WithArgs("booking-1", string(models.BookingStatusCancelled), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Cancel(context.Background(), "booking-1")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
