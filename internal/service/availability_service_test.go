package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openlingua/academy-api/internal/availability"
	"github.com/openlingua/academy-api/internal/dto"
	"github.com/openlingua/academy-api/internal/models"
	"github.com/openlingua/academy-api/pkg/config"
	appErrors "github.com/openlingua/academy-api/pkg/errors"
)

type mockScheduleRepo struct {
	rows map[string]*models.TeacherSchedule
	err  error
}

func (m *mockScheduleRepo) GetByTeacher(ctx context.Context, teacherID string) (*models.TeacherSchedule, error) {
	if m.err != nil {
		return nil, m.err
	}
	if row, ok := m.rows[teacherID]; ok {
		return row, nil
	}
	return nil, sql.ErrNoRows
}

type mockBookingReader struct {
	bookings []models.ClassBooking
	err      error
}

func (m *mockBookingReader) ListActiveBetween(ctx context.Context, teacherID string, from, to time.Time) ([]models.ClassBooking, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.bookings, nil
}

type mockTeacherReader struct {
	teachers map[string]*models.Teacher
}

func (m *mockTeacherReader) FindByID(ctx context.Context, id string) (*models.Teacher, error) {
	if teacher, ok := m.teachers[id]; ok {
		cp := *teacher
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func availabilityTestConfig() config.AvailabilityConfig {
	return config.AvailabilityConfig{
		WeeksAhead:     8,
		SlotMinutes:    60,
		MinSlotMinutes: 30,
		Timezone:       "UTC",
	}
}

func mondayOnlySchedule(t *testing.T) *models.TeacherSchedule {
	t.Helper()
	return &models.TeacherSchedule{
		TeacherID:   "teacher-1",
		WorkHours:   types.JSONText(`{"monday":[{"start":"09:00","end":"13:00"}]}`),
		BreakHours:  types.JSONText(`{}`),
		WorkingDays: types.JSONText(`["monday"]`),
	}
}

func newAvailabilityFixture(t *testing.T, schedules *mockScheduleRepo, bookings *mockBookingReader) *AvailabilityService {
	t.Helper()
	teachers := &mockTeacherReader{teachers: map[string]*models.Teacher{
		"teacher-1": {ID: "teacher-1", FullName: "Ana Silva", Timezone: "UTC", Active: true},
	}}
	svc := NewAvailabilityService(schedules, bookings, teachers, nil, nil, availabilityTestConfig(), nil, nil)
	// 2024-06-10 is a Monday.
	return svc.WithClock(func() time.Time {
		return time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)
	})
}

func TestAvailabilitySlotsQuantizesWorkHours(t *testing.T) {
	svc := newAvailabilityFixture(t,
		&mockScheduleRepo{rows: map[string]*models.TeacherSchedule{"teacher-1": mondayOnlySchedule(t)}},
		&mockBookingReader{},
	)

	slots, cached, err := svc.Slots(context.Background(), dto.SlotListRequest{TeacherID: "teacher-1", Weeks: 1})
	require.NoError(t, err)
	assert.False(t, cached)
	require.Len(t, slots, 4)
	assert.Equal(t, "2024-06-10", slots[0].Date)
	assert.Equal(t, "monday", slots[0].Weekday)
	assert.Equal(t, "09:00", slots[0].StartTime)
	assert.Equal(t, "10:00", slots[0].EndTime)
	assert.Equal(t, "12:00", slots[3].StartTime)
}

func TestAvailabilitySlotsSkipBookedBlocks(t *testing.T) {
	svc := newAvailabilityFixture(t,
		&mockScheduleRepo{rows: map[string]*models.TeacherSchedule{"teacher-1": mondayOnlySchedule(t)}},
		&mockBookingReader{bookings: []models.ClassBooking{{
			ID:        "booking-1",
			TeacherID: "teacher-1",
			ClassDate: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
			StartTime: "10:00:00",
			EndTime:   "11:00:00",
			Status:    models.BookingStatusTentative,
		}}},
	)

	slots, _, err := svc.Slots(context.Background(), dto.SlotListRequest{TeacherID: "teacher-1", Weeks: 1})
	require.NoError(t, err)
	require.Len(t, slots, 3)
	for _, slot := range slots {
		assert.NotEqual(t, "10:00", slot.StartTime)
	}
}

func TestAvailabilitySlotsNoScheduleYieldsEmptyFeed(t *testing.T) {
	svc := newAvailabilityFixture(t, &mockScheduleRepo{}, &mockBookingReader{})

	slots, _, err := svc.Slots(context.Background(), dto.SlotListRequest{TeacherID: "teacher-1", Weeks: 1})
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestAvailabilitySlotsUnknownTeacher(t *testing.T) {
	svc := newAvailabilityFixture(t, &mockScheduleRepo{}, &mockBookingReader{})

	_, _, err := svc.Slots(context.Background(), dto.SlotListRequest{TeacherID: "nope"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestAvailabilitySlotsRepositoryFailure(t *testing.T) {
	svc := newAvailabilityFixture(t,
		&mockScheduleRepo{err: errors.New("db down")},
		&mockBookingReader{},
	)

	_, _, err := svc.Slots(context.Background(), dto.SlotListRequest{TeacherID: "teacher-1"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}

func TestAvailabilityOverviewDefaultWeek(t *testing.T) {
	svc := newAvailabilityFixture(t,
		&mockScheduleRepo{rows: map[string]*models.TeacherSchedule{"teacher-1": mondayOnlySchedule(t)}},
		&mockBookingReader{},
	)

	overview, cached, err := svc.Overview(context.Background(), dto.WeekOverviewRequest{TeacherID: "teacher-1"})
	require.NoError(t, err)
	assert.False(t, cached)
	require.Len(t, overview.Days, 7)
	// Week containing 2024-06-10 starts Sunday 2024-06-09.
	assert.Equal(t, "2024-06-09", overview.Days[0].Date)
	assert.True(t, overview.Days[0].Holiday)
	assert.False(t, overview.Days[1].Holiday)
	require.Len(t, overview.Days[1].Free, 1)
	assert.Equal(t, dto.TimeRange{StartTime: "09:00", EndTime: "13:00"}, overview.Days[1].Free[0])
	assert.Equal(t, 8*60+30, overview.AxisStart)
	assert.Equal(t, 13*60+30, overview.AxisEnd)
}

func TestAvailabilityOverviewRejectsInvertedRange(t *testing.T) {
	svc := newAvailabilityFixture(t,
		&mockScheduleRepo{rows: map[string]*models.TeacherSchedule{"teacher-1": mondayOnlySchedule(t)}},
		&mockBookingReader{},
	)

	start := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC)
	_, _, err := svc.Overview(context.Background(), dto.WeekOverviewRequest{TeacherID: "teacher-1", StartDate: &start, EndDate: &end})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAvailabilityValidateVerdicts(t *testing.T) {
	booked := &mockBookingReader{bookings: []models.ClassBooking{{
		ID:        "booking-1",
		TeacherID: "teacher-1",
		ClassDate: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00:00",
		EndTime:   "11:00:00",
		Status:    models.BookingStatusConfirmed,
	}}}
	svc := newAvailabilityFixture(t,
		&mockScheduleRepo{rows: map[string]*models.TeacherSchedule{"teacher-1": mondayOnlySchedule(t)}},
		booked,
	)

	verdict, err := svc.Validate(context.Background(), dto.ValidateClassTimeRequest{
		TeacherID: "teacher-1", Date: "2024-06-10", StartTime: "10:30", EndTime: "11:30",
	})
	require.NoError(t, err)
	assert.False(t, verdict.Valid)
	assert.Equal(t, string(availability.ReasonOverlapsExistingClass), verdict.Reason)

	verdict, err = svc.Validate(context.Background(), dto.ValidateClassTimeRequest{
		TeacherID: "teacher-1", Date: "2024-06-10", StartTime: "11:00", EndTime: "12:00",
	})
	require.NoError(t, err)
	assert.True(t, verdict.Valid)

	// Rescheduling the conflicting class over itself is legal.
	verdict, err = svc.Validate(context.Background(), dto.ValidateClassTimeRequest{
		TeacherID: "teacher-1", Date: "2024-06-10", StartTime: "10:00", EndTime: "11:00",
		RescheduleClassID: "booking-1",
	})
	require.NoError(t, err)
	assert.True(t, verdict.Valid)
}

func TestAvailabilityValidateUnparsableDate(t *testing.T) {
	svc := newAvailabilityFixture(t,
		&mockScheduleRepo{rows: map[string]*models.TeacherSchedule{"teacher-1": mondayOnlySchedule(t)}},
		&mockBookingReader{},
	)

	verdict, err := svc.Validate(context.Background(), dto.ValidateClassTimeRequest{
		TeacherID: "teacher-1", Date: "junk", StartTime: "10:00", EndTime: "11:00",
	})
	require.NoError(t, err)
	assert.False(t, verdict.Valid)
	assert.Equal(t, string(availability.ReasonMissingInput), verdict.Reason)
}
