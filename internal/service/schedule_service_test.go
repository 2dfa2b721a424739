package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openlingua/academy-api/internal/dto"
	"github.com/openlingua/academy-api/internal/models"
	appErrors "github.com/openlingua/academy-api/pkg/errors"
)

type mockScheduleStore struct {
	rows     map[string]*models.TeacherSchedule
	upserted []*models.TeacherSchedule
}

func (m *mockScheduleStore) GetByTeacher(ctx context.Context, teacherID string) (*models.TeacherSchedule, error) {
	if row, ok := m.rows[teacherID]; ok {
		return row, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockScheduleStore) Upsert(ctx context.Context, schedule *models.TeacherSchedule) error {
	if m.rows == nil {
		m.rows = make(map[string]*models.TeacherSchedule)
	}
	m.upserted = append(m.upserted, schedule)
	m.rows[schedule.TeacherID] = schedule
	return nil
}

type mockInvalidator struct {
	teacherIDs []string
}

func (m *mockInvalidator) InvalidateTeacher(ctx context.Context, teacherID string) {
	m.teacherIDs = append(m.teacherIDs, teacherID)
}

func newScheduleFixture() (*ScheduleService, *mockScheduleStore, *mockInvalidator) {
	store := &mockScheduleStore{}
	invalidator := &mockInvalidator{}
	teachers := &mockTeacherReader{teachers: map[string]*models.Teacher{
		"teacher-1": {ID: "teacher-1", FullName: "Ana Silva", Active: true},
	}}
	return NewScheduleService(store, teachers, invalidator, nil, nil), store, invalidator
}

func TestScheduleServiceUpsertRoundTrip(t *testing.T) {
	svc, store, invalidator := newScheduleFixture()

	response, err := svc.Upsert(context.Background(), "teacher-1", dto.UpsertScheduleRequest{
		WorkHours: map[string][]dto.ClockRangeInput{
			"monday": {{Start: "09:00", End: "18:00"}},
		},
		BreakHours: map[string][]dto.ClockRangeInput{
			"monday": {{Start: "13:00", End: "14:00"}},
		},
		WorkingDays: []string{"monday", "wednesday"},
	})
	require.NoError(t, err)
	require.Len(t, store.upserted, 1)
	assert.Equal(t, []string{"teacher-1"}, invalidator.teacherIDs)
	assert.Equal(t, "teacher-1", response.TeacherID)
	assert.Equal(t, []string{"monday", "wednesday"}, response.WorkingDays)
	require.Len(t, response.WorkHours["monday"], 1)
	assert.Equal(t, "09:00", response.WorkHours["monday"][0].Start)

	fetched, err := svc.Get(context.Background(), "teacher-1")
	require.NoError(t, err)
	assert.Equal(t, response.WorkingDays, fetched.WorkingDays)
}

func TestScheduleServiceUpsertRejectsBadInput(t *testing.T) {
	svc, _, _ := newScheduleFixture()

	cases := []struct {
		name string
		req  dto.UpsertScheduleRequest
	}{
		{
			name: "unknown day key",
			req: dto.UpsertScheduleRequest{WorkHours: map[string][]dto.ClockRangeInput{
				"funday": {{Start: "09:00", End: "10:00"}},
			}},
		},
		{
			name: "unparsable clock",
			req: dto.UpsertScheduleRequest{WorkHours: map[string][]dto.ClockRangeInput{
				"monday": {{Start: "9 o'clock", End: "10:00"}},
			}},
		},
		{
			name: "empty range",
			req: dto.UpsertScheduleRequest{WorkHours: map[string][]dto.ClockRangeInput{
				"monday": {{Start: "10:00", End: "10:00"}},
			}},
		},
		{
			name: "unknown working day",
			req: dto.UpsertScheduleRequest{
				WorkHours:   map[string][]dto.ClockRangeInput{"monday": {{Start: "09:00", End: "10:00"}}},
				WorkingDays: []string{"someday"},
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Upsert(context.Background(), "teacher-1", tc.req)
			require.Error(t, err)
			assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
		})
	}
}

func TestScheduleServiceGetMissing(t *testing.T) {
	svc, _, _ := newScheduleFixture()

	_, err := svc.Get(context.Background(), "teacher-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)

	_, err = svc.Get(context.Background(), "nope")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
