package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx/types"
	"go.uber.org/zap"

	"github.com/openlingua/academy-api/internal/availability"
	"github.com/openlingua/academy-api/internal/dto"
	"github.com/openlingua/academy-api/internal/models"
	appErrors "github.com/openlingua/academy-api/pkg/errors"
)

type scheduleStore interface {
	GetByTeacher(ctx context.Context, teacherID string) (*models.TeacherSchedule, error)
	Upsert(ctx context.Context, schedule *models.TeacherSchedule) error
}

type availabilityInvalidator interface {
	InvalidateTeacher(ctx context.Context, teacherID string)
}

// ScheduleService manages the weekly working pattern of teachers.
type ScheduleService struct {
	repo      scheduleStore
	teachers  teacherReader
	cache     availabilityInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewScheduleService constructs a ScheduleService.
func NewScheduleService(repo scheduleStore, teachers teacherReader, cache availabilityInvalidator, validate *validator.Validate, logger *zap.Logger) *ScheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{repo: repo, teachers: teachers, cache: cache, validator: validate, logger: logger}
}

// Get returns a teacher's stored weekly schedule.
func (s *ScheduleService) Get(ctx context.Context, teacherID string) (*dto.ScheduleResponse, error) {
	if err := s.ensureTeacher(ctx, teacherID); err != nil {
		return nil, err
	}
	row, err := s.repo.GetByTeacher(ctx, teacherID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "schedule not configured")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule")
	}
	return scheduleToResponse(row)
}

// Upsert replaces a teacher's weekly schedule and drops cached availability.
func (s *ScheduleService) Upsert(ctx context.Context, teacherID string, req dto.UpsertScheduleRequest) (*dto.ScheduleResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule payload")
	}
	if err := s.ensureTeacher(ctx, teacherID); err != nil {
		return nil, err
	}
	if err := validateHours(req.WorkHours); err != nil {
		return nil, err
	}
	if err := validateHours(req.BreakHours); err != nil {
		return nil, err
	}
	for _, raw := range req.WorkingDays {
		if _, ok := availability.ParseWeekday(raw); !ok {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown working day %q", raw))
		}
	}

	workHours, err := json.Marshal(req.WorkHours)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode work hours")
	}
	breakHours, err := json.Marshal(orEmptyHours(req.BreakHours))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode break hours")
	}
	workingDays, err := json.Marshal(orEmptyDays(req.WorkingDays))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode working days")
	}

	row := &models.TeacherSchedule{
		TeacherID:   teacherID,
		WorkHours:   types.JSONText(workHours),
		BreakHours:  types.JSONText(breakHours),
		WorkingDays: types.JSONText(workingDays),
	}
	if err := s.repo.Upsert(ctx, row); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store schedule")
	}

	if s.cache != nil {
		s.cache.InvalidateTeacher(ctx, teacherID)
	}
	return scheduleToResponse(row)
}

func (s *ScheduleService) ensureTeacher(ctx context.Context, teacherID string) error {
	if teacherID == "" {
		return appErrors.Clone(appErrors.ErrValidation, "teacher id is required")
	}
	if _, err := s.teachers.FindByID(ctx, teacherID); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}
	return nil
}

func validateHours(hours map[string][]dto.ClockRangeInput) error {
	for key, ranges := range hours {
		if _, ok := availability.ParseWeekday(key); !ok {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown day key %q", key))
		}
		for _, r := range ranges {
			start, err := availability.ParseClock(r.Start)
			if err != nil {
				return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid start time %q for %s", r.Start, key))
			}
			end, err := availability.ParseClock(r.End)
			if err != nil {
				return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid end time %q for %s", r.End, key))
			}
			if start >= end {
				return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("empty time range %s-%s for %s", r.Start, r.End, key))
			}
		}
	}
	return nil
}

func scheduleToResponse(row *models.TeacherSchedule) (*dto.ScheduleResponse, error) {
	response := &dto.ScheduleResponse{
		TeacherID:   row.TeacherID,
		WorkHours:   map[string][]dto.ClockRangeInput{},
		BreakHours:  map[string][]dto.ClockRangeInput{},
		WorkingDays: []string{},
		UpdatedAt:   row.UpdatedAt,
	}
	if len(row.WorkHours) > 0 {
		if err := json.Unmarshal(row.WorkHours, &response.WorkHours); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to decode work hours")
		}
	}
	if len(row.BreakHours) > 0 {
		if err := json.Unmarshal(row.BreakHours, &response.BreakHours); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to decode break hours")
		}
	}
	if len(row.WorkingDays) > 0 {
		if err := json.Unmarshal(row.WorkingDays, &response.WorkingDays); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to decode working days")
		}
	}
	return response, nil
}

func orEmptyHours(hours map[string][]dto.ClockRangeInput) map[string][]dto.ClockRangeInput {
	if hours == nil {
		return map[string][]dto.ClockRangeInput{}
	}
	return hours
}

func orEmptyDays(days []string) []string {
	if days == nil {
		return []string{}
	}
	return days
}
