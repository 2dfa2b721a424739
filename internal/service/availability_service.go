package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/openlingua/academy-api/internal/availability"
	"github.com/openlingua/academy-api/internal/dto"
	"github.com/openlingua/academy-api/internal/models"
	"github.com/openlingua/academy-api/pkg/config"
	appErrors "github.com/openlingua/academy-api/pkg/errors"
)

const maxWeeksAhead = 26

type scheduleRepository interface {
	GetByTeacher(ctx context.Context, teacherID string) (*models.TeacherSchedule, error)
}

type bookingReader interface {
	ListActiveBetween(ctx context.Context, teacherID string, from, to time.Time) ([]models.ClassBooking, error)
}

type teacherReader interface {
	FindByID(ctx context.Context, id string) (*models.Teacher, error)
}

// AvailabilityService computes bookable slots, weekly overviews and class
// time validations from a teacher's stored schedule and bookings.
type AvailabilityService struct {
	schedules scheduleRepository
	bookings  bookingReader
	teachers  teacherReader
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	cfg       config.AvailabilityConfig
	now       func() time.Time
}

// NewAvailabilityService constructs an AvailabilityService.
func NewAvailabilityService(schedules scheduleRepository, bookings bookingReader, teachers teacherReader, cache *CacheService, metrics *MetricsService, cfg config.AvailabilityConfig, validate *validator.Validate, logger *zap.Logger) *AvailabilityService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AvailabilityService{
		schedules: schedules,
		bookings:  bookings,
		teachers:  teachers,
		cache:     cache,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
	}
}

// WithClock overrides the time source. Intended for tests.
func (s *AvailabilityService) WithClock(now func() time.Time) *AvailabilityService {
	if now != nil {
		s.now = now
	}
	return s
}

// Slots returns the rolling-horizon feed of bookable blocks for a teacher.
// The bool result reports whether the payload came from cache.
func (s *AvailabilityService) Slots(ctx context.Context, req dto.SlotListRequest) ([]dto.SlotResponse, bool, error) {
	teacher, err := s.loadTeacher(ctx, req.TeacherID)
	if err != nil {
		return nil, false, err
	}

	weeks := req.Weeks
	if weeks <= 0 {
		weeks = s.cfg.WeeksAhead
	}
	if weeks > maxWeeksAhead {
		weeks = maxWeeksAhead
	}
	duration := req.Duration
	if duration <= 0 {
		duration = s.cfg.SlotMinutes
	}

	cacheKey := fmt.Sprintf("availability:%s:slots:%s:%d:%d", req.TeacherID, req.StudentID, weeks, duration)
	var cached []dto.SlotResponse
	if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit {
		return cached, true, nil
	}

	loc := s.location(teacher)
	now := s.now().In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	weekStart := today.AddDate(0, 0, -int(today.Weekday()))
	horizonEnd := weekStart.AddDate(0, 0, weeks*7-1)

	schedule, err := s.buildSchedule(ctx, req.TeacherID, weekStart, horizonEnd, "")
	if err != nil {
		return nil, false, err
	}

	start := time.Now()
	slots := schedule.Slots(availability.SlotOptions{
		Now:             now,
		WeeksAhead:      weeks,
		BlockMinutes:    duration,
		MinBlockMinutes: s.cfg.MinSlotMinutes,
	})
	s.metrics.ObserveComputation("slots", time.Since(start))

	result := make([]dto.SlotResponse, 0, len(slots))
	for _, slot := range slots {
		result = append(result, dto.SlotResponse{
			Date:      slot.Date.Format(availability.DateLayout),
			Weekday:   string(slot.Day),
			StartTime: availability.FormatClock(slot.Start),
			EndTime:   availability.FormatClock(slot.End),
		})
	}

	if err := s.cache.Set(ctx, cacheKey, result, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("failed to cache slot feed", zap.String("teacher_id", req.TeacherID), zap.Error(err))
	}
	return result, false, nil
}

// Overview returns the weekly coordinator matrix for a teacher. When no
// range is given it covers the current week, Sunday through Saturday.
func (s *AvailabilityService) Overview(ctx context.Context, req dto.WeekOverviewRequest) (*dto.WeekOverviewResponse, bool, error) {
	teacher, err := s.loadTeacher(ctx, req.TeacherID)
	if err != nil {
		return nil, false, err
	}

	loc := s.location(teacher)
	var rangeStart, rangeEnd time.Time
	switch {
	case req.StartDate != nil && req.EndDate != nil:
		rangeStart, rangeEnd = *req.StartDate, *req.EndDate
	case req.StartDate != nil:
		rangeStart = *req.StartDate
		rangeEnd = rangeStart.AddDate(0, 0, 6)
	default:
		now := s.now().In(loc)
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
		rangeStart = today.AddDate(0, 0, -int(today.Weekday()))
		rangeEnd = rangeStart.AddDate(0, 0, 6)
	}
	if rangeEnd.Before(rangeStart) {
		return nil, false, appErrors.Clone(appErrors.ErrValidation, "end date precedes start date")
	}

	cacheKey := fmt.Sprintf("availability:%s:overview:%s:%s", req.TeacherID, rangeStart.Format(availability.DateLayout), rangeEnd.Format(availability.DateLayout))
	var cached dto.WeekOverviewResponse
	if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit {
		return &cached, true, nil
	}

	schedule, err := s.buildSchedule(ctx, req.TeacherID, rangeStart, rangeEnd, "")
	if err != nil {
		return nil, false, err
	}

	start := time.Now()
	overview := schedule.WeekOverview(rangeStart, rangeEnd)
	s.metrics.ObserveComputation("overview", time.Since(start))

	response := &dto.WeekOverviewResponse{
		Days:      make([]dto.DayOverviewResponse, 0, len(overview.Days)),
		AxisStart: overview.AxisStart,
		AxisEnd:   overview.AxisEnd,
	}
	for _, day := range overview.Days {
		response.Days = append(response.Days, dto.DayOverviewResponse{
			Date:    day.Date.Format(availability.DateLayout),
			Weekday: string(day.Day),
			Holiday: day.Holiday,
			Free:    toTimeRanges(day.Free),
			Breaks:  toTimeRanges(day.Breaks),
			Classes: toTimeRanges(day.Classes),
		})
	}

	if err := s.cache.Set(ctx, cacheKey, response, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("failed to cache overview", zap.String("teacher_id", req.TeacherID), zap.Error(err))
	}
	return response, false, nil
}

// Validate checks a candidate class time against the teacher's schedule.
// An invalid candidate is not an error: the verdict carries the reason.
func (s *AvailabilityService) Validate(ctx context.Context, req dto.ValidateClassTimeRequest) (*dto.ValidateClassTimeResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid validation payload")
	}
	if _, err := s.loadTeacher(ctx, req.TeacherID); err != nil {
		return nil, err
	}

	date, err := time.Parse(availability.DateLayout, req.Date)
	if err != nil {
		return &dto.ValidateClassTimeResponse{Valid: false, Reason: string(availability.ReasonMissingInput)}, nil
	}

	schedule, err := s.buildSchedule(ctx, req.TeacherID, date, date, "")
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result := schedule.Validate(req.Date, req.StartTime, req.EndTime, req.RescheduleClassID)
	s.metrics.ObserveComputation("validate", time.Since(start))

	response := &dto.ValidateClassTimeResponse{Valid: result.Valid}
	if !result.Valid {
		response.Reason = string(result.Reason)
	}
	return response, nil
}

// InvalidateTeacher drops every cached availability payload for a teacher.
func (s *AvailabilityService) InvalidateTeacher(ctx context.Context, teacherID string) {
	if err := s.cache.Invalidate(ctx, fmt.Sprintf("availability:%s:*", teacherID)); err != nil {
		s.logger.Warn("failed to invalidate availability cache", zap.String("teacher_id", teacherID), zap.Error(err))
	}
}

func (s *AvailabilityService) loadTeacher(ctx context.Context, teacherID string) (*models.Teacher, error) {
	if teacherID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "teacher id is required")
	}
	teacher, err := s.teachers.FindByID(ctx, teacherID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}
	return teacher, nil
}

// buildSchedule assembles the engine view from the stored weekly pattern
// plus every active booking inside the date range. A teacher without a
// stored schedule yields an empty (never nil) schedule.
func (s *AvailabilityService) buildSchedule(ctx context.Context, teacherID string, from, to time.Time, excludeBookingID string) (*availability.Schedule, error) {
	payload := availability.SchedulePayload{}

	row, err := s.schedules.GetByTeacher(ctx, teacherID)
	if err != nil && err != sql.ErrNoRows {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher schedule")
	}
	if row != nil {
		if len(row.WorkHours) > 0 {
			if err := json.Unmarshal(row.WorkHours, &payload.WorkHours); err != nil {
				s.logger.Warn("malformed work hours document", zap.String("teacher_id", teacherID), zap.Error(err))
			}
		}
		if len(row.BreakHours) > 0 {
			if err := json.Unmarshal(row.BreakHours, &payload.BreakHours); err != nil {
				s.logger.Warn("malformed break hours document", zap.String("teacher_id", teacherID), zap.Error(err))
			}
		}
		if len(row.WorkingDays) > 0 {
			if err := json.Unmarshal(row.WorkingDays, &payload.WorkingDays); err != nil {
				s.logger.Warn("malformed working days document", zap.String("teacher_id", teacherID), zap.Error(err))
			}
		}
	}

	bookings, err := s.bookings.ListActiveBetween(ctx, teacherID, from, to)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load bookings")
	}
	for _, booking := range bookings {
		if excludeBookingID != "" && booking.ID == excludeBookingID {
			continue
		}
		payload.Classes = append(payload.Classes, availability.ClassEntry{
			ID:        booking.ID,
			Date:      booking.ClassDate.Format(availability.DateLayout),
			StartTime: booking.StartTime,
			EndTime:   booking.EndTime,
		})
	}

	return availability.NewSchedule(payload), nil
}

func (s *AvailabilityService) location(teacher *models.Teacher) *time.Location {
	name := teacher.Timezone
	if name == "" {
		name = s.cfg.Timezone
	}
	if name != "" {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
		s.logger.Warn("unknown timezone, falling back to UTC", zap.String("timezone", name))
	}
	return time.UTC
}

func toTimeRanges(intervals []availability.Interval) []dto.TimeRange {
	ranges := make([]dto.TimeRange, 0, len(intervals))
	for _, iv := range intervals {
		ranges = append(ranges, dto.TimeRange{
			StartTime: availability.FormatClock(iv.Start),
			EndTime:   availability.FormatClock(iv.End),
		})
	}
	return ranges
}
