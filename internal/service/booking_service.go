package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/openlingua/academy-api/internal/availability"
	"github.com/openlingua/academy-api/internal/dto"
	"github.com/openlingua/academy-api/internal/models"
	appErrors "github.com/openlingua/academy-api/pkg/errors"
)

type bookingStore interface {
	FindByID(ctx context.Context, id string) (*models.ClassBooking, error)
	List(ctx context.Context, filter models.BookingFilter) ([]models.ClassBooking, int, error)
	Create(ctx context.Context, booking *models.ClassBooking) error
	Update(ctx context.Context, booking *models.ClassBooking) error
	Cancel(ctx context.Context, id string) error
}

type classTimeValidator interface {
	Validate(ctx context.Context, req dto.ValidateClassTimeRequest) (*dto.ValidateClassTimeResponse, error)
}

// BookingService manages class bookings. Every write revalidates the
// candidate time against the teacher's current schedule first.
type BookingService struct {
	repo      bookingStore
	times     classTimeValidator
	cache     availabilityInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewBookingService constructs a BookingService.
func NewBookingService(repo bookingStore, times classTimeValidator, cache availabilityInvalidator, validate *validator.Validate, logger *zap.Logger) *BookingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookingService{repo: repo, times: times, cache: cache, validator: validate, logger: logger}
}

// Get returns a booking by id.
func (s *BookingService) Get(ctx context.Context, id string) (*models.ClassBooking, error) {
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "booking not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load booking")
	}
	return booking, nil
}

// List returns bookings plus pagination data.
func (s *BookingService) List(ctx context.Context, filter models.BookingFilter) ([]models.ClassBooking, *models.Pagination, error) {
	bookings, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list bookings")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: total}
	return bookings, pagination, nil
}

// Create books a class after the candidate time clears validation.
func (s *BookingService) Create(ctx context.Context, req dto.CreateBookingRequest) (*models.ClassBooking, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid booking payload")
	}

	verdict, err := s.times.Validate(ctx, dto.ValidateClassTimeRequest{
		TeacherID: req.TeacherID,
		StudentID: req.StudentID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		return nil, err
	}
	if !verdict.Valid {
		return nil, appErrors.Clone(appErrors.ErrIllegalClassTime, "class time rejected: "+verdict.Reason)
	}

	date, err := time.Parse(availability.DateLayout, req.Date)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid class date")
	}

	status := models.BookingStatusConfirmed
	if req.Tentative {
		status = models.BookingStatusTentative
	}
	booking := &models.ClassBooking{
		TeacherID: req.TeacherID,
		StudentID: req.StudentID,
		ClassDate: date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Status:    status,
	}
	if err := s.repo.Create(ctx, booking); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create booking")
	}

	if s.cache != nil {
		s.cache.InvalidateTeacher(ctx, req.TeacherID)
	}
	return booking, nil
}

// Reschedule moves a booking to a new time. The booking's own slot is
// excluded from conflict checks so moving within it stays legal.
func (s *BookingService) Reschedule(ctx context.Context, id string, req dto.RescheduleBookingRequest) (*models.ClassBooking, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid reschedule payload")
	}

	booking, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.Status == models.BookingStatusCancelled {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "booking already cancelled")
	}

	verdict, err := s.times.Validate(ctx, dto.ValidateClassTimeRequest{
		TeacherID:         booking.TeacherID,
		StudentID:         booking.StudentID,
		Date:              req.Date,
		StartTime:         req.StartTime,
		EndTime:           req.EndTime,
		RescheduleClassID: booking.ID,
	})
	if err != nil {
		return nil, err
	}
	if !verdict.Valid {
		return nil, appErrors.Clone(appErrors.ErrIllegalClassTime, "class time rejected: "+verdict.Reason)
	}

	date, err := time.Parse(availability.DateLayout, req.Date)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid class date")
	}

	booking.ClassDate = date
	booking.StartTime = req.StartTime
	booking.EndTime = req.EndTime
	if err := s.repo.Update(ctx, booking); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update booking")
	}

	if s.cache != nil {
		s.cache.InvalidateTeacher(ctx, booking.TeacherID)
	}
	return booking, nil
}

// Cancel marks a booking cancelled, freeing its slot.
func (s *BookingService) Cancel(ctx context.Context, id string) error {
	booking, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if booking.Status == models.BookingStatusCancelled {
		return nil
	}
	if err := s.repo.Cancel(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to cancel booking")
	}
	if s.cache != nil {
		s.cache.InvalidateTeacher(ctx, booking.TeacherID)
	}
	return nil
}
