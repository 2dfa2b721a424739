package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openlingua/academy-api/internal/dto"
	"github.com/openlingua/academy-api/internal/models"
	appErrors "github.com/openlingua/academy-api/pkg/errors"
	"github.com/openlingua/academy-api/pkg/response"
)

type bookingServiceMock struct {
	booking    *models.ClassBooking
	createErr  error
	cancelErr  error
	lastFilter models.BookingFilter
}

func (m *bookingServiceMock) Get(ctx context.Context, id string) (*models.ClassBooking, error) {
	if m.booking == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "booking not found")
	}
	return m.booking, nil
}

func (m *bookingServiceMock) List(ctx context.Context, filter models.BookingFilter) ([]models.ClassBooking, *models.Pagination, error) {
	m.lastFilter = filter
	return nil, &models.Pagination{Page: 1, PageSize: 20}, nil
}

func (m *bookingServiceMock) Create(ctx context.Context, req dto.CreateBookingRequest) (*models.ClassBooking, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	return m.booking, nil
}

func (m *bookingServiceMock) Reschedule(ctx context.Context, id string, req dto.RescheduleBookingRequest) (*models.ClassBooking, error) {
	return m.booking, nil
}

func (m *bookingServiceMock) Cancel(ctx context.Context, id string) error {
	return m.cancelErr
}

func TestBookingHandlerCreateIllegalTime(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewBookingHandler(&bookingServiceMock{
		createErr: appErrors.Clone(appErrors.ErrIllegalClassTime, "class time rejected: OverlapsBreak"),
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, _ := json.Marshal(dto.CreateBookingRequest{
		TeacherID: "teacher-1",
		StudentID: "student-1",
		Date:      "2024-06-10",
		StartTime: "13:00",
		EndTime:   "14:00",
	})
	req, _ := http.NewRequest(http.MethodPost, "/bookings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	h.Create(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, appErrors.ErrIllegalClassTime.Code, envelope.Error.Code)
}

func TestBookingHandlerCreateSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewBookingHandler(&bookingServiceMock{booking: &models.ClassBooking{
		ID:        "booking-1",
		TeacherID: "teacher-1",
		StudentID: "student-1",
		ClassDate: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00",
		EndTime:   "11:00",
		Status:    models.BookingStatusConfirmed,
	}})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, _ := json.Marshal(dto.CreateBookingRequest{
		TeacherID: "teacher-1",
		StudentID: "student-1",
		Date:      "2024-06-10",
		StartTime: "10:00",
		EndTime:   "11:00",
	})
	req, _ := http.NewRequest(http.MethodPost, "/bookings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestBookingHandlerListParsesFilters(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := &bookingServiceMock{}
	h := NewBookingHandler(mock)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/bookings?teacher_id=teacher-1&status=CONFIRMED&from=2024-06-09&to=2024-06-15", nil)
	c.Request = req

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "teacher-1", mock.lastFilter.TeacherID)
	assert.Equal(t, models.BookingStatusConfirmed, mock.lastFilter.Status)
	require.NotNil(t, mock.lastFilter.DateFrom)
	assert.Equal(t, "2024-06-09", mock.lastFilter.DateFrom.Format("2006-01-02"))
}

func TestBookingHandlerCancel(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewBookingHandler(&bookingServiceMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodDelete, "/bookings/booking-1", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "booking-1"}}

	h.Cancel(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, w.Code)
}
