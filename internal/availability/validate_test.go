package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validationSchedule() *Schedule {
	return NewSchedule(SchedulePayload{
		WorkHours: map[string][]ClockRange{
			"monday": {{Start: "09:00", End: "18:00"}},
		},
		BreakHours: map[string][]ClockRange{
			"monday": {{Start: "13:00", End: "14:00"}},
		},
		WorkingDays: []string{"monday", "tuesday"},
		Classes: []ClassEntry{
			{ID: "c1", Date: "2024-06-10", StartTime: "10:00", EndTime: "11:00"},
		},
	})
}

func TestValidateMissingInput(t *testing.T) {
	s := validationSchedule()

	for _, result := range []Result{
		s.Validate("", "09:00", "10:00", ""),
		s.Validate("2024-06-10", "", "10:00", ""),
		s.Validate("2024-06-10", "09:00", "", ""),
		s.Validate("junk", "09:00", "10:00", ""),
		s.Validate("2024-06-10", "9am", "10:00", ""),
	} {
		assert.False(t, result.Valid)
		assert.Equal(t, ReasonMissingInput, result.Reason)
	}
}

func TestValidateNonWorkingDay(t *testing.T) {
	s := validationSchedule()

	// 2024-06-16 is a Sunday, outside the working-days set
	result := s.Validate("2024-06-16", "09:00", "10:00", "")
	assert.False(t, result.Valid)
	assert.Equal(t, ReasonNonWorkingDay, result.Reason)
}

func TestValidateNoWorkHoursConfigured(t *testing.T) {
	s := validationSchedule()

	// tuesday is a working day but carries no work hours
	result := s.Validate("2024-06-11", "09:00", "10:00", "")
	assert.False(t, result.Valid)
	assert.Equal(t, ReasonNoWorkHoursConfigured, result.Reason)
}

func TestValidateOutsideWorkHours(t *testing.T) {
	s := validationSchedule()

	result := s.Validate("2024-06-10", "08:00", "09:00", "")
	assert.False(t, result.Valid)
	assert.Equal(t, ReasonOutsideWorkHours, result.Reason)

	// spans past the end of the work block
	result = s.Validate("2024-06-10", "17:30", "18:30", "")
	assert.Equal(t, ReasonOutsideWorkHours, result.Reason)
}

func TestValidateCandidateMustFitOneWorkBlock(t *testing.T) {
	s := NewSchedule(SchedulePayload{
		WorkHours: map[string][]ClockRange{
			"monday": {{Start: "09:00", End: "12:00"}, {Start: "14:00", End: "18:00"}},
		},
	})

	// straddles the midday gap between the two blocks
	result := s.Validate("2024-06-10", "11:00", "15:00", "")
	assert.Equal(t, ReasonOutsideWorkHours, result.Reason)

	assert.True(t, s.Validate("2024-06-10", "14:00", "15:00", "").Valid)
}

func TestValidateOverlapsBreak(t *testing.T) {
	s := validationSchedule()

	result := s.Validate("2024-06-10", "13:30", "14:30", "")
	assert.False(t, result.Valid)
	assert.Equal(t, ReasonOverlapsBreak, result.Reason)

	// touching the break boundary is allowed
	assert.True(t, s.Validate("2024-06-10", "14:00", "15:00", "").Valid)
}

func TestValidateOverlapsExistingClass(t *testing.T) {
	s := validationSchedule()

	result := s.Validate("2024-06-10", "10:30", "11:30", "")
	assert.False(t, result.Valid)
	assert.Equal(t, ReasonOverlapsExistingClass, result.Reason)

	// the same time on a different monday does not conflict
	assert.True(t, s.Validate("2024-06-17", "10:30", "11:30", "").Valid)
}

func TestValidateExcludesRescheduledClass(t *testing.T) {
	s := validationSchedule()

	result := s.Validate("2024-06-10", "10:00", "11:00", "c1")
	assert.True(t, result.Valid)
	assert.Empty(t, result.Reason)
}

func TestValidateAcceptsLegalCandidate(t *testing.T) {
	s := validationSchedule()

	result := s.Validate("2024-06-10", "09:00", "10:00", "")
	assert.True(t, result.Valid)

	// seconds suffix tolerated at the boundary
	assert.True(t, s.Validate("2024-06-10", "09:00:00", "10:00:00", "").Valid)
}
