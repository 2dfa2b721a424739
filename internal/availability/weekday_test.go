package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekdayOf(t *testing.T) {
	assert.Equal(t, Monday, WeekdayOf(time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, Sunday, WeekdayOf(time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, Saturday, WeekdayOf(time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)))
}

func TestParseWeekday(t *testing.T) {
	day, ok := ParseWeekday(" Wednesday ")
	require.True(t, ok)
	assert.Equal(t, Wednesday, day)

	_, ok = ParseWeekday("midweek")
	assert.False(t, ok)
	_, ok = ParseWeekday("")
	assert.False(t, ok)
}

func TestWeekdayOrderIsFixed(t *testing.T) {
	require.Len(t, WeekdayOrder, 7)
	assert.Equal(t, Monday, WeekdayOrder[0])
	assert.Equal(t, Sunday, WeekdayOrder[6])
}
