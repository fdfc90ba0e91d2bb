package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	date, err := ParseDate("2026-08-17")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC), date)

	_, err = ParseDate("17/08/2026")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ParseDate("2026-02-30")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ParseDate("")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestWeekRange(t *testing.T) {
	// 2026-08-19 is a Wednesday
	start, end := WeekRange(time.Date(2026, 8, 19, 15, 30, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC), end)

	// Monday maps to itself
	start, end = WeekRange(time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC), end)

	// Sunday belongs to the week that started the previous Monday
	start, end = WeekRange(time.Date(2026, 8, 23, 23, 59, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC), end)
}
