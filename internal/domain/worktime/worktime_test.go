package worktime_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/jobledger/internal/domain/worktime"
)

func TestParseClock(t *testing.T) {
	m, err := worktime.ParseClock("08:30")
	require.NoError(t, err)
	assert.Equal(t, 510, m)

	m, err = worktime.ParseClock("00:00")
	require.NoError(t, err)
	assert.Equal(t, 0, m)

	for _, bad := range []string{"", "8:30", "24:00", "12:60", "ab:cd", "12:30:00"} {
		_, err := worktime.ParseClock(bad)
		assert.ErrorIs(t, err, worktime.ErrInvalidClock, bad)
	}
}

func TestWorkedMinutes_Overnight(t *testing.T) {
	m, err := worktime.WorkedMinutes("22:00", "06:00", 0)
	require.NoError(t, err)
	assert.Equal(t, 480, m, "22:00–06:00 cruza la medianoche: 8 horas")
}

func TestWorkedMinutes_Break(t *testing.T) {
	m, err := worktime.WorkedMinutes("08:00", "16:30", 30)
	require.NoError(t, err)
	assert.Equal(t, 480, m)
}

func TestWorkedMinutes_FlooredAtZero(t *testing.T) {
	m, err := worktime.WorkedMinutes("08:00", "08:30", 45)
	require.NoError(t, err)
	assert.Equal(t, 0, m)
}

func TestWorkedMinutes_SameTime(t *testing.T) {
	m, err := worktime.WorkedMinutes("10:00", "10:00", 0)
	require.NoError(t, err)
	assert.Equal(t, 0, m)
}

func TestWorkedMinutes_InvalidClock(t *testing.T) {
	_, err := worktime.WorkedMinutes("10:00", "25:00", 0)
	assert.ErrorIs(t, err, worktime.ErrInvalidClock)
}

func TestPrice_RoundedOnce(t *testing.T) {
	// 20 min a 650/h = 216.666... -> 216.67
	assert.True(t, decimal.RequireFromString("216.67").Equal(worktime.Price(20, decimal.NewFromInt(650))))
	// 90 min a 333.33/h = 499.995 -> 500.00
	assert.True(t, decimal.RequireFromString("500").Equal(worktime.Price(90, decimal.RequireFromString("333.33"))))
	assert.True(t, decimal.Zero.Equal(worktime.Price(0, decimal.NewFromInt(650))))
}

func TestSum_RoundsAtTheEnd(t *testing.T) {
	prices := []decimal.Decimal{
		decimal.RequireFromString("100.005"),
		decimal.RequireFromString("100.005"),
		decimal.RequireFromString("50"),
	}
	got := worktime.Sum(prices)
	assert.Equal(t, "250.01", got.StringFixed(2))
	assert.Equal(t, "0.00", worktime.Sum(nil).StringFixed(2))
}

func TestParseDate(t *testing.T) {
	d, err := worktime.ParseDate("2025-01-31")
	require.NoError(t, err)
	assert.Equal(t, 31, d.Day())

	_, err = worktime.ParseDate("31.01.2025")
	assert.Error(t, err)
}
