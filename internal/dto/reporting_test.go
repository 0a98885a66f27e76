package dto_test

import (
	"testing"
	"time"

	"github.com/kruathong/pos_ledger_backend/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDateRange_ExplicitDatesWin(t *testing.T) {
	q := dto.DateRangeQuery{
		StartDate: "2025-03-01",
		EndDate:   "2025-03-31",
		Month:     1,
		Year:      2024,
	}

	dateRange, err := q.ToDateRange()
	require.NoError(t, err)
	require.NotNil(t, dateRange.From)
	require.NotNil(t, dateRange.To)

	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), *dateRange.From)
	assert.Equal(t, time.Date(2025, time.March, 31, 23, 59, 59, 0, time.UTC), *dateRange.To)
}

func TestToDateRange_MonthAndYear(t *testing.T) {
	q := dto.DateRangeQuery{Month: 2, Year: 2024}

	dateRange, err := q.ToDateRange()
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), *dateRange.From)
	// leap February
	assert.Equal(t, time.Date(2024, time.February, 29, 23, 59, 59, 0, time.UTC), *dateRange.To)
}

func TestToDateRange_BuddhistYearNormalized(t *testing.T) {
	q := dto.DateRangeQuery{Month: 5, Year: 2568}

	dateRange, err := q.ToDateRange()
	require.NoError(t, err)

	assert.Equal(t, 2025, dateRange.From.Year())
}

func TestToDateRange_BareYearCoversCalendarYear(t *testing.T) {
	q := dto.DateRangeQuery{Year: 2025}

	dateRange, err := q.ToDateRange()
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), *dateRange.From)
	assert.Equal(t, time.Date(2025, time.December, 31, 23, 59, 59, 0, time.UTC), *dateRange.To)
}

func TestToDateRange_EmptyQueryIsOpen(t *testing.T) {
	q := dto.DateRangeQuery{}

	dateRange, err := q.ToDateRange()
	require.NoError(t, err)

	assert.Nil(t, dateRange.From)
	assert.Nil(t, dateRange.To)
}
