package booking

import (
	"testing"
	"time"

	"gearbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestQuoteDailyCountsInclusiveDays(t *testing.T) {
	total, ok, err := Quote(QuoteInput{
		CalculationType: models.CalculationDaily,
		BasePrice:       "1000",
		StartDate:       date("2024-01-01"),
		EndDate:         date("2024-01-03"),
	})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 3000.0, total)
}

func TestQuoteDailySingleDay(t *testing.T) {
	total, ok, err := Quote(QuoteInput{
		CalculationType: models.CalculationDaily,
		BasePrice:       "250",
		StartDate:       date("2024-06-10"),
		EndDate:         date("2024-06-10"),
	})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 250.0, total)
}

func TestQuoteHourly(t *testing.T) {
	total, ok, err := Quote(QuoteInput{
		CalculationType: models.CalculationHourly,
		BasePrice:       "500",
		Hours:           4,
		StartDate:       date("2024-01-01"),
		EndDate:         date("2024-01-01"),
	})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2000.0, total)
}

func TestQuoteHourlyWithoutDatesStaysUnset(t *testing.T) {
	// Hours alone are not enough; the rental period must be chosen too.
	total, ok, err := Quote(QuoteInput{
		CalculationType: models.CalculationHourly,
		BasePrice:       "500",
		Hours:           4,
	})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, total)
}

func TestQuoteDistanceBased(t *testing.T) {
	total, ok, err := Quote(QuoteInput{
		CalculationType: models.CalculationDistanceBased,
		BasePrice:       "12.5",
		Distance:        40,
		StartDate:       date("2024-03-01"),
		EndDate:         date("2024-03-02"),
	})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 500.0, total)
}

func TestQuoteDistanceWithoutDatesStaysUnset(t *testing.T) {
	total, ok, err := Quote(QuoteInput{
		CalculationType: models.CalculationDistanceBased,
		BasePrice:       "12.5",
		Distance:        40,
	})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, total)
}

func TestQuoteRejectsMalformedBasePrice(t *testing.T) {
	for _, bad := range []string{"", "abc", "NaN", "Inf", "-Inf", "-5", "0"} {
		_, ok, err := Quote(QuoteInput{
			CalculationType: models.CalculationDaily,
			BasePrice:       bad,
			StartDate:       date("2024-01-01"),
			EndDate:         date("2024-01-02"),
		})
		assert.ErrorIs(t, err, ErrInvalidBasePrice, "base price %q", bad)
		assert.False(t, ok)
	}
}

func TestQuoteUnknownCalculationType(t *testing.T) {
	_, ok, err := Quote(QuoteInput{
		CalculationType: "WEEKLY",
		BasePrice:       "100",
		StartDate:       date("2024-01-01"),
		EndDate:         date("2024-01-02"),
	})
	assert.False(t, ok)
	var valErr ValidationError
	assert.ErrorAs(t, err, &valErr)
}

func TestInclusiveDaysRoundsPartialDaysUp(t *testing.T) {
	start := date("2024-01-01")

	assert.Equal(t, 1, InclusiveDays(start, start))
	assert.Equal(t, 2, InclusiveDays(start, date("2024-01-02")))
	assert.Equal(t, 3, InclusiveDays(start, date("2024-01-03")))
	// A partial day bills as a full one.
	assert.Equal(t, 3, InclusiveDays(start, start.Add(25*time.Hour)))
}
