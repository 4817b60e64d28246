package booking

import (
	"math"
	"strconv"
	"time"

	"gearbook/models"
)

// QuoteInput is everything the price calculator looks at. BasePrice is the
// decimal string form used at the API boundary; it is parsed here, once,
// and rejected outright when it is not a positive finite number.
type QuoteInput struct {
	CalculationType models.CalculationType
	BasePrice       string
	Hours           float64
	Distance        float64
	StartDate       time.Time
	EndDate         time.Time
}

// InclusiveDays returns the number of billed days between start and end,
// counting both boundary days. Partial days round up.
func InclusiveDays(start, end time.Time) int {
	diff := end.Sub(start)
	return int(math.Ceil(diff.Hours()/24)) + 1
}

// Quote computes the total for a booking draft.
//
// The returned bool reports whether a total could be computed at all: drafts
// still missing inputs (no dates yet, no hours yet, a non-positive day span)
// quote as (0, false, nil), mirroring a form whose total stays empty until
// the fields are filled in. HOURLY and DISTANCE_BASED totals are gated on
// both dates being present even though the dates do not enter their formula;
// bookings always carry a rental period.
//
// A malformed base price is an error, never a silent NaN.
func Quote(in QuoteInput) (float64, bool, error) {
	basePrice, err := strconv.ParseFloat(in.BasePrice, 64)
	if err != nil || math.IsNaN(basePrice) || math.IsInf(basePrice, 0) || basePrice <= 0 {
		return 0, false, ErrInvalidBasePrice
	}

	datesPresent := !in.StartDate.IsZero() && !in.EndDate.IsZero()

	switch in.CalculationType {
	case models.CalculationHourly:
		if in.Hours <= 0 || !datesPresent {
			return 0, false, nil
		}
		return basePrice * in.Hours, true, nil

	case models.CalculationDaily:
		if !datesPresent {
			return 0, false, nil
		}
		days := InclusiveDays(in.StartDate, in.EndDate)
		if days <= 0 {
			return 0, false, nil
		}
		return basePrice * float64(days), true, nil

	case models.CalculationDistanceBased:
		if in.Distance <= 0 || !datesPresent {
			return 0, false, nil
		}
		return basePrice * in.Distance, true, nil
	}

	return 0, false, validationErrorf("unknown calculation type")
}
