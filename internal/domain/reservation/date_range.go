package reservation

import (
	"time"

	"github.com/sharebnb/service-reservation/internal/common/domain"
)

// ToDate normalizes a time to its UTC calendar day (midnight).
func ToDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DateRange is a half-open interval of calendar days [CheckIn, Checkout).
type DateRange struct {
	checkIn  time.Time
	checkout time.Time
}

// NewDateRange creates a DateRange from check-in and checkout, normalized to
// UTC calendar days. The interval must be non-empty.
func NewDateRange(checkIn, checkout time.Time) (DateRange, error) {
	in := ToDate(checkIn)
	out := ToDate(checkout)
	if !in.Before(out) {
		return DateRange{}, domain.NewInvalidRangeError("check-in date must be before checkout date")
	}
	return DateRange{checkIn: in, checkout: out}, nil
}

// CheckIn returns the first occupied day.
func (r DateRange) CheckIn() time.Time { return r.checkIn }

// Checkout returns the exclusive upper bound of the stay.
func (r DateRange) Checkout() time.Time { return r.checkout }

// Nights returns the number of calendar days in the interval.
func (r DateRange) Nights() int {
	return int(r.checkout.Sub(r.checkIn).Hours() / 24)
}

// Days expands the interval into its individual calendar days, in order.
func (r DateRange) Days() []time.Time {
	days := make([]time.Time, 0, r.Nights())
	for d := r.checkIn; d.Before(r.checkout); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Overlaps reports whether two ranges share at least one calendar day.
func (r DateRange) Overlaps(other DateRange) bool {
	return r.checkIn.Before(other.checkout) && other.checkIn.Before(r.checkout)
}

// Equal reports whether both ranges cover the same days.
func (r DateRange) Equal(other DateRange) bool {
	return r.checkIn.Equal(other.checkIn) && r.checkout.Equal(other.checkout)
}
