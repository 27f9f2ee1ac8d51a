package reservation

import (
	"time"

	"github.com/google/uuid"

	"github.com/sharebnb/service-reservation/internal/common/domain"
)

// Reservation is the aggregate root for a stay at an accommodation. Its
// occupied days live in the booked-day ledger, keyed by the reservation id.
type Reservation struct {
	id              uuid.UUID
	code            string
	memberID        uuid.UUID
	accommodationID uuid.UUID
	stay            DateRange
	guestCount      int
	totalPriceCents int64
	status          Status
	paymentDate     *time.Time
	canceledAt      *time.Time

	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// NewReservation creates a pending Reservation. The code is assigned and
// the status confirmed only after the day range has been secured in the
// ledger, so a rejected request never consumes a code. The stay range has
// already been validated by NewDateRange.
func NewReservation(
	memberID, accommodationID uuid.UUID,
	stay DateRange,
	guestCount int,
	totalPriceCents int64,
) (*Reservation, error) {
	if memberID == uuid.Nil {
		return nil, domain.NewValidationError("member ID is required")
	}
	if accommodationID == uuid.Nil {
		return nil, domain.NewValidationError("accommodation ID is required")
	}
	if guestCount < 1 {
		return nil, domain.NewValidationError("guest count must be at least 1")
	}
	if totalPriceCents < 0 {
		return nil, domain.NewValidationError("total price must not be negative")
	}

	now := time.Now().UTC()
	paymentDate := ToDate(now)
	return &Reservation{
		id:              uuid.New(),
		memberID:        memberID,
		accommodationID: accommodationID,
		stay:            stay,
		guestCount:      guestCount,
		totalPriceCents: totalPriceCents,
		status:          StatusPending,
		paymentDate:     &paymentDate,
		version:         1,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

// Reconstruct rebuilds a Reservation from persistence data (no validation).
func Reconstruct(
	id uuid.UUID,
	code string,
	memberID, accommodationID uuid.UUID,
	stay DateRange,
	guestCount int,
	totalPriceCents int64,
	status Status,
	paymentDate *time.Time,
	canceledAt *time.Time,
	version int64,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:              id,
		code:            code,
		memberID:        memberID,
		accommodationID: accommodationID,
		stay:            stay,
		guestCount:      guestCount,
		totalPriceCents: totalPriceCents,
		status:          status,
		paymentDate:     paymentDate,
		canceledAt:      canceledAt,
		version:         version,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// --- Getters ---

// ID returns the reservation's unique identifier.
func (r *Reservation) ID() uuid.UUID { return r.id }

// Code returns the human-readable reservation code, assigned once at creation.
func (r *Reservation) Code() string { return r.code }

// MemberID returns the booking member's id.
func (r *Reservation) MemberID() uuid.UUID { return r.memberID }

// AccommodationID returns the booked accommodation's id.
func (r *Reservation) AccommodationID() uuid.UUID { return r.accommodationID }

// Stay returns the reserved date range.
func (r *Reservation) Stay() DateRange { return r.stay }

// GuestCount returns the number of guests.
func (r *Reservation) GuestCount() int { return r.guestCount }

// TotalPriceCents returns the caller-supplied total price in cents.
func (r *Reservation) TotalPriceCents() int64 { return r.totalPriceCents }

// Status returns the current reservation status.
func (r *Reservation) Status() Status { return r.status }

// PaymentDate returns the recorded payment date, or nil if none.
func (r *Reservation) PaymentDate() *time.Time { return r.paymentDate }

// CanceledAt returns the cancellation time, or nil if not canceled.
func (r *Reservation) CanceledAt() *time.Time { return r.canceledAt }

// Version returns the entity version for optimistic locking.
func (r *Reservation) Version() int64 { return r.version }

// CreatedAt returns the creation timestamp.
func (r *Reservation) CreatedAt() time.Time { return r.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (r *Reservation) UpdatedAt() time.Time { return r.updatedAt }

// --- Behavior ---

// IsCanceled returns true if the reservation has been canceled.
func (r *Reservation) IsCanceled() bool {
	return r.status == StatusCanceled
}

// IsActive returns true if the reservation currently holds its booked days.
func (r *Reservation) IsActive() bool {
	return r.status == StatusConfirmed
}

// IsOwnedBy checks if the reservation belongs to the given member.
func (r *Reservation) IsOwnedBy(memberID uuid.UUID) bool {
	return r.memberID == memberID
}

// AssignCode sets the reservation code. The code is immutable once set.
func (r *Reservation) AssignCode(code string) error {
	if code == "" {
		return domain.NewValidationError("reservation code is required")
	}
	if r.code != "" {
		return domain.NewValidationError("reservation code is already assigned")
	}
	r.code = code
	r.updatedAt = time.Now().UTC()
	return nil
}

// Confirm transitions the reservation from pending to confirmed. Requires
// an assigned code.
func (r *Reservation) Confirm() error {
	if !r.status.CanTransitionTo(StatusConfirmed) {
		return domain.NewInvalidStateError(string(r.status), string(StatusConfirmed))
	}
	if r.code == "" {
		return domain.NewValidationError("cannot confirm a reservation without a code")
	}
	r.status = StatusConfirmed
	r.updatedAt = time.Now().UTC()
	return nil
}

// ChangeStay replaces the stay range, guest count and total price. The
// caller has already secured the new range in the ledger.
func (r *Reservation) ChangeStay(stay DateRange, guestCount int, totalPriceCents int64) error {
	if r.status != StatusConfirmed {
		return domain.NewInvalidStateError(string(r.status), string(StatusConfirmed))
	}
	if guestCount < 1 {
		return domain.NewValidationError("guest count must be at least 1")
	}
	if totalPriceCents < 0 {
		return domain.NewValidationError("total price must not be negative")
	}
	r.stay = stay
	r.guestCount = guestCount
	r.totalPriceCents = totalPriceCents
	r.updatedAt = time.Now().UTC()
	return nil
}

// Cancel marks the reservation canceled. The record is retained for history;
// the caller releases its booked days.
func (r *Reservation) Cancel() error {
	if !r.status.CanTransitionTo(StatusCanceled) {
		return domain.NewInvalidStateError(string(r.status), string(StatusCanceled))
	}
	now := time.Now().UTC()
	r.status = StatusCanceled
	r.canceledAt = &now
	r.updatedAt = now
	return nil
}

// RecordPayment records the date a payment was made. Recording only; no
// validation or execution happens here.
func (r *Reservation) RecordPayment(paidAt time.Time) {
	date := ToDate(paidAt)
	r.paymentDate = &date
	r.updatedAt = time.Now().UTC()
}

// IncrementVersion bumps the version for optimistic locking.
func (r *Reservation) IncrementVersion() {
	r.version++
	r.updatedAt = time.Now().UTC()
}
