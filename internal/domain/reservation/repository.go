package reservation

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for reservation aggregates.
type Repository interface {
	// FindByID retrieves a reservation by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Reservation, error)

	// FindByMemberID retrieves reservations (any state) booked by a member,
	// with pagination.
	FindByMemberID(ctx context.Context, memberID uuid.UUID, page, limit int) ([]*Reservation, int64, error)

	// ListAll retrieves all reservations with pagination (admin).
	ListAll(ctx context.Context, page, limit int) ([]*Reservation, int64, error)

	// CountByStatus returns reservation counts grouped by status (admin).
	CountByStatus(ctx context.Context) (map[string]int64, error)

	// Save persists a new reservation.
	Save(ctx context.Context, res *Reservation) error

	// Update persists changes to an existing reservation with optimistic locking.
	Update(ctx context.Context, res *Reservation) error
}

// Ledger is the authoritative record of booked days per accommodation. The
// check-then-insert of ReserveRange is a single atomic unit: two concurrent
// reservations for overlapping days on the same accommodation can never
// both commit.
type Ledger interface {
	// ReserveRange atomically verifies that no day in the range is held by an
	// active reservation other than excludeReservationID, then inserts one
	// booked day per date owned by ownerReservationID. Returns an
	// overlap-conflict error when the range is taken, or a conflict error when
	// a concurrent writer won the race.
	ReserveRange(ctx context.Context, accommodationID uuid.UUID, stay DateRange, ownerReservationID, excludeReservationID uuid.UUID) error

	// MoveRange atomically re-points the reservation's occupancy to a new
	// range: the currently held days are dropped, the new range is
	// overlap-checked against other reservations and inserted, all as one
	// unit. On conflict nothing changes and the prior occupancy stands, so
	// a concurrent writer never observes the days released.
	MoveRange(ctx context.Context, accommodationID uuid.UUID, stay DateRange, ownerReservationID uuid.UUID) error

	// ReleaseRange deletes all booked days owned by the reservation.
	// Idempotent: releasing an empty set is a no-op.
	ReleaseRange(ctx context.Context, ownerReservationID uuid.UUID) error

	// DaysFor returns the ordered dates currently held by the reservation.
	DaysFor(ctx context.Context, ownerReservationID uuid.UUID) ([]time.Time, error)

	// HasOverlap reports whether any day in the range is held for the
	// accommodation by a reservation other than excludeReservationID.
	// Pure read; no side effects.
	HasOverlap(ctx context.Context, accommodationID uuid.UUID, stay DateRange, excludeReservationID uuid.UUID) (bool, error)
}
