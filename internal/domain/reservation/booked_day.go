package reservation

import (
	"time"

	"github.com/google/uuid"
)

// BookedDay is one calendar date held against one accommodation by an
// active reservation. It is the atomic unit of the occupancy ledger.
type BookedDay struct {
	AccommodationID uuid.UUID
	ReservationID   uuid.UUID
	Date            time.Time
}
