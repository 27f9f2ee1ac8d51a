package accommodation

import (
	"time"

	"github.com/google/uuid"

	"github.com/sharebnb/service-reservation/internal/common/domain"
)

// Accommodation is a read-only collaborator: listings are managed by the
// accommodation service, this service resolves references and projects
// location fields onto reservation listings.
type Accommodation struct {
	id        uuid.UUID
	hostID    uuid.UUID
	title     string
	city      string
	district  string
	address   string
	capacity  int
	createdAt time.Time
	updatedAt time.Time
}

// NewAccommodation creates a listing (used by seeds and tests).
func NewAccommodation(hostID uuid.UUID, title, city, district, address string, capacity int) (*Accommodation, error) {
	if hostID == uuid.Nil {
		return nil, domain.NewValidationError("host ID is required")
	}
	if title == "" {
		return nil, domain.NewValidationError("title is required")
	}
	if city == "" {
		return nil, domain.NewValidationError("city is required")
	}
	if capacity < 1 {
		return nil, domain.NewValidationError("capacity must be at least 1")
	}

	now := time.Now().UTC()
	return &Accommodation{
		id:        uuid.New(),
		hostID:    hostID,
		title:     title,
		city:      city,
		district:  district,
		address:   address,
		capacity:  capacity,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct rebuilds an Accommodation from persistence data.
func Reconstruct(
	id, hostID uuid.UUID,
	title, city, district, address string,
	capacity int,
	createdAt, updatedAt time.Time,
) *Accommodation {
	return &Accommodation{
		id:        id,
		hostID:    hostID,
		title:     title,
		city:      city,
		district:  district,
		address:   address,
		capacity:  capacity,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (a *Accommodation) ID() uuid.UUID        { return a.id }
func (a *Accommodation) HostID() uuid.UUID    { return a.hostID }
func (a *Accommodation) Title() string        { return a.title }
func (a *Accommodation) City() string         { return a.city }
func (a *Accommodation) District() string     { return a.district }
func (a *Accommodation) Address() string      { return a.address }
func (a *Accommodation) Capacity() int        { return a.capacity }
func (a *Accommodation) CreatedAt() time.Time { return a.createdAt }
func (a *Accommodation) UpdatedAt() time.Time { return a.updatedAt }

// IsOwnedBy checks if the listing belongs to the given host.
func (a *Accommodation) IsOwnedBy(hostID uuid.UUID) bool {
	return a.hostID == hostID
}
