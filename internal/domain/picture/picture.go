package picture

import (
	"time"

	"github.com/google/uuid"

	"github.com/sharebnb/service-reservation/internal/common/domain"
)

// Picture is one gallery image attached to an accommodation. Only the URL
// is stored; file storage lives elsewhere.
type Picture struct {
	id              uuid.UUID
	accommodationID uuid.UUID
	url             string
	caption         string
	createdAt       time.Time
}

// NewPicture creates a gallery picture for an accommodation.
func NewPicture(accommodationID uuid.UUID, url, caption string) (*Picture, error) {
	if accommodationID == uuid.Nil {
		return nil, domain.NewValidationError("accommodation ID is required")
	}
	if url == "" {
		return nil, domain.NewValidationError("picture URL is required")
	}
	return &Picture{
		id:              uuid.New(),
		accommodationID: accommodationID,
		url:             url,
		caption:         caption,
		createdAt:       time.Now().UTC(),
	}, nil
}

// Reconstruct rebuilds a Picture from persistence.
func Reconstruct(id, accommodationID uuid.UUID, url, caption string, createdAt time.Time) *Picture {
	return &Picture{
		id:              id,
		accommodationID: accommodationID,
		url:             url,
		caption:         caption,
		createdAt:       createdAt,
	}
}

// Getters.
func (p *Picture) ID() uuid.UUID              { return p.id }
func (p *Picture) AccommodationID() uuid.UUID { return p.accommodationID }
func (p *Picture) URL() string                { return p.url }
func (p *Picture) Caption() string            { return p.caption }
func (p *Picture) CreatedAt() time.Time       { return p.createdAt }
