package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	accommodationDomain "github.com/sharebnb/service-reservation/internal/domain/accommodation"
)

// AccommodationDTO is the API response representation of an accommodation.
type AccommodationDTO struct {
	ID        uuid.UUID `json:"id"`
	HostID    uuid.UUID `json:"host_id"`
	Title     string    `json:"title"`
	City      string    `json:"city"`
	District  string    `json:"district"`
	Address   string    `json:"address"`
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AccommodationService implements read use cases over accommodation
// listings. Listings are owned by the accommodation service; this service
// only resolves and projects them.
type AccommodationService struct {
	lookup accommodationDomain.Lookup
	logger *zap.Logger
}

// NewAccommodationService creates a new AccommodationService.
func NewAccommodationService(lookup accommodationDomain.Lookup, logger *zap.Logger) *AccommodationService {
	return &AccommodationService{lookup: lookup, logger: logger}
}

// GetAccommodation returns a single accommodation by ID.
func (s *AccommodationService) GetAccommodation(ctx context.Context, id uuid.UUID) (*AccommodationDTO, error) {
	acc, err := s.lookup.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	result := toAccommodationDTO(acc)
	return &result, nil
}

// GetHostAccommodations returns all accommodations owned by the given host.
func (s *AccommodationService) GetHostAccommodations(ctx context.Context, hostID uuid.UUID) ([]AccommodationDTO, error) {
	accs, err := s.lookup.FindByHostID(ctx, hostID)
	if err != nil {
		return nil, fmt.Errorf("failed to get host accommodations: %w", err)
	}
	dtos := make([]AccommodationDTO, len(accs))
	for i, a := range accs {
		dtos[i] = toAccommodationDTO(a)
	}
	return dtos, nil
}

func toAccommodationDTO(a *accommodationDomain.Accommodation) AccommodationDTO {
	return AccommodationDTO{
		ID:        a.ID(),
		HostID:    a.HostID(),
		Title:     a.Title(),
		City:      a.City(),
		District:  a.District(),
		Address:   a.Address(),
		Capacity:  a.Capacity(),
		CreatedAt: a.CreatedAt(),
		UpdatedAt: a.UpdatedAt(),
	}
}
