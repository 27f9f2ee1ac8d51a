package picture

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for accommodation pictures.
type Repository interface {
	// FindByID retrieves a picture by id.
	FindByID(ctx context.Context, id uuid.UUID) (*Picture, error)

	// FindByAccommodationID retrieves the gallery for an accommodation, oldest first.
	FindByAccommodationID(ctx context.Context, accommodationID uuid.UUID) ([]*Picture, error)

	// Save persists a new picture.
	Save(ctx context.Context, pic *Picture) error

	// Delete removes a picture.
	Delete(ctx context.Context, id uuid.UUID) error
}
