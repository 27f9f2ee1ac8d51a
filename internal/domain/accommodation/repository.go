package accommodation

import (
	"context"

	"github.com/google/uuid"
)

// Lookup resolves accommodation references. Read-only from this service.
type Lookup interface {
	// FindByID retrieves an accommodation by id.
	FindByID(ctx context.Context, id uuid.UUID) (*Accommodation, error)

	// FindByHostID retrieves all accommodations owned by a host.
	FindByHostID(ctx context.Context, hostID uuid.UUID) ([]*Accommodation, error)
}
