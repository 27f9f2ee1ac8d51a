package member

import (
	"context"

	"github.com/google/uuid"
)

// Lookup resolves member references. Read-only from this service.
type Lookup interface {
	// FindByID retrieves a member by id.
	FindByID(ctx context.Context, id uuid.UUID) (*Member, error)
}
