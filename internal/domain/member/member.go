package member

import (
	"time"

	"github.com/google/uuid"

	"github.com/sharebnb/service-reservation/internal/common/domain"
)

// Member is a read-only collaborator: its lifecycle is managed by the
// member service, this service only resolves references.
type Member struct {
	id            uuid.UUID
	email         string
	name          string
	contactNumber string
	createdAt     time.Time
}

// NewMember creates a member record (used by seeds and tests; production
// rows are written by the member service).
func NewMember(email, name, contactNumber string) (*Member, error) {
	if email == "" {
		return nil, domain.NewValidationError("email is required")
	}
	if name == "" {
		return nil, domain.NewValidationError("name is required")
	}
	return &Member{
		id:            uuid.New(),
		email:         email,
		name:          name,
		contactNumber: contactNumber,
		createdAt:     time.Now().UTC(),
	}, nil
}

// Reconstruct rebuilds a Member from persistence data.
func Reconstruct(id uuid.UUID, email, name, contactNumber string, createdAt time.Time) *Member {
	return &Member{
		id:            id,
		email:         email,
		name:          name,
		contactNumber: contactNumber,
		createdAt:     createdAt,
	}
}

func (m *Member) ID() uuid.UUID         { return m.id }
func (m *Member) Email() string         { return m.email }
func (m *Member) Name() string          { return m.name }
func (m *Member) ContactNumber() string { return m.contactNumber }
func (m *Member) CreatedAt() time.Time  { return m.createdAt }
