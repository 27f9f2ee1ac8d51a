package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sharebnb/service-reservation/internal/common/domain"
	memberDomain "github.com/sharebnb/service-reservation/internal/domain/member"
)

// MemberModel is the GORM model for the members table. Rows are written by
// the member service; this service only reads them.
type MemberModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email         string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name          string    `gorm:"type:varchar(100);not null"`
	ContactNumber string    `gorm:"type:varchar(30)"`
	CreatedAt     time.Time `gorm:"not null"`
}

func (MemberModel) TableName() string { return "members" }

// GormMemberRepository implements the member lookup using GORM.
type GormMemberRepository struct {
	db *gorm.DB
}

// NewGormMemberRepository creates a new GormMemberRepository.
func NewGormMemberRepository(db *gorm.DB) *GormMemberRepository {
	return &GormMemberRepository{db: db}
}

// FindByID retrieves a member by id.
func (r *GormMemberRepository) FindByID(ctx context.Context, id uuid.UUID) (*memberDomain.Member, error) {
	var model MemberModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Member", id.String())
		}
		return nil, err
	}
	return memberDomain.Reconstruct(model.ID, model.Email, model.Name, model.ContactNumber, model.CreatedAt), nil
}

// Save persists a member row (seeds and tests).
func (r *GormMemberRepository) Save(ctx context.Context, m *memberDomain.Member) error {
	model := MemberModel{
		ID:            m.ID(),
		Email:         m.Email(),
		Name:          m.Name(),
		ContactNumber: m.ContactNumber(),
		CreatedAt:     m.CreatedAt(),
	}
	return r.db.WithContext(ctx).Create(&model).Error
}
