package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sharebnb/service-reservation/internal/common/domain"
	accommodationDomain "github.com/sharebnb/service-reservation/internal/domain/accommodation"
)

// AccommodationModel is the GORM model for the accommodations table. Rows
// are written by the accommodation service; this service only reads them.
type AccommodationModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	HostID    uuid.UUID `gorm:"type:uuid;index;not null"`
	Title     string    `gorm:"type:varchar(200);not null"`
	City      string    `gorm:"type:varchar(100);not null;index"`
	District  string    `gorm:"type:varchar(100)"`
	Address   string    `gorm:"type:text"`
	Capacity  int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (AccommodationModel) TableName() string { return "accommodations" }

// GormAccommodationRepository implements the accommodation lookup using GORM.
type GormAccommodationRepository struct {
	db *gorm.DB
}

// NewGormAccommodationRepository creates a new GormAccommodationRepository.
func NewGormAccommodationRepository(db *gorm.DB) *GormAccommodationRepository {
	return &GormAccommodationRepository{db: db}
}

// FindByID retrieves an accommodation by id.
func (r *GormAccommodationRepository) FindByID(ctx context.Context, id uuid.UUID) (*accommodationDomain.Accommodation, error) {
	var model AccommodationModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Accommodation", id.String())
		}
		return nil, err
	}
	return toAccommodationDomain(&model), nil
}

// FindByHostID retrieves all accommodations owned by a host.
func (r *GormAccommodationRepository) FindByHostID(ctx context.Context, hostID uuid.UUID) ([]*accommodationDomain.Accommodation, error) {
	var models []AccommodationModel
	if err := r.db.WithContext(ctx).
		Where("host_id = ?", hostID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	accs := make([]*accommodationDomain.Accommodation, len(models))
	for i, m := range models {
		accs[i] = toAccommodationDomain(&m)
	}
	return accs, nil
}

// Save persists an accommodation row (seeds and tests).
func (r *GormAccommodationRepository) Save(ctx context.Context, a *accommodationDomain.Accommodation) error {
	model := AccommodationModel{
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
	return r.db.WithContext(ctx).Create(&model).Error
}

func toAccommodationDomain(m *AccommodationModel) *accommodationDomain.Accommodation {
	return accommodationDomain.Reconstruct(
		m.ID, m.HostID,
		m.Title, m.City, m.District, m.Address,
		m.Capacity,
		m.CreatedAt, m.UpdatedAt,
	)
}
