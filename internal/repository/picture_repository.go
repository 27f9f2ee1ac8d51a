package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sharebnb/service-reservation/internal/common/domain"
	pictureDomain "github.com/sharebnb/service-reservation/internal/domain/picture"
)

// PictureModel is the GORM model for the accommodation_pictures table.
type PictureModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	AccommodationID uuid.UUID `gorm:"type:uuid;not null;index"`
	URL             string    `gorm:"type:text;not null"`
	Caption         string    `gorm:"type:text"`
	CreatedAt       time.Time `gorm:"not null"`
}

// TableName sets the table name.
func (PictureModel) TableName() string { return "accommodation_pictures" }

// GormPictureRepository implements the picture repository using GORM.
type GormPictureRepository struct {
	db *gorm.DB
}

// NewGormPictureRepository creates a new GormPictureRepository.
func NewGormPictureRepository(db *gorm.DB) *GormPictureRepository {
	return &GormPictureRepository{db: db}
}

// Save persists a new picture.
func (r *GormPictureRepository) Save(ctx context.Context, pic *pictureDomain.Picture) error {
	model := toPictureModel(pic)
	return r.db.WithContext(ctx).Create(&model).Error
}

// FindByAccommodationID returns the gallery for an accommodation, oldest first.
func (r *GormPictureRepository) FindByAccommodationID(ctx context.Context, accommodationID uuid.UUID) ([]*pictureDomain.Picture, error) {
	var models []PictureModel
	if err := r.db.WithContext(ctx).
		Where("accommodation_id = ?", accommodationID).
		Order("created_at ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}

	pics := make([]*pictureDomain.Picture, len(models))
	for i, m := range models {
		pics[i] = toPictureDomain(&m)
	}
	return pics, nil
}

// FindByID returns a single picture by ID.
func (r *GormPictureRepository) FindByID(ctx context.Context, id uuid.UUID) (*pictureDomain.Picture, error) {
	var model PictureModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Picture", id.String())
		}
		return nil, err
	}
	return toPictureDomain(&model), nil
}

// Delete removes a picture.
func (r *GormPictureRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&PictureModel{}).Error
}

func toPictureModel(p *pictureDomain.Picture) PictureModel {
	return PictureModel{
		ID:              p.ID(),
		AccommodationID: p.AccommodationID(),
		URL:             p.URL(),
		Caption:         p.Caption(),
		CreatedAt:       p.CreatedAt(),
	}
}

func toPictureDomain(m *PictureModel) *pictureDomain.Picture {
	return pictureDomain.Reconstruct(
		m.ID,
		m.AccommodationID,
		m.URL,
		m.Caption,
		m.CreatedAt,
	)
}
