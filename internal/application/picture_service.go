package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sharebnb/service-reservation/internal/common/domain"
	accommodationDomain "github.com/sharebnb/service-reservation/internal/domain/accommodation"
	pictureDomain "github.com/sharebnb/service-reservation/internal/domain/picture"
)

// AttachPictureRequest holds the data to attach a gallery picture.
type AttachPictureRequest struct {
	URL     string `json:"url" binding:"required"`
	Caption string `json:"caption"`
}

// PictureDTO is the API response representation of a gallery picture.
type PictureDTO struct {
	ID              uuid.UUID `json:"id"`
	AccommodationID uuid.UUID `json:"accommodation_id"`
	URL             string    `json:"url"`
	Caption         string    `json:"caption"`
	CreatedAt       time.Time `json:"created_at"`
}

// PictureService handles accommodation gallery use cases. Only URLs are
// stored; picture files live in external storage.
type PictureService struct {
	repo           pictureDomain.Repository
	accommodations accommodationDomain.Lookup
	logger         *zap.Logger
}

// NewPictureService creates a new PictureService.
func NewPictureService(repo pictureDomain.Repository, accommodations accommodationDomain.Lookup, logger *zap.Logger) *PictureService {
	return &PictureService{repo: repo, accommodations: accommodations, logger: logger}
}

// AttachPicture adds a picture to an accommodation's gallery, verifying the
// caller hosts the accommodation.
func (s *PictureService) AttachPicture(ctx context.Context, hostID, accommodationID uuid.UUID, req AttachPictureRequest) (*PictureDTO, error) {
	acc, err := s.accommodations.FindByID(ctx, accommodationID)
	if err != nil {
		return nil, err
	}
	if !acc.IsOwnedBy(hostID) {
		return nil, domain.NewForbiddenError("accommodation does not belong to this host")
	}

	pic, err := pictureDomain.NewPicture(accommodationID, req.URL, req.Caption)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, pic); err != nil {
		return nil, err
	}

	s.logger.Info("picture attached",
		zap.String("accommodation_id", accommodationID.String()),
		zap.String("picture_id", pic.ID().String()),
	)
	return toPictureDTO(pic), nil
}

// GetGallery returns all pictures for an accommodation.
func (s *PictureService) GetGallery(ctx context.Context, accommodationID uuid.UUID) ([]*PictureDTO, error) {
	pics, err := s.repo.FindByAccommodationID(ctx, accommodationID)
	if err != nil {
		return nil, err
	}

	dtos := make([]*PictureDTO, len(pics))
	for i, p := range pics {
		dtos[i] = toPictureDTO(p)
	}
	return dtos, nil
}

// RemovePicture deletes a picture, verifying the caller hosts its accommodation.
func (s *PictureService) RemovePicture(ctx context.Context, hostID, pictureID uuid.UUID) error {
	pic, err := s.repo.FindByID(ctx, pictureID)
	if err != nil {
		return err
	}

	acc, err := s.accommodations.FindByID(ctx, pic.AccommodationID())
	if err != nil {
		return err
	}
	if !acc.IsOwnedBy(hostID) {
		return domain.NewForbiddenError("accommodation does not belong to this host")
	}

	if err := s.repo.Delete(ctx, pictureID); err != nil {
		return err
	}

	s.logger.Info("picture removed", zap.String("picture_id", pictureID.String()))
	return nil
}

func toPictureDTO(p *pictureDomain.Picture) *PictureDTO {
	return &PictureDTO{
		ID:              p.ID(),
		AccommodationID: p.AccommodationID(),
		URL:             p.URL(),
		Caption:         p.Caption(),
		CreatedAt:       p.CreatedAt(),
	}
}
