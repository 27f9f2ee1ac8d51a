package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sharebnb/service-reservation/internal/common/domain"
	reservationDomain "github.com/sharebnb/service-reservation/internal/domain/reservation"
)

// ReservationModel is the GORM model for the reservations table.
type ReservationModel struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ReservationCode string     `gorm:"uniqueIndex;not null;size:30"`
	MemberID        uuid.UUID  `gorm:"type:uuid;index;not null"`
	AccommodationID uuid.UUID  `gorm:"type:uuid;index;not null"`
	CheckInDate     time.Time  `gorm:"type:date;not null"`
	CheckoutDate    time.Time  `gorm:"type:date;not null"`
	GuestCount      int        `gorm:"not null"`
	TotalPriceCents int64      `gorm:"not null"`
	Status          string     `gorm:"not null;size:20;index"`
	PaymentDate     *time.Time `gorm:"type:date"`
	CanceledAt      *time.Time `gorm:""`
	Version         int64      `gorm:"not null;default:1"`
	CreatedAt       time.Time  `gorm:"not null"`
	UpdatedAt       time.Time  `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (ReservationModel) TableName() string {
	return "reservations"
}

// GormReservationRepository is the GORM-based implementation of the
// reservation repository.
type GormReservationRepository struct {
	db *gorm.DB
}

// NewGormReservationRepository creates a new GormReservationRepository.
func NewGormReservationRepository(db *gorm.DB) *GormReservationRepository {
	return &GormReservationRepository{db: db}
}

// FindByID retrieves a reservation by its unique identifier.
func (r *GormReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*reservationDomain.Reservation, error) {
	var model ReservationModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Reservation", id.String())
		}
		return nil, fmt.Errorf("failed to find reservation by ID: %w", err)
	}
	return toDomainReservation(&model)
}

// FindByMemberID retrieves reservations booked by a member with pagination.
func (r *GormReservationRepository) FindByMemberID(ctx context.Context, memberID uuid.UUID, page, limit int) ([]*reservationDomain.Reservation, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&ReservationModel{}).Where("member_id = ?", memberID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count member reservations: %w", err)
	}

	var models []ReservationModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find member reservations: %w", err)
	}

	reservations := make([]*reservationDomain.Reservation, len(models))
	for i, m := range models {
		res, err := toDomainReservation(&m)
		if err != nil {
			return nil, 0, err
		}
		reservations[i] = res
	}

	return reservations, total, nil
}

// ListAll retrieves all reservations with pagination (admin).
func (r *GormReservationRepository) ListAll(ctx context.Context, page, limit int) ([]*reservationDomain.Reservation, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&ReservationModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reservations: %w", err)
	}

	var models []ReservationModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list reservations: %w", err)
	}

	reservations := make([]*reservationDomain.Reservation, len(models))
	for i, m := range models {
		res, err := toDomainReservation(&m)
		if err != nil {
			return nil, 0, err
		}
		reservations[i] = res
	}

	return reservations, total, nil
}

// CountByStatus returns reservation counts grouped by status (admin).
func (r *GormReservationRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var results []statusCount
	if err := r.db.WithContext(ctx).Model(&ReservationModel{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to count by status: %w", err)
	}

	counts := make(map[string]int64)
	for _, sc := range results {
		counts[sc.Status] = sc.Count
	}
	return counts, nil
}

// Save persists a new reservation.
func (r *GormReservationRepository) Save(ctx context.Context, res *reservationDomain.Reservation) error {
	model := toReservationModel(res)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save reservation: %w", err)
	}
	return nil
}

// Update persists changes to an existing reservation with optimistic locking.
func (r *GormReservationRepository) Update(ctx context.Context, res *reservationDomain.Reservation) error {
	model := toReservationModel(res)

	// Only update if the version matches (current version - 1 since
	// IncrementVersion was called).
	expectedVersion := res.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&ReservationModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"check_in_date":     model.CheckInDate,
			"checkout_date":     model.CheckoutDate,
			"guest_count":       model.GuestCount,
			"total_price_cents": model.TotalPriceCents,
			"status":            model.Status,
			"payment_date":      model.PaymentDate,
			"canceled_at":       model.CanceledAt,
			"version":           model.Version,
			"updated_at":        model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update reservation: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return domain.NewConflictError("reservation was modified by another transaction")
	}

	return nil
}

// --- Conversion Helpers ---

func toReservationModel(res *reservationDomain.Reservation) *ReservationModel {
	return &ReservationModel{
		ID:              res.ID(),
		ReservationCode: res.Code(),
		MemberID:        res.MemberID(),
		AccommodationID: res.AccommodationID(),
		CheckInDate:     res.Stay().CheckIn(),
		CheckoutDate:    res.Stay().Checkout(),
		GuestCount:      res.GuestCount(),
		TotalPriceCents: res.TotalPriceCents(),
		Status:          string(res.Status()),
		PaymentDate:     res.PaymentDate(),
		CanceledAt:      res.CanceledAt(),
		Version:         res.Version(),
		CreatedAt:       res.CreatedAt(),
		UpdatedAt:       res.UpdatedAt(),
	}
}

func toDomainReservation(m *ReservationModel) (*reservationDomain.Reservation, error) {
	stay, err := reservationDomain.NewDateRange(m.CheckInDate, m.CheckoutDate)
	if err != nil {
		return nil, fmt.Errorf("invalid stored date range for reservation %s: %w", m.ID, err)
	}

	status, err := reservationDomain.ParseStatus(m.Status)
	if err != nil {
		return nil, err
	}

	return reservationDomain.Reconstruct(
		m.ID,
		m.ReservationCode,
		m.MemberID,
		m.AccommodationID,
		stay,
		m.GuestCount,
		m.TotalPriceCents,
		status,
		m.PaymentDate,
		m.CanceledAt,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}
