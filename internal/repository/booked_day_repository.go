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

// BookedDayModel is the GORM model for the booked_days table. The composite
// unique index on (accommodation_id, date) is the database-level backstop
// for the no-double-booking guarantee: a concurrent writer that slips past
// the in-transaction overlap check is rejected here.
type BookedDayModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	AccommodationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_booked_days_accommodation_date"`
	Date            time.Time `gorm:"type:date;not null;uniqueIndex:idx_booked_days_accommodation_date"`
	ReservationID   uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt       time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (BookedDayModel) TableName() string {
	return "booked_days"
}

// GormBookedDayRepository is the GORM-based implementation of the
// booked-day ledger.
type GormBookedDayRepository struct {
	db *gorm.DB
}

// NewGormBookedDayRepository creates a new GormBookedDayRepository.
func NewGormBookedDayRepository(db *gorm.DB) *GormBookedDayRepository {
	return &GormBookedDayRepository{db: db}
}

// ReserveRange checks for overlapping days and inserts the new days as one
// transaction. The unique index turns a lost race into a conflict error
// instead of a double booking.
func (r *GormBookedDayRepository) ReserveRange(
	ctx context.Context,
	accommodationID uuid.UUID,
	stay reservationDomain.DateRange,
	ownerReservationID, excludeReservationID uuid.UUID,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx.Model(&BookedDayModel{}).
			Where("accommodation_id = ? AND date >= ? AND date < ?",
				accommodationID, stay.CheckIn(), stay.Checkout())
		if excludeReservationID != uuid.Nil {
			query = query.Where("reservation_id <> ?", excludeReservationID)
		}

		var count int64
		if err := query.Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check for overlapping days: %w", err)
		}
		if count > 0 {
			return domain.NewOverlapConflictError("requested dates overlap an existing reservation")
		}

		models := newBookedDayModels(accommodationID, ownerReservationID, stay.Days())
		if err := tx.Create(&models).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.NewConflictError("booked days were taken by a concurrent request")
			}
			return fmt.Errorf("failed to insert booked days: %w", err)
		}
		return nil
	})
}

// MoveRange deletes the reservation's current days, overlap-checks the new
// range and inserts it, all inside one transaction. A conflict rolls the
// delete back, so the prior occupancy is never visible as released.
func (r *GormBookedDayRepository) MoveRange(
	ctx context.Context,
	accommodationID uuid.UUID,
	stay reservationDomain.DateRange,
	ownerReservationID uuid.UUID,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("reservation_id = ?", ownerReservationID).
			Delete(&BookedDayModel{}).Error; err != nil {
			return fmt.Errorf("failed to release current booked days: %w", err)
		}

		var count int64
		if err := tx.Model(&BookedDayModel{}).
			Where("accommodation_id = ? AND date >= ? AND date < ?",
				accommodationID, stay.CheckIn(), stay.Checkout()).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check for overlapping days: %w", err)
		}
		if count > 0 {
			return domain.NewOverlapConflictError("requested dates overlap an existing reservation")
		}

		models := newBookedDayModels(accommodationID, ownerReservationID, stay.Days())
		if err := tx.Create(&models).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.NewConflictError("booked days were taken by a concurrent request")
			}
			return fmt.Errorf("failed to insert booked days: %w", err)
		}
		return nil
	})
}

// ReleaseRange deletes all booked days owned by the reservation. Releasing
// an already-empty set is a no-op.
func (r *GormBookedDayRepository) ReleaseRange(ctx context.Context, ownerReservationID uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("reservation_id = ?", ownerReservationID).
		Delete(&BookedDayModel{}).Error; err != nil {
		return fmt.Errorf("failed to release booked days: %w", err)
	}
	return nil
}

// DaysFor returns the ordered dates currently held by the reservation.
func (r *GormBookedDayRepository) DaysFor(ctx context.Context, ownerReservationID uuid.UUID) ([]time.Time, error) {
	var models []BookedDayModel
	if err := r.db.WithContext(ctx).
		Where("reservation_id = ?", ownerReservationID).
		Order("date ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to load booked days: %w", err)
	}

	dates := make([]time.Time, len(models))
	for i, m := range models {
		dates[i] = reservationDomain.ToDate(m.Date)
	}
	return dates, nil
}

// HasOverlap reports whether any day in the range is held for the
// accommodation by a reservation other than excludeReservationID.
func (r *GormBookedDayRepository) HasOverlap(
	ctx context.Context,
	accommodationID uuid.UUID,
	stay reservationDomain.DateRange,
	excludeReservationID uuid.UUID,
) (bool, error) {
	query := r.db.WithContext(ctx).Model(&BookedDayModel{}).
		Where("accommodation_id = ? AND date >= ? AND date < ?",
			accommodationID, stay.CheckIn(), stay.Checkout())
	if excludeReservationID != uuid.Nil {
		query = query.Where("reservation_id <> ?", excludeReservationID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check for overlapping days: %w", err)
	}
	return count > 0, nil
}

func newBookedDayModels(accommodationID, reservationID uuid.UUID, dates []time.Time) []BookedDayModel {
	now := time.Now().UTC()
	models := make([]BookedDayModel, len(dates))
	for i, d := range dates {
		models[i] = BookedDayModel{
			ID:              uuid.New(),
			AccommodationID: accommodationID,
			Date:            d,
			ReservationID:   reservationID,
			CreatedAt:       now,
		}
	}
	return models
}
