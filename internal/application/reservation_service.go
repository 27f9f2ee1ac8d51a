package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sharebnb/service-reservation/internal/common/domain"
	"github.com/sharebnb/service-reservation/internal/common/kafka"
	accommodationDomain "github.com/sharebnb/service-reservation/internal/domain/accommodation"
	memberDomain "github.com/sharebnb/service-reservation/internal/domain/member"
	pictureDomain "github.com/sharebnb/service-reservation/internal/domain/picture"
	reservationDomain "github.com/sharebnb/service-reservation/internal/domain/reservation"
	"github.com/sharebnb/service-reservation/internal/events"
)

// CreateReservationRequest holds the data needed to book a stay.
type CreateReservationRequest struct {
	AccommodationID uuid.UUID `json:"accommodation_id" binding:"required"`
	CheckInDate     time.Time `json:"check_in_date" binding:"required"`
	CheckoutDate    time.Time `json:"checkout_date" binding:"required"`
	GuestCount      int       `json:"guest_count" binding:"required"`
	TotalPriceCents int64     `json:"total_price_cents"`
}

// UpdateReservationRequest holds the data for changing an existing stay.
type UpdateReservationRequest struct {
	CheckInDate     time.Time `json:"check_in_date" binding:"required"`
	CheckoutDate    time.Time `json:"checkout_date" binding:"required"`
	GuestCount      int       `json:"guest_count" binding:"required"`
	TotalPriceCents int64     `json:"total_price_cents"`
}

// ReservationDTO is the response representation of a reservation.
type ReservationDTO struct {
	ID              uuid.UUID  `json:"id"`
	ReservationCode string     `json:"reservation_code"`
	MemberID        uuid.UUID  `json:"member_id"`
	AccommodationID uuid.UUID  `json:"accommodation_id"`
	CheckInDate     time.Time  `json:"check_in_date"`
	CheckoutDate    time.Time  `json:"checkout_date"`
	GuestCount      int        `json:"guest_count"`
	TotalPriceCents int64      `json:"total_price_cents"`
	Status          string     `json:"status"`
	PaymentDate     *time.Time `json:"payment_date,omitempty"`
	CanceledAt      *time.Time `json:"canceled_at,omitempty"`
	Version         int64      `json:"version"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// AccommodationSummaryDTO is the projection of an accommodation attached to
// reservation listings: city, district and picture URLs only.
type AccommodationSummaryDTO struct {
	City        string   `json:"city"`
	District    string   `json:"district"`
	PictureURLs []string `json:"picture_urls"`
}

// ReservationViewDTO pairs a reservation with its accommodation projection.
type ReservationViewDTO struct {
	Reservation   ReservationDTO          `json:"reservation"`
	Accommodation AccommodationSummaryDTO `json:"accommodation"`
}

// ReservationService orchestrates reservation use cases: it validates input,
// consults the booked-day ledger, issues reservation codes and persists the
// aggregate.
type ReservationService struct {
	reservations   reservationDomain.Repository
	ledger         reservationDomain.Ledger
	members        memberDomain.Lookup
	accommodations accommodationDomain.Lookup
	pictures       pictureDomain.Repository
	codes          *reservationDomain.CodeGenerator
	producer       *kafka.Producer
	logger         *zap.Logger
}

// NewReservationService creates a new ReservationService.
func NewReservationService(
	reservations reservationDomain.Repository,
	ledger reservationDomain.Ledger,
	members memberDomain.Lookup,
	accommodations accommodationDomain.Lookup,
	pictures pictureDomain.Repository,
	codes *reservationDomain.CodeGenerator,
	producer *kafka.Producer,
	logger *zap.Logger,
) *ReservationService {
	return &ReservationService{
		reservations:   reservations,
		ledger:         ledger,
		members:        members,
		accommodations: accommodations,
		pictures:       pictures,
		codes:          codes,
		producer:       producer,
		logger:         logger,
	}
}

// CreateReservation books a stay for the given member. On a date conflict
// no ledger mutation is committed and no code is consumed.
func (s *ReservationService) CreateReservation(ctx context.Context, memberID uuid.UUID, req CreateReservationRequest) (*ReservationDTO, error) {
	mem, err := s.members.FindByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	acc, err := s.accommodations.FindByID(ctx, req.AccommodationID)
	if err != nil {
		return nil, err
	}

	stay, err := reservationDomain.NewDateRange(req.CheckInDate, req.CheckoutDate)
	if err != nil {
		return nil, err
	}

	res, err := reservationDomain.NewReservation(mem.ID(), acc.ID(), stay, req.GuestCount, req.TotalPriceCents)
	if err != nil {
		return nil, err
	}

	// Atomic check-then-reserve: the overlap check and the day inserts run
	// as one unit inside the ledger.
	if err := s.ledger.ReserveRange(ctx, acc.ID(), stay, res.ID(), uuid.Nil); err != nil {
		return nil, err
	}

	if err := res.AssignCode(s.codes.NextCode()); err != nil {
		s.releaseDays(ctx, res.ID())
		return nil, err
	}
	if err := res.Confirm(); err != nil {
		s.releaseDays(ctx, res.ID())
		return nil, err
	}

	if err := s.reservations.Save(ctx, res); err != nil {
		s.releaseDays(ctx, res.ID())
		return nil, fmt.Errorf("failed to save reservation: %w", err)
	}

	s.publishEvent(ctx, events.TopicReservationEvents, events.ReservationCreated, events.ReservationCreatedEvent{
		ReservationID:   res.ID(),
		ReservationCode: res.Code(),
		MemberID:        res.MemberID(),
		AccommodationID: res.AccommodationID(),
		CheckInDate:     stay.CheckIn(),
		CheckoutDate:    stay.Checkout(),
		GuestCount:      res.GuestCount(),
		TotalPriceCents: res.TotalPriceCents(),
		OccurredAt:      time.Now().UTC(),
	})

	s.logger.Info("reservation created",
		zap.String("reservation_id", res.ID().String()),
		zap.String("code", res.Code()),
		zap.String("accommodation_id", acc.ID().String()),
	)
	result := toReservationDTO(res)
	return &result, nil
}

// UpdateReservation moves an existing reservation to a new stay range. On
// conflict the prior occupancy stands untouched, as do the persisted
// fields.
func (s *ReservationService) UpdateReservation(ctx context.Context, memberID, reservationID uuid.UUID, req UpdateReservationRequest) (*ReservationDTO, error) {
	res, err := s.reservations.FindByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if !res.IsOwnedBy(memberID) {
		return nil, domain.NewForbiddenError("reservation does not belong to this member")
	}
	if res.IsCanceled() {
		return nil, domain.NewInvalidStateError(string(res.Status()), string(reservationDomain.StatusConfirmed))
	}

	newStay, err := reservationDomain.NewDateRange(req.CheckInDate, req.CheckoutDate)
	if err != nil {
		return nil, err
	}

	// The move is atomic inside the ledger: a conflict leaves the current
	// occupancy in place, so no concurrent request ever sees the days free.
	previousStay := res.Stay()
	if err := s.ledger.MoveRange(ctx, res.AccommodationID(), newStay, res.ID()); err != nil {
		return nil, err
	}

	if err := res.ChangeStay(newStay, req.GuestCount, req.TotalPriceCents); err != nil {
		s.rollbackStay(ctx, res, previousStay)
		return nil, err
	}
	res.IncrementVersion()
	if err := s.reservations.Update(ctx, res); err != nil {
		s.rollbackStay(ctx, res, previousStay)
		return nil, err
	}

	s.publishEvent(ctx, events.TopicReservationEvents, events.ReservationUpdated, events.ReservationUpdatedEvent{
		ReservationID:   res.ID(),
		ReservationCode: res.Code(),
		AccommodationID: res.AccommodationID(),
		CheckInDate:     newStay.CheckIn(),
		CheckoutDate:    newStay.Checkout(),
		GuestCount:      res.GuestCount(),
		TotalPriceCents: res.TotalPriceCents(),
		OccurredAt:      time.Now().UTC(),
	})

	result := toReservationDTO(res)
	return &result, nil
}

// CancelReservation releases the day range and marks the reservation
// canceled; the record is retained. Canceling twice is a no-op success.
func (s *ReservationService) CancelReservation(ctx context.Context, memberID, reservationID uuid.UUID) (*ReservationDTO, error) {
	res, err := s.reservations.FindByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if !res.IsOwnedBy(memberID) {
		return nil, domain.NewForbiddenError("reservation does not belong to this member")
	}

	if res.IsCanceled() {
		result := toReservationDTO(res)
		return &result, nil
	}

	if err := res.Cancel(); err != nil {
		return nil, err
	}
	res.IncrementVersion()
	if err := s.reservations.Update(ctx, res); err != nil {
		return nil, err
	}

	// ReleaseRange is idempotent; a retry after a partial failure converges.
	if err := s.ledger.ReleaseRange(ctx, res.ID()); err != nil {
		return nil, fmt.Errorf("failed to release booked days: %w", err)
	}

	s.publishEvent(ctx, events.TopicReservationEvents, events.ReservationCanceled, events.ReservationCanceledEvent{
		ReservationID:   res.ID(),
		ReservationCode: res.Code(),
		AccommodationID: res.AccommodationID(),
		OccurredAt:      time.Now().UTC(),
	})

	s.logger.Info("reservation canceled", zap.String("reservation_id", res.ID().String()))
	result := toReservationDTO(res)
	return &result, nil
}

// GetReservation retrieves a single reservation, verifying ownership.
func (s *ReservationService) GetReservation(ctx context.Context, memberID, reservationID uuid.UUID) (*ReservationDTO, error) {
	res, err := s.reservations.FindByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if !res.IsOwnedBy(memberID) {
		return nil, domain.NewForbiddenError("reservation does not belong to this member")
	}
	result := toReservationDTO(res)
	return &result, nil
}

// GetMemberReservations retrieves a member's reservations (any state), each
// paired with its accommodation's city, district and picture URLs.
func (s *ReservationService) GetMemberReservations(ctx context.Context, memberID uuid.UUID, page, limit int) (*domain.PaginatedResult[ReservationViewDTO], error) {
	reservations, total, err := s.reservations.FindByMemberID(ctx, memberID, page, limit)
	if err != nil {
		return nil, err
	}

	summaries := make(map[uuid.UUID]AccommodationSummaryDTO)
	views := make([]ReservationViewDTO, len(reservations))
	for i, res := range reservations {
		summary, ok := summaries[res.AccommodationID()]
		if !ok {
			summary, err = s.accommodationSummary(ctx, res.AccommodationID())
			if err != nil {
				return nil, err
			}
			summaries[res.AccommodationID()] = summary
		}
		views[i] = ReservationViewDTO{
			Reservation:   toReservationDTO(res),
			Accommodation: summary,
		}
	}

	result := domain.NewPaginatedResult(views, total, page, limit)
	return &result, nil
}

// RecordPayment records the payment date reported by the payment service.
func (s *ReservationService) RecordPayment(ctx context.Context, reservationID uuid.UUID, paidAt time.Time) error {
	res, err := s.reservations.FindByID(ctx, reservationID)
	if err != nil {
		return err
	}

	res.RecordPayment(paidAt)
	res.IncrementVersion()
	if err := s.reservations.Update(ctx, res); err != nil {
		return fmt.Errorf("failed to record payment date: %w", err)
	}

	s.logger.Info("payment date recorded",
		zap.String("reservation_id", res.ID().String()),
		zap.Time("paid_at", paidAt),
	)
	return nil
}

// --- Admin methods ---

// ReservationStatsDTO holds reservation statistics for the admin dashboard.
type ReservationStatsDTO struct {
	TotalReservations int64            `json:"total_reservations"`
	ByStatus          map[string]int64 `json:"by_status"`
}

// ListAllReservations returns a paginated list of all reservations (admin).
func (s *ReservationService) ListAllReservations(ctx context.Context, page, limit int) ([]ReservationDTO, int64, error) {
	reservations, total, err := s.reservations.ListAll(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reservations: %w", err)
	}

	dtos := make([]ReservationDTO, len(reservations))
	for i, res := range reservations {
		dtos[i] = toReservationDTO(res)
	}
	return dtos, total, nil
}

// GetReservationStats returns aggregate reservation statistics (admin).
func (s *ReservationService) GetReservationStats(ctx context.Context) (*ReservationStatsDTO, error) {
	counts, err := s.reservations.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get reservation stats: %w", err)
	}

	var total int64
	for _, c := range counts {
		total += c
	}

	return &ReservationStatsDTO{
		TotalReservations: total,
		ByStatus:          counts,
	}, nil
}

// --- Helpers ---

func (s *ReservationService) accommodationSummary(ctx context.Context, accommodationID uuid.UUID) (AccommodationSummaryDTO, error) {
	acc, err := s.accommodations.FindByID(ctx, accommodationID)
	if err != nil {
		return AccommodationSummaryDTO{}, err
	}

	pics, err := s.pictures.FindByAccommodationID(ctx, accommodationID)
	if err != nil {
		return AccommodationSummaryDTO{}, err
	}
	urls := make([]string, len(pics))
	for i, p := range pics {
		urls[i] = p.URL()
	}

	return AccommodationSummaryDTO{
		City:        acc.City(),
		District:    acc.District(),
		PictureURLs: urls,
	}, nil
}

// releaseDays releases ledger rows for a reservation that never got
// persisted; failures are logged, a retry happens through ReleaseRange's
// idempotency on the next conflicting request.
func (s *ReservationService) releaseDays(ctx context.Context, reservationID uuid.UUID) {
	if err := s.ledger.ReleaseRange(ctx, reservationID); err != nil {
		s.logger.Error("failed to release booked days",
			zap.String("reservation_id", reservationID.String()),
			zap.Error(err),
		)
	}
}

// rollbackStay undoes a reserved-but-not-persisted stay change by moving
// the occupancy back to the previous range.
func (s *ReservationService) rollbackStay(ctx context.Context, res *reservationDomain.Reservation, previousStay reservationDomain.DateRange) {
	if err := s.ledger.MoveRange(ctx, res.AccommodationID(), previousStay, res.ID()); err != nil {
		s.logger.Error("failed to restore booked days during rollback",
			zap.String("reservation_id", res.ID().String()),
			zap.Error(err),
		)
	}
}

func (s *ReservationService) publishEvent(ctx context.Context, topic, eventType string, data interface{}) {
	if s.producer == nil {
		return
	}
	cloudEvent, err := kafka.NewCloudEvent("service-reservation", eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := s.producer.PublishEvent(ctx, topic, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("topic", topic),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}

func toReservationDTO(res *reservationDomain.Reservation) ReservationDTO {
	return ReservationDTO{
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
