package events

import (
	"time"

	"github.com/google/uuid"
)

// Kafka topics this service produces to and consumes from.
const (
	TopicReservationEvents = "reservation.events"
	TopicPaymentEvents     = "payment.events"
)

// Event types carried in the CloudEvent envelope.
const (
	ReservationCreated  = "reservation.created"
	ReservationUpdated  = "reservation.updated"
	ReservationCanceled = "reservation.canceled"
	PaymentConfirmed    = "payment.confirmed"
)

// ReservationCreatedEvent is published when a reservation is accepted.
type ReservationCreatedEvent struct {
	ReservationID   uuid.UUID `json:"reservation_id"`
	ReservationCode string    `json:"reservation_code"`
	MemberID        uuid.UUID `json:"member_id"`
	AccommodationID uuid.UUID `json:"accommodation_id"`
	CheckInDate     time.Time `json:"check_in_date"`
	CheckoutDate    time.Time `json:"checkout_date"`
	GuestCount      int       `json:"guest_count"`
	TotalPriceCents int64     `json:"total_price_cents"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// ReservationUpdatedEvent is published when a reservation's stay changes.
type ReservationUpdatedEvent struct {
	ReservationID   uuid.UUID `json:"reservation_id"`
	ReservationCode string    `json:"reservation_code"`
	AccommodationID uuid.UUID `json:"accommodation_id"`
	CheckInDate     time.Time `json:"check_in_date"`
	CheckoutDate    time.Time `json:"checkout_date"`
	GuestCount      int       `json:"guest_count"`
	TotalPriceCents int64     `json:"total_price_cents"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// ReservationCanceledEvent is published when a reservation is canceled.
type ReservationCanceledEvent struct {
	ReservationID   uuid.UUID `json:"reservation_id"`
	ReservationCode string    `json:"reservation_code"`
	AccommodationID uuid.UUID `json:"accommodation_id"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// PaymentConfirmedEvent is consumed from the payment service; only the
// payment date is recorded on the reservation.
type PaymentConfirmedEvent struct {
	PaymentID     uuid.UUID `json:"payment_id"`
	ReservationID uuid.UUID `json:"reservation_id"`
	PaidAt        time.Time `json:"paid_at"`
	OccurredAt    time.Time `json:"occurred_at"`
}
