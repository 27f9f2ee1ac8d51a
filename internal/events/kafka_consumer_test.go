package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sharebnb/service-reservation/internal/common/kafka"
)

type fakePaymentRecorder struct {
	calls []recordedPayment
	err   error
}

type recordedPayment struct {
	reservationID uuid.UUID
	paidAt        time.Time
}

func (f *fakePaymentRecorder) RecordPayment(_ context.Context, reservationID uuid.UUID, paidAt time.Time) error {
	f.calls = append(f.calls, recordedPayment{reservationID, paidAt})
	return f.err
}

func newTestConsumer(recorder *fakePaymentRecorder) *PaymentEventConsumer {
	return &PaymentEventConsumer{
		service: recorder,
		logger:  zap.NewNop(),
	}
}

func paymentMessage(t *testing.T, evt PaymentConfirmedEvent) kafkago.Message {
	t.Helper()
	ce, err := kafka.NewCloudEvent("service-payment", PaymentConfirmed, evt)
	require.NoError(t, err)
	raw, err := json.Marshal(ce)
	require.NoError(t, err)
	return kafkago.Message{Value: raw}
}

func TestHandleMessage_PaymentConfirmedRecordsDate(t *testing.T) {
	recorder := &fakePaymentRecorder{}
	consumer := newTestConsumer(recorder)

	reservationID := uuid.New()
	paidAt := time.Date(2026, 11, 20, 14, 30, 0, 0, time.UTC)

	err := consumer.handleMessage(context.Background(), paymentMessage(t, PaymentConfirmedEvent{
		PaymentID:     uuid.New(),
		ReservationID: reservationID,
		PaidAt:        paidAt,
		OccurredAt:    time.Now().UTC(),
	}))
	require.NoError(t, err)

	require.Len(t, recorder.calls, 1)
	assert.Equal(t, reservationID, recorder.calls[0].reservationID)
	assert.True(t, paidAt.Equal(recorder.calls[0].paidAt))
}

func TestHandleMessage_MalformedPayloadIsDropped(t *testing.T) {
	recorder := &fakePaymentRecorder{}
	consumer := newTestConsumer(recorder)

	err := consumer.handleMessage(context.Background(), kafkago.Message{Value: []byte("not json")})
	require.NoError(t, err)
	assert.Empty(t, recorder.calls)
}

func TestHandleMessage_UnknownTypeIsIgnored(t *testing.T) {
	recorder := &fakePaymentRecorder{}
	consumer := newTestConsumer(recorder)

	ce, err := kafka.NewCloudEvent("service-payment", "payment.refunded", struct{}{})
	require.NoError(t, err)
	raw, err := json.Marshal(ce)
	require.NoError(t, err)

	require.NoError(t, consumer.handleMessage(context.Background(), kafkago.Message{Value: raw}))
	assert.Empty(t, recorder.calls)
}

func TestHandleMessage_RecorderErrorIsRetried(t *testing.T) {
	recorder := &fakePaymentRecorder{err: context.DeadlineExceeded}
	consumer := newTestConsumer(recorder)

	err := consumer.handleMessage(context.Background(), paymentMessage(t, PaymentConfirmedEvent{
		PaymentID:     uuid.New(),
		ReservationID: uuid.New(),
		PaidAt:        time.Now().UTC(),
	}))
	require.Error(t, err)
}
