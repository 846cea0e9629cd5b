package events

import (
	"time"

	"github.com/farellandr/vakansik/internal/models"
	"github.com/google/uuid"
)

const (
	TypeOrderCreated = "order.created"
	TypeOrderFailed  = "order.failed"
	TypeOrderSettled = "order.settled"
)

type OrderEvent struct {
	EventID          string    `json:"event_id"`
	Type             string    `json:"type"`
	OrderID          string    `json:"order_id"`
	UserID           string    `json:"user_id"`
	TripID           string    `json:"trip_id"`
	Status           string    `json:"status"`
	AmountIDR        int64     `json:"amount_idr"`
	ChannelCode      string    `json:"channel_code"`
	PaymentRequestID string    `json:"payment_request_id,omitempty"`
	Timestamp        time.Time `json:"timestamp"`
}

func NewOrderEvent(eventType string, order *models.Order) OrderEvent {
	event := OrderEvent{
		EventID:     uuid.NewString(),
		Type:        eventType,
		OrderID:     order.ID,
		UserID:      order.UserID,
		TripID:      order.TripID,
		Status:      string(order.Status),
		AmountIDR:   order.AmountIDR,
		ChannelCode: order.ChannelCode,
		Timestamp:   time.Now().UTC(),
	}
	if order.PaymentRequestID != nil {
		event.PaymentRequestID = *order.PaymentRequestID
	}
	return event
}
