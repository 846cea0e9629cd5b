package payments

import (
	"context"
	"errors"

	"github.com/farellandr/vakansik/internal/events"
	"github.com/farellandr/vakansik/internal/helpers"
	"github.com/farellandr/vakansik/internal/models"
	"github.com/farellandr/vakansik/internal/notify"
	"github.com/farellandr/vakansik/internal/repository"
	"go.uber.org/zap"
)

type WebhookEvent struct {
	Event string      `json:"event"`
	Data  WebhookData `json:"data"`
}

type WebhookData struct {
	ReferenceID      string  `json:"reference_id"`
	PaymentRequestID string  `json:"payment_request_id"`
	Status           string  `json:"status"`
	RequestAmount    float64 `json:"request_amount"`
	Currency         string  `json:"currency"`
}

type WebhookResult struct {
	OrderID string
	Status  models.OrderStatus
}

// Authorized reports whether a callback token header matches the configured
// shared secret.
func (s *Service) Authorized(token string) bool {
	return helpers.CallbackTokenMatches(token, s.opts.CallbackToken)
}

// HandleWebhook applies a settlement callback that has already passed
// Authorized. The order-status write is the commit point: everything after it
// is best-effort and never changes the result.
func (s *Service) HandleWebhook(ctx context.Context, evt WebhookEvent) (*WebhookResult, error) {
	if evt.Data.ReferenceID == "" {
		return nil, badRequest("Missing reference_id")
	}

	target := StatusForEvent(evt.Event)
	logger := s.logger.With(
		zap.String("order_id", evt.Data.ReferenceID),
		zap.String("event", evt.Event),
		zap.String("payment_request_id", evt.Data.PaymentRequestID))

	order, err := s.settle(ctx, evt.Data.ReferenceID, target)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			logger.Warn("Webhook for unknown order")
			return nil, notFound("Order not found")
		}
		logger.Error("Failed to update order status", zap.Error(err))
		return nil, internalError(err.Error())
	}

	if order.Status != target {
		logger.Info("Order already settled, status left unchanged",
			zap.String("status", string(order.Status)),
			zap.String("requested_status", string(target)))
	} else {
		logger.Info("Order status updated", zap.String("status", string(order.Status)))
	}

	s.notifyOwner(ctx, order, target)

	return &WebhookResult{OrderID: order.ID, Status: order.Status}, nil
}

func (s *Service) settle(ctx context.Context, orderID string, target models.OrderStatus) (*models.Order, error) {
	order, err := s.orders.UpdateStatus(ctx, orderID, target)
	if err != nil {
		return nil, err
	}
	if order.Status == target && target.IsTerminal() {
		s.publish(ctx, events.TypeOrderSettled, order)
	}
	return order, nil
}

// notifyOwner resolves the owner's email and, for a completed payment, sends
// the user and admin emails independently. Failures are logged only.
func (s *Service) notifyOwner(ctx context.Context, order *models.Order, target models.OrderStatus) {
	logger := s.logger.With(zap.String("order_id", order.ID))

	email, err := s.users.EmailFor(ctx, order.UserID)
	if err != nil {
		logger.Warn("Could not resolve order owner email", zap.String("user_id", order.UserID), zap.Error(err))
		email = ""
	}

	if target != models.OrderStatusCompleted || order.Status != models.OrderStatusCompleted || email == "" {
		return
	}

	first, err := s.guard.FirstNotification(ctx, order.ID)
	if err != nil {
		logger.Warn("Notification guard unavailable, sending anyway", zap.Error(err))
	} else if !first {
		logger.Info("Booking emails already sent for order, skipping")
		return
	}

	summary := summaryFor(order, email)
	if err := s.notifier.PaymentSucceeded(ctx, email, summary); err != nil {
		logger.Error("Failed to send payment confirmation email", zap.Error(err))
	}
	if err := s.notifier.AdminBookingNotification(ctx, summary); err != nil {
		logger.Error("Failed to send admin booking notification", zap.Error(err))
	}
}

func summaryFor(order *models.Order, email string) notify.OrderSummary {
	summary := notify.OrderSummary{
		OrderID:       order.ID,
		TripDate:      order.TripDate,
		AmountIDR:     order.AmountIDR,
		ChannelCode:   order.ChannelCode,
		CustomerEmail: email,
	}
	if order.Trip != nil {
		summary.TripName = order.Trip.Name
		summary.MeetingPoint = order.Trip.MeetingPoint
	}
	if guests, err := order.Guests(); err == nil {
		summary.Guests = guests
	}
	return summary
}
