package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/farellandr/vakansik/internal/events"
	"github.com/farellandr/vakansik/internal/gateway"
	"github.com/farellandr/vakansik/internal/models"
	"github.com/farellandr/vakansik/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// CreatePaymentInput is the booking request sent by the mobile client.
// UserID is taken from the body as-is: the caller is a mobile client that
// already holds a verified session, and this endpoint does not re-verify it.
type CreatePaymentInput struct {
	TripID        string          `json:"trip_id"`
	TripDate      string          `json:"trip_date"`
	JoinedUsers   json.RawMessage `json:"joined_users"`
	PaymentNumber string          `json:"payment_number"`
	PaymentMethod string          `json:"payment_method"`
	UserID        string          `json:"user_id"`
}

type CreatePaymentResult struct {
	OrderID string
	// Response is the gateway's response body with order_id added.
	Response map[string]interface{}
}

// guestCount reports how many entries a joined_users payload holds. Anything
// that is not a JSON array counts as empty.
func guestCount(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}
	var guests []json.RawMessage
	if err := json.Unmarshal(raw, &guests); err != nil {
		return 0
	}
	return len(guests)
}

func (s *Service) CreatePaymentRequest(ctx context.Context, in CreatePaymentInput) (*CreatePaymentResult, error) {
	if in.UserID == "" {
		return nil, badRequest("Missing user_id")
	}
	if in.TripID == "" || in.TripDate == "" || guestCount(in.JoinedUsers) == 0 {
		return nil, badRequest("Missing required fields")
	}

	trip, err := s.trips.GetPricing(ctx, in.TripID)
	if err != nil {
		if errors.Is(err, repository.ErrTripNotFound) {
			return nil, notFound("Trip not found")
		}
		s.logger.Error("Failed to look up trip", zap.String("trip_id", in.TripID), zap.Error(err))
		return nil, internalError(err.Error())
	}

	channelCode := ChannelCodeFor(in.PaymentMethod)
	amount := trip.AmountIDR()

	order := &models.Order{
		ID:          uuid.NewString(),
		UserID:      in.UserID,
		TripID:      in.TripID,
		TripDate:    in.TripDate,
		AmountIDR:   amount,
		Status:      models.OrderStatusPending,
		ChannelCode: channelCode,
		JoinedUsers: datatypes.JSON(in.JoinedUsers),
	}
	if err := s.orders.Create(ctx, order); err != nil {
		s.logger.Error("Failed to create order", zap.String("trip_id", in.TripID), zap.Error(err))
		return nil, internalError(fmt.Sprintf("Failed to create order: %v", err))
	}
	s.publish(ctx, events.TypeOrderCreated, order)

	logger := s.logger.With(zap.String("order_id", order.ID), zap.String("channel_code", channelCode))

	payReq := gateway.NewPayRequest(order.ID, amount, channelCode, s.channelProperties(channelCode, in.PaymentNumber))
	payReq.Description = trip.Name

	resp, err := s.gateway.CreatePaymentRequest(ctx, payReq)
	if err != nil {
		logger.Error("Payment gateway unreachable", zap.Error(err))
		s.recordFailure(ctx, order, err.Error())
		return nil, &RequestError{Status: http.StatusBadGateway, Message: "Failed to reach payment gateway"}
	}

	if !resp.OK() {
		body := string(resp.Body)
		logger.Warn("Payment gateway rejected request",
			zap.Int("status", resp.StatusCode),
			zap.String("body", body))
		errorMessage := body
		if errorMessage == "" {
			errorMessage = fmt.Sprintf("payment gateway returned %d", resp.StatusCode)
		}
		s.recordFailure(ctx, order, errorMessage)
		return nil, &RequestError{Status: resp.StatusCode, Message: body}
	}

	var body map[string]interface{}
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		logger.Error("Failed to parse payment gateway response", zap.Error(err))
		return nil, internalError("Failed to parse payment response.")
	}

	if paymentRequestID, _ := body["payment_request_id"].(string); paymentRequestID != "" {
		if err := s.orders.AttachPaymentRequest(ctx, order.ID, paymentRequestID, resp.Body); err != nil {
			logger.Warn("Failed to attach payment request to order",
				zap.String("payment_request_id", paymentRequestID),
				zap.Error(err))
		} else {
			order.PaymentRequestID = &paymentRequestID
			order.XenditResponse = datatypes.JSON(resp.Body)
		}
	}

	logger.Info("Payment request created", zap.Int64("amount_idr", amount))

	body["order_id"] = order.ID
	return &CreatePaymentResult{OrderID: order.ID, Response: body}, nil
}

func (s *Service) recordFailure(ctx context.Context, order *models.Order, errorMessage string) {
	if err := s.orders.MarkFailed(ctx, order.ID, errorMessage); err != nil {
		s.logger.Error("Failed to mark order as failed", zap.String("order_id", order.ID), zap.Error(err))
		return
	}
	order.Status = models.OrderStatusFailed
	order.ErrorMessage = &errorMessage
	s.publish(ctx, events.TypeOrderFailed, order)
}
