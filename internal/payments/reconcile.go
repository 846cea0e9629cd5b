package payments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/farellandr/vakansik/internal/models"
	"go.uber.org/zap"
)

type ReconcileReport struct {
	Checked int
	Settled int
	Failed  int
}

// Reconcile asks the gateway about PENDING orders whose payment request is
// older than olderThan and settles the ones the gateway has finished with,
// through the same forward-only write and emails the webhook uses. It covers
// webhooks that never arrived.
func (s *Service) Reconcile(ctx context.Context, olderThan time.Duration, limit int) (*ReconcileReport, error) {
	if s.statuses == nil {
		return nil, errors.New("payment status lookup is not configured")
	}

	orders, err := s.orders.ListAwaitingSettlement(ctx, time.Now().Add(-olderThan), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders awaiting settlement: %w", err)
	}

	report := &ReconcileReport{}
	for _, order := range orders {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Checked++

		logger := s.logger.With(zap.String("order_id", order.ID))
		if order.PaymentRequestID == nil {
			continue
		}

		state, err := s.statuses.PaymentRequestStatus(ctx, *order.PaymentRequestID)
		if err != nil {
			report.Failed++
			logger.Warn("Failed to fetch payment request status", zap.Error(err))
			continue
		}

		target := StatusForGatewayState(state)
		if target == models.OrderStatusPending {
			continue
		}

		settled, err := s.settle(ctx, order.ID, target)
		if err != nil {
			report.Failed++
			logger.Error("Failed to settle order", zap.Error(err))
			continue
		}
		if settled.Status != target {
			continue
		}

		report.Settled++
		logger.Info("Order settled by reconciliation",
			zap.String("gateway_state", state),
			zap.String("status", string(settled.Status)))
		s.notifyOwner(ctx, settled, target)
	}

	return report, nil
}
