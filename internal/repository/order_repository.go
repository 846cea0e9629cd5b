package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/farellandr/vakansik/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

// MarkFailed records a gateway rejection. Only a PENDING order can fail this way.
func (r *OrderRepository) MarkFailed(ctx context.Context, id, errorMessage string) error {
	res := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND status = ?", id, string(models.OrderStatusPending)).
		Updates(map[string]interface{}{
			"status":        string(models.OrderStatusFailed),
			"error_message": errorMessage,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to mark order %s as failed: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order %s is no longer pending: %w", id, ErrOrderNotFound)
	}
	return nil
}

func (r *OrderRepository) AttachPaymentRequest(ctx context.Context, id, paymentRequestID string, rawResponse []byte) error {
	res := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"payment_request_id": paymentRequestID,
			"xendit_response":    datatypes.JSON(rawResponse),
		})
	if res.Error != nil {
		return fmt.Errorf("failed to attach payment request to order %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// UpdateStatus moves the order to target and returns it with its trip loaded.
// The write only applies while the order is PENDING or already at target, so a
// terminal order is never moved elsewhere; the returned order carries whatever
// status the row ends up with.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, target models.OrderStatus) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		allowed := []string{string(models.OrderStatusPending), string(target)}
		if err := tx.Model(&models.Order{}).
			Where("id = ? AND status IN ?", id, allowed).
			Update("status", string(target)).Error; err != nil {
			return fmt.Errorf("failed to update order %s status: %w", id, err)
		}

		if err := tx.Preload("Trip").First(&order, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return fmt.Errorf("failed to load order %s: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) Get(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).Preload("Trip").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order %s: %w", id, err)
	}
	return &order, nil
}

// ListAwaitingSettlement returns PENDING orders the gateway accepted before
// createdBefore, oldest first.
func (r *OrderRepository) ListAwaitingSettlement(ctx context.Context, createdBefore time.Time, limit int) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Where("status = ? AND payment_request_id IS NOT NULL AND created_at < ?", string(models.OrderStatusPending), createdBefore).
		Order("created_at ASC").
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pending orders: %w", err)
	}
	return orders, nil
}
