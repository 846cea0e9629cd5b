package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/farellandr/vakansik/internal/models"
	"gorm.io/gorm"
)

type TripRepository struct {
	db *gorm.DB
}

func NewTripRepository(db *gorm.DB) *TripRepository {
	return &TripRepository{db: db}
}

// GetPricing loads only the columns needed to price a booking.
func (r *TripRepository) GetPricing(ctx context.Context, id string) (*models.Trip, error) {
	var trip models.Trip
	err := r.db.WithContext(ctx).Select("id", "price", "name").First(&trip, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTripNotFound
		}
		return nil, fmt.Errorf("failed to get trip %s: %w", id, err)
	}
	return &trip, nil
}
