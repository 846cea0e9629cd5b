package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/farellandr/vakansik/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) EmailFor(ctx context.Context, userID string) (string, error) {
	var user models.User
	err := r.db.WithContext(ctx).Select("id", "email").First(&user, "id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("failed to get user %s: %w", userID, err)
	}
	if user.Email == "" {
		return "", ErrUserNotFound
	}
	return user.Email, nil
}
