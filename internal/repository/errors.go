package repository

import "errors"

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrTripNotFound  = errors.New("trip not found")
	ErrUserNotFound  = errors.New("user not found")
)
