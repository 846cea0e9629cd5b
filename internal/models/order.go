package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusFailed    OrderStatus = "FAILED"
	OrderStatusExpired   OrderStatus = "EXPIRED"
)

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusFailed || s == OrderStatusExpired
}

type JoinedUser struct {
	Name         string `json:"name"`
	PhoneNumber  string `json:"phone_number"`
	IDCardNumber string `json:"id_card_number,omitempty"`
}

type Order struct {
	ID               string         `gorm:"type:text;primaryKey" json:"id"`
	UserID           string         `gorm:"type:text;not null;index" json:"user_id"`
	TripID           string         `gorm:"type:text;not null;index" json:"trip_id"`
	Trip             *Trip          `gorm:"foreignKey:TripID" json:"trip,omitempty"`
	TripDate         string         `gorm:"type:text;not null" json:"trip_date"`
	AmountIDR        int64          `gorm:"column:amount_idr;not null" json:"amount_idr"`
	Status           OrderStatus    `gorm:"type:text;not null;default:'PENDING'" json:"status"`
	ChannelCode      string         `gorm:"type:text;not null" json:"channel_code"`
	JoinedUsers      datatypes.JSON `gorm:"type:jsonb;not null" json:"joined_users"`
	PaymentRequestID *string        `gorm:"type:text" json:"payment_request_id,omitempty"`
	XenditResponse   datatypes.JSON `gorm:"type:jsonb" json:"xendit_response,omitempty"`
	ErrorMessage     *string        `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

func (order *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	return
}

// Guests decodes the stored guest list. Entries that do not match the
// JoinedUser shape decode to their zero fields rather than failing.
func (order *Order) Guests() ([]JoinedUser, error) {
	if len(order.JoinedUsers) == 0 {
		return nil, nil
	}
	var guests []JoinedUser
	if err := json.Unmarshal(order.JoinedUsers, &guests); err != nil {
		return nil, err
	}
	return guests, nil
}
