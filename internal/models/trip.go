package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trip is catalog data owned outside this service. Only the fields the
// payment flow reads are mapped.
type Trip struct {
	ID           string          `gorm:"type:text;primaryKey" json:"id"`
	Name         string          `gorm:"not null" json:"name"`
	MeetingPoint string          `gorm:"not null" json:"meeting_point"`
	Price        decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"price"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// AmountIDR is the catalog price in whole rupiah.
func (trip *Trip) AmountIDR() int64 {
	return trip.Price.Round(0).IntPart()
}
