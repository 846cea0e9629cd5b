package models

import "time"

type User struct {
	ID        string `gorm:"type:text;primaryKey"`
	Email     string `gorm:"unique;not null"`
	CreatedAt time.Time
}
