package models

import (
	"time"

	"gorm.io/gorm"
)

// Subscription is a newsletter signup. Email is unique; duplicate signups
// are rejected.
type Subscription struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Email        string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	SubscribedAt time.Time `json:"subscribedAt"`
	gorm.Model
}
