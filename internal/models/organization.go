package models

import (
	"time"

	"github.com/google/uuid"
)

type Organization struct {
	ID                 uuid.UUID  `json:"id" db:"id"`
	Name               string     `json:"name" db:"name"`
	Slug               string     `json:"slug" db:"slug"`
	IndustryType       string     `json:"industry_type" db:"industry_type"`
	Email              *string    `json:"email,omitempty" db:"email"`
	Phone              *string    `json:"phone,omitempty" db:"phone"`
	Timezone           string     `json:"timezone" db:"timezone"`
	SubscriptionStatus string     `json:"subscription_status" db:"subscription_status"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt          *time.Time `json:"-" db:"deleted_at"`
}
