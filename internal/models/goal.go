package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Goal is a weight target over a date range. IsSuccess stays nil until an
// outcome is recorded; goals are never updated in place.
type Goal struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID         uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	StartDate      datatypes.Date `gorm:"not null" json:"start_date"`
	EndDate        datatypes.Date `gorm:"not null" json:"end_date"`
	ActualWeightKG float64        `gorm:"type:numeric(5,1);not null" json:"actual_weight_kg"`
	TargetWeightKG float64        `gorm:"type:numeric(5,1);not null" json:"target_weight_kg"`
	IsSuccess      *bool          `json:"is_success"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	User           User           `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
