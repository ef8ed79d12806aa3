package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

const (
	LevelBeginner  = "beginner"
	LevelNovice    = "novice"
	LevelAdvanced  = "advanced"
	LevelConfirmed = "confirmed"
	LevelPro       = "pro"
)

// Weekly training sessions.
const (
	FrequencyOneToTwo    = "1-2"
	FrequencyTwoToThree  = "2-3"
	FrequencyThreeToFour = "3-4"
	FrequencyFivePlus    = "5+"
)

var (
	Genders     = []string{GenderMale, GenderFemale, GenderOther}
	Levels      = []string{LevelBeginner, LevelNovice, LevelAdvanced, LevelConfirmed, LevelPro}
	Frequencies = []string{FrequencyOneToTwo, FrequencyTwoToThree, FrequencyThreeToFour, FrequencyFivePlus}
)

// UserProfile holds the body and activity information of a user. There is at
// most one row per user.
type UserProfile struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Birthdate datatypes.Date `gorm:"not null" json:"birthdate"`
	Gender    string         `gorm:"size:10;not null" json:"gender"`
	HeightCM  float64        `gorm:"type:numeric(5,1);not null" json:"height_cm"`
	WeightKG  float64        `gorm:"type:numeric(5,1);not null" json:"weight_kg"`
	Level     string         `gorm:"size:20;not null" json:"level"`
	Sport     string         `gorm:"size:100;not null" json:"sport"`
	Frequency string         `gorm:"size:5;not null" json:"frequency"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	User      User           `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
