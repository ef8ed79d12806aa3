package dto

import (
	"time"

	"github.com/google/uuid"
)

// ProfileRequest is the information board form. Older clients post the
// training frequency as "frequencies"; both names are accepted.
type ProfileRequest struct {
	Birthdate   string   `json:"birthdate" form:"birthdate"`
	Gender      string   `json:"gender" form:"gender"`
	Height      *float64 `json:"height" form:"height"`
	Weight      *float64 `json:"weight" form:"weight"`
	Level       string   `json:"level" form:"level"`
	Sport       string   `json:"sport" form:"sport"`
	Frequency   string   `json:"frequency" form:"frequency"`
	Frequencies string   `json:"frequencies" form:"frequencies"`
}

// TrainingFrequency resolves the frequency field, preferring the canonical name.
func (r *ProfileRequest) TrainingFrequency() string {
	if r.Frequency != "" {
		return r.Frequency
	}
	return r.Frequencies
}

type ProfileResponse struct {
	ID        uuid.UUID `json:"id"`
	Birthdate string    `json:"birthdate"`
	Gender    string    `json:"gender"`
	HeightCM  float64   `json:"height_cm"`
	WeightKG  float64   `json:"weight_kg"`
	Level     string    `json:"level"`
	Sport     string    `json:"sport"`
	Frequency string    `json:"frequency"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ProfileOptions struct {
	Genders     []string `json:"genders"`
	Levels      []string `json:"levels"`
	Frequencies []string `json:"frequencies"`
}

type InformationBoardResponse struct {
	Profile *ProfileResponse `json:"profile"`
	Options ProfileOptions   `json:"options"`
}
