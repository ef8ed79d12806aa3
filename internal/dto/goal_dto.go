package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateGoalRequest is accepted both as JSON and as a urlencoded form.
// Any is_success sent by the client is ignored.
type CreateGoalRequest struct {
	StartDate    string   `json:"start_date" form:"start_date"`
	EndDate      string   `json:"end_date" form:"end_date"`
	ActualWeight *float64 `json:"actual_weight" form:"actual_weight"`
	TargetWeight *float64 `json:"target_weight" form:"target_weight"`
}

type GoalResponse struct {
	ID              uuid.UUID `json:"id"`
	StartDate       string    `json:"start_date"`
	EndDate         string    `json:"end_date"`
	ActualWeightKG  float64   `json:"actual_weight_kg"`
	TargetWeightKG  float64   `json:"target_weight_kg"`
	IsSuccess       *bool     `json:"is_success"`
	CreatedAt       time.Time `json:"created_at"`
	Status          string    `json:"status"`
	StatusLabel     string    `json:"status_label"`
	ProgressPercent int       `json:"progress_percent"`
	DaysRemaining   int       `json:"days_remaining"`
	DurationDays    int       `json:"duration_days"`
	WeightToLoseKG  float64   `json:"weight_to_lose_kg"`
}

type GoalListResponse struct {
	Goals []GoalResponse `json:"goals"`
	Count int            `json:"count"`
	Today string         `json:"today"`
}
