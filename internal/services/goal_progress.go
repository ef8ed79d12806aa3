package services

import (
	"math"
	"time"

	"github.com/ahmetcoskunkizilkaya/fittrack-backend/internal/models"
)

type GoalStatus string

const (
	GoalSuccess  GoalStatus = "success"
	GoalFailed   GoalStatus = "failed"
	GoalUpcoming GoalStatus = "upcoming"
	GoalExpired  GoalStatus = "expired"
	GoalActive   GoalStatus = "active"
)

var goalStatusLabels = map[GoalStatus]string{
	GoalSuccess:  "Achieved",
	GoalFailed:   "Failed",
	GoalUpcoming: "Upcoming",
	GoalExpired:  "Expired",
	GoalActive:   "In progress",
}

func (s GoalStatus) Label() string {
	return goalStatusLabels[s]
}

// GoalProgress is everything a goal card displays besides the stored fields.
// It is recomputed on every read and never persisted.
type GoalProgress struct {
	Status          GoalStatus `json:"status"`
	Label           string     `json:"label"`
	ProgressPercent int        `json:"progress_percent"`
	DaysRemaining   int        `json:"days_remaining"`
	DurationDays    int        `json:"duration_days"`
	WeightToLoseKG  float64    `json:"weight_to_lose_kg"`
}

func EvaluateGoal(goal *models.Goal, today time.Time) GoalProgress {
	status := DeriveStatus(goal, today)
	return GoalProgress{
		Status:          status,
		Label:           status.Label(),
		ProgressPercent: DeriveProgressPercent(goal, today),
		DaysRemaining:   DeriveDaysRemaining(goal, today),
		DurationDays:    daysBetween(startOf(goal), endOf(goal)),
		WeightToLoseKG:  math.Round((goal.ActualWeightKG-goal.TargetWeightKG)*10) / 10,
	}
}

// DeriveStatus classifies a goal. A recorded outcome wins over the dates.
func DeriveStatus(goal *models.Goal, today time.Time) GoalStatus {
	if goal.IsSuccess != nil {
		if *goal.IsSuccess {
			return GoalSuccess
		}
		return GoalFailed
	}

	day := dateOnly(today)
	switch {
	case day.Before(startOf(goal)):
		return GoalUpcoming
	case day.After(endOf(goal)):
		return GoalExpired
	default:
		return GoalActive
	}
}

// DeriveProgressPercent is the share of the goal window already elapsed,
// clamped to [0,100]. A zero-length window counts as complete once started.
func DeriveProgressPercent(goal *models.Goal, today time.Time) int {
	totalDays := daysBetween(startOf(goal), endOf(goal))
	daysPassed := daysBetween(startOf(goal), today)

	if daysPassed < 0 {
		return 0
	}
	if totalDays <= 0 || daysPassed > totalDays {
		return 100
	}
	return int(math.Round(100 * float64(daysPassed) / float64(totalDays)))
}

func DeriveDaysRemaining(goal *models.Goal, today time.Time) int {
	days := daysBetween(today, endOf(goal))
	if days < 0 {
		return 0
	}
	return days
}

func startOf(goal *models.Goal) time.Time {
	return dateOnly(time.Time(goal.StartDate))
}

func endOf(goal *models.Goal) time.Time {
	return dateOnly(time.Time(goal.EndDate))
}

// dateOnly returns the calendar date of t, read in t's location, as midnight UTC.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(dateOnly(to).Sub(dateOnly(from)).Hours() / 24)
}
