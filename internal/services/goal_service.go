package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/ahmetcoskunkizilkaya/fittrack-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/fittrack-backend/internal/monitoring"
	"github.com/ahmetcoskunkizilkaya/fittrack-backend/internal/repository"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	DateLayout  = "2006-01-02"
	maxWeightKG = 500.0
)

type GoalStore interface {
	Create(ctx context.Context, goal *models.Goal) error
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]models.Goal, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Goal, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type CreateGoalInput struct {
	StartDate      string
	EndDate        string
	ActualWeightKG *float64
	TargetWeightKG *float64
}

// GoalWithProgress pairs a stored goal with its derived display values.
type GoalWithProgress struct {
	Goal     models.Goal
	Progress GoalProgress
}

type GoalService struct {
	repo     GoalStore
	location *time.Location
	now      func() time.Time
}

func NewGoalService(repo GoalStore, location *time.Location) *GoalService {
	if location == nil {
		location = time.UTC
	}
	return &GoalService{repo: repo, location: location, now: time.Now}
}

// WithClock replaces the time source used to compute "today".
func (s *GoalService) WithClock(now func() time.Time) *GoalService {
	s.now = now
	return s
}

// Today is the current calendar date in the configured location.
func (s *GoalService) Today() time.Time {
	return dateOnly(s.now().In(s.location))
}

// Create stores a new goal owned by userID. The outcome always starts undetermined.
func (s *GoalService) Create(ctx context.Context, userID uuid.UUID, in CreateGoalInput) (*models.Goal, error) {
	var errs ValidationErrors

	start, startOK := parseDate(&errs, "start_date", in.StartDate)
	end, endOK := parseDate(&errs, "end_date", in.EndDate)
	if startOK && endOK && !end.After(start) {
		errs.add("end_date", "end_date must be after start_date")
	}
	actual := roundTenth(in.ActualWeightKG)
	target := roundTenth(in.TargetWeightKG)
	checkWeight(&errs, "actual_weight", actual)
	checkWeight(&errs, "target_weight", target)

	if len(errs) > 0 {
		monitoring.ValidationFailures.WithLabelValues("goal").Inc()
		return nil, errs
	}

	goal := models.Goal{
		ID:             uuid.New(),
		UserID:         userID,
		StartDate:      datatypes.Date(start),
		EndDate:        datatypes.Date(end),
		ActualWeightKG: *actual,
		TargetWeightKG: *target,
		IsSuccess:      nil,
	}

	if err := s.repo.Create(ctx, &goal); err != nil {
		return nil, err
	}

	monitoring.GoalsCreated.Inc()
	return &goal, nil
}

func (s *GoalService) List(ctx context.Context, userID uuid.UUID) ([]GoalWithProgress, error) {
	goals, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := s.Today()
	result := make([]GoalWithProgress, 0, len(goals))
	for i := range goals {
		result = append(result, GoalWithProgress{
			Goal:     goals[i],
			Progress: EvaluateGoal(&goals[i], today),
		})
	}
	return result, nil
}

// Delete removes a goal after checking that userID owns it.
func (s *GoalService) Delete(ctx context.Context, userID uuid.UUID, goalID uuid.UUID) error {
	goal, err := s.repo.GetByID(ctx, goalID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrGoalNotFound
		}
		return err
	}

	if goal.UserID != userID {
		return ErrNotOwner
	}

	if err := s.repo.Delete(ctx, goalID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrGoalNotFound
		}
		return err
	}

	monitoring.GoalsDeleted.Inc()
	return nil
}

func parseDate(errs *ValidationErrors, field, value string) (time.Time, bool) {
	if value == "" {
		errs.add(field, field+" is required")
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		errs.add(field, field+" must be a date formatted as YYYY-MM-DD")
		return time.Time{}, false
	}
	return t, true
}

// checkWeight requires a value in (0, maxWeightKG].
func checkWeight(errs *ValidationErrors, field string, value *float64) {
	switch {
	case value == nil:
		errs.add(field, field+" is required")
	case !isFinite(*value):
		errs.add(field, field+" must be a number")
	case *value <= 0:
		errs.add(field, field+" must be greater than 0")
	case *value > maxWeightKG:
		errs.add(field, fmt.Sprintf("%s must not exceed %g kg", field, maxWeightKG))
	}
}

func checkRange(errs *ValidationErrors, field string, value *float64, min, max float64, unit string) {
	switch {
	case value == nil:
		errs.add(field, field+" is required")
	case !isFinite(*value):
		errs.add(field, field+" must be a number")
	case *value < min || *value > max:
		errs.add(field, fmt.Sprintf("%s must be between %g and %g %s", field, min, max, unit))
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// roundTenth matches the numeric(5,1) columns so what is returned equals what is stored.
func roundTenth(value *float64) *float64 {
	if value == nil {
		return nil
	}
	rounded := math.Round(*value*10) / 10
	return &rounded
}
