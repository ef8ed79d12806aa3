package services

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ahmetcoskunkizilkaya/fittrack-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/fittrack-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/fittrack-backend/internal/monitoring"
	"github.com/ahmetcoskunkizilkaya/fittrack-backend/internal/repository"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	minHeightCM    = 50.0
	maxHeightCM    = 272.0
	minBodyKG      = 20.0
	maxSportLength = 100
)

var earliestBirthdate = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

type ProfileStore interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error)
	Upsert(ctx context.Context, profile *models.UserProfile) (*models.UserProfile, error)
}

type ProfileInput struct {
	Birthdate string
	Gender    string
	HeightCM  *float64
	WeightKG  *float64
	Level     string
	Sport     string
	Frequency string
}

type ProfileService struct {
	repo     ProfileStore
	location *time.Location
	now      func() time.Time
}

func NewProfileService(repo ProfileStore, location *time.Location) *ProfileService {
	if location == nil {
		location = time.UTC
	}
	return &ProfileService{repo: repo, location: location, now: time.Now}
}

func (s *ProfileService) WithClock(now func() time.Time) *ProfileService {
	s.now = now
	return s
}

// Options lists the values accepted by the enumerated profile fields.
func (s *ProfileService) Options() dto.ProfileOptions {
	return dto.ProfileOptions{
		Genders:     models.Genders,
		Levels:      models.Levels,
		Frequencies: models.Frequencies,
	}
}

// Get returns the user's profile, or nil when none was stored yet.
func (s *ProfileService) Get(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	profile, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return profile, nil
}

// Upsert creates the user's profile or replaces every field of the existing one.
func (s *ProfileService) Upsert(ctx context.Context, userID uuid.UUID, in ProfileInput) (*models.UserProfile, error) {
	var errs ValidationErrors

	today := dateOnly(s.now().In(s.location))
	birthdate, ok := parseDate(&errs, "birthdate", strings.TrimSpace(in.Birthdate))
	if ok {
		switch {
		case birthdate.After(today):
			errs.add("birthdate", "birthdate cannot be in the future")
		case birthdate.Before(earliestBirthdate):
			errs.add("birthdate", "birthdate must be on or after 1900-01-01")
		}
	}

	gender := normalizeChoice(in.Gender)
	checkChoice(&errs, "gender", gender, models.Genders)
	height := roundTenth(in.HeightCM)
	weight := roundTenth(in.WeightKG)
	checkRange(&errs, "height", height, minHeightCM, maxHeightCM, "cm")
	checkRange(&errs, "weight", weight, minBodyKG, maxWeightKG, "kg")

	level := normalizeChoice(in.Level)
	checkChoice(&errs, "level", level, models.Levels)

	sport := strings.TrimSpace(in.Sport)
	switch {
	case sport == "":
		errs.add("sport", "sport is required")
	case utf8.RuneCountInString(sport) > maxSportLength:
		errs.add("sport", "sport must be at most 100 characters")
	}

	frequency := normalizeChoice(in.Frequency)
	checkChoice(&errs, "frequency", frequency, models.Frequencies)

	if len(errs) > 0 {
		monitoring.ValidationFailures.WithLabelValues("profile").Inc()
		return nil, errs
	}

	profile, err := s.repo.Upsert(ctx, &models.UserProfile{
		UserID:    userID,
		Birthdate: datatypes.Date(birthdate),
		Gender:    gender,
		HeightCM:  *height,
		WeightKG:  *weight,
		Level:     level,
		Sport:     sport,
		Frequency: frequency,
	})
	if err != nil {
		return nil, err
	}

	monitoring.ProfileUpserts.Inc()
	return profile, nil
}

func normalizeChoice(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func checkChoice(errs *ValidationErrors, field, value string, allowed []string) {
	if value == "" {
		errs.add(field, field+" is required")
		return
	}
	if !slices.Contains(allowed, value) {
		errs.add(field, field+" must be one of: "+strings.Join(allowed, ", "))
	}
}
