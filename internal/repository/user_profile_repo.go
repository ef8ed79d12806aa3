package repository

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/fittrack-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/fittrack-backend/internal/session"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Columns overwritten when a profile already exists for the user.
var profileUpsertColumns = []string{
	"birthdate",
	"gender",
	"height_cm",
	"weight_kg",
	"level",
	"sport",
	"frequency",
	"updated_at",
}

type UserProfileRepository struct {
	db *gorm.DB
}

func NewUserProfileRepository(db *gorm.DB) *UserProfileRepository {
	return &UserProfileRepository{db: db}
}

func (r *UserProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := r.db.WithContext(ctx).Scopes(session.ForUser(userID)).First(&profile).Error; err != nil {
		return nil, translate(err)
	}
	return &profile, nil
}

// Upsert inserts the profile or replaces every field of the existing row for
// the same user in a single statement.
func (r *UserProfileRepository) Upsert(ctx context.Context, profile *models.UserProfile) (*models.UserProfile, error) {
	profile.ID = uuid.New()
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns(profileUpsertColumns),
	}).Create(profile).Error
	if err != nil {
		return nil, err
	}
	return r.GetByUserID(ctx, profile.UserID)
}
