package repository

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/fittrack-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/fittrack-backend/internal/session"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GoalRepository struct {
	db *gorm.DB
}

func NewGoalRepository(db *gorm.DB) *GoalRepository {
	return &GoalRepository{db: db}
}

func (r *GoalRepository) Create(ctx context.Context, goal *models.Goal) error {
	return r.db.WithContext(ctx).Create(goal).Error
}

// ListByUserID returns the user's goals, most recent start date first.
func (r *GoalRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]models.Goal, error) {
	var goals []models.Goal
	err := r.db.WithContext(ctx).
		Scopes(session.ForUser(userID)).
		Order("start_date DESC, created_at DESC").
		Find(&goals).Error
	return goals, err
}

func (r *GoalRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Goal, error) {
	var goal models.Goal
	if err := r.db.WithContext(ctx).First(&goal, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &goal, nil
}

func (r *GoalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Goal{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
