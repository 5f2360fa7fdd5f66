package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"MealHub/internal/model"
)

type ProgressRepo interface {
	UpsertProgress(ctx context.Context, progress *model.UserProgress, updateColumns []string) error
	GetProgress(ctx context.Context, userID, recipeID uint64) (*model.UserProgress, error)
	GetProgressByUserID(ctx context.Context, userID uint64) ([]*model.UserProgress, error)
	UpdateProgress(ctx context.Context, progress *model.UserProgress) error
}

type ProgressRepoImpl struct {
	db *gorm.DB
}

func NewProgressRepo(db *gorm.DB) ProgressRepo {
	return &ProgressRepoImpl{db: db}
}

func (s *ProgressRepoImpl) UpsertProgress(ctx context.Context, progress *model.UserProgress, updateColumns []string) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "recipe_id"}},
		DoUpdates: clause.AssignmentColumns(updateColumns),
	}).Create(progress).Error
}

func (s *ProgressRepoImpl) GetProgress(ctx context.Context, userID, recipeID uint64) (*model.UserProgress, error) {
	progress := &model.UserProgress{}
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		First(progress)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return progress, nil
}

func (s *ProgressRepoImpl) GetProgressByUserID(ctx context.Context, userID uint64) ([]*model.UserProgress, error) {
	progresses := make([]*model.UserProgress, 0)
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("started_at DESC").
		Find(&progresses).Error
	if err != nil {
		return nil, err
	}
	return progresses, nil
}

func (s *ProgressRepoImpl) UpdateProgress(ctx context.Context, progress *model.UserProgress) error {
	return s.db.WithContext(ctx).Updates(progress).Error
}
