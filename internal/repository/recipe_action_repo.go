package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"MealHub/internal/model"
)

type RecipeActionRepo interface {
	CreateLike(ctx context.Context, like *model.RecipeLike) error
	DeleteLike(ctx context.Context, userID, recipeID uint64) error
	CheckLikeExists(ctx context.Context, userID, recipeID uint64) (bool, error)

	CreateView(ctx context.Context, view *model.RecipeView) error
	CheckViewExists(ctx context.Context, userID, recipeID uint64) (bool, error)

	CreateComment(ctx context.Context, comment *model.Comment) error
	GetCommentByID(ctx context.Context, commentID uint64) (*model.Comment, error)
	GetCommentsByRecipeID(ctx context.Context, recipeID uint64, limit, offset int) ([]*model.Comment, error)
	DeleteComment(ctx context.Context, commentID uint64) error

	GetLikeCountByRecipeID(ctx context.Context, recipeID uint64) (int64, error)
	GetViewCountByRecipeID(ctx context.Context, recipeID uint64) (int64, error)
	GetCommentCountByRecipeID(ctx context.Context, recipeID uint64) (int64, error)
}

type RecipeActionRepoImpl struct {
	db *gorm.DB
}

func NewRecipeActionRepo(db *gorm.DB) RecipeActionRepo {
	return &RecipeActionRepoImpl{db}
}

func (s *RecipeActionRepoImpl) CreateLike(ctx context.Context, like *model.RecipeLike) error {
	return s.db.WithContext(ctx).Create(like).Error
}

func (s *RecipeActionRepoImpl) DeleteLike(ctx context.Context, userID, recipeID uint64) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&model.RecipeLike{}).Error
}

func (s *RecipeActionRepoImpl) CheckLikeExists(ctx context.Context, userID, recipeID uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.RecipeLike{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	return count > 0, err
}

func (s *RecipeActionRepoImpl) CreateView(ctx context.Context, view *model.RecipeView) error {
	return s.db.WithContext(ctx).Create(view).Error
}

func (s *RecipeActionRepoImpl) CheckViewExists(ctx context.Context, userID, recipeID uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.RecipeView{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	return count > 0, err
}

func (s *RecipeActionRepoImpl) CreateComment(ctx context.Context, comment *model.Comment) error {
	return s.db.WithContext(ctx).Create(comment).Error
}

func (s *RecipeActionRepoImpl) GetCommentByID(ctx context.Context, commentID uint64) (*model.Comment, error) {
	comment := &model.Comment{}
	result := s.db.WithContext(ctx).First(comment, commentID)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return comment, nil
}

// GetCommentsByRecipeID 分页获取菜谱的评论，新评论在前
func (s *RecipeActionRepoImpl) GetCommentsByRecipeID(ctx context.Context, recipeID uint64, limit, offset int) ([]*model.Comment, error) {
	comments := make([]*model.Comment, 0)
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("recipe_id = ?", recipeID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&comments).Error
	return comments, err
}

func (s *RecipeActionRepoImpl) DeleteComment(ctx context.Context, commentID uint64) error {
	return s.db.WithContext(ctx).Delete(&model.Comment{}, commentID).Error
}

func (s *RecipeActionRepoImpl) GetLikeCountByRecipeID(ctx context.Context, recipeID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.RecipeLike{}).
		Where("recipe_id = ?", recipeID).
		Count(&count).Error
	return count, err
}

func (s *RecipeActionRepoImpl) GetViewCountByRecipeID(ctx context.Context, recipeID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.RecipeView{}).
		Where("recipe_id = ?", recipeID).
		Count(&count).Error
	return count, err
}

func (s *RecipeActionRepoImpl) GetCommentCountByRecipeID(ctx context.Context, recipeID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Comment{}).
		Where("recipe_id = ?", recipeID).
		Count(&count).Error
	return count, err
}
