package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"MealHub/internal/model"
)

// RecipeFilter 列表查询的过滤条件
type RecipeFilter struct {
	Difficulty  string
	CuisineType string
	Categories  []string
	Search      string
}

type RecipeRepo interface {
	CreateRecipe(ctx context.Context, recipe *model.Recipe) error
	GetRecipe(ctx context.Context, id uint64) (*model.Recipe, error)
	GetRecipeByIds(ctx context.Context, ids []uint64) ([]*model.Recipe, error)
	ListRecipes(ctx context.Context, filter RecipeFilter, limit, offset int) ([]*model.Recipe, int64, error)
	GetRecipesByAuthor(ctx context.Context, authorID uint64) ([]*model.Recipe, error)
	GetRandomRecipe(ctx context.Context) (*model.Recipe, error)
	GetTrendingRecipes(ctx context.Context, limit int) ([]*model.Recipe, error)
	UpdateRecipe(ctx context.Context, recipe *model.Recipe) error
	UpdateCounters(ctx context.Context, id uint64, likes, comments, views int) error
	UpdateTrendingScore(ctx context.Context, id uint64, score float64) error
	DeleteRecipe(ctx context.Context, id uint64) error
}

type RecipeRepoImpl struct {
	db *gorm.DB
}

func NewRecipeRepo(db *gorm.DB) RecipeRepo {
	return &RecipeRepoImpl{db: db}
}

func (s *RecipeRepoImpl) CreateRecipe(ctx context.Context, recipe *model.Recipe) error {
	return s.db.WithContext(ctx).Create(recipe).Error
}

func (s *RecipeRepoImpl) GetRecipe(ctx context.Context, id uint64) (*model.Recipe, error) {
	recipe := &model.Recipe{}
	result := s.db.WithContext(ctx).Preload("Author").First(recipe, id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return recipe, nil
}

func (s *RecipeRepoImpl) GetRecipeByIds(ctx context.Context, ids []uint64) ([]*model.Recipe, error) {
	recipes := make([]*model.Recipe, 0)
	err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

func (s *RecipeRepoImpl) ListRecipes(ctx context.Context, filter RecipeFilter, limit, offset int) ([]*model.Recipe, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.Recipe{})

	if filter.Difficulty != "" {
		query = query.Where("difficulty = ?", filter.Difficulty)
	}
	if filter.CuisineType != "" {
		query = query.Where("cuisine_type = ?", filter.CuisineType)
	}
	for _, category := range filter.Categories {
		query = query.Where("JSON_CONTAINS(categories, JSON_QUOTE(?))", category)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	recipes := make([]*model.Recipe, 0)
	err := query.Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&recipes).Error
	if err != nil {
		return nil, 0, err
	}

	return recipes, total, nil
}

func (s *RecipeRepoImpl) GetRecipesByAuthor(ctx context.Context, authorID uint64) ([]*model.Recipe, error) {
	recipes := make([]*model.Recipe, 0)
	err := s.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

func (s *RecipeRepoImpl) GetRandomRecipe(ctx context.Context) (*model.Recipe, error) {
	recipe := &model.Recipe{}
	result := s.db.WithContext(ctx).Order("RAND()").First(recipe)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return recipe, nil
}

// GetTrendingRecipes 返回热度分大于 0 的菜谱，分数相同时新菜谱在前
func (s *RecipeRepoImpl) GetTrendingRecipes(ctx context.Context, limit int) ([]*model.Recipe, error) {
	recipes := make([]*model.Recipe, 0)
	err := s.db.WithContext(ctx).
		Where("trending_score > ?", 0).
		Order("trending_score DESC, created_at DESC").
		Limit(limit).
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

func (s *RecipeRepoImpl) UpdateRecipe(ctx context.Context, recipe *model.Recipe) error {
	return s.db.WithContext(ctx).Updates(recipe).Error
}

func (s *RecipeRepoImpl) UpdateCounters(ctx context.Context, id uint64, likes, comments, views int) error {
	return s.db.WithContext(ctx).Model(&model.Recipe{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"likes_count":    likes,
			"comments_count": comments,
			"views_count":    views,
		}).Error
}

func (s *RecipeRepoImpl) UpdateTrendingScore(ctx context.Context, id uint64, score float64) error {
	return s.db.WithContext(ctx).Model(&model.Recipe{}).
		Where("id = ?", id).
		Update("trending_score", score).Error
}

func (s *RecipeRepoImpl) DeleteRecipe(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&model.RecipeLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&model.RecipeView{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Recipe{}, id).Error
	})
}
