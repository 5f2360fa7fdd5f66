package service

import (
	"context"
	log "log/slog"
	"time"

	"github.com/goccy/go-json"

	"MealHub/internal/api/config"
	"MealHub/internal/api/dto"
	"MealHub/internal/pkg/consts"
	"MealHub/internal/pkg/redis"
	"MealHub/internal/repository"
)

const trendingCacheExpiration = 5 * time.Minute

type TrendingService interface {
	ComputeScore(likes, comments, views int, createdAt, now time.Time) float64
	RecomputeRecipe(ctx context.Context, recipeID uint64) error
	GetTrendingRecipes(ctx context.Context, limit int) ([]*dto.RecipeDTO, error)
}

type trendingServiceImpl struct {
	recipeRepo repository.RecipeRepo
	actionRepo repository.RecipeActionRepo
}

func NewTrendingService(recipeRepo repository.RecipeRepo, actionRepo repository.RecipeActionRepo) TrendingService {
	return &trendingServiceImpl{
		recipeRepo: recipeRepo,
		actionRepo: actionRepo,
	}
}

// ComputeScore 计算热度分：互动分乘以时间衰减因子
func (s *trendingServiceImpl) ComputeScore(likes, comments, views int, createdAt, now time.Time) float64 {
	cfg := config.Cfg.Trending

	ageInDays := now.Sub(createdAt).Hours() / 24
	if ageInDays < 0 {
		ageInDays = 0
	}

	ageFactor := 1 - ageInDays/float64(cfg.DecayDays)
	if ageFactor < cfg.MinAgeFactor {
		ageFactor = cfg.MinAgeFactor
	}

	interactionScore := float64(likes)*cfg.LikeWeight +
		float64(comments)*cfg.CommentWeight +
		float64(views)*cfg.ViewWeight

	return interactionScore * ageFactor
}

// RecomputeRecipe 重算单个菜谱的计数和热度分，菜谱不存在时静默跳过
func (s *trendingServiceImpl) RecomputeRecipe(ctx context.Context, recipeID uint64) error {
	recipe, err := s.recipeRepo.GetRecipe(ctx, recipeID)
	if err != nil {
		return err
	}
	if recipe == nil {
		log.DebugContext(ctx, "skip trending recompute, recipe missing", "recipeID", recipeID)
		return nil
	}

	likes, err := s.actionRepo.GetLikeCountByRecipeID(ctx, recipeID)
	if err != nil {
		return err
	}
	comments, err := s.actionRepo.GetCommentCountByRecipeID(ctx, recipeID)
	if err != nil {
		return err
	}
	views, err := s.actionRepo.GetViewCountByRecipeID(ctx, recipeID)
	if err != nil {
		return err
	}

	if err = s.recipeRepo.UpdateCounters(ctx, recipeID, int(likes), int(comments), int(views)); err != nil {
		return err
	}

	score := s.ComputeScore(int(likes), int(comments), int(views), recipe.CreatedAt, time.Now())
	if err = s.recipeRepo.UpdateTrendingScore(ctx, recipeID, score); err != nil {
		return err
	}

	_ = redis.DeleteKey(ctx, consts.TrendingRecipesKey)
	return nil
}

func (s *trendingServiceImpl) GetTrendingRecipes(ctx context.Context, limit int) ([]*dto.RecipeDTO, error) {
	value, err := redis.GetValue(ctx, consts.TrendingRecipesKey)
	if err == nil && value != "" {
		var cached []*dto.RecipeDTO
		if err = json.Unmarshal([]byte(value), &cached); err == nil {
			if len(cached) > limit {
				cached = cached[:limit]
			}
			return cached, nil
		}
	}

	recipes, err := s.recipeRepo.GetTrendingRecipes(ctx, limit)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.RecipeDTO, 0, len(recipes))
	for _, recipe := range recipes {
		result = append(result, convertToRecipeDTO(recipe))
	}

	if jsonStr, err := json.Marshal(result); err == nil {
		_ = redis.SetWithExpiration(ctx, consts.TrendingRecipesKey, string(jsonStr), trendingCacheExpiration)
	}

	return result, nil
}
