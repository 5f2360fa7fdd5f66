package service

import (
	"context"
	"time"

	"MealHub/internal/api/dto"
	"MealHub/internal/model"
	"MealHub/internal/repository"
)

type ProgressService interface {
	StartCooking(ctx context.Context, userID, recipeID uint64) (*dto.ProgressDTO, error)
	CompleteCooking(ctx context.Context, userID, recipeID uint64, completeDTO *dto.CompleteCookingDTO) (*dto.ProgressDTO, error)
	AteMeal(ctx context.Context, userID, recipeID uint64, ateDTO *dto.AteMealDTO) (*dto.ProgressDTO, error)
	GetMyProgress(ctx context.Context, userID uint64) ([]*dto.ProgressDTO, error)
}

type ProgressServiceImpl struct {
	progressRepo repository.ProgressRepo
	recipeRepo   repository.RecipeRepo
	userRepo     repository.UserRepo
}

func NewProgressService(
	progressRepo repository.ProgressRepo,
	recipeRepo repository.RecipeRepo,
	userRepo repository.UserRepo,
) ProgressService {
	return &ProgressServiceImpl{
		progressRepo: progressRepo,
		recipeRepo:   recipeRepo,
		userRepo:     userRepo,
	}
}

// StartCooking 开始烹饪，重复开始会重置进度
func (s *ProgressServiceImpl) StartCooking(ctx context.Context, userID, recipeID uint64) (*dto.ProgressDTO, error) {
	if err := s.recipeCheck(ctx, recipeID); err != nil {
		return nil, err
	}

	progress := &model.UserProgress{
		UserID:           userID,
		RecipeID:         recipeID,
		CompletionStatus: "in_progress",
		StartedAt:        time.Now(),
	}
	err := s.progressRepo.UpsertProgress(ctx, progress, []string{"completion_status", "started_at"})
	if err != nil {
		return nil, err
	}

	saved, err := s.progressRepo.GetProgress(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}
	return convertToProgressDTO(saved), nil
}

// CompleteCooking 完成烹饪；didEat 为真且提供卡路里时累加到当日摄入
func (s *ProgressServiceImpl) CompleteCooking(ctx context.Context, userID, recipeID uint64, completeDTO *dto.CompleteCookingDTO) (*dto.ProgressDTO, error) {
	if err := s.recipeCheck(ctx, recipeID); err != nil {
		return nil, err
	}

	progress, err := s.progressRepo.GetProgress(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}
	if progress == nil {
		return nil, ErrProgressNotFound
	}

	now := time.Now()
	progress.CompletionStatus = "completed"
	progress.DidEat = completeDTO.DidEat
	progress.CompletedAt = &now

	if err = s.progressRepo.UpdateProgress(ctx, progress); err != nil {
		return nil, err
	}

	if completeDTO.DidEat && completeDTO.CaloriesConsumed > 0 {
		if err = s.userRepo.AddDailyCalories(ctx, userID, completeDTO.CaloriesConsumed); err != nil {
			return nil, err
		}
	}

	return convertToProgressDTO(progress), nil
}

// AteMeal 单独记录吃了这道菜，进度不存在时直接建为已完成
func (s *ProgressServiceImpl) AteMeal(ctx context.Context, userID, recipeID uint64, ateDTO *dto.AteMealDTO) (*dto.ProgressDTO, error) {
	if err := s.recipeCheck(ctx, recipeID); err != nil {
		return nil, err
	}

	progress := &model.UserProgress{
		UserID:           userID,
		RecipeID:         recipeID,
		CompletionStatus: "completed",
		DidEat:           true,
		StartedAt:        time.Now(),
	}
	err := s.progressRepo.UpsertProgress(ctx, progress, []string{"did_eat"})
	if err != nil {
		return nil, err
	}

	if ateDTO.CaloriesConsumed > 0 {
		if err = s.userRepo.AddDailyCalories(ctx, userID, ateDTO.CaloriesConsumed); err != nil {
			return nil, err
		}
	}

	saved, err := s.progressRepo.GetProgress(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}
	return convertToProgressDTO(saved), nil
}

func (s *ProgressServiceImpl) GetMyProgress(ctx context.Context, userID uint64) ([]*dto.ProgressDTO, error) {
	progresses, err := s.progressRepo.GetProgressByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ProgressDTO, 0, len(progresses))
	for _, progress := range progresses {
		result = append(result, convertToProgressDTO(progress))
	}
	return result, nil
}

func (s *ProgressServiceImpl) recipeCheck(ctx context.Context, recipeID uint64) error {
	recipes, err := s.recipeRepo.GetRecipeByIds(ctx, []uint64{recipeID})
	if err != nil {
		return err
	}
	if len(recipes) == 0 {
		return ErrRecipeNotFound
	}
	return nil
}

func convertToProgressDTO(progress *model.UserProgress) *dto.ProgressDTO {
	item := &dto.ProgressDTO{
		ID:               progress.ID,
		UserID:           progress.UserID,
		RecipeID:         progress.RecipeID,
		CompletionStatus: progress.CompletionStatus,
		DidEat:           progress.DidEat,
		StartedAt:        progress.StartedAt.Format(time.RFC3339),
	}
	if progress.CompletedAt != nil {
		item.CompletedAt = progress.CompletedAt.Format(time.RFC3339)
	}
	return item
}
