package service

import (
	"context"
	log "log/slog"
	"strings"
	"time"

	"github.com/jinzhu/copier"

	"MealHub/internal/api/dto"
	"MealHub/internal/model"
	"MealHub/internal/pkg/es"
	"MealHub/internal/repository"
)

type RecipeService interface {
	CreateRecipe(ctx context.Context, authorID uint64, createDTO *dto.CreateRecipeDTO) (*dto.RecipeDTO, error)
	GetRecipe(ctx context.Context, id uint64) (*dto.RecipeDTO, error)
	ListRecipes(ctx context.Context, query *dto.RecipeListQuery) (*dto.RecipeListDTO, error)
	GetMyRecipes(ctx context.Context, authorID uint64) ([]*dto.RecipeDTO, error)
	GetRandomRecipe(ctx context.Context) (*dto.RecipeDTO, error)
	SearchRecipes(ctx context.Context, keyword string, page, limit int) ([]*dto.RecipeDTO, error)
	UpdateRecipe(ctx context.Context, id, userID uint64, updateDTO *dto.UpdateRecipeDTO) (*dto.RecipeDTO, error)
	DeleteRecipe(ctx context.Context, id, userID uint64) error
}

type RecipeServiceImpl struct {
	recipeRepo repository.RecipeRepo
	searchRepo es.RecipeRepo
}

func NewRecipeService(recipeRepo repository.RecipeRepo, searchRepo es.RecipeRepo) RecipeService {
	return &RecipeServiceImpl{
		recipeRepo: recipeRepo,
		searchRepo: searchRepo,
	}
}

func (s *RecipeServiceImpl) CreateRecipe(ctx context.Context, authorID uint64, createDTO *dto.CreateRecipeDTO) (*dto.RecipeDTO, error) {
	recipe := &model.Recipe{}
	if err := copier.Copy(recipe, createDTO); err != nil {
		return nil, err
	}
	recipe.AuthorID = authorID
	if recipe.Servings == 0 {
		recipe.Servings = 1
	}

	if err := s.recipeRepo.CreateRecipe(ctx, recipe); err != nil {
		return nil, err
	}

	s.indexRecipe(ctx, recipe)
	return convertToRecipeDTO(recipe), nil
}

func (s *RecipeServiceImpl) GetRecipe(ctx context.Context, id uint64) (*dto.RecipeDTO, error) {
	recipe, err := s.recipeRepo.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, ErrRecipeNotFound
	}

	recipeDTO := convertToRecipeDTO(recipe)
	if recipe.Author.ID != 0 {
		recipeDTO.AuthorUsername = recipe.Author.Username
	}
	return recipeDTO, nil
}

func (s *RecipeServiceImpl) ListRecipes(ctx context.Context, query *dto.RecipeListQuery) (*dto.RecipeListDTO, error) {
	filter := repository.RecipeFilter{
		Difficulty:  query.Difficulty,
		CuisineType: query.CuisineType,
		Search:      query.Search,
	}
	if query.Categories != "" {
		filter.Categories = splitCategories(query.Categories)
	}

	page, limit := normalizePage(query.Page, query.Limit)
	recipes, total, err := s.recipeRepo.ListRecipes(ctx, filter, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.RecipeDTO, 0, len(recipes))
	for _, recipe := range recipes {
		result = append(result, convertToRecipeDTO(recipe))
	}

	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}

	return &dto.RecipeListDTO{
		Recipes: result,
		Pagination: &dto.PaginationDTO{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

func (s *RecipeServiceImpl) GetMyRecipes(ctx context.Context, authorID uint64) ([]*dto.RecipeDTO, error) {
	recipes, err := s.recipeRepo.GetRecipesByAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.RecipeDTO, 0, len(recipes))
	for _, recipe := range recipes {
		result = append(result, convertToRecipeDTO(recipe))
	}
	return result, nil
}

func (s *RecipeServiceImpl) GetRandomRecipe(ctx context.Context) (*dto.RecipeDTO, error) {
	recipe, err := s.recipeRepo.GetRandomRecipe(ctx)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, ErrRecipeNotFound
	}
	return convertToRecipeDTO(recipe), nil
}

// SearchRecipes 优先走 ES 全文检索，失败时回退数据库模糊查询
func (s *RecipeServiceImpl) SearchRecipes(ctx context.Context, keyword string, page, limit int) ([]*dto.RecipeDTO, error) {
	page, limit = normalizePage(page, limit)

	docs, err := s.searchRepo.SearchRecipes(ctx, keyword, (page-1)*limit, limit)
	if err == nil {
		ids := make([]uint64, 0, len(docs))
		for _, doc := range docs {
			ids = append(ids, doc.ID)
		}
		recipes, err := s.recipeRepo.GetRecipeByIds(ctx, ids)
		if err != nil {
			return nil, err
		}

		byID := make(map[uint64]*model.Recipe, len(recipes))
		for _, recipe := range recipes {
			byID[recipe.ID] = recipe
		}

		// 保持 ES 的相关度排序
		result := make([]*dto.RecipeDTO, 0, len(docs))
		for _, doc := range docs {
			if recipe, ok := byID[doc.ID]; ok {
				result = append(result, convertToRecipeDTO(recipe))
			}
		}
		return result, nil
	}

	log.WarnContext(ctx, "ES search failed, falling back to database", "err", err)
	recipes, _, err := s.recipeRepo.ListRecipes(ctx, repository.RecipeFilter{Search: keyword}, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.RecipeDTO, 0, len(recipes))
	for _, recipe := range recipes {
		result = append(result, convertToRecipeDTO(recipe))
	}
	return result, nil
}

func (s *RecipeServiceImpl) UpdateRecipe(ctx context.Context, id, userID uint64, updateDTO *dto.UpdateRecipeDTO) (*dto.RecipeDTO, error) {
	recipe, err := s.recipeRepo.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, ErrRecipeNotFound
	}
	if recipe.AuthorID != userID {
		return nil, ErrNotOwner
	}

	applyRecipeUpdate(recipe, updateDTO)

	if err = s.recipeRepo.UpdateRecipe(ctx, recipe); err != nil {
		return nil, err
	}

	s.indexRecipe(ctx, recipe)
	return convertToRecipeDTO(recipe), nil
}

func (s *RecipeServiceImpl) DeleteRecipe(ctx context.Context, id, userID uint64) error {
	recipe, err := s.recipeRepo.GetRecipe(ctx, id)
	if err != nil {
		return err
	}
	if recipe == nil {
		return ErrRecipeNotFound
	}
	if recipe.AuthorID != userID {
		return ErrNotOwner
	}

	if err = s.recipeRepo.DeleteRecipe(ctx, id); err != nil {
		return err
	}

	if err = s.searchRepo.DeleteRecipe(ctx, id); err != nil {
		log.WarnContext(ctx, "failed to delete recipe from ES", "recipeID", id, "err", err)
	}
	return nil
}

func (s *RecipeServiceImpl) indexRecipe(ctx context.Context, recipe *model.Recipe) {
	doc := &es.RecipeES{
		ID:          recipe.ID,
		AuthorID:    recipe.AuthorID,
		Title:       recipe.Title,
		Description: recipe.Description,
		Difficulty:  recipe.Difficulty,
		Category:    recipe.CuisineType,
		Tags:        recipe.Categories,
		Likes:       recipe.LikesCount,
		Views:       recipe.ViewsCount,
		CreatedAt:   recipe.CreatedAt,
		UpdatedAt:   recipe.UpdatedAt,
	}
	if err := s.searchRepo.IndexRecipe(ctx, doc, recipe.UpdatedAt.UnixMilli()); err != nil {
		log.WarnContext(ctx, "failed to index recipe", "recipeID", recipe.ID, "err", err)
	}
}

func applyRecipeUpdate(recipe *model.Recipe, updateDTO *dto.UpdateRecipeDTO) {
	if updateDTO.Title != nil {
		recipe.Title = *updateDTO.Title
	}
	if updateDTO.Description != nil {
		recipe.Description = *updateDTO.Description
	}
	if updateDTO.Difficulty != nil {
		recipe.Difficulty = *updateDTO.Difficulty
	}
	if updateDTO.PrepTime != nil {
		recipe.PrepTime = *updateDTO.PrepTime
	}
	if updateDTO.CookTime != nil {
		recipe.CookTime = *updateDTO.CookTime
	}
	if updateDTO.Servings != nil {
		recipe.Servings = *updateDTO.Servings
	}
	if updateDTO.CuisineType != nil {
		recipe.CuisineType = *updateDTO.CuisineType
	}
	if updateDTO.Categories != nil {
		recipe.Categories = updateDTO.Categories
	}
	if updateDTO.CaloriesPerServing != nil {
		recipe.CaloriesPerServing = *updateDTO.CaloriesPerServing
	}
	if updateDTO.NutritionInfo != nil {
		recipe.NutritionInfo = updateDTO.NutritionInfo
	}
	if updateDTO.Ingredients != nil {
		recipe.Ingredients = updateDTO.Ingredients
	}
	if updateDTO.Instructions != nil {
		recipe.Instructions = updateDTO.Instructions
	}
	if updateDTO.Images != nil {
		recipe.Images = updateDTO.Images
	}
}

func convertToRecipeDTO(recipe *model.Recipe) *dto.RecipeDTO {
	recipeDTO := &dto.RecipeDTO{}
	_ = copier.Copy(recipeDTO, recipe)
	recipeDTO.CreatedAt = recipe.CreatedAt.Format(time.RFC3339)
	recipeDTO.UpdatedAt = recipe.UpdatedAt.Format(time.RFC3339)
	if recipeDTO.Categories == nil {
		recipeDTO.Categories = make([]string, 0)
	}
	if recipeDTO.Images == nil {
		recipeDTO.Images = make([]string, 0)
	}
	return recipeDTO
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

func splitCategories(raw string) []string {
	parts := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
