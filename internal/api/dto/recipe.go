package dto

import (
	"MealHub/internal/model"
)

type CreateRecipeDTO struct {
	Title              string                    `json:"title" binding:"required" validate:"min=1,max=255"`
	Description        string                    `json:"description" validate:"max=2000"`
	Difficulty         string                    `json:"difficulty" binding:"required" validate:"oneof=easy medium hard"`
	PrepTime           int                       `json:"prepTime" validate:"gte=0"`
	CookTime           int                       `json:"cookTime" validate:"gte=0"`
	Servings           int                       `json:"servings" validate:"omitempty,gte=1"`
	CuisineType        string                    `json:"cuisineType"`
	Categories         []string                  `json:"categories"`
	CaloriesPerServing int                       `json:"caloriesPerServing" validate:"gte=0"`
	NutritionInfo      *model.NutritionInfo      `json:"nutritionInfo,omitempty"`
	Ingredients        []model.RecipeIngredient  `json:"ingredients" binding:"required"`
	Instructions       []model.RecipeInstruction `json:"instructions" binding:"required"`
	Images             []string                  `json:"images,omitempty"`
}

type UpdateRecipeDTO struct {
	Title              *string                   `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Description        *string                   `json:"description,omitempty" validate:"omitempty,max=2000"`
	Difficulty         *string                   `json:"difficulty,omitempty" validate:"omitempty,oneof=easy medium hard"`
	PrepTime           *int                      `json:"prepTime,omitempty" validate:"omitempty,gte=0"`
	CookTime           *int                      `json:"cookTime,omitempty" validate:"omitempty,gte=0"`
	Servings           *int                      `json:"servings,omitempty" validate:"omitempty,gte=1"`
	CuisineType        *string                   `json:"cuisineType,omitempty"`
	Categories         []string                  `json:"categories,omitempty"`
	CaloriesPerServing *int                      `json:"caloriesPerServing,omitempty" validate:"omitempty,gte=0"`
	NutritionInfo      *model.NutritionInfo      `json:"nutritionInfo,omitempty"`
	Ingredients        []model.RecipeIngredient  `json:"ingredients,omitempty"`
	Instructions       []model.RecipeInstruction `json:"instructions,omitempty"`
	Images             []string                  `json:"images,omitempty"`
}

type RecipeDTO struct {
	ID                 uint64                    `json:"id"`
	AuthorID           uint64                    `json:"authorId"`
	AuthorUsername     string                    `json:"authorUsername,omitempty"`
	Title              string                    `json:"title"`
	Description        string                    `json:"description"`
	Difficulty         string                    `json:"difficulty"`
	PrepTime           int                       `json:"prepTime"`
	CookTime           int                       `json:"cookTime"`
	Servings           int                       `json:"servings"`
	CuisineType        string                    `json:"cuisineType"`
	Categories         []string                  `json:"categories"`
	CaloriesPerServing int                       `json:"caloriesPerServing"`
	NutritionInfo      *model.NutritionInfo      `json:"nutritionInfo,omitempty"`
	Ingredients        []model.RecipeIngredient  `json:"ingredients"`
	Instructions       []model.RecipeInstruction `json:"instructions"`
	Images             []string                  `json:"images"`
	LikesCount         int                       `json:"likesCount"`
	CommentsCount      int                       `json:"commentsCount"`
	ViewsCount         int                       `json:"viewsCount"`
	TrendingScore      float64                   `json:"trendingScore"`
	CreatedAt          string                    `json:"createdAt"`
	UpdatedAt          string                    `json:"updatedAt"`
}

type RecipeListQuery struct {
	Difficulty  string `form:"difficulty"`
	CuisineType string `form:"cuisineType"`
	Categories  string `form:"categories"`
	Search      string `form:"search"`
	Page        int    `form:"page,default=1"`
	Limit       int    `form:"limit,default=20"`
}

type PaginationDTO struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

type RecipeListDTO struct {
	Recipes    []*RecipeDTO   `json:"recipes"`
	Pagination *PaginationDTO `json:"pagination"`
}

type CreateCommentDTO struct {
	Content string `json:"content" binding:"required" validate:"min=1,max=1000"`
	Rating  *int   `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
}

type CommentDTO struct {
	ID        uint64 `json:"id"`
	RecipeID  uint64 `json:"recipeId"`
	UserID    uint64 `json:"userId"`
	Username  string `json:"username,omitempty"`
	Content   string `json:"content"`
	Rating    *int   `json:"rating,omitempty"`
	CreatedAt string `json:"createdAt"`
}

type LikeStatusDTO struct {
	Liked      bool `json:"liked"`
	LikesCount int  `json:"likesCount"`
}

type CompleteCookingDTO struct {
	DidEat           bool `json:"didEat"`
	CaloriesConsumed int  `json:"caloriesConsumed" validate:"gte=0"`
}

type AteMealDTO struct {
	CaloriesConsumed int `json:"caloriesConsumed" validate:"gte=0"`
}
