package model

import (
	"time"
)

type Recipe struct {
	ID                 uint64              `gorm:"primaryKey" json:"id"`
	AuthorID           uint64              `gorm:"not null;index:idx_author_id" json:"authorId"`
	Title              string              `gorm:"type:varchar(255);not null" json:"title"`
	Description        string              `gorm:"type:varchar(2000)" json:"description"`
	Difficulty         string              `gorm:"type:varchar(20);not null" json:"difficulty"`
	PrepTime           int                 `gorm:"not null;default:0" json:"prepTime"`
	CookTime           int                 `gorm:"not null;default:0" json:"cookTime"`
	Servings           int                 `gorm:"not null;default:1" json:"servings"`
	CuisineType        string              `gorm:"type:varchar(50)" json:"cuisineType"`
	Categories         []string            `gorm:"type:json;serializer:json" json:"categories"`
	CaloriesPerServing int                 `gorm:"not null;default:0" json:"caloriesPerServing"`
	NutritionInfo      *NutritionInfo      `gorm:"type:json;serializer:json" json:"nutritionInfo"`
	Ingredients        []RecipeIngredient  `gorm:"type:json;serializer:json" json:"ingredients"`
	Instructions       []RecipeInstruction `gorm:"type:json;serializer:json" json:"instructions"`
	Images             []string            `gorm:"type:json;serializer:json" json:"images"`
	LikesCount         int                 `gorm:"not null;default:0" json:"likesCount"`
	CommentsCount      int                 `gorm:"not null;default:0" json:"commentsCount"`
	ViewsCount         int                 `gorm:"not null;default:0" json:"viewsCount"`
	TrendingScore      float64             `gorm:"not null;default:0;index:idx_trending_score" json:"trendingScore"`
	CreatedAt          time.Time           `json:"createdAt"`
	UpdatedAt          time.Time           `json:"updatedAt"`

	Author User `gorm:"foreignKey:AuthorID;references:ID" json:"-"`
}

func (Recipe) TableName() string {
	return "recipes"
}

type RecipeIngredient struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
	Unit   string `json:"unit"`
}

type RecipeInstruction struct {
	Step        int    `json:"step"`
	Description string `json:"description"`
	Duration    *int   `json:"duration,omitempty"`
}

type NutritionInfo struct {
	Calories float64  `json:"calories"`
	Protein  float64  `json:"protein"`
	Carbs    float64  `json:"carbs"`
	Fat      float64  `json:"fat"`
	Fiber    *float64 `json:"fiber,omitempty"`
	Sugar    *float64 `json:"sugar,omitempty"`
}
