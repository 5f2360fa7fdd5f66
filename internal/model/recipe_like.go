package model

import (
	"time"
)

type RecipeLike struct {
	UserID    uint64    `gorm:"primaryKey" json:"userId"`
	RecipeID  uint64    `gorm:"primaryKey;index:idx_recipe_id" json:"recipeId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (RecipeLike) TableName() string {
	return "recipe_likes"
}
