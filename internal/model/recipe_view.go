package model

import (
	"time"
)

type RecipeView struct {
	ID       uint64    `gorm:"primaryKey"`
	RecipeID uint64    `gorm:"not null;uniqueIndex:idx_user_recipe,priority:2" json:"recipeId"`
	UserID   uint64    `gorm:"not null;uniqueIndex:idx_user_recipe,priority:1" json:"userId"`
	ViewedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"viewedAt"`
}

func (RecipeView) TableName() string {
	return "recipe_views"
}
