package model

import (
	"time"
)

type UserProgress struct {
	ID               uint64     `gorm:"primaryKey" json:"id"`
	UserID           uint64     `gorm:"not null;uniqueIndex:idx_user_recipe,priority:1" json:"userId"`
	RecipeID         uint64     `gorm:"not null;uniqueIndex:idx_user_recipe,priority:2" json:"recipeId"`
	CompletionStatus string     `gorm:"type:varchar(20);not null;default:in_progress" json:"completionStatus"`
	DidEat           bool       `gorm:"type:tinyint(1);not null;default:0" json:"didEat"`
	StartedAt        time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"startedAt"`
	CompletedAt      *time.Time `json:"completedAt,omitempty"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}
