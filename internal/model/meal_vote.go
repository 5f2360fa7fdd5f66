package model

import (
	"time"
)

type MealVote struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	FamilyID    uint64    `gorm:"not null;index:idx_family_id" json:"familyId"`
	CreatorID   uint64    `gorm:"not null" json:"creatorId"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:varchar(1000)" json:"description"`
	Status      string    `gorm:"type:varchar(20);not null;default:active" json:"status"`
	EndsAt      time.Time `gorm:"not null" json:"endsAt"`
	CreatedAt   time.Time `json:"createdAt"`

	Options []MealVoteOption `gorm:"foreignKey:VoteID;references:ID" json:"options,omitempty"`
}

func (MealVote) TableName() string {
	return "meal_votes"
}

type MealVoteOption struct {
	ID       uint64 `gorm:"primaryKey" json:"id"`
	VoteID   uint64 `gorm:"not null;index:idx_vote_id" json:"voteId"`
	RecipeID uint64 `gorm:"not null" json:"recipeId"`

	Recipe Recipe `gorm:"foreignKey:RecipeID;references:ID" json:"recipe,omitempty"`
}

func (MealVoteOption) TableName() string {
	return "meal_vote_options"
}
