package model

import (
	"time"
)

// UserMealVote 每个用户在一次投票中只有一张选票
type UserMealVote struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	VoteID    uint64    `gorm:"not null;uniqueIndex:idx_vote_user,priority:1" json:"voteId"`
	UserID    uint64    `gorm:"not null;uniqueIndex:idx_vote_user,priority:2" json:"userId"`
	OptionID  uint64    `gorm:"not null" json:"optionId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (UserMealVote) TableName() string {
	return "user_meal_votes"
}
