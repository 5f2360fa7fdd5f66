package model

import (
	"time"
)

type User struct {
	ID            uint64           `gorm:"primaryKey" json:"id"`
	Email         string           `gorm:"type:varchar(255);not null;uniqueIndex:idx_email" json:"email"`
	Username      string           `gorm:"type:varchar(50);not null;uniqueIndex:idx_username" json:"username"`
	Password      string           `gorm:"type:varchar(255);not null" json:"-"`
	ProfileImage  string           `gorm:"type:varchar(500)" json:"profileImage"`
	Bio           string           `gorm:"type:varchar(500)" json:"bio"`
	Preferences   *UserPreferences `gorm:"type:json;serializer:json" json:"preferences"`
	DailyCalories int              `gorm:"not null;default:0" json:"dailyCalories"`
	CalorieGoal   int              `gorm:"not null;default:2000" json:"calorieGoal"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

type UserPreferences struct {
	DietaryRestrictions []string `json:"dietaryRestrictions"`
	FavoriteCategories  []string `json:"favoriteCategories"`
	CookingSkillLevel   string   `json:"cookingSkillLevel"`
	PreferredMealTimes  []string `json:"preferredMealTimes"`
}
