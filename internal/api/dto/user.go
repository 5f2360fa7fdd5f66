package dto

import (
	"MealHub/internal/model"
)

type RegisterDTO struct {
	Email        string                 `json:"email" binding:"required"`
	Username     string                 `json:"username" binding:"required" validate:"min=3,max=50"`
	Password     string                 `json:"password" binding:"required"`
	ProfileImage string                 `json:"profileImage,omitempty"`
	Bio          string                 `json:"bio,omitempty" validate:"omitempty,max=500"`
	Preferences  *model.UserPreferences `json:"preferences,omitempty"`
}

type LoginDTO struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UserDTO struct {
	ID            uint64                 `json:"id"`
	Email         string                 `json:"email"`
	Username      string                 `json:"username"`
	ProfileImage  string                 `json:"profileImage,omitempty"`
	Bio           string                 `json:"bio,omitempty"`
	Preferences   *model.UserPreferences `json:"preferences,omitempty"`
	DailyCalories int                    `json:"dailyCalories"`
	CalorieGoal   int                    `json:"calorieGoal"`
	CreatedAt     string                 `json:"createdAt"`
}

type AuthResultDTO struct {
	User  *UserDTO `json:"user"`
	Token string   `json:"token"`
}

type AddCaloriesDTO struct {
	Calories int `json:"calories" binding:"required" validate:"gt=0"`
}

type CalorieGoalDTO struct {
	CalorieGoal int `json:"calorieGoal" binding:"required" validate:"gt=0"`
}

type UpdateProfileDTO struct {
	ProfileImage *string                `json:"profileImage,omitempty"`
	Bio          *string                `json:"bio,omitempty" validate:"omitempty,max=500"`
	Preferences  *model.UserPreferences `json:"preferences,omitempty"`
}
