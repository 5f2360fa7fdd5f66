package api

import "MealHub/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	UserHandler         *handler.UserHandler
	RecipeHandler       *handler.RecipeHandler
	RecipeActionHandler *handler.RecipeActionHandler
	FamilyHandler       *handler.FamilyHandler
	MealVoteHandler     *handler.MealVoteHandler
	ProgressHandler     *handler.ProgressHandler
	MediaHandler        *handler.MediaHandler
}
