package dto

type ProgressDTO struct {
	ID               uint64 `json:"id"`
	UserID           uint64 `json:"userId"`
	RecipeID         uint64 `json:"recipeId"`
	CompletionStatus string `json:"completionStatus"`
	DidEat           bool   `json:"didEat"`
	StartedAt        string `json:"startedAt"`
	CompletedAt      string `json:"completedAt,omitempty"`
}
