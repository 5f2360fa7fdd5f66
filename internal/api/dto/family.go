package dto

type CreateFamilyDTO struct {
	Name                string   `json:"name" binding:"required" validate:"min=1,max=100"`
	DietaryRestrictions []string `json:"dietaryRestrictions,omitempty"`
}

type FamilyMemberDTO struct {
	UserID   uint64 `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
	JoinedAt string `json:"joinedAt"`
}

type FamilyDTO struct {
	ID                  uint64             `json:"id"`
	Name                string             `json:"name"`
	AdminID             uint64             `json:"adminId"`
	DietaryRestrictions []string           `json:"dietaryRestrictions"`
	Members             []*FamilyMemberDTO `json:"members"`
	CreatedAt           string             `json:"createdAt"`
}

type InviteMemberDTO struct {
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
}

type InvitationDTO struct {
	ID              uint64 `json:"id"`
	FamilyID        uint64 `json:"familyId"`
	FamilyName      string `json:"familyName,omitempty"`
	InviterID       uint64 `json:"inviterId"`
	InviterUsername string `json:"inviterUsername,omitempty"`
	InviteeID       uint64 `json:"inviteeId"`
	Status          string `json:"status"`
	CreatedAt       string `json:"createdAt"`
}

type PatchInvitationDTO struct {
	Status string `json:"status" binding:"required" validate:"oneof=accepted rejected"`
}

type CreateMealVoteDTO struct {
	Title       string   `json:"title" binding:"required" validate:"min=1,max=255"`
	Description string   `json:"description,omitempty" validate:"max=1000"`
	RecipeIDs   []uint64 `json:"recipeIds" binding:"required" validate:"min=1"`
}

type SubmitVoteDTO struct {
	OptionID uint64 `json:"optionId" binding:"required"`
}

type MealVoteOptionDTO struct {
	ID          uint64     `json:"id"`
	RecipeID    uint64     `json:"recipeId"`
	RecipeTitle string     `json:"recipeTitle,omitempty"`
	Recipe      *RecipeDTO `json:"recipe,omitempty"`
	VoteCount   int64      `json:"voteCount"`
}

type MealVoteDTO struct {
	ID          uint64               `json:"id"`
	FamilyID    uint64               `json:"familyId"`
	CreatorID   uint64               `json:"creatorId"`
	Title       string               `json:"title"`
	Description string               `json:"description,omitempty"`
	Status      string               `json:"status"`
	EndsAt      string               `json:"endsAt"`
	Options     []*MealVoteOptionDTO `json:"options"`
	UserVote    *uint64              `json:"userVote,omitempty"`
	CreatedAt   string               `json:"createdAt"`
}
