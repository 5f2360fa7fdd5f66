package util

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MealHub/internal/api/dto"
)

func TestValidateDTOMealVoteOptions(t *testing.T) {
	// gin 只管 binding 标签，空切片要靠 validate 深度校验拦下
	err := ValidateDTO(&dto.CreateMealVoteDTO{Title: "Dinner", RecipeIDs: []uint64{}})
	require.Error(t, err)
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)

	assert.NoError(t, ValidateDTO(&dto.CreateMealVoteDTO{Title: "Dinner", RecipeIDs: []uint64{7}}))
}

func TestValidateDTORecipeFields(t *testing.T) {
	valid := &dto.CreateRecipeDTO{Title: "Ramen", Difficulty: "easy", Servings: 2}
	assert.NoError(t, ValidateDTO(valid))

	// 份数可以省略，由服务层补默认值
	assert.NoError(t, ValidateDTO(&dto.CreateRecipeDTO{Title: "Ramen", Difficulty: "easy"}))

	bad := &dto.CreateRecipeDTO{Title: "Ramen", Difficulty: "impossible", Servings: 2}
	assert.Error(t, ValidateDTO(bad))

	negative := &dto.CreateRecipeDTO{Title: "Ramen", Difficulty: "easy", Servings: 2, PrepTime: -5}
	assert.Error(t, ValidateDTO(negative))
}

func TestValidateDTOCommentRating(t *testing.T) {
	rating := 6
	err := ValidateDTO(&dto.CreateCommentDTO{Content: "tasty", Rating: &rating})
	assert.Error(t, err)

	ok := 5
	assert.NoError(t, ValidateDTO(&dto.CreateCommentDTO{Content: "tasty", Rating: &ok}))
}

func TestValidateDTOInvitationStatus(t *testing.T) {
	assert.Error(t, ValidateDTO(&dto.PatchInvitationDTO{Status: "maybe"}))
	assert.NoError(t, ValidateDTO(&dto.PatchInvitationDTO{Status: "accepted"}))
}
