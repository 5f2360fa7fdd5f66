package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MealHub/internal/api/dto"
	"MealHub/internal/model"
	"MealHub/internal/pkg/es"
)

func newRecipeFixture() (*fakeRecipeRepo, *fakeSearchRepo, RecipeService) {
	recipeRepo := newFakeRecipeRepo()
	searchRepo := newFakeSearchRepo()
	return recipeRepo, searchRepo, NewRecipeService(recipeRepo, searchRepo)
}

func TestCreateRecipe(t *testing.T) {
	_, searchRepo, svc := newRecipeFixture()

	recipe, err := svc.CreateRecipe(context.Background(), 3, &dto.CreateRecipeDTO{
		Title:      "Shakshuka",
		Difficulty: "easy",
		Ingredients: []model.RecipeIngredient{
			{Name: "eggs", Amount: "4", Unit: "pcs"},
		},
		Instructions: []model.RecipeInstruction{
			{Step: 1, Description: "Simmer the sauce"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, uint64(3), recipe.AuthorID)
	assert.Equal(t, 1, recipe.Servings, "servings default to one")
	assert.NotZero(t, recipe.ID)
	assert.Contains(t, searchRepo.docs, recipe.ID, "created recipe is indexed")
}

func TestGetRecipeNotFound(t *testing.T) {
	_, _, svc := newRecipeFixture()

	_, err := svc.GetRecipe(context.Background(), 404)
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestListRecipesPagination(t *testing.T) {
	recipeRepo, _, svc := newRecipeFixture()
	for i := 0; i < 25; i++ {
		recipeRepo.addRecipe(&model.Recipe{Title: "r", Difficulty: "easy"})
	}

	result, err := svc.ListRecipes(context.Background(), &dto.RecipeListQuery{Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, result.Recipes, 10)
	assert.Equal(t, int64(25), result.Pagination.Total)
	assert.Equal(t, int64(3), result.Pagination.TotalPages)
	assert.Equal(t, 2, result.Pagination.Page)
}

func TestListRecipesNormalizesBadPaging(t *testing.T) {
	recipeRepo, _, svc := newRecipeFixture()
	recipeRepo.addRecipe(&model.Recipe{Title: "r"})

	result, err := svc.ListRecipes(context.Background(), &dto.RecipeListQuery{Page: -3, Limit: 9999})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Pagination.Page)
	assert.Equal(t, 20, result.Pagination.Limit)
}

func TestListRecipesFilterDifficulty(t *testing.T) {
	recipeRepo, _, svc := newRecipeFixture()
	recipeRepo.addRecipe(&model.Recipe{Title: "simple", Difficulty: "easy"})
	recipeRepo.addRecipe(&model.Recipe{Title: "fancy", Difficulty: "hard"})

	result, err := svc.ListRecipes(context.Background(), &dto.RecipeListQuery{Difficulty: "hard", Page: 1, Limit: 20})
	require.NoError(t, err)
	require.Len(t, result.Recipes, 1)
	assert.Equal(t, "fancy", result.Recipes[0].Title)
}

func TestSearchRecipesKeepsRelevanceOrder(t *testing.T) {
	recipeRepo, searchRepo, svc := newRecipeFixture()
	first := recipeRepo.addRecipe(&model.Recipe{Title: "Beef Pho"})
	second := recipeRepo.addRecipe(&model.Recipe{Title: "Chicken Pho"})

	// ES 命中顺序与主键顺序相反
	searchRepo.hits = []*es.RecipeES{{ID: second.ID}, {ID: first.ID}}

	result, err := svc.SearchRecipes(context.Background(), "pho", 1, 10)
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, second.ID, result[0].ID)
	assert.Equal(t, first.ID, result[1].ID)
}

func TestSearchRecipesSkipsStaleHits(t *testing.T) {
	recipeRepo, searchRepo, svc := newRecipeFixture()
	kept := recipeRepo.addRecipe(&model.Recipe{Title: "Beef Pho"})
	searchRepo.hits = []*es.RecipeES{{ID: kept.ID}, {ID: 999}}

	result, err := svc.SearchRecipes(context.Background(), "pho", 1, 10)
	require.NoError(t, err)
	require.Len(t, result, 1, "hits already deleted from the database are dropped")
	assert.Equal(t, kept.ID, result[0].ID)
}

func TestSearchRecipesFallsBackToDatabase(t *testing.T) {
	recipeRepo, searchRepo, svc := newRecipeFixture()
	recipeRepo.addRecipe(&model.Recipe{Title: "Beef Pho"})
	recipeRepo.addRecipe(&model.Recipe{Title: "Burger"})
	searchRepo.searchErr = errors.New("cluster unreachable")

	result, err := svc.SearchRecipes(context.Background(), "Pho", 1, 10)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "Beef Pho", result[0].Title)
}

func TestUpdateRecipeOwnerOnly(t *testing.T) {
	recipeRepo, searchRepo, svc := newRecipeFixture()
	recipe := recipeRepo.addRecipe(&model.Recipe{Title: "Old Title", AuthorID: 3, UpdatedAt: time.Now()})
	title := "New Title"

	_, err := svc.UpdateRecipe(context.Background(), recipe.ID, 9, &dto.UpdateRecipeDTO{Title: &title})
	assert.ErrorIs(t, err, ErrNotOwner)

	updated, err := svc.UpdateRecipe(context.Background(), recipe.ID, 3, &dto.UpdateRecipeDTO{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "New Title", updated.Title)
	assert.Equal(t, "New Title", searchRepo.docs[recipe.ID].Title, "index follows the update")
}

func TestUpdateRecipePartialFields(t *testing.T) {
	recipeRepo, _, svc := newRecipeFixture()
	recipe := recipeRepo.addRecipe(&model.Recipe{
		Title:       "Curry",
		Description: "spicy",
		AuthorID:    3,
		PrepTime:    15,
	})
	prepTime := 25

	updated, err := svc.UpdateRecipe(context.Background(), recipe.ID, 3, &dto.UpdateRecipeDTO{PrepTime: &prepTime})
	require.NoError(t, err)
	assert.Equal(t, 25, updated.PrepTime)
	assert.Equal(t, "Curry", updated.Title)
	assert.Equal(t, "spicy", updated.Description)
}

func TestDeleteRecipe(t *testing.T) {
	recipeRepo, searchRepo, svc := newRecipeFixture()
	recipe := recipeRepo.addRecipe(&model.Recipe{Title: "Curry", AuthorID: 3})
	searchRepo.docs[recipe.ID] = &es.RecipeES{ID: recipe.ID}
	ctx := context.Background()

	err := svc.DeleteRecipe(ctx, recipe.ID, 9)
	assert.ErrorIs(t, err, ErrNotOwner)

	require.NoError(t, svc.DeleteRecipe(ctx, recipe.ID, 3))
	assert.NotContains(t, recipeRepo.recipes, recipe.ID)
	assert.NotContains(t, searchRepo.docs, recipe.ID)

	err = svc.DeleteRecipe(ctx, recipe.ID, 3)
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestGetMyRecipes(t *testing.T) {
	recipeRepo, _, svc := newRecipeFixture()
	recipeRepo.addRecipe(&model.Recipe{Title: "mine", AuthorID: 3})
	recipeRepo.addRecipe(&model.Recipe{Title: "theirs", AuthorID: 4})

	result, err := svc.GetMyRecipes(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "mine", result[0].Title)
}
