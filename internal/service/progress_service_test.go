package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MealHub/internal/api/dto"
	"MealHub/internal/model"
)

type progressFixture struct {
	progressRepo *fakeProgressRepo
	recipeRepo   *fakeRecipeRepo
	userRepo     *fakeUserRepo
	svc          ProgressService
	userID       uint64
	recipeID     uint64
}

func newProgressFixture(t *testing.T) *progressFixture {
	t.Helper()
	progressRepo := newFakeProgressRepo()
	recipeRepo := newFakeRecipeRepo()
	userRepo := newFakeUserRepo()

	user := userRepo.addUser(&model.User{Email: "cook@example.com", Username: "cook", CalorieGoal: 2000})
	recipe := recipeRepo.addRecipe(&model.Recipe{Title: "Bibimbap", AuthorID: user.ID})

	return &progressFixture{
		progressRepo: progressRepo,
		recipeRepo:   recipeRepo,
		userRepo:     userRepo,
		svc:          NewProgressService(progressRepo, recipeRepo, userRepo),
		userID:       user.ID,
		recipeID:     recipe.ID,
	}
}

func TestStartCooking(t *testing.T) {
	f := newProgressFixture(t)

	progress, err := f.svc.StartCooking(context.Background(), f.userID, f.recipeID)
	require.NoError(t, err)
	assert.Equal(t, "in_progress", progress.CompletionStatus)
	assert.False(t, progress.DidEat)
	assert.Empty(t, progress.CompletedAt)
}

func TestStartCookingUnknownRecipe(t *testing.T) {
	f := newProgressFixture(t)

	_, err := f.svc.StartCooking(context.Background(), f.userID, 404)
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestStartCookingStoreErrorPropagates(t *testing.T) {
	f := newProgressFixture(t)
	storeErr := errors.New("connection refused")
	f.recipeRepo.fetchErr = storeErr

	_, err := f.svc.StartCooking(context.Background(), f.userID, f.recipeID)
	assert.ErrorIs(t, err, storeErr)
	assert.NotErrorIs(t, err, ErrRecipeNotFound)
}

func TestStartCookingAgainResetsStatus(t *testing.T) {
	f := newProgressFixture(t)
	ctx := context.Background()

	_, err := f.svc.StartCooking(ctx, f.userID, f.recipeID)
	require.NoError(t, err)
	_, err = f.svc.CompleteCooking(ctx, f.userID, f.recipeID, &dto.CompleteCookingDTO{DidEat: true})
	require.NoError(t, err)

	progress, err := f.svc.StartCooking(ctx, f.userID, f.recipeID)
	require.NoError(t, err)
	assert.Equal(t, "in_progress", progress.CompletionStatus)
}

func TestCompleteCookingWithoutStart(t *testing.T) {
	f := newProgressFixture(t)

	_, err := f.svc.CompleteCooking(context.Background(), f.userID, f.recipeID, &dto.CompleteCookingDTO{})
	assert.ErrorIs(t, err, ErrProgressNotFound)
}

func TestCompleteCookingAddsCalories(t *testing.T) {
	f := newProgressFixture(t)
	ctx := context.Background()

	_, err := f.svc.StartCooking(ctx, f.userID, f.recipeID)
	require.NoError(t, err)

	progress, err := f.svc.CompleteCooking(ctx, f.userID, f.recipeID, &dto.CompleteCookingDTO{
		DidEat:           true,
		CaloriesConsumed: 650,
	})
	require.NoError(t, err)
	assert.Equal(t, "completed", progress.CompletionStatus)
	assert.True(t, progress.DidEat)
	assert.NotEmpty(t, progress.CompletedAt)
	assert.Equal(t, 650, f.userRepo.users[f.userID].DailyCalories)
}

func TestCompleteCookingWithoutEating(t *testing.T) {
	f := newProgressFixture(t)
	ctx := context.Background()

	_, err := f.svc.StartCooking(ctx, f.userID, f.recipeID)
	require.NoError(t, err)

	progress, err := f.svc.CompleteCooking(ctx, f.userID, f.recipeID, &dto.CompleteCookingDTO{
		DidEat:           false,
		CaloriesConsumed: 650,
	})
	require.NoError(t, err)
	assert.False(t, progress.DidEat)
	assert.Equal(t, 0, f.userRepo.users[f.userID].DailyCalories, "calories only count when the meal was eaten")
}

func TestAteMealWithoutCooking(t *testing.T) {
	f := newProgressFixture(t)

	progress, err := f.svc.AteMeal(context.Background(), f.userID, f.recipeID, &dto.AteMealDTO{CaloriesConsumed: 480})
	require.NoError(t, err)
	assert.Equal(t, "completed", progress.CompletionStatus)
	assert.True(t, progress.DidEat)
	assert.Equal(t, 480, f.userRepo.users[f.userID].DailyCalories)
}

func TestAteMealKeepsExistingProgress(t *testing.T) {
	f := newProgressFixture(t)
	ctx := context.Background()

	started, err := f.svc.StartCooking(ctx, f.userID, f.recipeID)
	require.NoError(t, err)

	progress, err := f.svc.AteMeal(ctx, f.userID, f.recipeID, &dto.AteMealDTO{})
	require.NoError(t, err)
	assert.True(t, progress.DidEat)
	assert.Equal(t, started.ID, progress.ID)
	// 已有进度只标记 did_eat，不改动烹饪状态
	assert.Equal(t, "in_progress", progress.CompletionStatus)
}

func TestGetMyProgress(t *testing.T) {
	f := newProgressFixture(t)
	ctx := context.Background()

	other := f.recipeRepo.addRecipe(&model.Recipe{Title: "Soup", AuthorID: f.userID})
	_, err := f.svc.StartCooking(ctx, f.userID, f.recipeID)
	require.NoError(t, err)
	_, err = f.svc.StartCooking(ctx, f.userID, other.ID)
	require.NoError(t, err)

	result, err := f.svc.GetMyProgress(ctx, f.userID)
	require.NoError(t, err)
	assert.Len(t, result, 2)
}
