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
)

type actionFixture struct {
	actionRepo *fakeActionRepo
	recipeRepo *fakeRecipeRepo
	svc        RecipeActionService
	recipeID   uint64
}

func newActionFixture(t *testing.T) *actionFixture {
	t.Helper()
	actionRepo := newFakeActionRepo()
	recipeRepo := newFakeRecipeRepo()
	trending := NewTrendingService(recipeRepo, actionRepo)

	recipe := recipeRepo.addRecipe(&model.Recipe{Title: "Gyoza", AuthorID: 1, CreatedAt: time.Now()})

	return &actionFixture{
		actionRepo: actionRepo,
		recipeRepo: recipeRepo,
		svc:        NewRecipeActionService(actionRepo, recipeRepo, trending),
		recipeID:   recipe.ID,
	}
}

func TestToggleLikeOnOff(t *testing.T) {
	f := newActionFixture(t)
	ctx := context.Background()

	status, err := f.svc.ToggleLike(ctx, 5, f.recipeID)
	require.NoError(t, err)
	assert.True(t, status.Liked)
	assert.Equal(t, 1, status.LikesCount)

	status, err = f.svc.ToggleLike(ctx, 5, f.recipeID)
	require.NoError(t, err)
	assert.False(t, status.Liked)
	assert.Equal(t, 0, status.LikesCount)
}

func TestToggleLikeUpdatesTrendingScore(t *testing.T) {
	f := newActionFixture(t)
	ctx := context.Background()

	_, err := f.svc.ToggleLike(ctx, 5, f.recipeID)
	require.NoError(t, err)

	stored := f.recipeRepo.recipes[f.recipeID]
	assert.Equal(t, 1, stored.LikesCount)
	assert.InDelta(t, 3.0, stored.TrendingScore, 0.01)
}

func TestToggleLikeUnknownRecipe(t *testing.T) {
	f := newActionFixture(t)

	_, err := f.svc.ToggleLike(context.Background(), 5, 404)
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestToggleLikeStoreErrorPropagates(t *testing.T) {
	f := newActionFixture(t)
	storeErr := errors.New("connection refused")
	f.recipeRepo.fetchErr = storeErr

	_, err := f.svc.ToggleLike(context.Background(), 5, f.recipeID)
	assert.ErrorIs(t, err, storeErr)
	assert.NotErrorIs(t, err, ErrRecipeNotFound, "store failures must not read as missing recipes")
}

func TestGetLikeStatusAnonymous(t *testing.T) {
	f := newActionFixture(t)
	ctx := context.Background()

	_, err := f.svc.ToggleLike(ctx, 5, f.recipeID)
	require.NoError(t, err)

	status, err := f.svc.GetLikeStatus(ctx, 0, f.recipeID)
	require.NoError(t, err)
	assert.False(t, status.Liked)
	assert.Equal(t, 1, status.LikesCount)
}

func TestTrackViewDeduplicates(t *testing.T) {
	f := newActionFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.TrackView(ctx, 5, f.recipeID))
	require.NoError(t, f.svc.TrackView(ctx, 5, f.recipeID), "repeat view is a silent no-op")
	require.NoError(t, f.svc.TrackView(ctx, 6, f.recipeID))

	count, err := f.svc.GetViewCount(ctx, f.recipeID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestCreateComment(t *testing.T) {
	f := newActionFixture(t)
	ctx := context.Background()
	rating := 4

	comment, err := f.svc.CreateComment(ctx, 5, f.recipeID, &dto.CreateCommentDTO{
		Content: "Crispy and delicious",
		Rating:  &rating,
	})
	require.NoError(t, err)
	assert.Equal(t, "Crispy and delicious", comment.Content)
	require.NotNil(t, comment.Rating)
	assert.Equal(t, 4, *comment.Rating)

	count, err := f.svc.GetCommentCount(ctx, f.recipeID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// 评论权重最高，单条评论即贡献 5 分
	assert.InDelta(t, 5.0, f.recipeRepo.recipes[f.recipeID].TrendingScore, 0.01)
}

func TestGetCommentsPagination(t *testing.T) {
	f := newActionFixture(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := f.svc.CreateComment(ctx, 5, f.recipeID, &dto.CreateCommentDTO{Content: "ok"})
		require.NoError(t, err)
	}

	comments, err := f.svc.GetComments(ctx, f.recipeID, 1, 3)
	require.NoError(t, err)
	assert.Len(t, comments, 3)

	comments, err = f.svc.GetComments(ctx, f.recipeID, 2, 3)
	require.NoError(t, err)
	assert.Len(t, comments, 2)
}

func TestCommentUnknownRecipe(t *testing.T) {
	f := newActionFixture(t)

	_, err := f.svc.CreateComment(context.Background(), 5, 404, &dto.CreateCommentDTO{Content: "hi"})
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}
