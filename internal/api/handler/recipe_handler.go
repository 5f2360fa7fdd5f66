package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"MealHub/internal/api/dto"
	"MealHub/internal/pkg/response"
	"MealHub/internal/pkg/util"
	"MealHub/internal/service"
)

type RecipeHandler struct {
	recipeSvc   service.RecipeService
	trendingSvc service.TrendingService
	actionSvc   service.RecipeActionService
}

func NewRecipeHandler(
	recipeSvc service.RecipeService,
	trendingSvc service.TrendingService,
	actionSvc service.RecipeActionService,
) *RecipeHandler {
	return &RecipeHandler{
		recipeSvc:   recipeSvc,
		trendingSvc: trendingSvc,
		actionSvc:   actionSvc,
	}
}

func (s *RecipeHandler) ListRecipes(c *gin.Context) {
	var query dto.RecipeListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	result, err := s.recipeSvc.ListRecipes(c.Request.Context(), &query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetRecipe 返回菜谱详情，登录用户同时返回点赞状态
func (s *RecipeHandler) GetRecipe(c *gin.Context) {
	recipeID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || recipeID == 0 {
		response.Error(c, service.ErrRecipeNotFound)
		return
	}
	userID := c.GetUint64("user_id")

	ctx := c.Request.Context()
	var recipe *dto.RecipeDTO
	var likeStatus *dto.LikeStatusDTO

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		recipe, err = s.recipeSvc.GetRecipe(gCtx, recipeID)
		return err
	})
	g.Go(func() error {
		var err error
		likeStatus, err = s.actionSvc.GetLikeStatus(gCtx, userID, recipeID)
		return err
	})
	if err = g.Wait(); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{
		"recipe":     recipe,
		"liked":      likeStatus.Liked,
		"likesCount": likeStatus.LikesCount,
	})
}

func (s *RecipeHandler) GetRandomRecipe(c *gin.Context) {
	recipe, err := s.recipeSvc.GetRandomRecipe(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, recipe)
}

func (s *RecipeHandler) GetTrendingRecipes(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 || limit > 50 {
		limit = 10
	}

	recipes, err := s.trendingSvc.GetTrendingRecipes(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, recipes)
}

func (s *RecipeHandler) SearchRecipes(c *gin.Context) {
	keyword := c.Query("q")
	if keyword == "" {
		response.Error(c, service.ErrMissingFields)
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	recipes, err := s.recipeSvc.SearchRecipes(c.Request.Context(), keyword, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, recipes)
}

func (s *RecipeHandler) GetMyRecipes(c *gin.Context) {
	userID := c.GetUint64("user_id")
	recipes, err := s.recipeSvc.GetMyRecipes(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, recipes)
}

func (s *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID := c.GetUint64("user_id")
	var req dto.CreateRecipeDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	recipe, err := s.recipeSvc.CreateRecipe(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, recipe)
}

func (s *RecipeHandler) UpdateRecipe(c *gin.Context) {
	recipeID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || recipeID == 0 {
		response.Error(c, service.ErrRecipeNotFound)
		return
	}
	userID := c.GetUint64("user_id")

	var req dto.UpdateRecipeDTO
	if err = c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	recipe, err := s.recipeSvc.UpdateRecipe(c.Request.Context(), recipeID, userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, recipe)
}

func (s *RecipeHandler) DeleteRecipe(c *gin.Context) {
	recipeID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || recipeID == 0 {
		response.Error(c, service.ErrRecipeNotFound)
		return
	}
	userID := c.GetUint64("user_id")

	if err = s.recipeSvc.DeleteRecipe(c.Request.Context(), recipeID, userID); err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessMsg(c, "recipe deleted")
}
