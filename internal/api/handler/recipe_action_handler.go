package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"MealHub/internal/api/dto"
	"MealHub/internal/pkg/response"
	"MealHub/internal/pkg/util"
	"MealHub/internal/service"
)

type RecipeActionHandler struct {
	actionSvc service.RecipeActionService
}

func NewRecipeActionHandler(actionSvc service.RecipeActionService) *RecipeActionHandler {
	return &RecipeActionHandler{actionSvc: actionSvc}
}

// ToggleLike 点赞/取消点赞菜谱
func (s *RecipeActionHandler) ToggleLike(c *gin.Context) {
	recipeID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || recipeID == 0 {
		response.Error(c, service.ErrRecipeNotFound)
		return
	}
	userID := c.GetUint64("user_id")

	status, err := s.actionSvc.ToggleLike(c.Request.Context(), userID, recipeID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, status)
}

func (s *RecipeActionHandler) GetLikeStatus(c *gin.Context) {
	recipeID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || recipeID == 0 {
		response.Error(c, service.ErrRecipeNotFound)
		return
	}
	userID := c.GetUint64("user_id")

	status, err := s.actionSvc.GetLikeStatus(c.Request.Context(), userID, recipeID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, status)
}

// TrackView 记录浏览，同一用户只计一次
func (s *RecipeActionHandler) TrackView(c *gin.Context) {
	recipeID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || recipeID == 0 {
		response.Error(c, service.ErrRecipeNotFound)
		return
	}
	userID := c.GetUint64("user_id")

	if err = s.actionSvc.TrackView(c.Request.Context(), userID, recipeID); err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessMsg(c, "view recorded")
}

func (s *RecipeActionHandler) CreateComment(c *gin.Context) {
	recipeID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || recipeID == 0 {
		response.Error(c, service.ErrRecipeNotFound)
		return
	}
	userID := c.GetUint64("user_id")

	var req dto.CreateCommentDTO
	if err = c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	comment, err := s.actionSvc.CreateComment(c.Request.Context(), userID, recipeID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, comment)
}

func (s *RecipeActionHandler) GetComments(c *gin.Context) {
	recipeID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || recipeID == 0 {
		response.Error(c, service.ErrRecipeNotFound)
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	comments, err := s.actionSvc.GetComments(c.Request.Context(), recipeID, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comments)
}
