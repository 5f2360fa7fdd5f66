package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"MealHub/internal/api/dto"
	"MealHub/internal/pkg/response"
	"MealHub/internal/pkg/util"
	"MealHub/internal/service"
)

type ProgressHandler struct {
	progressSvc service.ProgressService
}

func NewProgressHandler(progressSvc service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressSvc: progressSvc}
}

func (s *ProgressHandler) StartCooking(c *gin.Context) {
	recipeID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || recipeID == 0 {
		response.Error(c, service.ErrRecipeNotFound)
		return
	}
	userID := c.GetUint64("user_id")

	progress, err := s.progressSvc.StartCooking(c.Request.Context(), userID, recipeID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, progress)
}

// CompleteCooking 完成烹饪，didEat 时顺带累加卡路里
func (s *ProgressHandler) CompleteCooking(c *gin.Context) {
	recipeID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || recipeID == 0 {
		response.Error(c, service.ErrRecipeNotFound)
		return
	}
	userID := c.GetUint64("user_id")

	var req dto.CompleteCookingDTO
	if err = c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	progress, err := s.progressSvc.CompleteCooking(c.Request.Context(), userID, recipeID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, progress)
}

func (s *ProgressHandler) AteMeal(c *gin.Context) {
	recipeID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || recipeID == 0 {
		response.Error(c, service.ErrRecipeNotFound)
		return
	}
	userID := c.GetUint64("user_id")

	var req dto.AteMealDTO
	if err = c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	progress, err := s.progressSvc.AteMeal(c.Request.Context(), userID, recipeID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, progress)
}

func (s *ProgressHandler) GetMyProgress(c *gin.Context) {
	userID := c.GetUint64("user_id")
	progresses, err := s.progressSvc.GetMyProgress(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, progresses)
}
