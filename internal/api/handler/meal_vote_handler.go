package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"MealHub/internal/api/dto"
	"MealHub/internal/pkg/response"
	"MealHub/internal/pkg/util"
	"MealHub/internal/service"
)

type MealVoteHandler struct {
	voteSvc service.MealVoteService
}

func NewMealVoteHandler(voteSvc service.MealVoteService) *MealVoteHandler {
	return &MealVoteHandler{voteSvc: voteSvc}
}

// CreateMealVote 家庭成员发起一次选菜投票
func (s *MealVoteHandler) CreateMealVote(c *gin.Context) {
	familyID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || familyID == 0 {
		response.Error(c, service.ErrFamilyNotFound)
		return
	}
	userID := c.GetUint64("user_id")

	var req dto.CreateMealVoteDTO
	if err = c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	vote, err := s.voteSvc.CreateMealVote(c.Request.Context(), familyID, userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, vote)
}

// SubmitVote 投出或改投选票
func (s *MealVoteHandler) SubmitVote(c *gin.Context) {
	familyID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || familyID == 0 {
		response.Error(c, service.ErrFamilyNotFound)
		return
	}
	voteID, err := strconv.ParseUint(c.Param("vote_id"), 10, 64)
	if err != nil || voteID == 0 {
		response.Error(c, service.ErrVoteNotFound)
		return
	}
	userID := c.GetUint64("user_id")

	var req dto.SubmitVoteDTO
	if err = c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	vote, err := s.voteSvc.SubmitVote(c.Request.Context(), familyID, voteID, userID, req.OptionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, vote)
}

func (s *MealVoteHandler) GetMealVotes(c *gin.Context) {
	familyID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || familyID == 0 {
		response.Error(c, service.ErrFamilyNotFound)
		return
	}
	userID := c.GetUint64("user_id")

	votes, err := s.voteSvc.GetMealVotes(c.Request.Context(), familyID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, votes)
}

func (s *MealVoteHandler) GetActiveVote(c *gin.Context) {
	familyID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || familyID == 0 {
		response.Error(c, service.ErrFamilyNotFound)
		return
	}
	userID := c.GetUint64("user_id")

	vote, err := s.voteSvc.GetActiveVote(c.Request.Context(), familyID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, vote)
}

// EndVote 管理员提前结束投票
func (s *MealVoteHandler) EndVote(c *gin.Context) {
	familyID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || familyID == 0 {
		response.Error(c, service.ErrFamilyNotFound)
		return
	}
	voteID, err := strconv.ParseUint(c.Param("vote_id"), 10, 64)
	if err != nil || voteID == 0 {
		response.Error(c, service.ErrVoteNotFound)
		return
	}
	userID := c.GetUint64("user_id")

	vote, err := s.voteSvc.EndVote(c.Request.Context(), familyID, voteID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, vote)
}
