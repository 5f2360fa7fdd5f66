package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"MealHub/internal/api/dto"
	"MealHub/internal/pkg/response"
	"MealHub/internal/pkg/util"
	"MealHub/internal/service"
)

type FamilyHandler struct {
	familySvc     service.FamilyService
	invitationSvc service.InvitationService
}

func NewFamilyHandler(familySvc service.FamilyService, invitationSvc service.InvitationService) *FamilyHandler {
	return &FamilyHandler{
		familySvc:     familySvc,
		invitationSvc: invitationSvc,
	}
}

func (s *FamilyHandler) CreateFamily(c *gin.Context) {
	userID := c.GetUint64("user_id")
	var req dto.CreateFamilyDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	family, err := s.familySvc.CreateFamily(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, family)
}

func (s *FamilyHandler) GetMyFamilies(c *gin.Context) {
	userID := c.GetUint64("user_id")
	families, err := s.familySvc.GetMyFamilies(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, families)
}

func (s *FamilyHandler) GetFamily(c *gin.Context) {
	familyID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || familyID == 0 {
		response.Error(c, service.ErrFamilyNotFound)
		return
	}
	userID := c.GetUint64("user_id")

	family, err := s.familySvc.GetFamily(c.Request.Context(), familyID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, family)
}

func (s *FamilyHandler) DeleteFamily(c *gin.Context) {
	familyID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || familyID == 0 {
		response.Error(c, service.ErrFamilyNotFound)
		return
	}
	userID := c.GetUint64("user_id")

	if err = s.familySvc.DeleteFamily(c.Request.Context(), familyID, userID); err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessMsg(c, "family deleted")
}

func (s *FamilyHandler) LeaveFamily(c *gin.Context) {
	familyID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || familyID == 0 {
		response.Error(c, service.ErrFamilyNotFound)
		return
	}
	userID := c.GetUint64("user_id")

	if err = s.familySvc.LeaveFamily(c.Request.Context(), familyID, userID); err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessMsg(c, "left family")
}

// InviteMember 管理员邀请新成员，按邮箱或用户名定位
func (s *FamilyHandler) InviteMember(c *gin.Context) {
	familyID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || familyID == 0 {
		response.Error(c, service.ErrFamilyNotFound)
		return
	}
	userID := c.GetUint64("user_id")

	var req dto.InviteMemberDTO
	if err = c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	invitation, err := s.invitationSvc.InviteMember(c.Request.Context(), familyID, userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, invitation)
}

func (s *FamilyHandler) GetPendingInvitations(c *gin.Context) {
	userID := c.GetUint64("user_id")
	invitations, err := s.invitationSvc.GetPendingInvitations(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, invitations)
}

// RespondInvitation 受邀人接受或拒绝邀请
func (s *FamilyHandler) RespondInvitation(c *gin.Context) {
	invitationID, err := strconv.ParseUint(c.Param("invitation_id"), 10, 64)
	if err != nil || invitationID == 0 {
		response.Error(c, service.ErrInviteNotFound)
		return
	}
	userID := c.GetUint64("user_id")

	var req dto.PatchInvitationDTO
	if err = c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	invitation, err := s.invitationSvc.RespondInvitation(c.Request.Context(), invitationID, userID, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, invitation)
}
