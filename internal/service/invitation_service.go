package service

import (
	"context"
	"errors"
	"time"

	"MealHub/internal/api/dto"
	"MealHub/internal/model"
	"MealHub/internal/repository"
)

type InvitationService interface {
	InviteMember(ctx context.Context, familyID, inviterID uint64, inviteDTO *dto.InviteMemberDTO) (*dto.InvitationDTO, error)
	GetPendingInvitations(ctx context.Context, userID uint64) ([]*dto.InvitationDTO, error)
	RespondInvitation(ctx context.Context, invitationID, userID uint64, status string) (*dto.InvitationDTO, error)
}

type InvitationServiceImpl struct {
	invitationRepo repository.InvitationRepo
	familyRepo     repository.FamilyRepo
	userRepo       repository.UserRepo
}

func NewInvitationService(
	invitationRepo repository.InvitationRepo,
	familyRepo repository.FamilyRepo,
	userRepo repository.UserRepo,
) InvitationService {
	return &InvitationServiceImpl{
		invitationRepo: invitationRepo,
		familyRepo:     familyRepo,
		userRepo:       userRepo,
	}
}

// InviteMember 只有管理员可以发出邀请，受邀人按邮箱或用户名解析
func (s *InvitationServiceImpl) InviteMember(ctx context.Context, familyID, inviterID uint64, inviteDTO *dto.InviteMemberDTO) (*dto.InvitationDTO, error) {
	if inviteDTO.Email == "" && inviteDTO.Username == "" {
		return nil, ErrMissingFields
	}

	family, err := s.familyRepo.GetFamily(ctx, familyID)
	if err != nil {
		return nil, err
	}
	if family == nil {
		return nil, ErrFamilyNotFound
	}
	if family.AdminID != inviterID {
		return nil, ErrNotAdmin
	}

	invitee, err := s.resolveInvitee(ctx, inviteDTO)
	if err != nil {
		return nil, err
	}

	member, err := s.familyRepo.GetMember(ctx, familyID, invitee.ID)
	if err != nil {
		return nil, err
	}
	if member != nil {
		return nil, ErrAlreadyMember
	}

	pending, err := s.invitationRepo.HasPendingInvitation(ctx, familyID, invitee.ID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, ErrDuplicateInvite
	}

	invitation := &model.FamilyInvitation{
		FamilyID:  familyID,
		InviterID: inviterID,
		InviteeID: invitee.ID,
		Status:    "pending",
	}
	if err = s.invitationRepo.CreateInvitation(ctx, invitation); err != nil {
		return nil, err
	}

	return convertToInvitationDTO(invitation), nil
}

func (s *InvitationServiceImpl) GetPendingInvitations(ctx context.Context, userID uint64) ([]*dto.InvitationDTO, error) {
	invitations, err := s.invitationRepo.GetPendingByInviteeID(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.InvitationDTO, 0, len(invitations))
	for _, invitation := range invitations {
		result = append(result, convertToInvitationDTO(invitation))
	}
	return result, nil
}

// RespondInvitation 受邀人接受或拒绝邀请，接受在事务内完成并带状态守卫
func (s *InvitationServiceImpl) RespondInvitation(ctx context.Context, invitationID, userID uint64, status string) (*dto.InvitationDTO, error) {
	invitation, err := s.invitationRepo.GetInvitationByID(ctx, invitationID)
	if err != nil {
		return nil, err
	}
	if invitation == nil || invitation.InviteeID != userID {
		return nil, ErrInviteNotFound
	}
	if invitation.Status != "pending" {
		return nil, ErrInviteNotFound
	}

	switch status {
	case "accepted":
		accepted, err := s.invitationRepo.AcceptInvitation(ctx, invitationID)
		if err != nil {
			if errors.Is(err, repository.ErrInvitationNotPending) {
				return nil, ErrInviteNotFound
			}
			if errors.Is(err, repository.ErrAlreadyFamilyMember) {
				return nil, ErrAlreadyMember
			}
			return nil, err
		}
		accepted.Status = "accepted"
		return convertToInvitationDTO(accepted), nil
	case "rejected":
		if err = s.invitationRepo.RejectInvitation(ctx, invitationID); err != nil {
			if errors.Is(err, repository.ErrInvitationNotPending) {
				return nil, ErrInviteNotFound
			}
			return nil, err
		}
		invitation.Status = "rejected"
		return convertToInvitationDTO(invitation), nil
	default:
		return nil, ErrMissingFields
	}
}

func (s *InvitationServiceImpl) resolveInvitee(ctx context.Context, inviteDTO *dto.InviteMemberDTO) (*model.User, error) {
	if inviteDTO.Email != "" {
		user, err := s.userRepo.GetUserByEmail(ctx, inviteDTO.Email)
		if err != nil {
			return nil, err
		}
		if user != nil {
			return user, nil
		}
	}
	if inviteDTO.Username != "" {
		user, err := s.userRepo.GetUserByUsername(ctx, inviteDTO.Username)
		if err != nil {
			return nil, err
		}
		if user != nil {
			return user, nil
		}
	}
	return nil, ErrUserNotFound
}

func convertToInvitationDTO(invitation *model.FamilyInvitation) *dto.InvitationDTO {
	item := &dto.InvitationDTO{
		ID:        invitation.ID,
		FamilyID:  invitation.FamilyID,
		InviterID: invitation.InviterID,
		InviteeID: invitation.InviteeID,
		Status:    invitation.Status,
		CreatedAt: invitation.CreatedAt.Format(time.RFC3339),
	}
	if invitation.Family.ID != 0 {
		item.FamilyName = invitation.Family.Name
	}
	if invitation.Inviter.ID != 0 {
		item.InviterUsername = invitation.Inviter.Username
	}
	return item
}
