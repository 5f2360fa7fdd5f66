package repository

import (
	"context"
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"MealHub/internal/model"
)

var (
	// ErrInvitationNotPending 竞争条件下状态已被其他请求变更
	ErrInvitationNotPending = errors.New("invitation is not pending")
	// ErrAlreadyFamilyMember 受邀人已经是家庭成员
	ErrAlreadyFamilyMember = errors.New("user is already a family member")
)

type InvitationRepo interface {
	CreateInvitation(ctx context.Context, invitation *model.FamilyInvitation) error
	GetInvitationByID(ctx context.Context, id uint64) (*model.FamilyInvitation, error)
	GetPendingByInviteeID(ctx context.Context, inviteeID uint64) ([]*model.FamilyInvitation, error)
	HasPendingInvitation(ctx context.Context, familyID, inviteeID uint64) (bool, error)
	AcceptInvitation(ctx context.Context, invitationID uint64) (*model.FamilyInvitation, error)
	RejectInvitation(ctx context.Context, invitationID uint64) error
}

type InvitationRepoImpl struct {
	db *gorm.DB
}

func NewInvitationRepo(db *gorm.DB) InvitationRepo {
	return &InvitationRepoImpl{db: db}
}

func (s *InvitationRepoImpl) CreateInvitation(ctx context.Context, invitation *model.FamilyInvitation) error {
	return s.db.WithContext(ctx).Create(invitation).Error
}

func (s *InvitationRepoImpl) GetInvitationByID(ctx context.Context, id uint64) (*model.FamilyInvitation, error) {
	invitation := &model.FamilyInvitation{}
	result := s.db.WithContext(ctx).
		Preload("Family").
		Preload("Inviter").
		First(invitation, id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return invitation, nil
}

func (s *InvitationRepoImpl) GetPendingByInviteeID(ctx context.Context, inviteeID uint64) ([]*model.FamilyInvitation, error) {
	invitations := make([]*model.FamilyInvitation, 0)
	err := s.db.WithContext(ctx).
		Preload("Family").
		Preload("Inviter").
		Where("invitee_id = ? AND status = ?", inviteeID, "pending").
		Order("created_at DESC").
		Find(&invitations).Error
	if err != nil {
		return nil, err
	}
	return invitations, nil
}

func (s *InvitationRepoImpl) HasPendingInvitation(ctx context.Context, familyID, inviteeID uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.FamilyInvitation{}).
		Where("family_id = ? AND invitee_id = ? AND status = ?", familyID, inviteeID, "pending").
		Count(&count).Error
	return count > 0, err
}

// AcceptInvitation 接受邀请。状态守卫保证并发下只有一个请求成功；
// 受邀人已经入会时状态照常落为 accepted，只跳过建成员并返回 ErrAlreadyFamilyMember。
func (s *InvitationRepoImpl) AcceptInvitation(ctx context.Context, invitationID uint64) (*model.FamilyInvitation, error) {
	result := s.db.WithContext(ctx).Model(&model.FamilyInvitation{}).
		Where("id = ? AND status = ?", invitationID, "pending").
		Update("status", "accepted")
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrInvitationNotPending
	}

	invitation := &model.FamilyInvitation{}
	if err := s.db.WithContext(ctx).First(invitation, invitationID).Error; err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&model.FamilyMember{}).
		Where("family_id = ? AND user_id = ?", invitation.FamilyID, invitation.InviteeID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return invitation, ErrAlreadyFamilyMember
	}

	member := &model.FamilyMember{
		FamilyID: invitation.FamilyID,
		UserID:   invitation.InviteeID,
		Role:     "member",
	}
	if err := s.db.WithContext(ctx).Create(member).Error; err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return invitation, ErrAlreadyFamilyMember
		}
		return nil, err
	}

	return invitation, nil
}

func (s *InvitationRepoImpl) RejectInvitation(ctx context.Context, invitationID uint64) error {
	result := s.db.WithContext(ctx).Model(&model.FamilyInvitation{}).
		Where("id = ? AND status = ?", invitationID, "pending").
		Update("status", "rejected")
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInvitationNotPending
	}
	return nil
}
