package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"MealHub/internal/model"
)

type FamilyRepo interface {
	CreateFamilyWithAdmin(ctx context.Context, family *model.Family) error
	GetFamily(ctx context.Context, id uint64) (*model.Family, error)
	GetFamiliesByUserID(ctx context.Context, userID uint64) ([]*model.Family, error)
	DeleteFamily(ctx context.Context, id uint64) error

	GetMember(ctx context.Context, familyID, userID uint64) (*model.FamilyMember, error)
	CreateMember(ctx context.Context, member *model.FamilyMember) error
	DeleteMember(ctx context.Context, familyID, userID uint64) error
}

type FamilyRepoImpl struct {
	db *gorm.DB
}

func NewFamilyRepo(db *gorm.DB) FamilyRepo {
	return &FamilyRepoImpl{db: db}
}

// CreateFamilyWithAdmin 创建家庭并把创建者写入为 admin 成员
func (s *FamilyRepoImpl) CreateFamilyWithAdmin(ctx context.Context, family *model.Family) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(family).Error; err != nil {
			return err
		}
		member := &model.FamilyMember{
			FamilyID: family.ID,
			UserID:   family.AdminID,
			Role:     "admin",
		}
		return tx.Create(member).Error
	})
}

func (s *FamilyRepoImpl) GetFamily(ctx context.Context, id uint64) (*model.Family, error) {
	family := &model.Family{}
	result := s.db.WithContext(ctx).
		Preload("Members").
		Preload("Members.User").
		First(family, id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return family, nil
}

func (s *FamilyRepoImpl) GetFamiliesByUserID(ctx context.Context, userID uint64) ([]*model.Family, error) {
	families := make([]*model.Family, 0)
	err := s.db.WithContext(ctx).
		Preload("Members").
		Preload("Members.User").
		Joins("JOIN family_members ON family_members.family_id = families.id").
		Where("family_members.user_id = ?", userID).
		Find(&families).Error
	if err != nil {
		return nil, err
	}
	return families, nil
}

// DeleteFamily 删除家庭及其成员、邀请和投票
func (s *FamilyRepoImpl) DeleteFamily(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var voteIDs []uint64
		if err := tx.Model(&model.MealVote{}).
			Where("family_id = ?", id).
			Pluck("id", &voteIDs).Error; err != nil {
			return err
		}
		if len(voteIDs) > 0 {
			if err := tx.Where("vote_id IN ?", voteIDs).Delete(&model.UserMealVote{}).Error; err != nil {
				return err
			}
			if err := tx.Where("vote_id IN ?", voteIDs).Delete(&model.MealVoteOption{}).Error; err != nil {
				return err
			}
			if err := tx.Where("family_id = ?", id).Delete(&model.MealVote{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("family_id = ?", id).Delete(&model.FamilyInvitation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("family_id = ?", id).Delete(&model.FamilyMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Family{}, id).Error
	})
}

func (s *FamilyRepoImpl) GetMember(ctx context.Context, familyID, userID uint64) (*model.FamilyMember, error) {
	member := &model.FamilyMember{}
	result := s.db.WithContext(ctx).
		Where("family_id = ? AND user_id = ?", familyID, userID).
		First(member)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return member, nil
}

func (s *FamilyRepoImpl) CreateMember(ctx context.Context, member *model.FamilyMember) error {
	return s.db.WithContext(ctx).Create(member).Error
}

func (s *FamilyRepoImpl) DeleteMember(ctx context.Context, familyID, userID uint64) error {
	return s.db.WithContext(ctx).
		Where("family_id = ? AND user_id = ?", familyID, userID).
		Delete(&model.FamilyMember{}).Error
}
