package service

import (
	"context"
	"time"

	"MealHub/internal/api/dto"
	"MealHub/internal/model"
	"MealHub/internal/repository"
)

type FamilyService interface {
	CreateFamily(ctx context.Context, adminID uint64, createDTO *dto.CreateFamilyDTO) (*dto.FamilyDTO, error)
	GetMyFamilies(ctx context.Context, userID uint64) ([]*dto.FamilyDTO, error)
	GetFamily(ctx context.Context, familyID, userID uint64) (*dto.FamilyDTO, error)
	DeleteFamily(ctx context.Context, familyID, userID uint64) error
	LeaveFamily(ctx context.Context, familyID, userID uint64) error
}

type FamilyServiceImpl struct {
	familyRepo repository.FamilyRepo
}

func NewFamilyService(familyRepo repository.FamilyRepo) FamilyService {
	return &FamilyServiceImpl{familyRepo: familyRepo}
}

func (s *FamilyServiceImpl) CreateFamily(ctx context.Context, adminID uint64, createDTO *dto.CreateFamilyDTO) (*dto.FamilyDTO, error) {
	family := &model.Family{
		Name:                createDTO.Name,
		AdminID:             adminID,
		DietaryRestrictions: createDTO.DietaryRestrictions,
	}
	if err := s.familyRepo.CreateFamilyWithAdmin(ctx, family); err != nil {
		return nil, err
	}

	created, err := s.familyRepo.GetFamily(ctx, family.ID)
	if err != nil {
		return nil, err
	}
	return convertToFamilyDTO(created), nil
}

func (s *FamilyServiceImpl) GetMyFamilies(ctx context.Context, userID uint64) ([]*dto.FamilyDTO, error) {
	families, err := s.familyRepo.GetFamiliesByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.FamilyDTO, 0, len(families))
	for _, family := range families {
		result = append(result, convertToFamilyDTO(family))
	}
	return result, nil
}

func (s *FamilyServiceImpl) GetFamily(ctx context.Context, familyID, userID uint64) (*dto.FamilyDTO, error) {
	family, err := s.familyRepo.GetFamily(ctx, familyID)
	if err != nil {
		return nil, err
	}
	if family == nil {
		return nil, ErrFamilyNotFound
	}

	member, err := s.familyRepo.GetMember(ctx, familyID, userID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrNotAMember
	}

	return convertToFamilyDTO(family), nil
}

func (s *FamilyServiceImpl) DeleteFamily(ctx context.Context, familyID, userID uint64) error {
	family, err := s.familyRepo.GetFamily(ctx, familyID)
	if err != nil {
		return err
	}
	if family == nil {
		return ErrFamilyNotFound
	}
	if family.AdminID != userID {
		return ErrNotAdmin
	}

	return s.familyRepo.DeleteFamily(ctx, familyID)
}

// LeaveFamily 管理员不能退出自己的家庭，只能解散
func (s *FamilyServiceImpl) LeaveFamily(ctx context.Context, familyID, userID uint64) error {
	family, err := s.familyRepo.GetFamily(ctx, familyID)
	if err != nil {
		return err
	}
	if family == nil {
		return ErrFamilyNotFound
	}
	if family.AdminID == userID {
		return ErrAdminCannotLeave
	}

	member, err := s.familyRepo.GetMember(ctx, familyID, userID)
	if err != nil {
		return err
	}
	if member == nil {
		return ErrNotAMember
	}

	return s.familyRepo.DeleteMember(ctx, familyID, userID)
}

func convertToFamilyDTO(family *model.Family) *dto.FamilyDTO {
	familyDTO := &dto.FamilyDTO{
		ID:                  family.ID,
		Name:                family.Name,
		AdminID:             family.AdminID,
		DietaryRestrictions: family.DietaryRestrictions,
		CreatedAt:           family.CreatedAt.Format(time.RFC3339),
		Members:             make([]*dto.FamilyMemberDTO, 0, len(family.Members)),
	}
	if familyDTO.DietaryRestrictions == nil {
		familyDTO.DietaryRestrictions = make([]string, 0)
	}
	for _, member := range family.Members {
		item := &dto.FamilyMemberDTO{
			UserID:   member.UserID,
			Role:     member.Role,
			JoinedAt: member.JoinedAt.Format(time.RFC3339),
		}
		if member.User.ID != 0 {
			item.Username = member.User.Username
		}
		familyDTO.Members = append(familyDTO.Members, item)
	}
	return familyDTO
}
