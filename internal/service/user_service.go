package service

import (
	"context"
	"time"

	"github.com/jinzhu/copier"

	"MealHub/internal/api/dto"
	"MealHub/internal/model"
	"MealHub/internal/pkg/consts"
	"MealHub/internal/pkg/redis"
	"MealHub/internal/pkg/security"
	"MealHub/internal/pkg/util"
	"MealHub/internal/repository"
)

type UserService interface {
	Register(ctx context.Context, regDTO *dto.RegisterDTO) (*dto.AuthResultDTO, error)
	Login(ctx context.Context, loginDTO *dto.LoginDTO) (*dto.AuthResultDTO, error)
	Logout(ctx context.Context, token string) error
	GetUserInfo(ctx context.Context, id uint64) (*dto.UserDTO, error)
	UpdateProfile(ctx context.Context, id uint64, profileDTO *dto.UpdateProfileDTO) (*dto.UserDTO, error)
	AddDailyCalories(ctx context.Context, id uint64, calories int) (*dto.UserDTO, error)
	ResetDailyCalories(ctx context.Context, id uint64) (*dto.UserDTO, error)
	SetCalorieGoal(ctx context.Context, id uint64, goal int) (*dto.UserDTO, error)
}

type UserServiceImpl struct {
	userRepo repository.UserRepo
}

func NewUserService(userRepo repository.UserRepo) UserService {
	return &UserServiceImpl{userRepo: userRepo}
}

func (s *UserServiceImpl) Register(ctx context.Context, regDTO *dto.RegisterDTO) (*dto.AuthResultDTO, error) {
	if regDTO.Email == "" || regDTO.Username == "" || regDTO.Password == "" {
		return nil, ErrMissingFields
	}
	if !util.IsValidEmail(regDTO.Email) {
		return nil, ErrInvalidEmail
	}
	if !util.IsStrongPassword(regDTO.Password) {
		return nil, ErrWeakPassword
	}

	existing, err := s.userRepo.GetUserByEmail(ctx, regDTO.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	existing, err = s.userRepo.GetUserByUsername(ctx, regDTO.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameExists
	}

	passwordHash, err := security.HashPassword(regDTO.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{}
	if err = copier.Copy(user, regDTO); err != nil {
		return nil, err
	}
	user.Password = passwordHash

	if err = s.userRepo.CreateUser(ctx, user); err != nil {
		if isDuplicateError(err) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	token, err := security.GenerateToken(user.ID, user.Email, user.Username)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResultDTO{User: convertToUserDTO(user), Token: token}, nil
}

func (s *UserServiceImpl) Login(ctx context.Context, loginDTO *dto.LoginDTO) (*dto.AuthResultDTO, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, loginDTO.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err = security.CheckPasswordHash(loginDTO.Password, user.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := security.GenerateToken(user.ID, user.Email, user.Username)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResultDTO{User: convertToUserDTO(user), Token: token}, nil
}

func (s *UserServiceImpl) Logout(ctx context.Context, token string) error {
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return err
	}
	return redis.SetWithExpiration(ctx, consts.TokenBlacklistKey+signature, true, time.Hour*24)
}

func (s *UserServiceImpl) GetUserInfo(ctx context.Context, id uint64) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return convertToUserDTO(user), nil
}

func (s *UserServiceImpl) UpdateProfile(ctx context.Context, id uint64, profileDTO *dto.UpdateProfileDTO) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if profileDTO.ProfileImage != nil {
		user.ProfileImage = *profileDTO.ProfileImage
	}
	if profileDTO.Bio != nil {
		user.Bio = *profileDTO.Bio
	}
	if profileDTO.Preferences != nil {
		user.Preferences = profileDTO.Preferences
	}

	if err = s.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return convertToUserDTO(user), nil
}

func (s *UserServiceImpl) AddDailyCalories(ctx context.Context, id uint64, calories int) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if err = s.userRepo.AddDailyCalories(ctx, id, calories); err != nil {
		return nil, err
	}
	user.DailyCalories += calories
	return convertToUserDTO(user), nil
}

func (s *UserServiceImpl) ResetDailyCalories(ctx context.Context, id uint64) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if err = s.userRepo.ResetDailyCalories(ctx, id); err != nil {
		return nil, err
	}
	user.DailyCalories = 0
	return convertToUserDTO(user), nil
}

func (s *UserServiceImpl) SetCalorieGoal(ctx context.Context, id uint64, goal int) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	user.CalorieGoal = goal
	if err = s.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return convertToUserDTO(user), nil
}

func convertToUserDTO(user *model.User) *dto.UserDTO {
	userDTO := &dto.UserDTO{}
	_ = copier.Copy(userDTO, user)
	userDTO.CreatedAt = user.CreatedAt.Format(time.RFC3339)
	return userDTO
}
