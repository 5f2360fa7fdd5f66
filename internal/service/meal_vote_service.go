package service

import (
	"context"
	"time"

	"MealHub/internal/api/config"
	"MealHub/internal/api/dto"
	"MealHub/internal/model"
	"MealHub/internal/repository"
)

type MealVoteService interface {
	CreateMealVote(ctx context.Context, familyID, creatorID uint64, createDTO *dto.CreateMealVoteDTO) (*dto.MealVoteDTO, error)
	SubmitVote(ctx context.Context, familyID, voteID, userID uint64, optionID uint64) (*dto.MealVoteDTO, error)
	GetMealVotes(ctx context.Context, familyID, userID uint64) ([]*dto.MealVoteDTO, error)
	GetActiveVote(ctx context.Context, familyID, userID uint64) (*dto.MealVoteDTO, error)
	EndVote(ctx context.Context, familyID, voteID, userID uint64) (*dto.MealVoteDTO, error)
}

type MealVoteServiceImpl struct {
	voteRepo   repository.MealVoteRepo
	familyRepo repository.FamilyRepo
	recipeRepo repository.RecipeRepo
}

func NewMealVoteService(
	voteRepo repository.MealVoteRepo,
	familyRepo repository.FamilyRepo,
	recipeRepo repository.RecipeRepo,
) MealVoteService {
	return &MealVoteServiceImpl{
		voteRepo:   voteRepo,
		familyRepo: familyRepo,
		recipeRepo: recipeRepo,
	}
}

// CreateMealVote 只有家庭成员可以发起投票，选项来自候选菜谱
func (s *MealVoteServiceImpl) CreateMealVote(ctx context.Context, familyID, creatorID uint64, createDTO *dto.CreateMealVoteDTO) (*dto.MealVoteDTO, error) {
	if err := s.memberCheck(ctx, familyID, creatorID); err != nil {
		return nil, err
	}

	recipeIDs := createDTO.RecipeIDs
	if config.Cfg.MealVote.RejectDuplicateOptions {
		recipeIDs = dedupeIDs(recipeIDs)
	}
	if len(recipeIDs) == 0 {
		return nil, ErrInvalidInput
	}

	recipes, err := s.recipeRepo.GetRecipeByIds(ctx, recipeIDs)
	if err != nil {
		return nil, err
	}
	found := make(map[uint64]bool, len(recipes))
	for _, recipe := range recipes {
		found[recipe.ID] = true
	}
	for _, id := range recipeIDs {
		if !found[id] {
			return nil, ErrRecipeNotFound
		}
	}

	// 截止时间固定由服务端配置决定
	endsAt := time.Now().Add(time.Duration(config.Cfg.MealVote.DurationHours) * time.Hour)

	vote := &model.MealVote{
		FamilyID:    familyID,
		CreatorID:   creatorID,
		Title:       createDTO.Title,
		Description: createDTO.Description,
		Status:      "active",
		EndsAt:      endsAt,
	}
	options := make([]*model.MealVoteOption, 0, len(recipeIDs))
	for _, recipeID := range recipeIDs {
		options = append(options, &model.MealVoteOption{RecipeID: recipeID})
	}

	if err = s.voteRepo.CreateVoteWithOptions(ctx, vote, options); err != nil {
		return nil, err
	}

	created, err := s.voteRepo.GetVoteByID(ctx, vote.ID)
	if err != nil {
		return nil, err
	}
	return s.convertToMealVoteDTO(ctx, created, userVoteNone), nil
}

// SubmitVote 成员投票，同一用户重复投票覆盖旧选票；过期或结束的投票拒绝。
// 先校验成员身份，投票必须属于路径里的家庭。
func (s *MealVoteServiceImpl) SubmitVote(ctx context.Context, familyID, voteID, userID uint64, optionID uint64) (*dto.MealVoteDTO, error) {
	if err := s.memberCheck(ctx, familyID, userID); err != nil {
		return nil, err
	}

	vote, err := s.voteRepo.GetVoteByID(ctx, voteID)
	if err != nil {
		return nil, err
	}
	if vote == nil || vote.FamilyID != familyID || vote.Status != "active" || !vote.EndsAt.After(time.Now()) {
		return nil, ErrVoteNotFound
	}

	option, err := s.voteRepo.GetOption(ctx, voteID, optionID)
	if err != nil {
		return nil, err
	}
	if option == nil {
		return nil, ErrOptionNotFound
	}

	ballot := &model.UserMealVote{
		VoteID:   voteID,
		UserID:   userID,
		OptionID: optionID,
	}
	if err = s.voteRepo.UpsertBallot(ctx, ballot); err != nil {
		return nil, err
	}

	return s.convertToMealVoteDTO(ctx, vote, userID), nil
}

func (s *MealVoteServiceImpl) GetMealVotes(ctx context.Context, familyID, userID uint64) ([]*dto.MealVoteDTO, error) {
	if err := s.memberCheck(ctx, familyID, userID); err != nil {
		return nil, err
	}

	votes, err := s.voteRepo.GetVotesByFamilyID(ctx, familyID)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.MealVoteDTO, 0, len(votes))
	for _, vote := range votes {
		result = append(result, s.convertToMealVoteDTO(ctx, vote, userID))
	}
	return result, nil
}

func (s *MealVoteServiceImpl) GetActiveVote(ctx context.Context, familyID, userID uint64) (*dto.MealVoteDTO, error) {
	if err := s.memberCheck(ctx, familyID, userID); err != nil {
		return nil, err
	}

	vote, err := s.voteRepo.GetActiveVoteByFamilyID(ctx, familyID, time.Now())
	if err != nil {
		return nil, err
	}
	if vote == nil {
		return nil, ErrVoteNotFound
	}
	return s.convertToMealVoteDTO(ctx, vote, userID), nil
}

// EndVote 只有家庭管理员可以提前结束投票
func (s *MealVoteServiceImpl) EndVote(ctx context.Context, familyID, voteID, userID uint64) (*dto.MealVoteDTO, error) {
	family, err := s.familyRepo.GetFamily(ctx, familyID)
	if err != nil {
		return nil, err
	}
	if family == nil {
		return nil, ErrFamilyNotFound
	}
	if family.AdminID != userID {
		return nil, ErrNotAdmin
	}

	vote, err := s.voteRepo.GetVoteByID(ctx, voteID)
	if err != nil {
		return nil, err
	}
	if vote == nil || vote.FamilyID != familyID {
		return nil, ErrVoteNotFound
	}

	if err = s.voteRepo.EndVote(ctx, voteID); err != nil {
		return nil, err
	}
	vote.Status = "ended"
	return s.convertToMealVoteDTO(ctx, vote, userID), nil
}

func (s *MealVoteServiceImpl) memberCheck(ctx context.Context, familyID, userID uint64) error {
	family, err := s.familyRepo.GetFamily(ctx, familyID)
	if err != nil {
		return err
	}
	if family == nil {
		return ErrFamilyNotFound
	}

	member, err := s.familyRepo.GetMember(ctx, familyID, userID)
	if err != nil {
		return err
	}
	if member == nil {
		return ErrNotAMember
	}
	return nil
}

const userVoteNone uint64 = 0

func (s *MealVoteServiceImpl) convertToMealVoteDTO(ctx context.Context, vote *model.MealVote, userID uint64) *dto.MealVoteDTO {
	counts, err := s.voteRepo.CountBallotsByOption(ctx, vote.ID)
	if err != nil {
		counts = map[uint64]int64{}
	}

	voteDTO := &dto.MealVoteDTO{
		ID:          vote.ID,
		FamilyID:    vote.FamilyID,
		CreatorID:   vote.CreatorID,
		Title:       vote.Title,
		Description: vote.Description,
		Status:      vote.Status,
		EndsAt:      vote.EndsAt.Format(time.RFC3339),
		CreatedAt:   vote.CreatedAt.Format(time.RFC3339),
		Options:     make([]*dto.MealVoteOptionDTO, 0, len(vote.Options)),
	}
	if vote.Status == "active" && !vote.EndsAt.After(time.Now()) {
		voteDTO.Status = "ended"
	}

	for _, option := range vote.Options {
		item := &dto.MealVoteOptionDTO{
			ID:        option.ID,
			RecipeID:  option.RecipeID,
			VoteCount: counts[option.ID],
		}
		if option.Recipe.ID != 0 {
			item.RecipeTitle = option.Recipe.Title
			item.Recipe = convertToRecipeDTO(&option.Recipe)
		}
		voteDTO.Options = append(voteDTO.Options, item)
	}

	if userID != userVoteNone {
		ballots, err := s.voteRepo.GetBallotsByVoteID(ctx, vote.ID)
		if err == nil {
			for _, ballot := range ballots {
				if ballot.UserID == userID {
					optionID := ballot.OptionID
					voteDTO.UserVote = &optionID
					break
				}
			}
		}
	}

	return voteDTO
}

func dedupeIDs(ids []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(ids))
	result := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
