package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"MealHub/internal/model"
)

type MealVoteRepo interface {
	CreateVoteWithOptions(ctx context.Context, vote *model.MealVote, options []*model.MealVoteOption) error
	GetVoteByID(ctx context.Context, id uint64) (*model.MealVote, error)
	GetVotesByFamilyID(ctx context.Context, familyID uint64) ([]*model.MealVote, error)
	GetActiveVoteByFamilyID(ctx context.Context, familyID uint64, now time.Time) (*model.MealVote, error)
	EndVote(ctx context.Context, voteID uint64) error

	GetOption(ctx context.Context, voteID, optionID uint64) (*model.MealVoteOption, error)
	UpsertBallot(ctx context.Context, ballot *model.UserMealVote) error
	GetBallotsByVoteID(ctx context.Context, voteID uint64) ([]*model.UserMealVote, error)
	CountBallotsByOption(ctx context.Context, voteID uint64) (map[uint64]int64, error)
}

type MealVoteRepoImpl struct {
	db *gorm.DB
}

func NewMealVoteRepo(db *gorm.DB) MealVoteRepo {
	return &MealVoteRepoImpl{db: db}
}

func (s *MealVoteRepoImpl) CreateVoteWithOptions(ctx context.Context, vote *model.MealVote, options []*model.MealVoteOption) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(vote).Error; err != nil {
			return err
		}
		for _, option := range options {
			option.VoteID = vote.ID
		}
		return tx.Create(options).Error
	})
}

func (s *MealVoteRepoImpl) GetVoteByID(ctx context.Context, id uint64) (*model.MealVote, error) {
	vote := &model.MealVote{}
	result := s.db.WithContext(ctx).
		Preload("Options").
		Preload("Options.Recipe").
		First(vote, id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return vote, nil
}

func (s *MealVoteRepoImpl) GetVotesByFamilyID(ctx context.Context, familyID uint64) ([]*model.MealVote, error) {
	votes := make([]*model.MealVote, 0)
	err := s.db.WithContext(ctx).
		Preload("Options").
		Preload("Options.Recipe").
		Where("family_id = ?", familyID).
		Order("created_at DESC").
		Find(&votes).Error
	if err != nil {
		return nil, err
	}
	return votes, nil
}

func (s *MealVoteRepoImpl) GetActiveVoteByFamilyID(ctx context.Context, familyID uint64, now time.Time) (*model.MealVote, error) {
	vote := &model.MealVote{}
	result := s.db.WithContext(ctx).
		Preload("Options").
		Preload("Options.Recipe").
		Where("family_id = ? AND status = ? AND ends_at > ?", familyID, "active", now).
		Order("created_at DESC").
		First(vote)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return vote, nil
}

func (s *MealVoteRepoImpl) EndVote(ctx context.Context, voteID uint64) error {
	return s.db.WithContext(ctx).Model(&model.MealVote{}).
		Where("id = ?", voteID).
		Update("status", "ended").Error
}

func (s *MealVoteRepoImpl) GetOption(ctx context.Context, voteID, optionID uint64) (*model.MealVoteOption, error) {
	option := &model.MealVoteOption{}
	result := s.db.WithContext(ctx).
		Where("id = ? AND vote_id = ?", optionID, voteID).
		First(option)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return option, nil
}

// UpsertBallot 同一用户在同一投票中重复投票时覆盖旧选票
func (s *MealVoteRepoImpl) UpsertBallot(ctx context.Context, ballot *model.UserMealVote) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "vote_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"option_id", "updated_at"}),
	}).Create(ballot).Error
}

func (s *MealVoteRepoImpl) GetBallotsByVoteID(ctx context.Context, voteID uint64) ([]*model.UserMealVote, error) {
	ballots := make([]*model.UserMealVote, 0)
	err := s.db.WithContext(ctx).
		Where("vote_id = ?", voteID).
		Find(&ballots).Error
	if err != nil {
		return nil, err
	}
	return ballots, nil
}

func (s *MealVoteRepoImpl) CountBallotsByOption(ctx context.Context, voteID uint64) (map[uint64]int64, error) {
	type optionCount struct {
		OptionID uint64
		Count    int64
	}

	rows := make([]optionCount, 0)
	err := s.db.WithContext(ctx).Model(&model.UserMealVote{}).
		Select("option_id, COUNT(*) as count").
		Where("vote_id = ?", voteID).
		Group("option_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uint64]int64, len(rows))
	for _, row := range rows {
		counts[row.OptionID] = row.Count
	}
	return counts, nil
}
