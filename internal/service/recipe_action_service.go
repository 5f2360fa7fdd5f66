package service

import (
	"context"
	"errors"
	log "log/slog"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jinzhu/copier"

	"MealHub/internal/api/dto"
	"MealHub/internal/model"
	"MealHub/internal/pkg/consts"
	"MealHub/internal/pkg/redis"
	"MealHub/internal/repository"
)

const cacheExpiration = 7 * 24 * time.Hour

type RecipeActionService interface {
	ToggleLike(ctx context.Context, userID, recipeID uint64) (*dto.LikeStatusDTO, error)
	GetLikeStatus(ctx context.Context, userID, recipeID uint64) (*dto.LikeStatusDTO, error)
	TrackView(ctx context.Context, userID, recipeID uint64) error
	CreateComment(ctx context.Context, userID, recipeID uint64, commentDTO *dto.CreateCommentDTO) (*dto.CommentDTO, error)
	GetComments(ctx context.Context, recipeID uint64, page, limit int) ([]*dto.CommentDTO, error)

	GetLikeCount(ctx context.Context, recipeID uint64) (int64, error)
	GetViewCount(ctx context.Context, recipeID uint64) (int64, error)
	GetCommentCount(ctx context.Context, recipeID uint64) (int64, error)
}

type recipeActionServiceImpl struct {
	actionRepo repository.RecipeActionRepo
	recipeRepo repository.RecipeRepo
	trending   TrendingService
}

func NewRecipeActionService(
	actionRepo repository.RecipeActionRepo,
	recipeRepo repository.RecipeRepo,
	trending TrendingService,
) RecipeActionService {
	return &recipeActionServiceImpl{
		actionRepo: actionRepo,
		recipeRepo: recipeRepo,
		trending:   trending,
	}
}

// ToggleLike 已点赞则取消，未点赞则新增，随后同步计数和热度分
func (s *recipeActionServiceImpl) ToggleLike(ctx context.Context, userID, recipeID uint64) (*dto.LikeStatusDTO, error) {
	if err := s.checkRecipe(ctx, recipeID); err != nil {
		return nil, err
	}

	liked, err := s.actionRepo.CheckLikeExists(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}

	if liked {
		if err = s.actionRepo.DeleteLike(ctx, userID, recipeID); err != nil {
			return nil, err
		}
	} else {
		err = s.actionRepo.CreateLike(ctx, &model.RecipeLike{UserID: userID, RecipeID: recipeID, CreatedAt: time.Now()})
		if err != nil && !isDuplicateError(err) {
			return nil, err
		}
	}

	_ = redis.DeleteKey(ctx, consts.RecipeLikeCountKey+strconv.FormatUint(recipeID, 10))
	s.recompute(ctx, recipeID)

	count, err := s.GetLikeCount(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	return &dto.LikeStatusDTO{Liked: !liked, LikesCount: int(count)}, nil
}

func (s *recipeActionServiceImpl) GetLikeStatus(ctx context.Context, userID, recipeID uint64) (*dto.LikeStatusDTO, error) {
	if err := s.checkRecipe(ctx, recipeID); err != nil {
		return nil, err
	}

	liked := false
	if userID != 0 {
		var err error
		liked, err = s.actionRepo.CheckLikeExists(ctx, userID, recipeID)
		if err != nil {
			return nil, err
		}
	}

	count, err := s.GetLikeCount(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	return &dto.LikeStatusDTO{Liked: liked, LikesCount: int(count)}, nil
}

// TrackView 同一用户重复浏览只记一次
func (s *recipeActionServiceImpl) TrackView(ctx context.Context, userID, recipeID uint64) error {
	if err := s.checkRecipe(ctx, recipeID); err != nil {
		return err
	}

	err := s.actionRepo.CreateView(ctx, &model.RecipeView{UserID: userID, RecipeID: recipeID, ViewedAt: time.Now()})
	if err != nil {
		if isDuplicateError(err) {
			return nil
		}
		return err
	}

	_ = redis.DeleteKey(ctx, consts.RecipeViewCountKey+strconv.FormatUint(recipeID, 10))
	s.recompute(ctx, recipeID)
	return nil
}

func (s *recipeActionServiceImpl) CreateComment(ctx context.Context, userID, recipeID uint64, commentDTO *dto.CreateCommentDTO) (*dto.CommentDTO, error) {
	if err := s.checkRecipe(ctx, recipeID); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		RecipeID: recipeID,
		UserID:   userID,
		Content:  commentDTO.Content,
		Rating:   commentDTO.Rating,
	}
	if err := s.actionRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	_ = redis.DeleteKey(ctx, consts.RecipeCommentCountKey+strconv.FormatUint(recipeID, 10))
	s.recompute(ctx, recipeID)
	return convertToCommentDTO(comment), nil
}

func (s *recipeActionServiceImpl) GetComments(ctx context.Context, recipeID uint64, page, limit int) ([]*dto.CommentDTO, error) {
	if err := s.checkRecipe(ctx, recipeID); err != nil {
		return nil, err
	}

	page, limit = normalizePage(page, limit)
	comments, err := s.actionRepo.GetCommentsByRecipeID(ctx, recipeID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.CommentDTO, 0, len(comments))
	for _, comment := range comments {
		item := convertToCommentDTO(comment)
		if comment.User.ID != 0 {
			item.Username = comment.User.Username
		}
		result = append(result, item)
	}
	return result, nil
}

func (s *recipeActionServiceImpl) GetLikeCount(ctx context.Context, recipeID uint64) (int64, error) {
	key := consts.RecipeLikeCountKey + strconv.FormatUint(recipeID, 10)
	count, err := redis.GetInt64(ctx, key)
	if err == nil {
		return count, nil
	}
	realCount, err := s.actionRepo.GetLikeCountByRecipeID(ctx, recipeID)
	if err != nil {
		return 0, err
	}
	_ = redis.SetWithExpiration(ctx, key, realCount, cacheExpiration)
	return realCount, nil
}

func (s *recipeActionServiceImpl) GetViewCount(ctx context.Context, recipeID uint64) (int64, error) {
	key := consts.RecipeViewCountKey + strconv.FormatUint(recipeID, 10)
	count, err := redis.GetInt64(ctx, key)
	if err == nil {
		return count, nil
	}
	realCount, err := s.actionRepo.GetViewCountByRecipeID(ctx, recipeID)
	if err != nil {
		return 0, err
	}
	_ = redis.SetWithExpiration(ctx, key, realCount, cacheExpiration)
	return realCount, nil
}

func (s *recipeActionServiceImpl) GetCommentCount(ctx context.Context, recipeID uint64) (int64, error) {
	key := consts.RecipeCommentCountKey + strconv.FormatUint(recipeID, 10)
	count, err := redis.GetInt64(ctx, key)
	if err == nil {
		return count, nil
	}
	realCount, err := s.actionRepo.GetCommentCountByRecipeID(ctx, recipeID)
	if err != nil {
		return 0, err
	}
	_ = redis.SetWithExpiration(ctx, key, realCount, cacheExpiration)
	return realCount, nil
}

func (s *recipeActionServiceImpl) recompute(ctx context.Context, recipeID uint64) {
	if err := s.trending.RecomputeRecipe(ctx, recipeID); err != nil {
		log.WarnContext(ctx, "trending recompute failed", "recipeID", recipeID, "err", err)
	}
}

func (s *recipeActionServiceImpl) checkRecipe(ctx context.Context, recipeID uint64) error {
	recipes, err := s.recipeRepo.GetRecipeByIds(ctx, []uint64{recipeID})
	if err != nil {
		return err
	}
	if len(recipes) == 0 {
		return ErrRecipeNotFound
	}
	return nil
}

func convertToCommentDTO(comment *model.Comment) *dto.CommentDTO {
	item := &dto.CommentDTO{}
	_ = copier.Copy(item, comment)
	item.CreatedAt = comment.CreatedAt.Format(time.RFC3339)
	return item
}

func isDuplicateError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	return false
}
