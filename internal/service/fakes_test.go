package service

import (
	"context"
	"os"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	goredis "github.com/redis/go-redis/v9"

	"MealHub/internal/api/config"
	"MealHub/internal/model"
	"MealHub/internal/pkg/es"
	"MealHub/internal/pkg/redis"
	"MealHub/internal/repository"
)

func TestMain(m *testing.M) {
	config.Cfg = &config.Config{
		JWT: config.JWTConfig{
			Secret:      "test-secret",
			Issuer:      "mealhub",
			ExpireHours: 24,
		},
		Trending: config.TrendingConfig{
			LikeWeight:    3,
			CommentWeight: 5,
			ViewWeight:    0.1,
			DecayDays:     180,
			MinAgeFactor:  0.1,
		},
		MealVote: config.MealVoteConfig{DurationHours: 24},
	}
	// 不可达的地址，缓存读写全部走降级路径
	redis.Rdb = goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	os.Exit(m.Run())
}

func duplicateKeyError() error {
	return &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}
}

// ---- user repo ----

type fakeUserRepo struct {
	users  map[uint64]*model.User
	nextID uint64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint64]*model.User), nextID: 1}
}

func (r *fakeUserRepo) addUser(user *model.User) *model.User {
	if user.ID == 0 {
		user.ID = r.nextID
		r.nextID++
	} else if user.ID >= r.nextID {
		r.nextID = user.ID + 1
	}
	r.users[user.ID] = user
	return user
}

func (r *fakeUserRepo) GetUserById(ctx context.Context, id uint64) (*model.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) CreateUser(ctx context.Context, user *model.User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email || existing.Username == user.Username {
			return duplicateKeyError()
		}
	}
	user.CreatedAt = time.Now()
	r.addUser(user)
	return nil
}

func (r *fakeUserRepo) UpdateUser(ctx context.Context, user *model.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) AddDailyCalories(ctx context.Context, id uint64, calories int) error {
	if user, ok := r.users[id]; ok {
		user.DailyCalories += calories
	}
	return nil
}

func (r *fakeUserRepo) ResetDailyCalories(ctx context.Context, id uint64) error {
	if user, ok := r.users[id]; ok {
		user.DailyCalories = 0
	}
	return nil
}

func (r *fakeUserRepo) ResetAllDailyCalories(ctx context.Context) (int64, error) {
	var affected int64
	for _, user := range r.users {
		if user.DailyCalories != 0 {
			user.DailyCalories = 0
			affected++
		}
	}
	return affected, nil
}

// ---- recipe repo ----

type fakeRecipeRepo struct {
	recipes  map[uint64]*model.Recipe
	nextID   uint64
	fetchErr error
}

func newFakeRecipeRepo() *fakeRecipeRepo {
	return &fakeRecipeRepo{recipes: make(map[uint64]*model.Recipe), nextID: 1}
}

func (r *fakeRecipeRepo) addRecipe(recipe *model.Recipe) *model.Recipe {
	if recipe.ID == 0 {
		recipe.ID = r.nextID
		r.nextID++
	} else if recipe.ID >= r.nextID {
		r.nextID = recipe.ID + 1
	}
	if recipe.CreatedAt.IsZero() {
		recipe.CreatedAt = time.Now()
	}
	r.recipes[recipe.ID] = recipe
	return recipe
}

func (r *fakeRecipeRepo) CreateRecipe(ctx context.Context, recipe *model.Recipe) error {
	recipe.CreatedAt = time.Now()
	recipe.UpdatedAt = recipe.CreatedAt
	r.addRecipe(recipe)
	return nil
}

func (r *fakeRecipeRepo) GetRecipe(ctx context.Context, id uint64) (*model.Recipe, error) {
	return r.recipes[id], nil
}

func (r *fakeRecipeRepo) GetRecipeByIds(ctx context.Context, ids []uint64) ([]*model.Recipe, error) {
	if r.fetchErr != nil {
		return nil, r.fetchErr
	}
	result := make([]*model.Recipe, 0, len(ids))
	for _, id := range ids {
		if recipe, ok := r.recipes[id]; ok {
			result = append(result, recipe)
		}
	}
	return result, nil
}

func (r *fakeRecipeRepo) ListRecipes(ctx context.Context, filter repository.RecipeFilter, limit, offset int) ([]*model.Recipe, int64, error) {
	matched := make([]*model.Recipe, 0)
	for _, recipe := range r.recipes {
		if filter.Difficulty != "" && recipe.Difficulty != filter.Difficulty {
			continue
		}
		if filter.CuisineType != "" && recipe.CuisineType != filter.CuisineType {
			continue
		}
		if filter.Search != "" && !strings.Contains(recipe.Title, filter.Search) && !strings.Contains(recipe.Description, filter.Search) {
			continue
		}
		matched = append(matched, recipe)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	total := int64(len(matched))
	if offset >= len(matched) {
		return []*model.Recipe{}, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *fakeRecipeRepo) GetRecipesByAuthor(ctx context.Context, authorID uint64) ([]*model.Recipe, error) {
	result := make([]*model.Recipe, 0)
	for _, recipe := range r.recipes {
		if recipe.AuthorID == authorID {
			result = append(result, recipe)
		}
	}
	return result, nil
}

func (r *fakeRecipeRepo) GetRandomRecipe(ctx context.Context) (*model.Recipe, error) {
	for _, recipe := range r.recipes {
		return recipe, nil
	}
	return nil, nil
}

func (r *fakeRecipeRepo) GetTrendingRecipes(ctx context.Context, limit int) ([]*model.Recipe, error) {
	result := make([]*model.Recipe, 0)
	for _, recipe := range r.recipes {
		if recipe.TrendingScore > 0 {
			result = append(result, recipe)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].TrendingScore != result[j].TrendingScore {
			return result[i].TrendingScore > result[j].TrendingScore
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *fakeRecipeRepo) UpdateRecipe(ctx context.Context, recipe *model.Recipe) error {
	recipe.UpdatedAt = time.Now()
	r.recipes[recipe.ID] = recipe
	return nil
}

func (r *fakeRecipeRepo) UpdateCounters(ctx context.Context, id uint64, likes, comments, views int) error {
	if recipe, ok := r.recipes[id]; ok {
		recipe.LikesCount = likes
		recipe.CommentsCount = comments
		recipe.ViewsCount = views
	}
	return nil
}

func (r *fakeRecipeRepo) UpdateTrendingScore(ctx context.Context, id uint64, score float64) error {
	if recipe, ok := r.recipes[id]; ok {
		recipe.TrendingScore = score
	}
	return nil
}

func (r *fakeRecipeRepo) DeleteRecipe(ctx context.Context, id uint64) error {
	delete(r.recipes, id)
	return nil
}

// ---- recipe action repo ----

type likeKey struct {
	userID   uint64
	recipeID uint64
}

type fakeActionRepo struct {
	likes    map[likeKey]*model.RecipeLike
	views    map[likeKey]*model.RecipeView
	comments map[uint64]*model.Comment
	nextID   uint64
}

func newFakeActionRepo() *fakeActionRepo {
	return &fakeActionRepo{
		likes:    make(map[likeKey]*model.RecipeLike),
		views:    make(map[likeKey]*model.RecipeView),
		comments: make(map[uint64]*model.Comment),
		nextID:   1,
	}
}

func (r *fakeActionRepo) CreateLike(ctx context.Context, like *model.RecipeLike) error {
	key := likeKey{like.UserID, like.RecipeID}
	if _, ok := r.likes[key]; ok {
		return duplicateKeyError()
	}
	r.likes[key] = like
	return nil
}

func (r *fakeActionRepo) DeleteLike(ctx context.Context, userID, recipeID uint64) error {
	delete(r.likes, likeKey{userID, recipeID})
	return nil
}

func (r *fakeActionRepo) CheckLikeExists(ctx context.Context, userID, recipeID uint64) (bool, error) {
	_, ok := r.likes[likeKey{userID, recipeID}]
	return ok, nil
}

func (r *fakeActionRepo) CreateView(ctx context.Context, view *model.RecipeView) error {
	key := likeKey{view.UserID, view.RecipeID}
	if _, ok := r.views[key]; ok {
		return duplicateKeyError()
	}
	view.ID = r.nextID
	r.nextID++
	r.views[key] = view
	return nil
}

func (r *fakeActionRepo) CheckViewExists(ctx context.Context, userID, recipeID uint64) (bool, error) {
	_, ok := r.views[likeKey{userID, recipeID}]
	return ok, nil
}

func (r *fakeActionRepo) CreateComment(ctx context.Context, comment *model.Comment) error {
	comment.ID = r.nextID
	r.nextID++
	comment.CreatedAt = time.Now()
	r.comments[comment.ID] = comment
	return nil
}

func (r *fakeActionRepo) GetCommentByID(ctx context.Context, commentID uint64) (*model.Comment, error) {
	return r.comments[commentID], nil
}

func (r *fakeActionRepo) GetCommentsByRecipeID(ctx context.Context, recipeID uint64, limit, offset int) ([]*model.Comment, error) {
	result := make([]*model.Comment, 0)
	for _, comment := range r.comments {
		if comment.RecipeID == recipeID {
			result = append(result, comment)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	if offset >= len(result) {
		return []*model.Comment{}, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], nil
}

func (r *fakeActionRepo) DeleteComment(ctx context.Context, commentID uint64) error {
	delete(r.comments, commentID)
	return nil
}

func (r *fakeActionRepo) GetLikeCountByRecipeID(ctx context.Context, recipeID uint64) (int64, error) {
	var count int64
	for key := range r.likes {
		if key.recipeID == recipeID {
			count++
		}
	}
	return count, nil
}

func (r *fakeActionRepo) GetViewCountByRecipeID(ctx context.Context, recipeID uint64) (int64, error) {
	var count int64
	for key := range r.views {
		if key.recipeID == recipeID {
			count++
		}
	}
	return count, nil
}

func (r *fakeActionRepo) GetCommentCountByRecipeID(ctx context.Context, recipeID uint64) (int64, error) {
	var count int64
	for _, comment := range r.comments {
		if comment.RecipeID == recipeID {
			count++
		}
	}
	return count, nil
}

// ---- family repo ----

type memberKey struct {
	familyID uint64
	userID   uint64
}

type fakeFamilyRepo struct {
	families map[uint64]*model.Family
	members  map[memberKey]*model.FamilyMember
	nextID   uint64
}

func newFakeFamilyRepo() *fakeFamilyRepo {
	return &fakeFamilyRepo{
		families: make(map[uint64]*model.Family),
		members:  make(map[memberKey]*model.FamilyMember),
		nextID:   1,
	}
}

func (r *fakeFamilyRepo) addFamily(family *model.Family) *model.Family {
	if family.ID == 0 {
		family.ID = r.nextID
		r.nextID++
	} else if family.ID >= r.nextID {
		r.nextID = family.ID + 1
	}
	if family.CreatedAt.IsZero() {
		family.CreatedAt = time.Now()
	}
	r.families[family.ID] = family
	return family
}

func (r *fakeFamilyRepo) addMember(familyID, userID uint64, role string) {
	r.members[memberKey{familyID, userID}] = &model.FamilyMember{
		FamilyID: familyID,
		UserID:   userID,
		Role:     role,
		JoinedAt: time.Now(),
	}
}

func (r *fakeFamilyRepo) CreateFamilyWithAdmin(ctx context.Context, family *model.Family) error {
	r.addFamily(family)
	r.addMember(family.ID, family.AdminID, "admin")
	return nil
}

func (r *fakeFamilyRepo) GetFamily(ctx context.Context, id uint64) (*model.Family, error) {
	family, ok := r.families[id]
	if !ok {
		return nil, nil
	}
	members := make([]model.FamilyMember, 0)
	for key, member := range r.members {
		if key.familyID == id {
			members = append(members, *member)
		}
	}
	sort.Slice(members, func(i, j int) bool { return members[i].UserID < members[j].UserID })
	copied := *family
	copied.Members = members
	return &copied, nil
}

func (r *fakeFamilyRepo) GetFamiliesByUserID(ctx context.Context, userID uint64) ([]*model.Family, error) {
	result := make([]*model.Family, 0)
	for key := range r.members {
		if key.userID == userID {
			if family, err := r.GetFamily(ctx, key.familyID); err == nil && family != nil {
				result = append(result, family)
			}
		}
	}
	return result, nil
}

func (r *fakeFamilyRepo) DeleteFamily(ctx context.Context, id uint64) error {
	delete(r.families, id)
	for key := range r.members {
		if key.familyID == id {
			delete(r.members, key)
		}
	}
	return nil
}

func (r *fakeFamilyRepo) GetMember(ctx context.Context, familyID, userID uint64) (*model.FamilyMember, error) {
	return r.members[memberKey{familyID, userID}], nil
}

func (r *fakeFamilyRepo) CreateMember(ctx context.Context, member *model.FamilyMember) error {
	key := memberKey{member.FamilyID, member.UserID}
	if _, ok := r.members[key]; ok {
		return duplicateKeyError()
	}
	if member.JoinedAt.IsZero() {
		member.JoinedAt = time.Now()
	}
	r.members[key] = member
	return nil
}

func (r *fakeFamilyRepo) DeleteMember(ctx context.Context, familyID, userID uint64) error {
	delete(r.members, memberKey{familyID, userID})
	return nil
}

// ---- invitation repo ----

type fakeInvitationRepo struct {
	invitations map[uint64]*model.FamilyInvitation
	familyRepo  *fakeFamilyRepo
	nextID      uint64
}

func newFakeInvitationRepo(familyRepo *fakeFamilyRepo) *fakeInvitationRepo {
	return &fakeInvitationRepo{
		invitations: make(map[uint64]*model.FamilyInvitation),
		familyRepo:  familyRepo,
		nextID:      1,
	}
}

func (r *fakeInvitationRepo) CreateInvitation(ctx context.Context, invitation *model.FamilyInvitation) error {
	invitation.ID = r.nextID
	r.nextID++
	invitation.CreatedAt = time.Now()
	r.invitations[invitation.ID] = invitation
	return nil
}

func (r *fakeInvitationRepo) GetInvitationByID(ctx context.Context, id uint64) (*model.FamilyInvitation, error) {
	return r.invitations[id], nil
}

func (r *fakeInvitationRepo) GetPendingByInviteeID(ctx context.Context, inviteeID uint64) ([]*model.FamilyInvitation, error) {
	result := make([]*model.FamilyInvitation, 0)
	for _, invitation := range r.invitations {
		if invitation.InviteeID == inviteeID && invitation.Status == "pending" {
			result = append(result, invitation)
		}
	}
	return result, nil
}

func (r *fakeInvitationRepo) HasPendingInvitation(ctx context.Context, familyID, inviteeID uint64) (bool, error) {
	for _, invitation := range r.invitations {
		if invitation.FamilyID == familyID && invitation.InviteeID == inviteeID && invitation.Status == "pending" {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeInvitationRepo) AcceptInvitation(ctx context.Context, invitationID uint64) (*model.FamilyInvitation, error) {
	invitation, ok := r.invitations[invitationID]
	if !ok || invitation.Status != "pending" {
		return nil, repository.ErrInvitationNotPending
	}
	invitation.Status = "accepted"
	if _, ok = r.familyRepo.members[memberKey{invitation.FamilyID, invitation.InviteeID}]; ok {
		return invitation, repository.ErrAlreadyFamilyMember
	}
	r.familyRepo.addMember(invitation.FamilyID, invitation.InviteeID, "member")
	return invitation, nil
}

func (r *fakeInvitationRepo) RejectInvitation(ctx context.Context, invitationID uint64) error {
	invitation, ok := r.invitations[invitationID]
	if !ok || invitation.Status != "pending" {
		return repository.ErrInvitationNotPending
	}
	invitation.Status = "rejected"
	return nil
}

// ---- meal vote repo ----

type fakeMealVoteRepo struct {
	votes   map[uint64]*model.MealVote
	ballots map[memberKey]*model.UserMealVote
	nextID  uint64
}

func newFakeMealVoteRepo() *fakeMealVoteRepo {
	return &fakeMealVoteRepo{
		votes:   make(map[uint64]*model.MealVote),
		ballots: make(map[memberKey]*model.UserMealVote),
		nextID:  1,
	}
}

func (r *fakeMealVoteRepo) CreateVoteWithOptions(ctx context.Context, vote *model.MealVote, options []*model.MealVoteOption) error {
	vote.ID = r.nextID
	r.nextID++
	vote.CreatedAt = time.Now()
	for _, option := range options {
		option.ID = r.nextID
		r.nextID++
		option.VoteID = vote.ID
		vote.Options = append(vote.Options, *option)
	}
	r.votes[vote.ID] = vote
	return nil
}

func (r *fakeMealVoteRepo) GetVoteByID(ctx context.Context, id uint64) (*model.MealVote, error) {
	return r.votes[id], nil
}

func (r *fakeMealVoteRepo) GetVotesByFamilyID(ctx context.Context, familyID uint64) ([]*model.MealVote, error) {
	result := make([]*model.MealVote, 0)
	for _, vote := range r.votes {
		if vote.FamilyID == familyID {
			result = append(result, vote)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *fakeMealVoteRepo) GetActiveVoteByFamilyID(ctx context.Context, familyID uint64, now time.Time) (*model.MealVote, error) {
	for _, vote := range r.votes {
		if vote.FamilyID == familyID && vote.Status == "active" && vote.EndsAt.After(now) {
			return vote, nil
		}
	}
	return nil, nil
}

func (r *fakeMealVoteRepo) EndVote(ctx context.Context, voteID uint64) error {
	if vote, ok := r.votes[voteID]; ok {
		vote.Status = "ended"
	}
	return nil
}

func (r *fakeMealVoteRepo) GetOption(ctx context.Context, voteID, optionID uint64) (*model.MealVoteOption, error) {
	vote, ok := r.votes[voteID]
	if !ok {
		return nil, nil
	}
	for i := range vote.Options {
		if vote.Options[i].ID == optionID {
			return &vote.Options[i], nil
		}
	}
	return nil, nil
}

func (r *fakeMealVoteRepo) UpsertBallot(ctx context.Context, ballot *model.UserMealVote) error {
	key := memberKey{ballot.VoteID, ballot.UserID}
	if existing, ok := r.ballots[key]; ok {
		existing.OptionID = ballot.OptionID
		existing.UpdatedAt = time.Now()
		return nil
	}
	ballot.ID = r.nextID
	r.nextID++
	ballot.CreatedAt = time.Now()
	r.ballots[key] = ballot
	return nil
}

func (r *fakeMealVoteRepo) GetBallotsByVoteID(ctx context.Context, voteID uint64) ([]*model.UserMealVote, error) {
	result := make([]*model.UserMealVote, 0)
	for key, ballot := range r.ballots {
		if key.familyID == voteID {
			result = append(result, ballot)
		}
	}
	return result, nil
}

func (r *fakeMealVoteRepo) CountBallotsByOption(ctx context.Context, voteID uint64) (map[uint64]int64, error) {
	counts := make(map[uint64]int64)
	for key, ballot := range r.ballots {
		if key.familyID == voteID {
			counts[ballot.OptionID]++
		}
	}
	return counts, nil
}

// ---- progress repo ----

type fakeProgressRepo struct {
	rows   map[memberKey]*model.UserProgress
	nextID uint64
}

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{rows: make(map[memberKey]*model.UserProgress), nextID: 1}
}

func (r *fakeProgressRepo) UpsertProgress(ctx context.Context, progress *model.UserProgress, updateColumns []string) error {
	key := memberKey{progress.UserID, progress.RecipeID}
	existing, ok := r.rows[key]
	if !ok {
		progress.ID = r.nextID
		r.nextID++
		copied := *progress
		r.rows[key] = &copied
		return nil
	}
	for _, column := range updateColumns {
		switch column {
		case "completion_status":
			existing.CompletionStatus = progress.CompletionStatus
		case "started_at":
			existing.StartedAt = progress.StartedAt
		case "did_eat":
			existing.DidEat = progress.DidEat
		}
	}
	return nil
}

func (r *fakeProgressRepo) GetProgress(ctx context.Context, userID, recipeID uint64) (*model.UserProgress, error) {
	return r.rows[memberKey{userID, recipeID}], nil
}

func (r *fakeProgressRepo) GetProgressByUserID(ctx context.Context, userID uint64) ([]*model.UserProgress, error) {
	result := make([]*model.UserProgress, 0)
	for key, progress := range r.rows {
		if key.familyID == userID {
			result = append(result, progress)
		}
	}
	return result, nil
}

func (r *fakeProgressRepo) UpdateProgress(ctx context.Context, progress *model.UserProgress) error {
	r.rows[memberKey{progress.UserID, progress.RecipeID}] = progress
	return nil
}

// ---- search repo ----

type fakeSearchRepo struct {
	docs      map[uint64]*es.RecipeES
	searchErr error
	hits      []*es.RecipeES
}

func newFakeSearchRepo() *fakeSearchRepo {
	return &fakeSearchRepo{docs: make(map[uint64]*es.RecipeES)}
}

func (r *fakeSearchRepo) SearchRecipes(ctx context.Context, queryText string, from, size int) ([]*es.RecipeES, error) {
	if r.searchErr != nil {
		return nil, r.searchErr
	}
	return r.hits, nil
}

func (r *fakeSearchRepo) GetLatestRecipes(ctx context.Context, from, size int) ([]*es.RecipeES, error) {
	return r.hits, nil
}

func (r *fakeSearchRepo) IndexRecipe(ctx context.Context, recipe *es.RecipeES, version int64) error {
	r.docs[recipe.ID] = recipe
	return nil
}

func (r *fakeSearchRepo) DeleteRecipe(ctx context.Context, id uint64) error {
	delete(r.docs, id)
	return nil
}
