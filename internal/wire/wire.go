package wire

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"MealHub/internal/api"
	"MealHub/internal/api/config"
	"MealHub/internal/api/handler"
	"MealHub/internal/job"
	"MealHub/internal/pkg/cron"
	"MealHub/internal/pkg/es"
	"MealHub/internal/repository"
	"MealHub/internal/service"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	DB      *gorm.DB
	CronMgr *cron.Manager
}

func BuildApplication(db *gorm.DB, cfg *config.Config) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepo(db)
	recipeRepo := repository.NewRecipeRepo(db)
	actionRepo := repository.NewRecipeActionRepo(db)
	familyRepo := repository.NewFamilyRepo(db)
	invitationRepo := repository.NewInvitationRepo(db)
	voteRepo := repository.NewMealVoteRepo(db)
	progressRepo := repository.NewProgressRepo(db)
	searchRepo := es.NewRecipeRepo(es.Client)

	trendingService := service.NewTrendingService(recipeRepo, actionRepo)
	userService := service.NewUserService(userRepo)
	recipeService := service.NewRecipeService(recipeRepo, searchRepo)
	actionService := service.NewRecipeActionService(actionRepo, recipeRepo, trendingService)
	familyService := service.NewFamilyService(familyRepo)
	invitationService := service.NewInvitationService(invitationRepo, familyRepo, userRepo)
	voteService := service.NewMealVoteService(voteRepo, familyRepo, recipeRepo)
	progressService := service.NewProgressService(progressRepo, recipeRepo, userRepo)

	handlers := &api.HandlersGroup{
		UserHandler:         handler.NewUserHandler(userService),
		RecipeHandler:       handler.NewRecipeHandler(recipeService, trendingService, actionService),
		RecipeActionHandler: handler.NewRecipeActionHandler(actionService),
		FamilyHandler:       handler.NewFamilyHandler(familyService, invitationService),
		MealVoteHandler:     handler.NewMealVoteHandler(voteService),
		ProgressHandler:     handler.NewProgressHandler(progressService),
		MediaHandler:        handler.NewMediaHandler(),
	}

	router := api.SetupRouter(handlers)

	calorieResetJob := job.NewCalorieResetJob(userRepo)
	cronMgr := cron.NewCronManager(calorieResetJob)

	return &ApplicationContainer{
		Router:  router,
		DB:      db,
		CronMgr: cronMgr,
	}, nil
}
