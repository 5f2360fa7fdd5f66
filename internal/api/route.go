package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"MealHub/internal/api/middleware"
	"MealHub/internal/pkg/logger"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"success": true,
				"message": "pong",
			})
		})

		authGroup := apiGroup.Group("/auth")
		{
			authGroup.POST("/register", group.UserHandler.Register)
			authGroup.POST("/login", group.UserHandler.Login)

			protected := authGroup.Group("")
			protected.Use(middleware.AuthMiddleware())
			{
				protected.POST("/logout", group.UserHandler.Logout)
				protected.GET("/me", group.UserHandler.Me)
				protected.PUT("/me", group.UserHandler.UpdateProfile)
				protected.GET("/daily-calories", group.UserHandler.GetDailyCalories)
				protected.POST("/add-calories", group.UserHandler.AddCalories)
				protected.POST("/reset-calories", group.UserHandler.ResetCalories)
				protected.PUT("/calorie-goal", group.UserHandler.SetCalorieGoal)
			}
		}

		recipeGroup := apiGroup.Group("/recipes")
		{
			publicGroup := recipeGroup.Group("")
			publicGroup.Use(middleware.AuthOptionalMiddleware())
			{
				publicGroup.GET("", group.RecipeHandler.ListRecipes)
				publicGroup.GET("/random", group.RecipeHandler.GetRandomRecipe)
				publicGroup.GET("/trending", group.RecipeHandler.GetTrendingRecipes)
				publicGroup.GET("/search", group.RecipeHandler.SearchRecipes)
				publicGroup.GET("/:id", group.RecipeHandler.GetRecipe)
				publicGroup.GET("/:id/like-status", group.RecipeActionHandler.GetLikeStatus)
				publicGroup.GET("/:id/comments", group.RecipeActionHandler.GetComments)
			}

			protected := recipeGroup.Group("")
			protected.Use(middleware.AuthMiddleware())
			{
				protected.GET("/user/me", group.RecipeHandler.GetMyRecipes)
				protected.POST("", group.RecipeHandler.CreateRecipe)
				protected.PUT("/:id", group.RecipeHandler.UpdateRecipe)
				protected.DELETE("/:id", group.RecipeHandler.DeleteRecipe)
				protected.POST("/:id/like", group.RecipeActionHandler.ToggleLike)
				protected.POST("/:id/view", group.RecipeActionHandler.TrackView)
				protected.POST("/:id/comments", group.RecipeActionHandler.CreateComment)
				protected.POST("/:id/start-cooking", group.ProgressHandler.StartCooking)
				protected.POST("/:id/complete-cooking", group.ProgressHandler.CompleteCooking)
				protected.POST("/:id/ate-meal", group.ProgressHandler.AteMeal)
				protected.GET("/progress/me", group.ProgressHandler.GetMyProgress)
			}
		}

		familyGroup := apiGroup.Group("/families")
		familyGroup.Use(middleware.AuthMiddleware())
		{
			familyGroup.POST("", group.FamilyHandler.CreateFamily)
			familyGroup.GET("/my-families", group.FamilyHandler.GetMyFamilies)
			familyGroup.GET("/invitations/pending", group.FamilyHandler.GetPendingInvitations)
			familyGroup.PATCH("/invitations/:invitation_id", group.FamilyHandler.RespondInvitation)
			familyGroup.GET("/:id", group.FamilyHandler.GetFamily)
			familyGroup.DELETE("/:id", group.FamilyHandler.DeleteFamily)
			familyGroup.DELETE("/:id/leave", group.FamilyHandler.LeaveFamily)
			familyGroup.POST("/:id/invitations", group.FamilyHandler.InviteMember)
			familyGroup.POST("/:id/meal-votes", group.MealVoteHandler.CreateMealVote)
			familyGroup.GET("/:id/meal-votes", group.MealVoteHandler.GetMealVotes)
			familyGroup.GET("/:id/meal-votes/active", group.MealVoteHandler.GetActiveVote)
			familyGroup.POST("/:id/meal-votes/:vote_id/vote", group.MealVoteHandler.SubmitVote)
			familyGroup.PATCH("/:id/meal-votes/:vote_id/end", group.MealVoteHandler.EndVote)
		}

		mediaGroup := apiGroup.Group("/media")
		mediaGroup.Use(middleware.AuthMiddleware())
		{
			mediaGroup.POST("/upload", group.MediaHandler.Upload)
		}
	}

	return r
}
