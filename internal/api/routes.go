package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devisriprasad58/fit-fusion-progress-track/internal/authz"
	"github.com/devisriprasad58/fit-fusion-progress-track/internal/domain"
	"github.com/devisriprasad58/fit-fusion-progress-track/internal/service"
	"github.com/devisriprasad58/fit-fusion-progress-track/internal/session"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	sessions *session.Store,
	authService service.AuthService,
	trainerService service.TrainerService,
	traineeService service.TraineeService,
) {
	authHandler := NewAuthHandler(sessions, authService)
	trainerHandler := NewTrainerHandler(trainerService)
	traineeHandler := NewTraineeHandler(traineeService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/logout", authHandler.Logout)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userIDStr, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			role, _ := getUserRoleFromContext(c)
			c.JSON(http.StatusOK, gin.H{"userId": userIDStr, "role": role})
		})

		// Navigation menu derived from the caller's role.
		protected.GET("/nav", func(c *gin.Context) {
			role, err := getUserRoleFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user role from token")
				return
			}
			c.JSON(http.StatusOK, authz.Menu(role))
		})

		// Invite responses are open to any authenticated user: the
		// invitee may not have picked a role-scoped surface yet.
		protected.POST("/invites/:id/accept", traineeHandler.AcceptInvite)
		protected.POST("/invites/:id/reject", traineeHandler.RejectInvite)

		// --- Trainer Routes ---
		trainerGroup := protected.Group("/trainer")
		trainerGroup.Use(RoleMiddleware(domain.RoleTrainer))
		{
			trainerGroup.GET("/dashboard", trainerHandler.Dashboard)

			trainerGroup.POST("/groups", trainerHandler.CreateGroup)
			trainerGroup.GET("/groups", trainerHandler.GetGroups)

			trainerGroup.POST("/invites", trainerHandler.Invite)
			trainerGroup.GET("/invites", trainerHandler.GetInvites)

			trainerGroup.POST("/workouts", trainerHandler.CreateWorkout)
			trainerGroup.GET("/workouts", trainerHandler.GetWorkouts)

			trainerGroup.POST("/plans", trainerHandler.CreatePlan)
			trainerGroup.GET("/plans", trainerHandler.GetPlans)
		}

		// --- Trainee Routes ---
		traineeGroup := protected.Group("/trainee")
		traineeGroup.Use(RoleMiddleware(domain.RoleTrainee))
		{
			traineeGroup.GET("/dashboard", traineeHandler.Dashboard)
			traineeGroup.GET("/schedule", traineeHandler.Schedule)
			traineeGroup.GET("/plans", traineeHandler.GetPlans)
			traineeGroup.GET("/progress", traineeHandler.GetProgress)
			traineeGroup.POST("/plans/:planId/workouts/:workoutId/complete", traineeHandler.CompleteWorkout)
		}
	}
}
