package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/devisriprasad58/fit-fusion-progress-track/internal/domain"
	"github.com/devisriprasad58/fit-fusion-progress-track/internal/service"
)

// TrainerHandler holds the trainer service dependency.
type TrainerHandler struct {
	trainerService service.TrainerService
}

// NewTrainerHandler creates a new TrainerHandler.
func NewTrainerHandler(trainerService service.TrainerService) *TrainerHandler {
	return &TrainerHandler{trainerService: trainerService}
}

// --- Request Structs ---

type CreateGroupRequest struct {
	Name     string   `json:"name" binding:"required"`
	Trainees []string `json:"trainees"`
}

type InviteRequest struct {
	Email   string `json:"email" binding:"required,email"`
	GroupID string `json:"groupId"`
}

type ExerciseRequest struct {
	Name     string              `json:"name" binding:"required"`
	Type     domain.ExerciseType `json:"type" binding:"required,oneof=cardio strength flexibility balance"`
	Duration int                 `json:"duration" binding:"required,gt=0"`
	Sets     *int                `json:"sets"`
	Reps     *int                `json:"reps"`
	Notes    string              `json:"notes"`
}

type CreateWorkoutRequest struct {
	Name        string            `json:"name" binding:"required"`
	Description string            `json:"description"`
	Exercises   []ExerciseRequest `json:"exercises" binding:"required,min=1,dive"`
	Duration    int               `json:"duration" binding:"required,gt=0"`
	Difficulty  domain.Difficulty `json:"difficulty" binding:"required,oneof=beginner intermediate advanced"`
}

type PlanWorkoutRequest struct {
	WorkoutID     string    `json:"workoutId" binding:"required"`
	ScheduledDate time.Time `json:"scheduledDate" binding:"required"`
}

type CreatePlanRequest struct {
	Name        string               `json:"name" binding:"required"`
	Description string               `json:"description"`
	Workouts    []PlanWorkoutRequest `json:"workouts" binding:"dive"`
	Trainees    []string             `json:"trainees"`
	StartDate   time.Time            `json:"startDate" binding:"required"`
	EndDate     *time.Time           `json:"endDate"`
}

// --- Handler Methods ---

// Dashboard returns the trainer overview view model.
func (h *TrainerHandler) Dashboard(c *gin.Context) {
	trainerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	overview, err := h.trainerService.Overview(c.Request.Context(), trainerID, time.Now())
	if err != nil {
		h.mapServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

// CreateGroup creates a trainee group owned by the caller.
func (h *TrainerHandler) CreateGroup(c *gin.Context) {
	trainerID, _ := getUserIDFromContext(c)

	var req CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	group, err := h.trainerService.CreateGroup(c.Request.Context(), trainerID, req.Name, req.Trainees)
	if err != nil {
		h.mapServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, group)
}

// GetGroups lists the caller's groups.
func (h *TrainerHandler) GetGroups(c *gin.Context) {
	trainerID, _ := getUserIDFromContext(c)

	groups, err := h.trainerService.GetGroups(c.Request.Context(), trainerID)
	if err != nil {
		h.mapServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, groups)
}

// Invite issues a pending invite to an email address.
func (h *TrainerHandler) Invite(c *gin.Context) {
	trainerID, _ := getUserIDFromContext(c)

	var req InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	invite, err := h.trainerService.InviteTrainee(c.Request.Context(), trainerID, req.Email, req.GroupID)
	if err != nil {
		h.mapServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, invite)
}

// GetInvites lists the caller's issued invites.
func (h *TrainerHandler) GetInvites(c *gin.Context) {
	trainerID, _ := getUserIDFromContext(c)

	invites, err := h.trainerService.GetInvites(c.Request.Context(), trainerID)
	if err != nil {
		h.mapServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, invites)
}

// CreateWorkout stores a new workout owned by the caller.
func (h *TrainerHandler) CreateWorkout(c *gin.Context) {
	trainerID, _ := getUserIDFromContext(c)

	var req CreateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	workout := &domain.Workout{
		Name:        req.Name,
		Description: req.Description,
		Duration:    req.Duration,
		Difficulty:  req.Difficulty,
		CreatedBy:   trainerID,
	}
	for i, ex := range req.Exercises {
		workout.Exercises = append(workout.Exercises, domain.Exercise{
			ID:       fmt.Sprintf("%d", i+1),
			Name:     ex.Name,
			Type:     ex.Type,
			Duration: ex.Duration,
			Sets:     ex.Sets,
			Reps:     ex.Reps,
			Notes:    ex.Notes,
		})
	}

	created, err := h.trainerService.CreateWorkout(c.Request.Context(), workout)
	if err != nil {
		h.mapServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetWorkouts lists the caller's workouts.
func (h *TrainerHandler) GetWorkouts(c *gin.Context) {
	trainerID, _ := getUserIDFromContext(c)

	workouts, err := h.trainerService.GetWorkouts(c.Request.Context(), trainerID)
	if err != nil {
		h.mapServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, workouts)
}

// CreatePlan stores a new workout plan owned by the caller.
func (h *TrainerHandler) CreatePlan(c *gin.Context) {
	trainerID, _ := getUserIDFromContext(c)

	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	plan := &domain.WorkoutPlan{
		Name:        req.Name,
		Description: req.Description,
		TrainerID:   trainerID,
		Trainees:    req.Trainees,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}
	for _, pw := range req.Workouts {
		plan.Workouts = append(plan.Workouts, domain.PlanWorkout{
			WorkoutID:     pw.WorkoutID,
			ScheduledDate: pw.ScheduledDate,
		})
	}

	created, err := h.trainerService.CreatePlan(c.Request.Context(), plan)
	if err != nil {
		h.mapServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetPlans lists the caller's plans.
func (h *TrainerHandler) GetPlans(c *gin.Context) {
	trainerID, _ := getUserIDFromContext(c)

	plans, err := h.trainerService.GetPlans(c.Request.Context(), trainerID)
	if err != nil {
		h.mapServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, plans)
}

// mapServiceError converts trainer service errors to HTTP statuses.
func (h *TrainerHandler) mapServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTrainerNotFound),
		errors.Is(err, service.ErrTraineeNotFound),
		errors.Is(err, service.ErrGroupNotFound),
		errors.Is(err, service.ErrWorkoutNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNotTrainer),
		errors.Is(err, service.ErrNotTrainee),
		errors.Is(err, service.ErrGroupNotOwned):
		abortWithError(c, http.StatusForbidden, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
