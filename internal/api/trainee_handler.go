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

// TraineeHandler holds the trainee service dependency.
type TraineeHandler struct {
	traineeService service.TraineeService
}

// NewTraineeHandler creates a new TraineeHandler.
func NewTraineeHandler(traineeService service.TraineeService) *TraineeHandler {
	return &TraineeHandler{traineeService: traineeService}
}

// --- Request Structs ---

type CompleteWorkoutRequest struct {
	Duration       int               `json:"duration"`
	CaloriesBurned *int              `json:"caloriesBurned"`
	HeartRate      *domain.HeartRate `json:"heartRate"`
	Notes          string            `json:"notes"`
	Feedback       string            `json:"feedback"`
}

// --- Handler Methods ---

// Dashboard returns the trainee overview view model.
func (h *TraineeHandler) Dashboard(c *gin.Context) {
	traineeID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	overview, err := h.traineeService.Overview(c.Request.Context(), traineeID, time.Now())
	if err != nil {
		h.mapServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

// Schedule returns the schedule page view model: the wider upcoming
// list plus the current week's day-by-day grid.
func (h *TraineeHandler) Schedule(c *gin.Context) {
	traineeID, _ := getUserIDFromContext(c)

	view, err := h.traineeService.Schedule(c.Request.Context(), traineeID, time.Now())
	if err != nil {
		h.mapServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// GetPlans lists the plans assigned to the caller.
func (h *TraineeHandler) GetPlans(c *gin.Context) {
	traineeID, _ := getUserIDFromContext(c)

	plans, err := h.traineeService.GetPlans(c.Request.Context(), traineeID)
	if err != nil {
		h.mapServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, plans)
}

// GetProgress lists the caller's progress history.
func (h *TraineeHandler) GetProgress(c *gin.Context) {
	traineeID, _ := getUserIDFromContext(c)

	progress, err := h.traineeService.GetProgress(c.Request.Context(), traineeID)
	if err != nil {
		h.mapServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

// CompleteWorkout marks a scheduled plan workout done and records the
// session's progress.
func (h *TraineeHandler) CompleteWorkout(c *gin.Context) {
	traineeID, _ := getUserIDFromContext(c)
	planID := c.Param("planId")
	workoutID := c.Param("workoutId")

	var req CompleteWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	progress, err := h.traineeService.CompleteWorkout(c.Request.Context(), traineeID, planID, workoutID, service.CompletionInput{
		Duration:       req.Duration,
		CaloriesBurned: req.CaloriesBurned,
		HeartRate:      req.HeartRate,
		Notes:          req.Notes,
		Feedback:       req.Feedback,
	})
	if err != nil {
		h.mapServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, progress)
}

// AcceptInvite accepts a pending invite addressed to the caller.
func (h *TraineeHandler) AcceptInvite(c *gin.Context) {
	h.respondToInvite(c, true)
}

// RejectInvite rejects a pending invite addressed to the caller.
func (h *TraineeHandler) RejectInvite(c *gin.Context) {
	h.respondToInvite(c, false)
}

func (h *TraineeHandler) respondToInvite(c *gin.Context, accept bool) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	inviteID := c.Param("id")

	if accept {
		err = h.traineeService.AcceptInvite(c.Request.Context(), userID, inviteID)
	} else {
		err = h.traineeService.RejectInvite(c.Request.Context(), userID, inviteID)
	}
	if err != nil {
		h.mapServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// mapServiceError converts trainee service errors to HTTP statuses.
func (h *TraineeHandler) mapServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPlanNotFound),
		errors.Is(err, service.ErrWorkoutNotFound),
		errors.Is(err, service.ErrInviteNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrPlanNotAssigned),
		errors.Is(err, service.ErrInviteNotAddressed):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrAlreadyCompleted),
		errors.Is(err, service.ErrInviteAlreadyClosed),
		errors.Is(err, service.ErrInviteExpired):
		abortWithError(c, http.StatusConflict, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
