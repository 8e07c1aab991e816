package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/devisriprasad58/fit-fusion-progress-track/internal/dashboard"
	"github.com/devisriprasad58/fit-fusion-progress-track/internal/domain"
	"github.com/devisriprasad58/fit-fusion-progress-track/internal/repository"
)

// --- Error Definitions ---
var (
	ErrPlanNotFound        = errors.New("workout plan not found")
	ErrPlanNotAssigned     = errors.New("plan is not assigned to this trainee")
	ErrAlreadyCompleted    = errors.New("workout already completed")
	ErrInviteNotFound      = errors.New("invite not found")
	ErrInviteExpired       = errors.New("invite has expired")
	ErrInviteNotAddressed  = errors.New("invite is addressed to a different email")
	ErrInviteAlreadyClosed = errors.New("invite has already been answered")
)

// CompletionInput carries the optional session metrics recorded when a
// trainee completes a workout.
type CompletionInput struct {
	Duration       int
	CaloriesBurned *int
	HeartRate      *domain.HeartRate
	Notes          string
	Feedback       string
}

// --- Service Interface ---
type TraineeService interface {
	GetPlans(ctx context.Context, traineeID string) ([]domain.WorkoutPlan, error)
	GetGroups(ctx context.Context, traineeID string) ([]domain.TraineeGroup, error)
	GetProgress(ctx context.Context, traineeID string) ([]domain.WorkoutProgress, error)

	// CompleteWorkout marks a scheduled plan workout done (exactly once)
	// and appends an immutable progress record.
	CompleteWorkout(ctx context.Context, traineeID, planID, workoutID string, input CompletionInput) (*domain.WorkoutProgress, error)

	// Invite responses
	AcceptInvite(ctx context.Context, userID, inviteID string) error
	RejectInvite(ctx context.Context, userID, inviteID string) error

	// Dashboard
	Overview(ctx context.Context, traineeID string, now time.Time) (dashboard.TraineeOverview, error)
	Schedule(ctx context.Context, traineeID string, now time.Time) (dashboard.ScheduleView, error)
}

// --- Service Implementation ---

type traineeService struct {
	userRepo     repository.UserRepository
	planRepo     repository.PlanRepository
	groupRepo    repository.GroupRepository
	progressRepo repository.ProgressRepository
	inviteRepo   repository.InviteRepository
	snapshots    snapshotLoader
}

// NewTraineeService creates a new instance of traineeService.
func NewTraineeService(
	userRepo repository.UserRepository,
	workoutRepo repository.WorkoutRepository,
	planRepo repository.PlanRepository,
	groupRepo repository.GroupRepository,
	progressRepo repository.ProgressRepository,
	inviteRepo repository.InviteRepository,
) TraineeService {
	return &traineeService{
		userRepo:     userRepo,
		planRepo:     planRepo,
		groupRepo:    groupRepo,
		progressRepo: progressRepo,
		inviteRepo:   inviteRepo,
		snapshots: snapshotLoader{
			userRepo:     userRepo,
			workoutRepo:  workoutRepo,
			planRepo:     planRepo,
			groupRepo:    groupRepo,
			progressRepo: progressRepo,
		},
	}
}

// GetPlans retrieves the plans assigned to the trainee.
func (s *traineeService) GetPlans(ctx context.Context, traineeID string) ([]domain.WorkoutPlan, error) {
	all, err := s.planRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []domain.WorkoutPlan
	for _, p := range all {
		if p.HasTrainee(traineeID) {
			out = append(out, p)
		}
	}
	return out, nil
}

// GetGroups retrieves the groups the trainee belongs to.
func (s *traineeService) GetGroups(ctx context.Context, traineeID string) ([]domain.TraineeGroup, error) {
	all, err := s.groupRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []domain.TraineeGroup
	for _, g := range all {
		if g.HasTrainee(traineeID) {
			out = append(out, g)
		}
	}
	return out, nil
}

// GetProgress retrieves the trainee's own progress history.
func (s *traineeService) GetProgress(ctx context.Context, traineeID string) ([]domain.WorkoutProgress, error) {
	return s.progressRepo.ListByUser(ctx, traineeID)
}

// CompleteWorkout transitions a scheduled plan workout to completed and
// appends the progress record. The transition happens exactly once; a
// second completion attempt fails with ErrAlreadyCompleted.
func (s *traineeService) CompleteWorkout(ctx context.Context, traineeID, planID, workoutID string, input CompletionInput) (*domain.WorkoutProgress, error) {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	if !plan.HasTrainee(traineeID) {
		return nil, ErrPlanNotAssigned
	}

	now := time.Now().UTC()
	if err := s.planRepo.CompletePlanWorkout(ctx, planID, workoutID, now); err != nil {
		switch {
		case errors.Is(err, repository.ErrUpdateFailed):
			return nil, ErrAlreadyCompleted
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrWorkoutNotFound
		default:
			return nil, err
		}
	}

	duration := input.Duration
	if duration <= 0 {
		// Fall back to the scheduled workout's nominal duration.
		if w, werr := s.snapshots.workoutRepo.GetByID(ctx, workoutID); werr == nil {
			duration = w.Duration
		}
	}

	progress := &domain.WorkoutProgress{
		ID:             uuid.NewString(),
		UserID:         traineeID,
		WorkoutID:      workoutID,
		PlanID:         planID,
		CompletedDate:  now,
		Duration:       duration,
		CaloriesBurned: input.CaloriesBurned,
		HeartRate:      input.HeartRate,
		Notes:          input.Notes,
	}
	if _, err := s.progressRepo.Append(ctx, progress); err != nil {
		return nil, err
	}
	return progress, nil
}

// === Invite responses ===

// respondToInvite validates ownership and expiry, then applies the
// pending -> terminal transition.
func (s *traineeService) respondToInvite(ctx context.Context, userID, inviteID string, status domain.InviteStatus) (*domain.Invite, *domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	invite, err := s.inviteRepo.GetByID(ctx, inviteID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrInviteNotFound
		}
		return nil, nil, err
	}
	if !domain.EmailsEqual(invite.Email, user.Email) {
		return nil, nil, ErrInviteNotAddressed
	}
	if invite.Status != domain.InvitePending {
		return nil, nil, ErrInviteAlreadyClosed
	}
	if invite.Expired(time.Now().UTC()) {
		return nil, nil, ErrInviteExpired
	}

	if err := s.inviteRepo.UpdateStatus(ctx, inviteID, status); err != nil {
		if errors.Is(err, repository.ErrUpdateFailed) {
			return nil, nil, ErrInviteAlreadyClosed
		}
		return nil, nil, err
	}
	invite.Status = status
	return invite, user, nil
}

// AcceptInvite accepts a pending invite addressed to the user and, when
// the invite targets a group, joins them to it.
func (s *traineeService) AcceptInvite(ctx context.Context, userID, inviteID string) error {
	invite, user, err := s.respondToInvite(ctx, userID, inviteID, domain.InviteAccepted)
	if err != nil {
		return err
	}
	if invite.GroupID != "" && user.IsTrainee() {
		if err := s.groupRepo.AddTrainee(ctx, invite.GroupID, user.ID); err != nil {
			return err
		}
	}
	return nil
}

// RejectInvite rejects a pending invite addressed to the user.
func (s *traineeService) RejectInvite(ctx context.Context, userID, inviteID string) error {
	_, _, err := s.respondToInvite(ctx, userID, inviteID, domain.InviteRejected)
	return err
}

// === Dashboard ===

// Overview computes the trainee dashboard from a fresh snapshot.
func (s *traineeService) Overview(ctx context.Context, traineeID string, now time.Time) (dashboard.TraineeOverview, error) {
	snap := s.snapshots.load(ctx)
	return dashboard.BuildTraineeOverview(snap, traineeID, now), nil
}

// Schedule computes the schedule page view model.
func (s *traineeService) Schedule(ctx context.Context, traineeID string, now time.Time) (dashboard.ScheduleView, error) {
	snap := s.snapshots.load(ctx)
	return dashboard.Schedule(snap, traineeID, now), nil
}
