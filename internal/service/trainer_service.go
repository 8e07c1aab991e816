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
	ErrTrainerNotFound = errors.New("trainer user not found")
	ErrNotTrainer      = errors.New("user found but is not a trainer")
	ErrTraineeNotFound = errors.New("trainee user not found")
	ErrNotTrainee      = errors.New("user found but is not a trainee")
	ErrGroupNotFound   = errors.New("group not found")
	ErrGroupNotOwned   = errors.New("group is not owned by this trainer")
	ErrWorkoutNotFound = errors.New("workout not found")
)

// Invites without an explicit expiry default to one week.
const defaultInviteTTL = 7 * 24 * time.Hour

// --- Service Interface ---
type TrainerService interface {
	// Group Management
	CreateGroup(ctx context.Context, trainerID, name string, traineeIDs []string) (*domain.TraineeGroup, error)
	GetGroups(ctx context.Context, trainerID string) ([]domain.TraineeGroup, error)

	// Invites
	InviteTrainee(ctx context.Context, trainerID, email, groupID string) (*domain.Invite, error)
	GetInvites(ctx context.Context, trainerID string) ([]domain.Invite, error)

	// Workout & Plan Management
	CreateWorkout(ctx context.Context, workout *domain.Workout) (*domain.Workout, error)
	GetWorkouts(ctx context.Context, trainerID string) ([]domain.Workout, error)
	CreatePlan(ctx context.Context, plan *domain.WorkoutPlan) (*domain.WorkoutPlan, error)
	GetPlans(ctx context.Context, trainerID string) ([]domain.WorkoutPlan, error)

	// Dashboard
	Overview(ctx context.Context, trainerID string, now time.Time) (dashboard.TrainerOverview, error)
}

// --- Service Implementation ---

type trainerService struct {
	userRepo    repository.UserRepository
	workoutRepo repository.WorkoutRepository
	planRepo    repository.PlanRepository
	groupRepo   repository.GroupRepository
	inviteRepo  repository.InviteRepository
	snapshots   snapshotLoader
}

// NewTrainerService creates a new instance of trainerService.
func NewTrainerService(
	userRepo repository.UserRepository,
	workoutRepo repository.WorkoutRepository,
	planRepo repository.PlanRepository,
	groupRepo repository.GroupRepository,
	inviteRepo repository.InviteRepository,
	progressRepo repository.ProgressRepository,
) TrainerService {
	return &trainerService{
		userRepo:    userRepo,
		workoutRepo: workoutRepo,
		planRepo:    planRepo,
		groupRepo:   groupRepo,
		inviteRepo:  inviteRepo,
		snapshots: snapshotLoader{
			userRepo:     userRepo,
			workoutRepo:  workoutRepo,
			planRepo:     planRepo,
			groupRepo:    groupRepo,
			progressRepo: progressRepo,
		},
	}
}

// requireTrainer verifies the id references an existing trainer user.
func (s *trainerService) requireTrainer(ctx context.Context, trainerID string) (*domain.User, error) {
	if trainerID == "" {
		return nil, errors.New("trainer ID is required")
	}
	user, err := s.userRepo.GetByID(ctx, trainerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}
	if !user.IsTrainer() {
		return nil, ErrNotTrainer
	}
	return user, nil
}

// requireTrainees verifies every id references an existing trainee-role user.
func (s *trainerService) requireTrainees(ctx context.Context, traineeIDs []string) error {
	for _, id := range traineeIDs {
		user, err := s.userRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrTraineeNotFound
			}
			return err
		}
		if !user.IsTrainee() {
			return ErrNotTrainee
		}
	}
	return nil
}

// === Group Management ===

// CreateGroup creates a trainee group owned by the trainer. Every
// member must be an existing trainee-role user.
func (s *trainerService) CreateGroup(ctx context.Context, trainerID, name string, traineeIDs []string) (*domain.TraineeGroup, error) {
	if _, err := s.requireTrainer(ctx, trainerID); err != nil {
		return nil, err
	}
	if err := s.requireTrainees(ctx, traineeIDs); err != nil {
		return nil, err
	}

	group := &domain.TraineeGroup{
		ID:        uuid.NewString(),
		Name:      name,
		TrainerID: trainerID,
		Trainees:  traineeIDs,
		CreatedAt: time.Now().UTC(),
	}
	if err := group.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// GetGroups retrieves the trainer's groups.
func (s *trainerService) GetGroups(ctx context.Context, trainerID string) ([]domain.TraineeGroup, error) {
	all, err := s.groupRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []domain.TraineeGroup
	for _, g := range all {
		if g.TrainerID == trainerID {
			out = append(out, g)
		}
	}
	return out, nil
}

// === Invites ===

// InviteTrainee issues a pending invite to an email address, optionally
// targeting one of the trainer's groups.
func (s *trainerService) InviteTrainee(ctx context.Context, trainerID, email, groupID string) (*domain.Invite, error) {
	if _, err := s.requireTrainer(ctx, trainerID); err != nil {
		return nil, err
	}
	if groupID != "" {
		group, err := s.groupRepo.GetByID(ctx, groupID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrGroupNotFound
			}
			return nil, err
		}
		if group.TrainerID != trainerID {
			return nil, ErrGroupNotOwned
		}
	}

	now := time.Now().UTC()
	invite := &domain.Invite{
		ID:        uuid.NewString(),
		Email:     domain.NormalizeEmail(email),
		TrainerID: trainerID,
		GroupID:   groupID,
		Status:    domain.InvitePending,
		CreatedAt: now,
		ExpiresAt: now.Add(defaultInviteTTL),
	}
	if err := invite.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.inviteRepo.Create(ctx, invite); err != nil {
		return nil, err
	}
	return invite, nil
}

// GetInvites retrieves all invites issued by the trainer.
func (s *trainerService) GetInvites(ctx context.Context, trainerID string) ([]domain.Invite, error) {
	return s.inviteRepo.ListByTrainer(ctx, trainerID)
}

// === Workout & Plan Management ===

// CreateWorkout stores a new workout. CreatedBy must reference an
// existing trainer.
func (s *trainerService) CreateWorkout(ctx context.Context, workout *domain.Workout) (*domain.Workout, error) {
	if _, err := s.requireTrainer(ctx, workout.CreatedBy); err != nil {
		return nil, err
	}
	if workout.ID == "" {
		workout.ID = uuid.NewString()
	}
	if workout.CreatedAt.IsZero() {
		workout.CreatedAt = time.Now().UTC()
	}
	if err := workout.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.workoutRepo.Create(ctx, workout); err != nil {
		return nil, err
	}
	return workout, nil
}

// GetWorkouts retrieves the workouts created by the trainer.
func (s *trainerService) GetWorkouts(ctx context.Context, trainerID string) ([]domain.Workout, error) {
	return s.workoutRepo.ListByCreator(ctx, trainerID)
}

// CreatePlan stores a new workout plan. Every assigned trainee must be
// a trainee-role user and every scheduled workout must exist.
func (s *trainerService) CreatePlan(ctx context.Context, plan *domain.WorkoutPlan) (*domain.WorkoutPlan, error) {
	if _, err := s.requireTrainer(ctx, plan.TrainerID); err != nil {
		return nil, err
	}
	if err := s.requireTrainees(ctx, plan.Trainees); err != nil {
		return nil, err
	}
	for _, pw := range plan.Workouts {
		if _, err := s.workoutRepo.GetByID(ctx, pw.WorkoutID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrWorkoutNotFound
			}
			return nil, err
		}
	}

	if plan.ID == "" {
		plan.ID = uuid.NewString()
	}
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = time.Now().UTC()
	}
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.planRepo.Create(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// GetPlans retrieves the trainer's plans.
func (s *trainerService) GetPlans(ctx context.Context, trainerID string) ([]domain.WorkoutPlan, error) {
	all, err := s.planRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []domain.WorkoutPlan
	for _, p := range all {
		if p.TrainerID == trainerID {
			out = append(out, p)
		}
	}
	return out, nil
}

// === Dashboard ===

// Overview computes the trainer dashboard from a fresh snapshot.
func (s *trainerService) Overview(ctx context.Context, trainerID string, now time.Time) (dashboard.TrainerOverview, error) {
	if _, err := s.requireTrainer(ctx, trainerID); err != nil {
		return dashboard.TrainerOverview{}, err
	}
	snap := s.snapshots.load(ctx)
	return dashboard.BuildTrainerOverview(snap, trainerID, now), nil
}
