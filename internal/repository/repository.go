package repository

import (
	"context"
	"time"

	"github.com/devisriprasad58/fit-fusion-progress-track/internal/domain"
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicate    = RepositoryError("already exists")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrUnavailable  = RepositoryError("storage unavailable")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (string, error)
	// GetByEmail matches the email case-insensitively.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

// WorkoutRepository defines the interface for interacting with workout data.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Workout, error)
	ListByCreator(ctx context.Context, trainerID string) ([]domain.Workout, error)
	List(ctx context.Context) ([]domain.Workout, error)
}

// PlanRepository defines the interface for interacting with workout plan data.
type PlanRepository interface {
	Create(ctx context.Context, plan *domain.WorkoutPlan) (string, error)
	GetByID(ctx context.Context, id string) (*domain.WorkoutPlan, error)
	List(ctx context.Context) ([]domain.WorkoutPlan, error)
	// CompletePlanWorkout marks the scheduled workout completed at the
	// given time. Returns ErrUpdateFailed if it was already completed.
	CompletePlanWorkout(ctx context.Context, planID, workoutID string, completedAt time.Time) error
}

// ProgressRepository defines the interface for the append-only progress log.
type ProgressRepository interface {
	Append(ctx context.Context, progress *domain.WorkoutProgress) (string, error)
	List(ctx context.Context) ([]domain.WorkoutProgress, error)
	ListByUser(ctx context.Context, userID string) ([]domain.WorkoutProgress, error)
}

// GroupRepository defines the interface for interacting with trainee group data.
type GroupRepository interface {
	Create(ctx context.Context, group *domain.TraineeGroup) (string, error)
	GetByID(ctx context.Context, id string) (*domain.TraineeGroup, error)
	AddTrainee(ctx context.Context, groupID, traineeID string) error
	List(ctx context.Context) ([]domain.TraineeGroup, error)
}

// InviteRepository defines the interface for interacting with invite data.
type InviteRepository interface {
	Create(ctx context.Context, invite *domain.Invite) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Invite, error)
	UpdateStatus(ctx context.Context, id string, status domain.InviteStatus) error
	ListByTrainer(ctx context.Context, trainerID string) ([]domain.Invite, error)
}
