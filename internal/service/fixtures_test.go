package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/devisriprasad58/fit-fusion-progress-track/internal/domain"
	"github.com/devisriprasad58/fit-fusion-progress-track/internal/repository/memory"
)

// fixture wires both role services over one in-memory store with a
// trainer and a trainee already registered.
type fixture struct {
	store    *memory.Store
	trainer  *domain.User
	trainee  *domain.User
	trainers TrainerService
	trainees TraineeService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	workouts := memory.NewWorkoutRepository(store)
	plans := memory.NewPlanRepository(store)
	groups := memory.NewGroupRepository(store)
	progress := memory.NewProgressRepository(store)
	invites := memory.NewInviteRepository(store)

	f := &fixture{
		store:    store,
		trainers: NewTrainerService(users, workouts, plans, groups, invites, progress),
		trainees: NewTraineeService(users, workouts, plans, groups, progress, invites),
	}

	ctx := context.Background()
	f.trainer = &domain.User{
		ID:        "trainer-1",
		Email:     "coach@example.com",
		Name:      "Coach",
		Role:      domain.RoleTrainer,
		CreatedAt: time.Now().UTC(),
	}
	_, err := users.Create(ctx, f.trainer)
	require.NoError(t, err)

	f.trainee = &domain.User{
		ID:        "trainee-1",
		Email:     "athlete@example.com",
		Name:      "Athlete",
		Role:      domain.RoleTrainee,
		CreatedAt: time.Now().UTC(),
	}
	_, err = users.Create(ctx, f.trainee)
	require.NoError(t, err)

	return f
}

// seedWorkout creates a workout owned by the fixture trainer.
func (f *fixture) seedWorkout(t *testing.T, name string, minutes int) *domain.Workout {
	t.Helper()
	w, err := f.trainers.CreateWorkout(context.Background(), &domain.Workout{
		Name:       name,
		Duration:   minutes,
		Difficulty: domain.DifficultyBeginner,
		CreatedBy:  f.trainer.ID,
		Exercises: []domain.Exercise{
			{ID: "1", Name: "Warmup", Type: domain.ExerciseCardio, Duration: 5},
		},
	})
	require.NoError(t, err)
	return w
}

// seedPlan creates a plan assigning the workout to the fixture trainee.
func (f *fixture) seedPlan(t *testing.T, workoutID string, scheduled time.Time) *domain.WorkoutPlan {
	t.Helper()
	p, err := f.trainers.CreatePlan(context.Background(), &domain.WorkoutPlan{
		Name:      "Base Plan",
		TrainerID: f.trainer.ID,
		Trainees:  []string{f.trainee.ID},
		StartDate: scheduled.AddDate(0, 0, -1),
		Workouts: []domain.PlanWorkout{
			{WorkoutID: workoutID, ScheduledDate: scheduled},
		},
	})
	require.NoError(t, err)
	return p
}
