// Package memory provides in-memory repository implementations. They
// back the test suite and serve as a local-development storage backend
// when no MongoDB instance is configured.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/devisriprasad58/fit-fusion-progress-track/internal/domain"
	"github.com/devisriprasad58/fit-fusion-progress-track/internal/repository"
)

// Store holds every entity collection behind a single lock. Reads copy
// out slices so callers can never observe a later mutation.
type Store struct {
	mu       sync.RWMutex
	users    map[string]domain.User
	byEmail  map[string]string // normalized email -> user id
	workouts map[string]domain.Workout
	plans    map[string]domain.WorkoutPlan
	progress []domain.WorkoutProgress
	groups   map[string]domain.TraineeGroup
	invites  map[string]domain.Invite
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		users:    make(map[string]domain.User),
		byEmail:  make(map[string]string),
		workouts: make(map[string]domain.Workout),
		plans:    make(map[string]domain.WorkoutPlan),
		groups:   make(map[string]domain.TraineeGroup),
		invites:  make(map[string]domain.Invite),
	}
}

func newID() string { return uuid.NewString() }

// --- Users ---

type UserRepository struct{ s *Store }

func NewUserRepository(s *Store) repository.UserRepository { return &UserRepository{s: s} }

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := domain.NormalizeEmail(user.Email)
	if _, taken := r.s.byEmail[key]; taken {
		return "", repository.ErrDuplicate
	}
	if user.ID == "" {
		user.ID = newID()
	}
	r.s.users[user.ID] = *user
	r.s.byEmail[key] = user.ID
	return user.ID, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.byEmail[domain.NormalizeEmail(email)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u := r.s.users[id]
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]domain.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// --- Workouts ---

type WorkoutRepository struct{ s *Store }

func NewWorkoutRepository(s *Store) repository.WorkoutRepository { return &WorkoutRepository{s: s} }

func (r *WorkoutRepository) Create(ctx context.Context, workout *domain.Workout) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if workout.ID == "" {
		workout.ID = newID()
	}
	r.s.workouts[workout.ID] = *workout
	return workout.ID, nil
}

func (r *WorkoutRepository) GetByID(ctx context.Context, id string) (*domain.Workout, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	w, ok := r.s.workouts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &w, nil
}

func (r *WorkoutRepository) ListByCreator(ctx context.Context, trainerID string) ([]domain.Workout, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []domain.Workout
	for _, w := range r.s.workouts {
		if w.CreatedBy == trainerID {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *WorkoutRepository) List(ctx context.Context) ([]domain.Workout, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]domain.Workout, 0, len(r.s.workouts))
	for _, w := range r.s.workouts {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// --- Plans ---

type PlanRepository struct{ s *Store }

func NewPlanRepository(s *Store) repository.PlanRepository { return &PlanRepository{s: s} }

func (r *PlanRepository) Create(ctx context.Context, plan *domain.WorkoutPlan) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if plan.ID == "" {
		plan.ID = newID()
	}
	r.s.plans[plan.ID] = *plan
	return plan.ID, nil
}

func (r *PlanRepository) GetByID(ctx context.Context, id string) (*domain.WorkoutPlan, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.plans[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r *PlanRepository) List(ctx context.Context) ([]domain.WorkoutPlan, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]domain.WorkoutPlan, 0, len(r.s.plans))
	for _, p := range r.s.plans {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *PlanRepository) CompletePlanWorkout(ctx context.Context, planID, workoutID string, completedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.plans[planID]
	if !ok {
		return repository.ErrNotFound
	}
	for i := range p.Workouts {
		if p.Workouts[i].WorkoutID != workoutID {
			continue
		}
		if p.Workouts[i].Completed {
			return repository.ErrUpdateFailed
		}
		if err := p.Workouts[i].MarkCompleted(completedAt); err != nil {
			return repository.ErrUpdateFailed
		}
		r.s.plans[planID] = p
		return nil
	}
	return repository.ErrNotFound
}

// --- Progress ---

type ProgressRepository struct{ s *Store }

func NewProgressRepository(s *Store) repository.ProgressRepository { return &ProgressRepository{s: s} }

func (r *ProgressRepository) Append(ctx context.Context, progress *domain.WorkoutProgress) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if progress.ID == "" {
		progress.ID = newID()
	}
	r.s.progress = append(r.s.progress, *progress)
	return progress.ID, nil
}

func (r *ProgressRepository) List(ctx context.Context) ([]domain.WorkoutProgress, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]domain.WorkoutProgress, len(r.s.progress))
	copy(out, r.s.progress)
	return out, nil
}

func (r *ProgressRepository) ListByUser(ctx context.Context, userID string) ([]domain.WorkoutProgress, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []domain.WorkoutProgress
	for _, p := range r.s.progress {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

// --- Groups ---

type GroupRepository struct{ s *Store }

func NewGroupRepository(s *Store) repository.GroupRepository { return &GroupRepository{s: s} }

func (r *GroupRepository) Create(ctx context.Context, group *domain.TraineeGroup) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if group.ID == "" {
		group.ID = newID()
	}
	r.s.groups[group.ID] = *group
	return group.ID, nil
}

func (r *GroupRepository) GetByID(ctx context.Context, id string) (*domain.TraineeGroup, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	g, ok := r.s.groups[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &g, nil
}

func (r *GroupRepository) AddTrainee(ctx context.Context, groupID, traineeID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	g, ok := r.s.groups[groupID]
	if !ok {
		return repository.ErrNotFound
	}
	if g.HasTrainee(traineeID) {
		return nil
	}
	g.Trainees = append(g.Trainees, traineeID)
	r.s.groups[groupID] = g
	return nil
}

func (r *GroupRepository) List(ctx context.Context) ([]domain.TraineeGroup, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]domain.TraineeGroup, 0, len(r.s.groups))
	for _, g := range r.s.groups {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// --- Invites ---

type InviteRepository struct{ s *Store }

func NewInviteRepository(s *Store) repository.InviteRepository { return &InviteRepository{s: s} }

func (r *InviteRepository) Create(ctx context.Context, invite *domain.Invite) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if invite.ID == "" {
		invite.ID = newID()
	}
	r.s.invites[invite.ID] = *invite
	return invite.ID, nil
}

func (r *InviteRepository) GetByID(ctx context.Context, id string) (*domain.Invite, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	inv, ok := r.s.invites[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &inv, nil
}

func (r *InviteRepository) UpdateStatus(ctx context.Context, id string, status domain.InviteStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	inv, ok := r.s.invites[id]
	if !ok {
		return repository.ErrNotFound
	}
	if err := inv.TransitionTo(status); err != nil {
		return repository.ErrUpdateFailed
	}
	r.s.invites[id] = inv
	return nil
}

func (r *InviteRepository) ListByTrainer(ctx context.Context, trainerID string) ([]domain.Invite, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []domain.Invite
	for _, inv := range r.s.invites {
		if inv.TrainerID == trainerID {
			out = append(out, inv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
