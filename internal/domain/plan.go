package domain

import (
	"errors"
	"time"
)

// PlanWorkout schedules a workout inside a plan. Completed transitions
// false -> true exactly once; CompletedDate is set only at that point.
type PlanWorkout struct {
	WorkoutID     string     `bson:"workoutId" json:"workoutId"`
	ScheduledDate time.Time  `bson:"scheduledDate" json:"scheduledDate"`
	Completed     bool       `bson:"completed" json:"completed"`
	CompletedDate *time.Time `bson:"completedDate,omitempty" json:"completedDate,omitempty"`
	Feedback      string     `bson:"feedback,omitempty" json:"feedback,omitempty"`
}

// Validate checks the completion invariant: a completion date is
// present only when the entry is marked completed.
func (pw *PlanWorkout) Validate() error {
	if pw.WorkoutID == "" {
		return errors.New("plan workout requires a workout id")
	}
	if !pw.Completed && pw.CompletedDate != nil {
		return errors.New("completedDate set on an incomplete plan workout")
	}
	return nil
}

// MarkCompleted transitions the entry to completed at the given time.
// The transition happens exactly once; completing twice is an error.
func (pw *PlanWorkout) MarkCompleted(at time.Time) error {
	if pw.Completed {
		return errors.New("plan workout already completed")
	}
	pw.Completed = true
	pw.CompletedDate = &at
	return nil
}

// WorkoutPlan is a trainer-owned schedule of workouts assigned to a set
// of trainees.
type WorkoutPlan struct {
	ID          string        `bson:"_id,omitempty" json:"id"`
	Name        string        `bson:"name" json:"name"`
	Description string        `bson:"description,omitempty" json:"description,omitempty"`
	Workouts    []PlanWorkout `bson:"workouts" json:"workouts"`
	TrainerID   string        `bson:"trainerId" json:"trainerId"`
	Trainees    []string      `bson:"trainees" json:"trainees"` // trainee User.IDs
	CreatedAt   time.Time     `bson:"createdAt" json:"createdAt"`
	StartDate   time.Time     `bson:"startDate" json:"startDate"`
	EndDate     *time.Time    `bson:"endDate,omitempty" json:"endDate,omitempty"`
}

// HasTrainee reports whether the plan is assigned to the given trainee.
func (p *WorkoutPlan) HasTrainee(traineeID string) bool {
	for _, id := range p.Trainees {
		if id == traineeID {
			return true
		}
	}
	return false
}

// Validate checks structural plan invariants. startDate <= scheduledDate
// is expected but deliberately not enforced.
func (p *WorkoutPlan) Validate() error {
	if p.Name == "" {
		return errors.New("plan name is required")
	}
	if p.TrainerID == "" {
		return errors.New("plan trainer is required")
	}
	for i := range p.Workouts {
		if err := p.Workouts[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}
