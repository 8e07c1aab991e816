package domain

import "errors"

// ExerciseType categorizes an exercise.
type ExerciseType string

const (
	ExerciseCardio      ExerciseType = "cardio"
	ExerciseStrength    ExerciseType = "strength"
	ExerciseFlexibility ExerciseType = "flexibility"
	ExerciseBalance     ExerciseType = "balance"
)

var ErrInvalidDuration = errors.New("duration must be greater than zero")

// Exercise is a single exercise definition, embedded in a Workout's
// ordered exercise sequence.
type Exercise struct {
	ID       string       `bson:"id" json:"id"`
	Name     string       `bson:"name" json:"name"`
	Type     ExerciseType `bson:"type" json:"type"`
	Duration int          `bson:"duration" json:"duration"` // in minutes
	Sets     *int         `bson:"sets,omitempty" json:"sets,omitempty"`
	Reps     *int         `bson:"reps,omitempty" json:"reps,omitempty"`
	Notes    string       `bson:"notes,omitempty" json:"notes,omitempty"`
}

// Validate checks the exercise invariants.
func (e *Exercise) Validate() error {
	if e.Name == "" {
		return errors.New("exercise name is required")
	}
	switch e.Type {
	case ExerciseCardio, ExerciseStrength, ExerciseFlexibility, ExerciseBalance:
	default:
		return errors.New("unknown exercise type")
	}
	if e.Duration <= 0 {
		return ErrInvalidDuration
	}
	return nil
}
