package domain

import (
	"errors"
	"time"
)

// Difficulty grades a workout.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Workout is a named, ordered sequence of exercises created by a trainer.
type Workout struct {
	ID          string     `bson:"_id,omitempty" json:"id"`
	Name        string     `bson:"name" json:"name"`
	Description string     `bson:"description,omitempty" json:"description,omitempty"`
	Exercises   []Exercise `bson:"exercises" json:"exercises"`
	Duration    int        `bson:"duration" json:"duration"` // in minutes
	Difficulty  Difficulty `bson:"difficulty" json:"difficulty"`
	CreatedBy   string     `bson:"createdBy" json:"createdBy"` // trainer User.ID
	CreatedAt   time.Time  `bson:"createdAt" json:"createdAt"`
}

// Validate checks the workout invariants. Referential checks
// (CreatedBy must be an existing trainer) belong to the service layer.
func (w *Workout) Validate() error {
	if w.Name == "" {
		return errors.New("workout name is required")
	}
	switch w.Difficulty {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
	default:
		return errors.New("unknown difficulty")
	}
	if w.CreatedBy == "" {
		return errors.New("workout creator is required")
	}
	for i := range w.Exercises {
		if err := w.Exercises[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}
