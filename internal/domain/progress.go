package domain

import (
	"errors"
	"time"
)

// HeartRate captures optional heart rate readings for a session.
type HeartRate struct {
	Average *int `bson:"average,omitempty" json:"average,omitempty"`
	Max     *int `bson:"max,omitempty" json:"max,omitempty"`
}

// WorkoutProgress is one completed workout session. Records are
// append-only and immutable once written.
type WorkoutProgress struct {
	ID             string     `bson:"_id,omitempty" json:"id"`
	UserID         string     `bson:"userId" json:"userId"`
	WorkoutID      string     `bson:"workoutId" json:"workoutId"`
	PlanID         string     `bson:"planId" json:"planId"`
	CompletedDate  time.Time  `bson:"completedDate" json:"completedDate"`
	Duration       int        `bson:"duration" json:"duration"` // actual duration in minutes
	CaloriesBurned *int       `bson:"caloriesBurned,omitempty" json:"caloriesBurned,omitempty"`
	HeartRate      *HeartRate `bson:"heartRate,omitempty" json:"heartRate,omitempty"`
	Notes          string     `bson:"notes,omitempty" json:"notes,omitempty"`
}

// Validate checks the progress record invariants.
func (p *WorkoutProgress) Validate() error {
	if p.UserID == "" || p.WorkoutID == "" || p.PlanID == "" {
		return errors.New("progress record requires user, workout, and plan ids")
	}
	if p.Duration <= 0 {
		return ErrInvalidDuration
	}
	return nil
}

// Calories returns the calories burned, treating a missing value as 0.
func (p *WorkoutProgress) Calories() int {
	if p.CaloriesBurned == nil {
		return 0
	}
	return *p.CaloriesBurned
}

// AverageHeartRate returns the average heart rate and whether the
// record carries one.
func (p *WorkoutProgress) AverageHeartRate() (int, bool) {
	if p.HeartRate == nil || p.HeartRate.Average == nil {
		return 0, false
	}
	return *p.HeartRate.Average, true
}
