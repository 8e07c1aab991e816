package domain

import (
	"errors"
	"time"
)

// TraineeGroup is a trainer-owned collection of trainees.
type TraineeGroup struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Name      string    `bson:"name" json:"name"`
	TrainerID string    `bson:"trainerId" json:"trainerId"`
	Trainees  []string  `bson:"trainees" json:"trainees"` // trainee User.IDs
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// HasTrainee reports whether the group contains the given trainee.
func (g *TraineeGroup) HasTrainee(traineeID string) bool {
	for _, id := range g.Trainees {
		if id == traineeID {
			return true
		}
	}
	return false
}

func (g *TraineeGroup) Validate() error {
	if g.Name == "" {
		return errors.New("group name is required")
	}
	if g.TrainerID == "" {
		return errors.New("group trainer is required")
	}
	return nil
}
