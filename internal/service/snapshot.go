package service

import (
	"context"
	"log"

	"github.com/devisriprasad58/fit-fusion-progress-track/internal/dashboard"
	"github.com/devisriprasad58/fit-fusion-progress-track/internal/repository"
)

// snapshotLoader fetches a read-only snapshot of every entity collection
// for the dashboard aggregator. A collection whose fetch fails degrades
// to empty rather than failing the whole aggregation: an unavailable
// store means "no data", not a crash.
type snapshotLoader struct {
	userRepo     repository.UserRepository
	workoutRepo  repository.WorkoutRepository
	planRepo     repository.PlanRepository
	groupRepo    repository.GroupRepository
	progressRepo repository.ProgressRepository
}

func (l *snapshotLoader) load(ctx context.Context) dashboard.Snapshot {
	var snap dashboard.Snapshot
	var err error

	if snap.Users, err = l.userRepo.List(ctx); err != nil {
		log.Printf("snapshot: users unavailable: %v", err)
		snap.Users = nil
	}
	if snap.Workouts, err = l.workoutRepo.List(ctx); err != nil {
		log.Printf("snapshot: workouts unavailable: %v", err)
		snap.Workouts = nil
	}
	if snap.Plans, err = l.planRepo.List(ctx); err != nil {
		log.Printf("snapshot: plans unavailable: %v", err)
		snap.Plans = nil
	}
	if snap.Groups, err = l.groupRepo.List(ctx); err != nil {
		log.Printf("snapshot: groups unavailable: %v", err)
		snap.Groups = nil
	}
	if snap.Progress, err = l.progressRepo.List(ctx); err != nil {
		log.Printf("snapshot: progress unavailable: %v", err)
		snap.Progress = nil
	}
	return snap
}
