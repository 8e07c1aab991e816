package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devisriprasad58/fit-fusion-progress-track/internal/domain"
	"github.com/devisriprasad58/fit-fusion-progress-track/internal/repository"
)

const planCollectionName = "workout_plans"

// mongoPlanRepository implements repository.PlanRepository.
type mongoPlanRepository struct {
	collection *mongo.Collection
}

// NewMongoPlanRepository creates a new WorkoutPlan repository.
func NewMongoPlanRepository(db *mongo.Database) repository.PlanRepository {
	return &mongoPlanRepository{
		collection: db.Collection(planCollectionName),
	}
}

// Create inserts a new workout plan.
func (r *mongoPlanRepository) Create(ctx context.Context, plan *domain.WorkoutPlan) (string, error) {
	if plan.TrainerID == "" || plan.Name == "" {
		return "", errors.New("plan requires trainerId and name")
	}
	if plan.ID == "" {
		plan.ID = uuid.NewString()
	}
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = time.Now().UTC()
	}

	if _, err := r.collection.InsertOne(ctx, plan); err != nil {
		return "", err
	}
	return plan.ID, nil
}

// GetByID retrieves a single plan by its ID.
func (r *mongoPlanRepository) GetByID(ctx context.Context, id string) (*domain.WorkoutPlan, error) {
	var plan domain.WorkoutPlan
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// List retrieves all plans.
func (r *mongoPlanRepository) List(ctx context.Context) ([]domain.WorkoutPlan, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var plans []domain.WorkoutPlan
	if err := cursor.All(ctx, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// CompletePlanWorkout flips the matching scheduled workout to completed.
// The filter requires completed=false so the false->true transition can
// only ever happen once, even under concurrent requests.
func (r *mongoPlanRepository) CompletePlanWorkout(ctx context.Context, planID, workoutID string, completedAt time.Time) error {
	filter := bson.M{
		"_id": planID,
		"workouts": bson.M{
			"$elemMatch": bson.M{"workoutId": workoutID, "completed": false},
		},
	}
	update := bson.M{
		"$set": bson.M{
			"workouts.$.completed":     true,
			"workouts.$.completedDate": completedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		// Either the plan/workout does not exist or it was already
		// completed; distinguish for the caller.
		var plan domain.WorkoutPlan
		if err := r.collection.FindOne(ctx, bson.M{"_id": planID}).Decode(&plan); err != nil {
			return repository.ErrNotFound
		}
		for _, pw := range plan.Workouts {
			if pw.WorkoutID == workoutID {
				return repository.ErrUpdateFailed
			}
		}
		return repository.ErrNotFound
	}
	return nil
}

// EnsurePlanIndexes creates necessary indexes for the plans collection.
func EnsurePlanIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "trainerId", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "trainees", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
