package mongo

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devisriprasad58/fit-fusion-progress-track/internal/domain"
	"github.com/devisriprasad58/fit-fusion-progress-track/internal/repository"
)

const progressCollectionName = "workout_progress"

// mongoProgressRepository implements repository.ProgressRepository.
// Progress is an append-only log; there are no update or delete paths.
type mongoProgressRepository struct {
	collection *mongo.Collection
}

// NewMongoProgressRepository creates a new WorkoutProgress repository.
func NewMongoProgressRepository(db *mongo.Database) repository.ProgressRepository {
	return &mongoProgressRepository{
		collection: db.Collection(progressCollectionName),
	}
}

// Append inserts a new progress record.
func (r *mongoProgressRepository) Append(ctx context.Context, progress *domain.WorkoutProgress) (string, error) {
	if err := progress.Validate(); err != nil {
		return "", err
	}
	if progress.ID == "" {
		progress.ID = uuid.NewString()
	}

	if _, err := r.collection.InsertOne(ctx, progress); err != nil {
		return "", err
	}
	return progress.ID, nil
}

// List retrieves all progress records.
func (r *mongoProgressRepository) List(ctx context.Context) ([]domain.WorkoutProgress, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []domain.WorkoutProgress
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// ListByUser retrieves a single user's progress records, newest first.
func (r *mongoProgressRepository) ListByUser(ctx context.Context, userID string) ([]domain.WorkoutProgress, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "completedDate", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []domain.WorkoutProgress
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// EnsureProgressIndexes creates necessary indexes for the progress collection.
func EnsureProgressIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "completedDate", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "planId", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
