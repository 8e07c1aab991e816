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

const groupCollectionName = "trainee_groups"

// mongoGroupRepository implements repository.GroupRepository.
type mongoGroupRepository struct {
	collection *mongo.Collection
}

// NewMongoGroupRepository creates a new TraineeGroup repository.
func NewMongoGroupRepository(db *mongo.Database) repository.GroupRepository {
	return &mongoGroupRepository{
		collection: db.Collection(groupCollectionName),
	}
}

// Create inserts a new trainee group.
func (r *mongoGroupRepository) Create(ctx context.Context, group *domain.TraineeGroup) (string, error) {
	if group.TrainerID == "" || group.Name == "" {
		return "", errors.New("group requires trainerId and name")
	}
	if group.ID == "" {
		group.ID = uuid.NewString()
	}
	if group.CreatedAt.IsZero() {
		group.CreatedAt = time.Now().UTC()
	}
	if group.Trainees == nil {
		group.Trainees = []string{}
	}

	if _, err := r.collection.InsertOne(ctx, group); err != nil {
		return "", err
	}
	return group.ID, nil
}

// GetByID retrieves a single group by its ID.
func (r *mongoGroupRepository) GetByID(ctx context.Context, id string) (*domain.TraineeGroup, error) {
	var group domain.TraineeGroup
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&group)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &group, nil
}

// AddTrainee adds a trainee to the group's membership set.
func (r *mongoGroupRepository) AddTrainee(ctx context.Context, groupID, traineeID string) error {
	update := bson.M{
		// $addToSet prevents duplicate memberships
		"$addToSet": bson.M{"trainees": traineeID},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": groupID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// List retrieves all groups.
func (r *mongoGroupRepository) List(ctx context.Context) ([]domain.TraineeGroup, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var groups []domain.TraineeGroup
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// EnsureGroupIndexes creates necessary indexes for the groups collection.
func EnsureGroupIndexes(ctx context.Context, collection *mongo.Collection) {
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
