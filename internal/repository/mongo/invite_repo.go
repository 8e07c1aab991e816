package mongo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devisriprasad58/fit-fusion-progress-track/internal/domain"
	"github.com/devisriprasad58/fit-fusion-progress-track/internal/repository"
)

const inviteCollectionName = "invites"

// mongoInviteRepository implements repository.InviteRepository.
type mongoInviteRepository struct {
	collection *mongo.Collection
}

// NewMongoInviteRepository creates a new Invite repository.
func NewMongoInviteRepository(db *mongo.Database) repository.InviteRepository {
	return &mongoInviteRepository{
		collection: db.Collection(inviteCollectionName),
	}
}

// Create inserts a new invite.
func (r *mongoInviteRepository) Create(ctx context.Context, invite *domain.Invite) (string, error) {
	if err := invite.Validate(); err != nil {
		return "", err
	}
	if invite.ID == "" {
		invite.ID = uuid.NewString()
	}
	invite.Email = domain.NormalizeEmail(invite.Email)

	if _, err := r.collection.InsertOne(ctx, invite); err != nil {
		return "", err
	}
	return invite.ID, nil
}

// GetByID retrieves a single invite by its ID.
func (r *mongoInviteRepository) GetByID(ctx context.Context, id string) (*domain.Invite, error) {
	var invite domain.Invite
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&invite)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &invite, nil
}

// UpdateStatus moves a pending invite to a terminal status. The filter
// requires status=pending so only the pending->terminal transition is
// possible at the storage layer.
func (r *mongoInviteRepository) UpdateStatus(ctx context.Context, id string, status domain.InviteStatus) error {
	if status != domain.InviteAccepted && status != domain.InviteRejected {
		return repository.ErrUpdateFailed
	}

	filter := bson.M{"_id": id, "status": domain.InvitePending}
	update := bson.M{"$set": bson.M{"status": status}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return repository.ErrNotFound
		}
		return repository.ErrUpdateFailed
	}
	return nil
}

// ListByTrainer retrieves all invites issued by a trainer.
func (r *mongoInviteRepository) ListByTrainer(ctx context.Context, trainerID string) ([]domain.Invite, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"trainerId": trainerID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var invites []domain.Invite
	if err := cursor.All(ctx, &invites); err != nil {
		return nil, err
	}
	return invites, nil
}

// EnsureInviteIndexes creates necessary indexes for the invites collection.
func EnsureInviteIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "trainerId", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
