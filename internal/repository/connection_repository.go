package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/devconnect-app/backend/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectionRepository handles database operations for connection requests.
type ConnectionRepository struct {
	collection *mongo.Collection
}

// NewConnectionRepository creates a new instance of ConnectionRepository.
func NewConnectionRepository(db *mongo.Database) *ConnectionRepository {
	return &ConnectionRepository{
		collection: db.Collection("connection_requests"),
	}
}

// EnsureIndexes creates the unique pair_key index. The duplicate-pair check
// in the service is a friendly pre-check; this index is what actually
// closes the race between two concurrent sends for the same pair.
func (r *ConnectionRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "pair_key", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create pair_key index: %v", err)
	}
	return nil
}

// Insert persists a new connection request. The self-request invariant is
// enforced here as well as in the service so no write path can bypass it.
func (r *ConnectionRepository) Insert(ctx context.Context, req *models.ConnectionRequest) (*models.ConnectionRequest, error) {
	if req.FromUserID == req.ToUserID {
		return nil, fmt.Errorf("refusing to insert self-request for user %s", req.FromUserID.Hex())
	}

	req.PairKey = models.PairKeyFor(req.FromUserID, req.ToUserID)
	req.CreatedAt = time.Now()
	req.UpdatedAt = req.CreatedAt

	result, err := r.collection.InsertOne(ctx, req)
	if mongo.IsDuplicateKeyError(err) {
		return nil, ErrDuplicatePair
	}
	if err != nil {
		logrus.WithError(err).Error("Failed to insert connection request")
		return nil, fmt.Errorf("failed to insert connection request: %v", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		logrus.Error("Failed to cast inserted ID to ObjectID")
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	req.ID = insertedID

	logrus.WithFields(logrus.Fields{
		"requestID": req.ID.Hex(),
		"status":    req.Status,
	}).Info("Connection request inserted successfully")
	return req, nil
}

// Update persists a status transition for an existing request.
func (r *ConnectionRepository) Update(ctx context.Context, req *models.ConnectionRequest) (*models.ConnectionRequest, error) {
	req.UpdatedAt = time.Now()

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": req.ID},
		bson.M{"$set": bson.M{"status": req.Status, "updated_at": req.UpdatedAt}},
	)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"requestID": req.ID.Hex(),
			"error":     err,
		}).Error("Failed to update connection request")
		return nil, fmt.Errorf("failed to update connection request: %v", err)
	}

	logrus.WithFields(logrus.Fields{
		"requestID": req.ID.Hex(),
		"status":    req.Status,
	}).Info("Connection request updated successfully")
	return req, nil
}

// FindByUnorderedPair looks for a request between two users in either
// direction, any status.
func (r *ConnectionRepository) FindByUnorderedPair(ctx context.Context, a, b primitive.ObjectID) (*models.ConnectionRequest, error) {
	filter := bson.M{
		"$or": []bson.M{
			{"from_user_id": a, "to_user_id": b},
			{"from_user_id": b, "to_user_id": a},
		},
	}

	var req models.ConnectionRequest
	err := r.collection.FindOne(ctx, filter).Decode(&req)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find connection request by pair: %v", err)
	}
	return &req, nil
}

// FindByIDForRecipientInStatus locates a request by ID, constrained to a
// given recipient and current status. The three conditions are filtered
// jointly: a wrong reviewer and an already-decided request are
// indistinguishable from an absent one.
func (r *ConnectionRepository) FindByIDForRecipientInStatus(ctx context.Context, id, recipientID primitive.ObjectID, status models.ConnectionStatus) (*models.ConnectionRequest, error) {
	filter := bson.M{
		"_id":        id,
		"to_user_id": recipientID,
		"status":     status,
	}

	var req models.ConnectionRequest
	err := r.collection.FindOne(ctx, filter).Decode(&req)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find connection request: %v", err)
	}
	return &req, nil
}

// FindInvolvingInStatuses returns every request where the user appears on
// either side and the status is one of the given set.
func (r *ConnectionRepository) FindInvolvingInStatuses(ctx context.Context, userID primitive.ObjectID, statuses []models.ConnectionStatus) ([]models.ConnectionRequest, error) {
	filter := bson.M{
		"$or": []bson.M{
			{"from_user_id": userID, "status": bson.M{"$in": statuses}},
			{"to_user_id": userID, "status": bson.M{"$in": statuses}},
		},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		logrus.WithError(err).Error("Failed to find connection requests involving user")
		return nil, fmt.Errorf("failed to find connection requests: %v", err)
	}
	defer cursor.Close(ctx)

	var requests []models.ConnectionRequest
	for cursor.Next(ctx) {
		var req models.ConnectionRequest
		if err := cursor.Decode(&req); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to read requests cursor: %v", err)
	}

	return requests, nil
}

// FindAllInStatus returns every request currently in the given status,
// used by the reminder job to find users with pending requests.
func (r *ConnectionRepository) FindAllInStatus(ctx context.Context, status models.ConnectionStatus) ([]models.ConnectionRequest, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"status": status})
	if err != nil {
		return nil, fmt.Errorf("failed to find requests in status %s: %v", status, err)
	}
	defer cursor.Close(ctx)

	var requests []models.ConnectionRequest
	for cursor.Next(ctx) {
		var req models.ConnectionRequest
		if err := cursor.Decode(&req); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to read requests cursor: %v", err)
	}

	return requests, nil
}

// FindByRecipientInStatus returns every request addressed to the user in
// the given status, newest first.
func (r *ConnectionRepository) FindByRecipientInStatus(ctx context.Context, recipientID primitive.ObjectID, status models.ConnectionStatus) ([]models.ConnectionRequest, error) {
	filter := bson.M{"to_user_id": recipientID, "status": status}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find received requests: %v", err)
	}
	defer cursor.Close(ctx)

	var requests []models.ConnectionRequest
	for cursor.Next(ctx) {
		var req models.ConnectionRequest
		if err := cursor.Decode(&req); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to read requests cursor: %v", err)
	}

	return requests, nil
}
