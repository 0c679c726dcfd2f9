package services

import (
	"context"

	"github.com/devconnect-app/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserDirectory is the read surface of the user store the core services
// depend on. Implemented by repository.UserRepository.
type UserDirectory interface {
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.FeedUser, error)
	FindFeedCandidates(ctx context.Context, viewerID primitive.ObjectID, exclude []primitive.ObjectID, skip, limit int64) ([]models.FeedUser, error)
}

// UserStore extends the directory with the write operations the user
// service needs.
type UserStore interface {
	UserDirectory
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, update *models.ProfileUpdate) (*models.User, error)
	UpdatePassword(ctx context.Context, id primitive.ObjectID, hashed string) error
}

// ConnectionStore persists connection requests. Implemented by
// repository.ConnectionRepository.
type ConnectionStore interface {
	Insert(ctx context.Context, req *models.ConnectionRequest) (*models.ConnectionRequest, error)
	Update(ctx context.Context, req *models.ConnectionRequest) (*models.ConnectionRequest, error)
	FindByUnorderedPair(ctx context.Context, a, b primitive.ObjectID) (*models.ConnectionRequest, error)
	FindByIDForRecipientInStatus(ctx context.Context, id, recipientID primitive.ObjectID, status models.ConnectionStatus) (*models.ConnectionRequest, error)
	FindInvolvingInStatuses(ctx context.Context, userID primitive.ObjectID, statuses []models.ConnectionStatus) ([]models.ConnectionRequest, error)
	FindByRecipientInStatus(ctx context.Context, recipientID primitive.ObjectID, status models.ConnectionStatus) ([]models.ConnectionRequest, error)
}
