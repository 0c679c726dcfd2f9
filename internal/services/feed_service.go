package services

import (
	"context"

	"github.com/devconnect-app/backend/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	// DefaultFeedLimit is used when the caller passes no usable limit.
	DefaultFeedLimit = 10
	// MaxFeedLimit caps the page size; larger requests are silently reduced.
	MaxFeedLimit = 30
)

// FeedService computes the page of users a viewer should see next: everyone
// they have not interacted with, excluding themselves.
type FeedService struct {
	connections ConnectionStore
	users       UserDirectory
}

// NewFeedService creates a new FeedService.
func NewFeedService(connections ConnectionStore, users UserDirectory) *FeedService {
	return &FeedService{
		connections: connections,
		users:       users,
	}
}

// feedHiddenStatuses are the edge statuses that hide a user from the feed.
// Rejected edges are deliberately absent: a user rejected in review becomes
// eligible to appear again.
var feedHiddenStatuses = []models.ConnectionStatus{
	models.StatusInterested,
	models.StatusIgnored,
	models.StatusAccepted,
}

// NextPage returns one page of feed candidates for the viewer. Pagination
// parameters are normalized, never rejected: page < 1 becomes 1, limit <= 0
// becomes DefaultFeedLimit, and limit is capped at MaxFeedLimit. The
// exclusion set is recomputed from the store on every call.
func (s *FeedService) NextPage(ctx context.Context, viewerID primitive.ObjectID, page, limit int) ([]models.FeedUser, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	if limit > MaxFeedLimit {
		limit = MaxFeedLimit
	}
	skip := int64(page-1) * int64(limit)

	edges, err := s.connections.FindInvolvingInStatuses(ctx, viewerID, feedHiddenStatuses)
	if err != nil {
		return nil, storeErr(err)
	}

	seen := make(map[primitive.ObjectID]struct{}, len(edges))
	exclude := make([]primitive.ObjectID, 0, len(edges))
	for _, edge := range edges {
		other := edge.OtherParty(viewerID)
		if _, ok := seen[other]; ok {
			continue
		}
		seen[other] = struct{}{}
		exclude = append(exclude, other)
	}

	users, err := s.users.FindFeedCandidates(ctx, viewerID, exclude, skip, int64(limit))
	if err != nil {
		return nil, storeErr(err)
	}
	if users == nil {
		users = []models.FeedUser{}
	}

	logrus.WithFields(logrus.Fields{
		"viewer":   viewerID.Hex(),
		"page":     page,
		"limit":    limit,
		"excluded": len(exclude),
		"returned": len(users),
	}).Info("Feed page computed")
	return users, nil
}
