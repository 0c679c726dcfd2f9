package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/devconnect-app/backend/internal/models"
	"github.com/devconnect-app/backend/internal/repository"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AcceptedNotifier is told when a request is accepted so the sender can be
// notified out of band. Failures are logged, never surfaced.
type AcceptedNotifier interface {
	NotifyAccepted(senderEmail, senderName, acceptorName string) error
}

// ConnectionService handles the business logic for connection requests:
// creation by the sender and review by the recipient.
type ConnectionService struct {
	connections ConnectionStore
	users       UserDirectory
	notifier    AcceptedNotifier
}

// NewConnectionService creates a new ConnectionService. notifier may be nil.
func NewConnectionService(connections ConnectionStore, users UserDirectory, notifier AcceptedNotifier) *ConnectionService {
	return &ConnectionService{
		connections: connections,
		users:       users,
		notifier:    notifier,
	}
}

// Send creates a connection request from sender to recipient. A sender may
// only create a request as "interested" or "ignored"; at most one request
// may ever exist between two users, regardless of direction or status.
func (s *ConnectionService) Send(ctx context.Context, senderID, recipientID primitive.ObjectID, status models.ConnectionStatus) (*models.ConnectionRequest, error) {
	if !status.IsCreationStatus() {
		logrus.WithField("status", status).Warn("Invalid creation status for connection request")
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}

	if senderID == recipientID {
		logrus.WithField("userID", senderID.Hex()).Warn("User attempted to send a request to themselves")
		return nil, ErrSelfRequest
	}

	if _, err := s.users.GetUserByID(ctx, recipientID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRecipientNotFound
		}
		return nil, storeErr(err)
	}

	// Friendly pre-check; the unique pair index in the store closes the
	// race between two concurrent sends for the same pair.
	_, err := s.connections.FindByUnorderedPair(ctx, senderID, recipientID)
	if err == nil {
		return nil, ErrDuplicateRequest
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, storeErr(err)
	}

	request := &models.ConnectionRequest{
		FromUserID: senderID,
		ToUserID:   recipientID,
		Status:     status,
	}

	created, err := s.connections.Insert(ctx, request)
	if errors.Is(err, repository.ErrDuplicatePair) {
		return nil, ErrDuplicateRequest
	}
	if err != nil {
		return nil, storeErr(err)
	}

	logrus.WithFields(logrus.Fields{
		"requestID": created.ID.Hex(),
		"from":      senderID.Hex(),
		"to":        recipientID.Hex(),
		"status":    created.Status,
	}).Info("Connection request sent")
	return created, nil
}

// Review lets the recipient of an "interested" request accept or reject it.
// The lookup filters jointly on request ID, recipient and current status,
// so a wrong reviewer or an already-decided request both come back as
// ErrRequestNotFound.
func (s *ConnectionService) Review(ctx context.Context, reviewerID, requestID primitive.ObjectID, decision models.ConnectionStatus) (*models.ConnectionRequest, error) {
	if !decision.IsDecision() {
		logrus.WithField("status", decision).Warn("Invalid decision status for connection request review")
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, decision)
	}

	request, err := s.connections.FindByIDForRecipientInStatus(ctx, requestID, reviewerID, models.StatusInterested)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, storeErr(err)
	}

	request.Status = decision
	updated, err := s.connections.Update(ctx, request)
	if err != nil {
		return nil, storeErr(err)
	}

	logrus.WithFields(logrus.Fields{
		"requestID": updated.ID.Hex(),
		"reviewer":  reviewerID.Hex(),
		"status":    updated.Status,
	}).Info("Connection request reviewed")

	if decision == models.StatusAccepted {
		s.notifyAccepted(ctx, updated)
	}

	return updated, nil
}

// ReceivedRequests lists the pending requests addressed to the user, with
// the sender's public projection attached.
func (s *ConnectionService) ReceivedRequests(ctx context.Context, userID primitive.ObjectID) ([]models.ReceivedRequest, error) {
	requests, err := s.connections.FindByRecipientInStatus(ctx, userID, models.StatusInterested)
	if err != nil {
		return nil, storeErr(err)
	}
	if len(requests) == 0 {
		return []models.ReceivedRequest{}, nil
	}

	senderIDs := make([]primitive.ObjectID, 0, len(requests))
	for _, req := range requests {
		senderIDs = append(senderIDs, req.FromUserID)
	}

	senders, err := s.users.GetUsersByIDs(ctx, senderIDs)
	if err != nil {
		return nil, storeErr(err)
	}

	byID := make(map[primitive.ObjectID]models.FeedUser, len(senders))
	for _, sender := range senders {
		byID[sender.ID] = sender
	}

	received := make([]models.ReceivedRequest, 0, len(requests))
	for _, req := range requests {
		received = append(received, models.ReceivedRequest{
			RequestID: req.ID,
			Sender:    byID[req.FromUserID],
			CreatedAt: req.CreatedAt,
		})
	}
	return received, nil
}

// Connections lists the public projections of every user connected to the
// given user through an accepted request.
func (s *ConnectionService) Connections(ctx context.Context, userID primitive.ObjectID) ([]models.FeedUser, error) {
	edges, err := s.connections.FindInvolvingInStatuses(ctx, userID, []models.ConnectionStatus{models.StatusAccepted})
	if err != nil {
		return nil, storeErr(err)
	}
	if len(edges) == 0 {
		return []models.FeedUser{}, nil
	}

	otherIDs := make([]primitive.ObjectID, 0, len(edges))
	for _, edge := range edges {
		otherIDs = append(otherIDs, edge.OtherParty(userID))
	}

	users, err := s.users.GetUsersByIDs(ctx, otherIDs)
	if err != nil {
		return nil, storeErr(err)
	}
	return users, nil
}

func (s *ConnectionService) notifyAccepted(ctx context.Context, request *models.ConnectionRequest) {
	if s.notifier == nil {
		return
	}

	sender, err := s.users.GetUserByID(ctx, request.FromUserID)
	if err != nil {
		logrus.WithError(err).Warn("Skipping accepted notification: sender lookup failed")
		return
	}
	acceptor, err := s.users.GetUserByID(ctx, request.ToUserID)
	if err != nil {
		logrus.WithError(err).Warn("Skipping accepted notification: acceptor lookup failed")
		return
	}

	if err := s.notifier.NotifyAccepted(sender.Email, sender.FirstName, acceptor.FirstName); err != nil {
		logrus.WithError(err).Warn("Failed to send accepted notification email")
	}
}
