package jobs

import (
	"context"
	"fmt"

	"github.com/devconnect-app/backend/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type pendingRequestStore interface {
	FindAllInStatus(ctx context.Context, status models.ConnectionStatus) ([]models.ConnectionRequest, error)
}

type userGetter interface {
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// Mailer delivers a plain text email.
type Mailer interface {
	Send(to, subject, body string) error
}

// RequestReminder emails users who have pending connection requests waiting
// for their review.
type RequestReminder struct {
	requests pendingRequestStore
	users    userGetter
	mailer   Mailer
}

// NewRequestReminder creates a new RequestReminder.
func NewRequestReminder(requests pendingRequestStore, users userGetter, mailer Mailer) *RequestReminder {
	return &RequestReminder{
		requests: requests,
		users:    users,
		mailer:   mailer,
	}
}

// Run scans pending requests and sends one reminder per recipient. A failed
// send for one user does not stop the others.
func (j *RequestReminder) Run(ctx context.Context) error {
	pending, err := j.requests.FindAllInStatus(ctx, models.StatusInterested)
	if err != nil {
		return fmt.Errorf("failed to fetch pending requests: %v", err)
	}

	counts := make(map[primitive.ObjectID]int)
	for _, req := range pending {
		counts[req.ToUserID]++
	}

	for recipientID, count := range counts {
		user, err := j.users.GetUserByID(ctx, recipientID)
		if err != nil {
			logrus.WithField("userID", recipientID.Hex()).WithError(err).Warn("Skipping reminder: recipient lookup failed")
			continue
		}

		subject := "You have pending connection requests"
		body := fmt.Sprintf("Hi %s,\n\nYou have %d connection request(s) waiting for your review on DevConnect.\n", user.FirstName, count)
		if err := j.mailer.Send(user.Email, subject, body); err != nil {
			logrus.WithField("userID", recipientID.Hex()).WithError(err).Warn("Failed to send reminder email")
			continue
		}
	}

	logrus.WithField("recipients", len(counts)).Info("Pending request reminder scan completed")
	return nil
}
