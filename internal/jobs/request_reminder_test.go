package jobs

import (
	"context"
	"errors"
	"testing"

	"github.com/devconnect-app/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stubRequestStore struct {
	requests []models.ConnectionRequest
	err      error
}

func (s *stubRequestStore) FindAllInStatus(_ context.Context, status models.ConnectionStatus) ([]models.ConnectionRequest, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []models.ConnectionRequest
	for _, req := range s.requests {
		if req.Status == status {
			out = append(out, req)
		}
	}
	return out, nil
}

type stubUserGetter struct {
	users map[primitive.ObjectID]*models.User
}

func (s *stubUserGetter) GetUserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return user, nil
}

type stubMailer struct {
	sent map[string]string
	err  error
}

func (s *stubMailer) Send(to, subject, body string) error {
	if s.err != nil {
		return s.err
	}
	if s.sent == nil {
		s.sent = make(map[string]string)
	}
	s.sent[to] = body
	return nil
}

func TestRunSendsOneReminderPerRecipient(t *testing.T) {
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()
	carol := primitive.NewObjectID()

	store := &stubRequestStore{requests: []models.ConnectionRequest{
		{FromUserID: alice, ToUserID: carol, Status: models.StatusInterested},
		{FromUserID: bob, ToUserID: carol, Status: models.StatusInterested},
		{FromUserID: carol, ToUserID: alice, Status: models.StatusIgnored},
	}}
	users := &stubUserGetter{users: map[primitive.ObjectID]*models.User{
		carol: {ID: carol, FirstName: "Carol", Email: "carol@example.com"},
	}}
	mailer := &stubMailer{}

	reminder := NewRequestReminder(store, users, mailer)
	require.NoError(t, reminder.Run(context.Background()))

	require.Len(t, mailer.sent, 1)
	assert.Contains(t, mailer.sent["carol@example.com"], "2 connection request(s)")
}

func TestRunSkipsUnknownRecipients(t *testing.T) {
	store := &stubRequestStore{requests: []models.ConnectionRequest{
		{FromUserID: primitive.NewObjectID(), ToUserID: primitive.NewObjectID(), Status: models.StatusInterested},
	}}
	users := &stubUserGetter{users: map[primitive.ObjectID]*models.User{}}
	mailer := &stubMailer{}

	reminder := NewRequestReminder(store, users, mailer)
	require.NoError(t, reminder.Run(context.Background()))
	assert.Empty(t, mailer.sent)
}

func TestRunPropagatesStoreFailure(t *testing.T) {
	store := &stubRequestStore{err: errors.New("mongo down")}
	reminder := NewRequestReminder(store, &stubUserGetter{}, &stubMailer{})

	assert.Error(t, reminder.Run(context.Background()))
}
