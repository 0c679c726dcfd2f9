package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ConnectionStatus is the lifecycle state of a connection request.
type ConnectionStatus string

const (
	StatusInterested ConnectionStatus = "interested"
	StatusIgnored    ConnectionStatus = "ignored"
	StatusAccepted   ConnectionStatus = "accepted"
	StatusRejected   ConnectionStatus = "rejected"
)

// IsCreationStatus reports whether a sender may create a request in this
// status. Accepted/rejected are reviewer decisions, never creation states.
func (s ConnectionStatus) IsCreationStatus() bool {
	return s == StatusInterested || s == StatusIgnored
}

// IsDecision reports whether a reviewer may transition a request to this
// status.
func (s ConnectionStatus) IsDecision() bool {
	return s == StatusAccepted || s == StatusRejected
}

// ConnectionRequest is a directed edge between two users. A record is never
// deleted, only transitioned: interested -> accepted|rejected by the
// recipient; ignored/accepted/rejected are terminal.
type ConnectionRequest struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FromUserID primitive.ObjectID `bson:"from_user_id" json:"from_user_id"`
	ToUserID   primitive.ObjectID `bson:"to_user_id" json:"to_user_id"`
	Status     ConnectionStatus   `bson:"status" json:"status"`
	// PairKey is the lexicographically sorted hex pair, kept unique by an
	// index so two requests can never exist for the same pair of users.
	PairKey   string    `bson:"pair_key" json:"-"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// OtherParty returns the participant that is not the given user.
func (c *ConnectionRequest) OtherParty(userID primitive.ObjectID) primitive.ObjectID {
	if c.FromUserID == userID {
		return c.ToUserID
	}
	return c.FromUserID
}

// ReceivedRequest is a pending request as shown to its recipient: the
// request identity plus the sender's public projection.
type ReceivedRequest struct {
	RequestID primitive.ObjectID `json:"request_id"`
	Sender    FeedUser           `json:"sender"`
	CreatedAt time.Time          `json:"created_at"`
}

// PairKeyFor canonicalizes two user IDs into the unordered-pair key.
func PairKeyFor(a, b primitive.ObjectID) string {
	ah, bh := a.Hex(), b.Hex()
	if strings.Compare(ah, bh) > 0 {
		ah, bh = bh, ah
	}
	return ah + ":" + bh
}
