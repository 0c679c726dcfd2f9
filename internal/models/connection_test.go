package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPairKeyForIsOrderIndependent(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()

	assert.Equal(t, PairKeyFor(a, b), PairKeyFor(b, a))
	assert.NotEqual(t, PairKeyFor(a, b), PairKeyFor(a, primitive.NewObjectID()))
}

func TestStatusSets(t *testing.T) {
	assert.True(t, StatusInterested.IsCreationStatus())
	assert.True(t, StatusIgnored.IsCreationStatus())
	assert.False(t, StatusAccepted.IsCreationStatus())
	assert.False(t, StatusRejected.IsCreationStatus())

	assert.True(t, StatusAccepted.IsDecision())
	assert.True(t, StatusRejected.IsDecision())
	assert.False(t, StatusInterested.IsDecision())
	assert.False(t, StatusIgnored.IsDecision())
	assert.False(t, ConnectionStatus("friends").IsCreationStatus())
}

func TestOtherParty(t *testing.T) {
	from, err := primitive.ObjectIDFromHex("000000000000000000000001")
	require.NoError(t, err)
	to, err := primitive.ObjectIDFromHex("000000000000000000000002")
	require.NoError(t, err)

	req := &ConnectionRequest{FromUserID: from, ToUserID: to}
	assert.Equal(t, to, req.OtherParty(from))
	assert.Equal(t, from, req.OtherParty(to))
}
