package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/devconnect-app/backend/internal/models"
	"github.com/devconnect-app/backend/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var errStoreDown = errors.New("store down")

// fakeConnectionStore is an in-memory ConnectionStore with the same
// semantics as the mongo-backed repository, including the unique pair key.
type fakeConnectionStore struct {
	mu      sync.Mutex
	byID    map[primitive.ObjectID]*models.ConnectionRequest
	pairs   map[string]struct{}
	failing bool
}

func newFakeConnectionStore() *fakeConnectionStore {
	return &fakeConnectionStore{
		byID:  make(map[primitive.ObjectID]*models.ConnectionRequest),
		pairs: make(map[string]struct{}),
	}
}

func (f *fakeConnectionStore) Insert(_ context.Context, req *models.ConnectionRequest) (*models.ConnectionRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return nil, errStoreDown
	}

	key := models.PairKeyFor(req.FromUserID, req.ToUserID)
	if _, exists := f.pairs[key]; exists {
		return nil, repository.ErrDuplicatePair
	}

	stored := *req
	stored.ID = primitive.NewObjectID()
	stored.PairKey = key
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt

	f.byID[stored.ID] = &stored
	f.pairs[key] = struct{}{}
	return &stored, nil
}

func (f *fakeConnectionStore) Update(_ context.Context, req *models.ConnectionRequest) (*models.ConnectionRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return nil, errStoreDown
	}

	stored, ok := f.byID[req.ID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	stored.Status = req.Status
	stored.UpdatedAt = time.Now()
	copied := *stored
	return &copied, nil
}

func (f *fakeConnectionStore) FindByUnorderedPair(_ context.Context, a, b primitive.ObjectID) (*models.ConnectionRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return nil, errStoreDown
	}

	key := models.PairKeyFor(a, b)
	for _, req := range f.byID {
		if req.PairKey == key {
			copied := *req
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeConnectionStore) FindByIDForRecipientInStatus(_ context.Context, id, recipientID primitive.ObjectID, status models.ConnectionStatus) (*models.ConnectionRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return nil, errStoreDown
	}

	req, ok := f.byID[id]
	if !ok || req.ToUserID != recipientID || req.Status != status {
		return nil, repository.ErrNotFound
	}
	copied := *req
	return &copied, nil
}

func (f *fakeConnectionStore) FindInvolvingInStatuses(_ context.Context, userID primitive.ObjectID, statuses []models.ConnectionStatus) ([]models.ConnectionRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return nil, errStoreDown
	}

	wanted := make(map[models.ConnectionStatus]struct{}, len(statuses))
	for _, s := range statuses {
		wanted[s] = struct{}{}
	}

	var out []models.ConnectionRequest
	for _, req := range f.byID {
		if req.FromUserID != userID && req.ToUserID != userID {
			continue
		}
		if _, ok := wanted[req.Status]; !ok {
			continue
		}
		out = append(out, *req)
	}
	return out, nil
}

func (f *fakeConnectionStore) FindByRecipientInStatus(_ context.Context, recipientID primitive.ObjectID, status models.ConnectionStatus) ([]models.ConnectionRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return nil, errStoreDown
	}

	var out []models.ConnectionRequest
	for _, req := range f.byID {
		if req.ToUserID == recipientID && req.Status == status {
			out = append(out, *req)
		}
	}
	return out, nil
}

// fakeUserStore is an in-memory UserStore. Feed candidates are returned in
// ascending ID order, matching the repository's stable sort.
type fakeUserStore struct {
	mu      sync.Mutex
	byID    map[primitive.ObjectID]*models.User
	failing bool
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byID: make(map[primitive.ObjectID]*models.User)}
}

func (f *fakeUserStore) add(user *models.User) *models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	f.byID[user.ID] = user
	return user
}

func (f *fakeUserStore) CreateUser(_ context.Context, user *models.User) (*models.User, error) {
	if f.failing {
		return nil, errStoreDown
	}
	f.add(user)
	copied := *user
	return &copied, nil
}

func (f *fakeUserStore) GetUserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return nil, errStoreDown
	}
	user, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return nil, errStoreDown
	}
	for _, user := range f.byID {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserStore) UpdateProfile(_ context.Context, id primitive.ObjectID, update *models.ProfileUpdate) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return nil, errStoreDown
	}
	user, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if update.FirstName != nil {
		user.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		user.LastName = *update.LastName
	}
	if update.Age != nil {
		user.Age = *update.Age
	}
	if update.Gender != nil {
		user.Gender = *update.Gender
	}
	if update.Skills != nil {
		user.Skills = *update.Skills
	}
	if update.ProfileImg != nil {
		user.ProfileImg = *update.ProfileImg
	}
	if update.Bio != nil {
		user.Bio = *update.Bio
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserStore) UpdatePassword(_ context.Context, id primitive.ObjectID, hashed string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return errStoreDown
	}
	user, ok := f.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.HashedPassword = hashed
	return nil
}

func (f *fakeUserStore) GetUsersByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.FeedUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return nil, errStoreDown
	}
	var out []models.FeedUser
	for _, id := range ids {
		if user, ok := f.byID[id]; ok {
			out = append(out, user.FeedProjection())
		}
	}
	return out, nil
}

func (f *fakeUserStore) FindFeedCandidates(_ context.Context, viewerID primitive.ObjectID, exclude []primitive.ObjectID, skip, limit int64) ([]models.FeedUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return nil, errStoreDown
	}

	excluded := make(map[primitive.ObjectID]struct{}, len(exclude)+1)
	for _, id := range exclude {
		excluded[id] = struct{}{}
	}
	excluded[viewerID] = struct{}{}

	var candidates []*models.User
	for _, user := range f.byID {
		if _, hidden := excluded[user.ID]; hidden {
			continue
		}
		candidates = append(candidates, user)
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].ID.Hex() < candidates[j].ID.Hex()
	})

	var out []models.FeedUser
	for i := skip; i < int64(len(candidates)) && int64(len(out)) < limit; i++ {
		out = append(out, candidates[i].FeedProjection())
	}
	return out, nil
}
