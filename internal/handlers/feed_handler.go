package handlers

import (
	"net/http"
	"strconv"

	"github.com/devconnect-app/backend/internal/services"
	"github.com/devconnect-app/backend/pkg/logger"
	"github.com/devconnect-app/backend/pkg/middleware"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FeedHandler serves the paginated user feed.
type FeedHandler struct {
	Service *services.FeedService
}

// NewFeedHandler initializes a new FeedHandler.
func NewFeedHandler(service *services.FeedService) *FeedHandler {
	return &FeedHandler{Service: service}
}

// FeedHandler handles GET /user/feed?page=&limit=. Malformed pagination
// parameters are normalized by the service, never rejected.
func (h *FeedHandler) FeedHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	viewerID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		http.Error(w, "Invalid session", http.StatusUnauthorized)
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	users, err := h.Service.NextPage(r.Context(), viewerID, page, limit)
	if err != nil {
		logger.Log.Errorf("Failed to build feed for user %s: %v", claims.UserID, err)
		writeServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"data": users,
	})
}
