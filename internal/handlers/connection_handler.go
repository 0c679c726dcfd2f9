package handlers

import (
	"net/http"

	"github.com/devconnect-app/backend/internal/models"
	"github.com/devconnect-app/backend/internal/services"
	"github.com/devconnect-app/backend/pkg/logger"
	"github.com/devconnect-app/backend/pkg/middleware"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ConnectionHandler manages HTTP endpoints for connection requests.
type ConnectionHandler struct {
	Service *services.ConnectionService
}

// NewConnectionHandler initializes a new ConnectionHandler.
func NewConnectionHandler(service *services.ConnectionService) *ConnectionHandler {
	return &ConnectionHandler{Service: service}
}

// SendRequestHandler handles POST /request/send/{status}/{toUserId}.
func (h *ConnectionHandler) SendRequestHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		logger.Log.Warn("Unauthorized attempt to send connection request")
		return
	}

	vars := mux.Vars(r)
	status := models.ConnectionStatus(vars["status"])

	toUserID, err := primitive.ObjectIDFromHex(vars["toUserId"])
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		logger.Log.Warnf("Invalid recipient ID: %v", err)
		return
	}

	senderID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		http.Error(w, "Invalid session", http.StatusUnauthorized)
		return
	}

	request, err := h.Service.Send(r.Context(), senderID, toUserID, status)
	if err != nil {
		logger.Log.Warnf("Failed to send connection request: %v", err)
		writeServiceError(w, err)
		return
	}

	logger.Log.Infof("User %s sent a %s request to %s", claims.UserID, status, vars["toUserId"])
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Connection request sent",
		"data":    request,
	})
}

// ReviewRequestHandler handles POST /request/review/{status}/{requestId}.
func (h *ConnectionHandler) ReviewRequestHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		logger.Log.Warn("Unauthorized attempt to review connection request")
		return
	}

	vars := mux.Vars(r)
	decision := models.ConnectionStatus(vars["status"])

	requestID, err := primitive.ObjectIDFromHex(vars["requestId"])
	if err != nil {
		http.Error(w, "Invalid request ID", http.StatusBadRequest)
		logger.Log.Warnf("Invalid connection request ID: %v", err)
		return
	}

	reviewerID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		http.Error(w, "Invalid session", http.StatusUnauthorized)
		return
	}

	request, err := h.Service.Review(r.Context(), reviewerID, requestID, decision)
	if err != nil {
		logger.Log.Warnf("Failed to review connection request %s: %v", vars["requestId"], err)
		writeServiceError(w, err)
		return
	}

	logger.Log.Infof("User %s reviewed request %s as %s", claims.UserID, vars["requestId"], decision)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Connection request " + string(decision),
		"data":    request,
	})
}

// ReceivedRequestsHandler handles GET /user/request/received.
func (h *ConnectionHandler) ReceivedRequestsHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		http.Error(w, "Invalid session", http.StatusUnauthorized)
		return
	}

	requests, err := h.Service.ReceivedRequests(r.Context(), userID)
	if err != nil {
		logger.Log.Errorf("Failed to fetch received requests for user %s: %v", claims.UserID, err)
		writeServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Pending connection requests fetched successfully",
		"data":    requests,
	})
}

// ConnectionsHandler handles GET /user/request/connection.
func (h *ConnectionHandler) ConnectionsHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		http.Error(w, "Invalid session", http.StatusUnauthorized)
		return
	}

	connections, err := h.Service.Connections(r.Context(), userID)
	if err != nil {
		logger.Log.Errorf("Failed to fetch connections for user %s: %v", claims.UserID, err)
		writeServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Connections fetched successfully",
		"data":    connections,
	})
}
