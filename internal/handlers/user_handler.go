package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/devconnect-app/backend/internal/config"
	"github.com/devconnect-app/backend/internal/models"
	"github.com/devconnect-app/backend/internal/services"
	jwtutil "github.com/devconnect-app/backend/pkg/jwt"
	"github.com/devconnect-app/backend/pkg/logger"
	"github.com/devconnect-app/backend/pkg/middleware"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserHandler handles HTTP requests for accounts and profiles.
type UserHandler struct {
	Service *services.UserService
	Config  *config.Config
}

// NewUserHandler creates a new instance of UserHandler.
func NewUserHandler(service *services.UserService, cfg *config.Config) *UserHandler {
	return &UserHandler{
		Service: service,
		Config:  cfg,
	}
}

// SignupHandler handles POST /signup.
func (h *UserHandler) SignupHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		FirstName  string   `json:"first_name"`
		LastName   string   `json:"last_name"`
		Email      string   `json:"email"`
		Password   string   `json:"password"`
		Age        int      `json:"age"`
		Gender     string   `json:"gender"`
		Skills     []string `json:"skills"`
		ProfileImg string   `json:"profile_img"`
		Bio        string   `json:"bio"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		logger.Log.WithError(err).Warn("Failed to decode signup request")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	user := &models.User{
		FirstName:  body.FirstName,
		LastName:   body.LastName,
		Email:      body.Email,
		Age:        body.Age,
		Gender:     body.Gender,
		Skills:     body.Skills,
		ProfileImg: body.ProfileImg,
		Bio:        body.Bio,
	}

	created, err := h.Service.Register(r.Context(), user, body.Password)
	if err != nil {
		logger.Log.WithError(err).Warn("Failed to register user")
		writeServiceError(w, err)
		return
	}

	h.setSessionCookie(w, created)

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User account created successfully",
		"data":    created,
	})
}

// LoginHandler handles POST /login.
func (h *UserHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		logger.Log.WithError(err).Warn("Failed to decode login request")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	user, err := h.Service.Authenticate(r.Context(), credentials.Email, credentials.Password)
	if err != nil {
		logger.Log.WithField("email", credentials.Email).Warn("Authentication failed")
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	h.setSessionCookie(w, user)

	logger.Log.WithField("userID", user.ID.Hex()).Info("User logged in successfully")
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"data":    user,
	})
}

// LogoutHandler handles POST /logout by expiring the session cookie.
func (h *UserHandler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
	})
	respondJSON(w, http.StatusOK, map[string]string{"message": "Logout successful"})
}

// ViewProfileHandler handles GET /profile/view.
func (h *UserHandler) ViewProfileHandler(w http.ResponseWriter, r *http.Request) {
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

	user, err := h.Service.GetUser(r.Context(), userID)
	if err != nil {
		logger.Log.Errorf("Failed to fetch profile for user %s: %v", claims.UserID, err)
		writeServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"data": user})
}

// EditProfileHandler handles PATCH /profile/edit. Only the allow-listed
// fields of ProfileUpdate can be changed.
func (h *UserHandler) EditProfileHandler(w http.ResponseWriter, r *http.Request) {
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

	var update models.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		logger.Log.WithError(err).Warn("Failed to decode profile edit request")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	user, err := h.Service.UpdateProfile(r.Context(), userID, &update)
	if err != nil {
		logger.Log.Warnf("Failed to update profile for user %s: %v", claims.UserID, err)
		writeServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Profile updated successfully",
		"data":    user,
	})
}

// ChangePasswordHandler handles PATCH /profile/password.
func (h *UserHandler) ChangePasswordHandler(w http.ResponseWriter, r *http.Request) {
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

	var body struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if err := h.Service.ChangePassword(r.Context(), userID, body.Password); err != nil {
		logger.Log.Warnf("Failed to change password for user %s: %v", claims.UserID, err)
		writeServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Password updated successfully"})
}

func (h *UserHandler) setSessionCookie(w http.ResponseWriter, user *models.User) {
	token, err := jwtutil.GenerateToken(user.ID.Hex(), user.Email, h.Config.JWTSecret, h.Config.TokenExpiry)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to generate session token")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.Config.TokenExpiry),
		HttpOnly: true,
	})
}
