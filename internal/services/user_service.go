package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"unicode"

	"github.com/devconnect-app/backend/internal/models"
	"github.com/devconnect-app/backend/internal/repository"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 8
	maxSkills         = 15
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// UserService encapsulates the business logic for user accounts.
type UserService struct {
	repo UserStore
}

// NewUserService creates a new instance of UserService.
func NewUserService(repo UserStore) *UserService {
	return &UserService{
		repo: repo,
	}
}

// Register creates a new user account after validating the profile and
// hashing the password.
func (s *UserService) Register(ctx context.Context, user *models.User, password string) (*models.User, error) {
	logrus.Info("Registering new user")

	if user.FirstName == "" {
		return nil, fmt.Errorf("first name is required")
	}
	if !emailRegex.MatchString(user.Email) {
		logrus.WithField("email", user.Email).Warn("Invalid email format during registration")
		return nil, fmt.Errorf("invalid email format")
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if err := validateSkills(user.Skills); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetUserByEmail(ctx, user.Email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, storeErr(err)
	}
	if existing != nil {
		logrus.WithField("email", user.Email).Warn("Email already in use")
		return nil, fmt.Errorf("email already in use")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logrus.WithError(err).Error("Password hashing failed")
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}
	user.HashedPassword = string(hashed)

	created, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		logrus.WithError(err).Error("User registration failed")
		return nil, storeErr(err)
	}

	logrus.WithField("userID", created.ID.Hex()).Info("User registered successfully")
	return created, nil
}

// Authenticate verifies the email and password and returns the user if the
// credentials are valid.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		logrus.WithField("email", email).Warn("User not found during login")
		return nil, fmt.Errorf("invalid credentials")
	}
	if err != nil {
		return nil, storeErr(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		logrus.WithField("email", email).Warn("Invalid credentials")
		return nil, fmt.Errorf("invalid credentials")
	}

	logrus.WithField("userID", user.ID.Hex()).Info("User authenticated successfully")
	return user, nil
}

// GetUser retrieves a user by their ID.
func (s *UserService) GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrRecipientNotFound
	}
	if err != nil {
		return nil, storeErr(err)
	}
	return user, nil
}

// UpdateProfile applies an allow-listed edit to the user's own profile.
func (s *UserService) UpdateProfile(ctx context.Context, id primitive.ObjectID, update *models.ProfileUpdate) (*models.User, error) {
	if update.FirstName != nil && *update.FirstName == "" {
		return nil, fmt.Errorf("first name cannot be empty")
	}
	if update.Skills != nil {
		if err := validateSkills(*update.Skills); err != nil {
			return nil, err
		}
	}

	user, err := s.repo.UpdateProfile(ctx, id, update)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrRecipientNotFound
	}
	if err != nil {
		logrus.WithError(err).Error("Failed to update user profile")
		return nil, storeErr(err)
	}

	logrus.WithField("userID", id.Hex()).Info("User profile updated")
	return user, nil
}

// ChangePassword validates and stores a new password for the user.
func (s *UserService) ChangePassword(ctx context.Context, id primitive.ObjectID, newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %v", err)
	}

	if err := s.repo.UpdatePassword(ctx, id, string(hashed)); err != nil {
		return storeErr(err)
	}

	logrus.WithField("userID", id.Hex()).Info("Password changed")
	return nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return fmt.Errorf("password must contain upper and lower case letters and a digit")
	}
	return nil
}

func validateSkills(skills []string) error {
	if len(skills) == 0 {
		return fmt.Errorf("at least one skill is required")
	}
	if len(skills) > maxSkills {
		return fmt.Errorf("at most %d skills are allowed", maxSkills)
	}
	return nil
}
