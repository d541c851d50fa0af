package service

import (
	"errors"
	"time"

	"go-cafe-pos/internal/model"
	"go-cafe-pos/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Error definitions
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrSessionInvalid     = errors.New("session is missing or expired")
)

// Sessions live for one week, matching the cookie lifetime
const SessionTTL = 7 * 24 * time.Hour

type AuthService interface {
	Login(email, password string) (*LoginResult, error)
	Logout(token string) error
	ResolveSession(token string) (*model.Session, error)
	UpdateDetails(userID uuid.UUID, req *UpdateDetailsRequest) error
}

type LoginResult struct {
	Token     string             `json:"-"`
	ExpiresAt time.Time          `json:"expires_at"`
	User      model.UserResponse `json:"user"`
}

type UpdateDetailsRequest struct {
	Email           string `json:"email"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type authService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
}

func NewAuthService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository) AuthService {
	return &authService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
	}
}

func (s *authService) Login(email, password string) (*LoginResult, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	// Opportunistic sweep of stale sessions; failure is not fatal to login
	if err := s.sessionRepo.DeleteExpired(); err != nil {
		logrus.WithError(err).Warn("failed to sweep expired sessions")
	}

	session := &model.Session{
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(SessionTTL),
		UserID:    user.ID,
	}
	if err := s.sessionRepo.Create(session); err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		User:      user.ToResponse(),
	}, nil
}

func (s *authService) Logout(token string) error {
	if token == "" {
		return nil
	}
	return s.sessionRepo.DeleteByToken(token)
}

// ResolveSession turns a cookie token into a live session with its user
// preloaded. An expired row is removed and reported as invalid.
func (s *authService) ResolveSession(token string) (*model.Session, error) {
	if token == "" {
		return nil, ErrSessionInvalid
	}

	session, err := s.sessionRepo.FindByToken(token)
	if err != nil {
		return nil, ErrSessionInvalid
	}

	if session.Expired() {
		if err := s.sessionRepo.DeleteByToken(token); err != nil {
			logrus.WithError(err).Warn("failed to delete expired session")
		}
		return nil, ErrSessionInvalid
	}

	return session, nil
}

func (s *authService) UpdateDetails(userID uuid.UUID, req *UpdateDetailsRequest) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return ErrUserNotFound
	}

	if !user.CheckPassword(req.CurrentPassword) {
		return ErrWrongPassword
	}

	if req.Email != "" && req.Email != user.Email {
		user.Email = req.Email
	}
	if req.NewPassword != "" {
		if err := user.SetPassword(req.NewPassword); err != nil {
			return errors.New("failed to hash new password")
		}
	}

	return s.userRepo.Update(user)
}
