package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"ecoquest/internal/models"
	"ecoquest/internal/repository"
	"ecoquest/internal/security"
	"ecoquest/internal/validation"
)

var (
	ErrNameTaken          = errors.New("that name is already taken")
	ErrInvalidCredentials = errors.New("invalid name or password")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session expired")
)

// AuthService handles authentication business logic
type AuthService struct {
	userRepo        *repository.UserRepository
	remember        *security.RememberTokens
	sessionDuration time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo *repository.UserRepository, remember *security.RememberTokens, sessionDuration time.Duration) *AuthService {
	return &AuthService{
		userRepo:        userRepo,
		remember:        remember,
		sessionDuration: sessionDuration,
	}
}

// Register creates a new player account and welcomes them by email when
// an address is given
func (s *AuthService) Register(ctx context.Context, emailService *EmailService, name, password string, age int, email string) (*models.User, error) {
	if err := validation.ValidateName(name); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, err
	}
	if err := validation.ValidateAge(age); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	existing, err := s.userRepo.GetUserByName(name)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrNameTaken
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.CreateUser(name, passwordHash, age)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if email != "" {
		if err := validation.ValidateEmail(email); err == nil {
			if err := s.userRepo.UpdateEmail(user.ID, email); err == nil {
				user.Email = email
			}
			if emailService != nil && emailService.IsEnabled() {
				// Welcome mail is best effort; registration already succeeded
				_ = emailService.SendWelcomeEmail(ctx, email, user.Name)
			}
		}
	}

	return user, nil
}

// Login authenticates a player and creates a session
func (s *AuthService) Login(name, password string) (*models.Session, *models.User, error) {
	user, err := s.userRepo.GetUserByName(strings.TrimSpace(name))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, nil, ErrInvalidCredentials
	}

	if !security.CheckPassword(password, user.PasswordHash) {
		return nil, nil, ErrInvalidCredentials
	}

	return s.createSession(user)
}

// createSession opens a fresh session for an authenticated user
func (s *AuthService) createSession(user *models.User) (*models.Session, *models.User, error) {
	sessionID := security.GenerateSessionID()
	expiresAt := time.Now().Add(s.sessionDuration)

	session, err := s.userRepo.CreateSession(sessionID, user.ID, expiresAt)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, user, nil
}

// ValidateSession checks if a session is valid and returns the associated user
func (s *AuthService) ValidateSession(sessionID string) (*models.User, error) {
	session, err := s.userRepo.GetSession(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	if session.IsExpired() {
		_ = s.userRepo.DeleteSession(sessionID)
		return nil, ErrSessionExpired
	}

	user, err := s.userRepo.GetUserByID(session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrSessionNotFound
	}

	return user, nil
}

// Logout invalidates a session
func (s *AuthService) Logout(sessionID string) error {
	if err := s.userRepo.DeleteSession(sessionID); err != nil {
		return fmt.Errorf("failed to logout: %w", err)
	}
	return nil
}

// IssueRememberToken signs a remember-me token for the user, or returns
// empty values when the feature is not configured
func (s *AuthService) IssueRememberToken(userID int64) (string, time.Time) {
	if s.remember == nil || !s.remember.Enabled() {
		return "", time.Time{}
	}
	token, exp, err := s.remember.Issue(userID, time.Now())
	if err != nil {
		return "", time.Time{}
	}
	return token, exp
}

// LoginWithRememberToken re-establishes a session from a remember-me token
func (s *AuthService) LoginWithRememberToken(token string) (*models.Session, *models.User, error) {
	if s.remember == nil {
		return nil, nil, security.ErrRememberToken
	}
	userID, err := s.remember.Verify(token)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, nil, security.ErrRememberToken
	}

	return s.createSession(user)
}

// CleanupExpiredSessions removes expired sessions from the database
func (s *AuthService) CleanupExpiredSessions() error {
	if err := s.userRepo.DeleteExpiredSessions(); err != nil {
		return fmt.Errorf("failed to cleanup sessions: %w", err)
	}
	return nil
}

// OAuthLogin authenticates or creates a player using an OAuth provider
func (s *AuthService) OAuthLogin(provider, subject, email, name string) (*models.Session, *models.User, error) {
	if provider == "" || subject == "" {
		return nil, nil, errors.New("missing oauth provider information")
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, nil, err
	}

	user, err := s.userRepo.GetUserByOAuth(provider, subject)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to lookup oauth user: %w", err)
	}

	if user == nil {
		existing, err := s.userRepo.GetUserByEmail(email)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to check existing user: %w", err)
		}
		if existing != nil {
			return nil, nil, errors.New("an account with that email already exists")
		}

		if name == "" {
			name = strings.Split(email, "@")[0]
		}
		// Names must stay unique; suffix on collision
		base := name
		for i := 2; ; i++ {
			taken, err := s.userRepo.GetUserByName(name)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to check name: %w", err)
			}
			if taken == nil {
				break
			}
			name = fmt.Sprintf("%s %d", base, i)
		}

		user, err = s.userRepo.CreateOAuthUser(name, email, provider, subject)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create oauth user: %w", err)
		}
	}

	return s.createSession(user)
}

// RequestPasswordReset creates a password reset token and sends an email
func (s *AuthService) RequestPasswordReset(ctx context.Context, emailService *EmailService, email string) error {
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	// Don't reveal whether the address exists
	if user == nil {
		return nil
	}
	// OAuth-only accounts have no password to reset
	if user.OAuthProvider != "" && user.PasswordHash == "" {
		return nil
	}

	token, err := generateSecureToken(32)
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	_ = s.userRepo.DeleteUserResetTokens(user.ID)

	expiresAt := time.Now().Add(1 * time.Hour)
	if err := s.userRepo.CreatePasswordResetToken(token, user.ID, expiresAt); err != nil {
		return fmt.Errorf("failed to create reset token: %w", err)
	}

	if emailService != nil && emailService.IsEnabled() {
		if err := emailService.SendPasswordResetEmail(ctx, user.Email, user.Name, token); err != nil {
			return fmt.Errorf("failed to send reset email: %w", err)
		}
	}

	return nil
}

// ResetPassword resets a player's password using a valid token
func (s *AuthService) ResetPassword(token, newPassword string) error {
	resetToken, err := s.userRepo.GetPasswordResetToken(token)
	if err != nil {
		return fmt.Errorf("failed to get reset token: %w", err)
	}
	if resetToken == nil {
		return errors.New("invalid or expired reset token")
	}
	if resetToken.Used {
		return errors.New("this reset link has already been used")
	}
	if resetToken.IsExpired() {
		return errors.New("this reset link has expired")
	}

	if err := validation.ValidatePassword(newPassword); err != nil {
		return err
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(resetToken.UserID, passwordHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if err := s.userRepo.MarkResetTokenUsed(token); err != nil {
		return fmt.Errorf("failed to mark token as used: %w", err)
	}

	return nil
}

// CleanupExpiredResetTokens removes expired reset tokens
func (s *AuthService) CleanupExpiredResetTokens() error {
	if err := s.userRepo.DeleteExpiredResetTokens(); err != nil {
		return fmt.Errorf("failed to cleanup reset tokens: %w", err)
	}
	return nil
}

// generateSecureToken generates a cryptographically secure random token
func generateSecureToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
