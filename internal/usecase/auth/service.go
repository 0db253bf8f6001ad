package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/johnquangdev/voicenote/internal/domain/entities"
	"github.com/johnquangdev/voicenote/internal/domain/repositories"
	"github.com/johnquangdev/voicenote/internal/infrastructure/cache"
	"github.com/johnquangdev/voicenote/pkg/jwt"
)

// Service handles account registration, login sessions and password resets
type Service struct {
	userRepo    repositories.UserRepository
	sessionRepo repositories.SessionRepository
	jwtManager  *jwt.Manager
	resets      *ResetTokenManager
	hashCost    int
	logger      *zap.Logger
}

// NewService creates a new auth service
func NewService(
	userRepo repositories.UserRepository,
	sessionRepo repositories.SessionRepository,
	jwtManager *jwt.Manager,
	resetStore cache.Store,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		jwtManager:  jwtManager,
		resets:      NewResetTokenManager(resetStore),
		hashCost:    bcrypt.DefaultCost,
		logger:      logger,
	}
}

// RegisterInput is the data needed to open an account
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// LoginInput carries credentials and the client's device info
type LoginInput struct {
	Username  string
	Password  string
	IPAddress string
	UserAgent string
}

// AuthResponse represents the authentication response
type AuthResponse struct {
	User         *entities.User
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
	SessionID    uuid.UUID
}

// ResetGrant is an issued password reset token
type ResetGrant struct {
	Token     string
	ExpiresAt time.Time
}

// Register creates a new account. Neither the username nor the email may be
// registered already.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*entities.User, error) {
	if in.Password == "" {
		return nil, entities.ErrInvalidPassword
	}

	exists, err := s.userRepo.ExistsByUsername(ctx, strings.TrimSpace(in.Username))
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return nil, entities.ErrUsernameTaken
	}
	exists, err = s.userRepo.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, entities.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := entities.NewUser(in.Username, in.Email, string(hash))
	if err := user.Validate(); err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, entities.ErrUsernameTaken) || errors.Is(err, entities.ErrEmailTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("✅ User registered", zap.String("username", user.Username), zap.String("user_id", user.ID.String()))
	return user, nil
}

// Login checks credentials and opens a new session
func (s *Service) Login(ctx context.Context, in LoginInput) (*AuthResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, strings.TrimSpace(in.Username))
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return nil, entities.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		s.logger.Warn("Login rejected", zap.String("username", user.Username))
		return nil, entities.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, entities.ErrUserInactive
	}

	resp, err := s.openSession(ctx, user, in.IPAddress, in.UserAgent)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn("Failed to update last login", zap.String("user_id", user.ID.String()), zap.Error(err))
	} else {
		user.UpdateLastLogin()
	}
	return resp, nil
}

// Refresh rotates a refresh token: the presented session is revoked and a new
// one is opened.
func (s *Service) Refresh(ctx context.Context, refreshToken, ip, userAgent string) (*AuthResponse, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, entities.ErrInvalidToken
	}

	session, err := s.sessionRepo.FindByTokenHash(ctx, entities.HashToken(refreshToken))
	if err != nil {
		if errors.Is(err, entities.ErrSessionNotFound) {
			return nil, entities.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	if !session.IsValid() {
		return nil, entities.ErrSessionExpired
	}
	if session.UserID != userID {
		return nil, entities.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if !user.IsActive {
		return nil, entities.ErrUserInactive
	}

	// a concurrent refresh with the same token already rotated this session
	if err := s.sessionRepo.Revoke(ctx, session.ID); err != nil {
		if errors.Is(err, entities.ErrSessionNotFound) {
			return nil, entities.ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to revoke session: %w", err)
	}
	return s.openSession(ctx, user, ip, userAgent)
}

// Logout revokes the session behind a refresh token
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	session, err := s.sessionRepo.FindByTokenHash(ctx, entities.HashToken(refreshToken))
	if err != nil {
		return entities.ErrSessionNotFound
	}
	return s.sessionRepo.Revoke(ctx, session.ID)
}

// ValidateSession resolves an access token to an active user. The token's
// session must still be open, so logout, refresh rotation and password reset
// cut off access tokens issued before them.
func (s *Service) ValidateSession(ctx context.Context, accessToken string) (*entities.User, error) {
	claims, err := s.jwtManager.ValidateAccessToken(accessToken)
	if err != nil {
		return nil, entities.ErrInvalidToken
	}

	session, err := s.sessionRepo.FindActiveByID(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, entities.ErrSessionNotFound) {
			return nil, entities.ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	if !session.IsValid() || session.UserID != claims.UserID {
		return nil, entities.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, entities.ErrUnauthorized
	}
	return user, nil
}

// Me returns the account of an authenticated user
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (*entities.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

// ForgotPassword issues a one-time reset token when username and email
// belong to the same account.
func (s *Service) ForgotPassword(ctx context.Context, username, email string) (*ResetGrant, error) {
	user, err := s.userRepo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return nil, entities.ErrResetMismatch
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if !strings.EqualFold(user.Email, strings.TrimSpace(email)) {
		return nil, entities.ErrResetMismatch
	}

	token, expiresAt, err := s.resets.Generate(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Password reset requested", zap.String("username", user.Username))
	return &ResetGrant{Token: token, ExpiresAt: expiresAt}, nil
}

// ResetPassword redeems a reset token, replaces the password and revokes every
// session of the account.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	if newPassword == "" {
		return entities.ErrInvalidPassword
	}
	userID, err := s.resets.Consume(ctx, token)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.hashCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return err
	}
	if err := s.sessionRepo.RevokeAllByUserID(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}

	s.logger.Info("✅ Password reset", zap.String("user_id", userID.String()))
	return nil
}

// CleanupSessions deletes sessions that expired or were revoked more than one
// refresh lifetime ago.
func (s *Service) CleanupSessions(ctx context.Context) (int64, error) {
	cutoff := time.Now().Add(-s.jwtManager.GetRefreshExpiry())
	n, err := s.sessionRepo.CleanupOldSessions(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up sessions: %w", err)
	}
	s.logger.Info("Sessions cleaned up", zap.Int64("deleted", n), zap.Time("cutoff", cutoff))
	return n, nil
}

func (s *Service) openSession(ctx context.Context, user *entities.User, ip, userAgent string) (*AuthResponse, error) {
	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	session := entities.NewSession(
		user.ID,
		refreshToken,
		time.Now().Add(s.jwtManager.GetRefreshExpiry()),
	).WithDeviceInfo(ip, userAgent)

	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Username, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &AuthResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.jwtManager.GetAccessExpiry().Seconds()),
		SessionID:    session.ID,
	}, nil
}
