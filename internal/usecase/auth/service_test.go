package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/johnquangdev/voicenote/internal/adapter/repository"
	"github.com/johnquangdev/voicenote/internal/domain/entities"
	"github.com/johnquangdev/voicenote/internal/domain/repositories"
	"github.com/johnquangdev/voicenote/internal/infrastructure/cache"
	"github.com/johnquangdev/voicenote/internal/infrastructure/database"
	"github.com/johnquangdev/voicenote/pkg/jwt"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db := database.OpenTest(t)
	store := cache.NewMemoryStore()
	t.Cleanup(func() { _ = store.Close() })

	svc := NewService(
		repository.NewUserRepository(db),
		repository.NewSessionRepository(db),
		jwt.NewManager("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour),
		store,
		nil,
	)
	svc.hashCost = bcrypt.MinCost
	return svc
}

func register(t *testing.T, svc *Service, username string) *entities.User {
	t.Helper()
	u, err := svc.Register(context.Background(), RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)
	return u
}

func TestRegister(t *testing.T) {
	svc := newTestService(t)
	u := register(t, svc, "alice")

	assert.True(t, u.IsActive)
	assert.NotEqual(t, "hunter22", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("hunter22")))

	_, err := svc.Register(context.Background(), RegisterInput{Username: "alice", Email: "other@example.com", Password: "hunter22"})
	assert.ErrorIs(t, err, entities.ErrUsernameTaken)

	_, err = svc.Register(context.Background(), RegisterInput{Username: "dave", Email: "ALICE@example.com", Password: "hunter22"})
	assert.ErrorIs(t, err, entities.ErrEmailTaken)

	_, err = svc.Register(context.Background(), RegisterInput{Username: "bob", Email: "bob@example.com"})
	assert.ErrorIs(t, err, entities.ErrInvalidPassword)

	_, err = svc.Register(context.Background(), RegisterInput{Username: "carol", Email: "not-an-email", Password: "hunter22"})
	assert.ErrorIs(t, err, entities.ErrInvalidEmail)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	u := register(t, svc, "alice")

	resp, err := svc.Login(ctx, LoginInput{Username: "alice", Password: "hunter22", IPAddress: "127.0.0.1", UserAgent: "test"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, resp.User.ID)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, int64(900), resp.ExpiresIn)
	assert.NotNil(t, resp.User.LastLoginAt)

	user, err := svc.ValidateSession(ctx, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = svc.Login(ctx, LoginInput{Username: "alice", Password: "wrong-password1"})
	assert.ErrorIs(t, err, entities.ErrInvalidCredentials)

	_, err = svc.Login(ctx, LoginInput{Username: "nobody", Password: "hunter22"})
	assert.ErrorIs(t, err, entities.ErrInvalidCredentials)

	_, err = svc.ValidateSession(ctx, "garbage")
	assert.ErrorIs(t, err, entities.ErrInvalidToken)
}

func TestRefreshRotatesSession(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	register(t, svc, "alice")

	first, err := svc.Login(ctx, LoginInput{Username: "alice", Password: "hunter22"})
	require.NoError(t, err)

	second, err := svc.Refresh(ctx, first.RefreshToken, "", "")
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
	assert.NotEqual(t, first.SessionID, second.SessionID)

	// the rotated-out token is dead
	_, err = svc.Refresh(ctx, first.RefreshToken, "", "")
	assert.ErrorIs(t, err, entities.ErrSessionNotFound)

	_, err = svc.Refresh(ctx, second.AccessToken, "", "")
	assert.ErrorIs(t, err, entities.ErrInvalidToken)
}

// staleSessions serves a session snapshot taken before a concurrent refresh
// rotated it.
type staleSessions struct {
	repositories.SessionRepository
	snapshot *entities.Session
}

func (s *staleSessions) FindByTokenHash(ctx context.Context, tokenHash string) (*entities.Session, error) {
	if s.snapshot != nil && s.snapshot.TokenHash == tokenHash {
		cp := *s.snapshot
		return &cp, nil
	}
	return s.SessionRepository.FindByTokenHash(ctx, tokenHash)
}

func TestConcurrentRefreshRotatesOnce(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	register(t, svc, "alice")

	first, err := svc.Login(ctx, LoginInput{Username: "alice", Password: "hunter22"})
	require.NoError(t, err)

	snapshot, err := svc.sessionRepo.FindByTokenHash(ctx, entities.HashToken(first.RefreshToken))
	require.NoError(t, err)
	svc.sessionRepo = &staleSessions{SessionRepository: svc.sessionRepo, snapshot: snapshot}

	_, err = svc.Refresh(ctx, first.RefreshToken, "", "")
	require.NoError(t, err)

	// the loser read the session before the winner revoked it
	_, err = svc.Refresh(ctx, first.RefreshToken, "", "")
	assert.ErrorIs(t, err, entities.ErrInvalidToken)
}

func TestAccessTokenBoundToSession(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	alice := register(t, svc, "alice")

	login := func() *AuthResponse {
		resp, err := svc.Login(ctx, LoginInput{Username: "alice", Password: "hunter22"})
		require.NoError(t, err)
		return resp
	}

	// logout
	resp := login()
	require.NoError(t, svc.Logout(ctx, resp.RefreshToken))
	_, err := svc.ValidateSession(ctx, resp.AccessToken)
	assert.ErrorIs(t, err, entities.ErrInvalidToken)

	// refresh rotation
	resp = login()
	rotated, err := svc.Refresh(ctx, resp.RefreshToken, "", "")
	require.NoError(t, err)
	_, err = svc.ValidateSession(ctx, resp.AccessToken)
	assert.ErrorIs(t, err, entities.ErrInvalidToken)
	_, err = svc.ValidateSession(ctx, rotated.AccessToken)
	assert.NoError(t, err)

	// password reset
	grant, err := svc.ForgotPassword(ctx, "alice", "alice@example.com")
	require.NoError(t, err)
	require.NoError(t, svc.ResetPassword(ctx, grant.Token, "new-secret9"))
	_, err = svc.ValidateSession(ctx, rotated.AccessToken)
	assert.ErrorIs(t, err, entities.ErrInvalidToken)

	// a correctly signed token naming no session
	forged, err := svc.jwtManager.GenerateAccessToken(alice.ID, "alice", uuid.New())
	require.NoError(t, err)
	_, err = svc.ValidateSession(ctx, forged)
	assert.ErrorIs(t, err, entities.ErrInvalidToken)
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	register(t, svc, "alice")

	resp, err := svc.Login(ctx, LoginInput{Username: "alice", Password: "hunter22"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, resp.RefreshToken))
	assert.ErrorIs(t, svc.Logout(ctx, resp.RefreshToken), entities.ErrSessionNotFound)

	_, err = svc.Refresh(ctx, resp.RefreshToken, "", "")
	assert.ErrorIs(t, err, entities.ErrSessionNotFound)
}

func TestPasswordReset(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	register(t, svc, "alice")

	session, err := svc.Login(ctx, LoginInput{Username: "alice", Password: "hunter22"})
	require.NoError(t, err)

	_, err = svc.ForgotPassword(ctx, "alice", "someone-else@example.com")
	assert.ErrorIs(t, err, entities.ErrResetMismatch)
	_, err = svc.ForgotPassword(ctx, "nobody", "alice@example.com")
	assert.ErrorIs(t, err, entities.ErrResetMismatch)

	grant, err := svc.ForgotPassword(ctx, "alice", "ALICE@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, grant.Token)
	assert.WithinDuration(t, time.Now().Add(ResetTokenTTL), grant.ExpiresAt, 5*time.Second)

	require.NoError(t, svc.ResetPassword(ctx, grant.Token, "new-secret9"))
	assert.ErrorIs(t, svc.ResetPassword(ctx, grant.Token, "again-secret9"), entities.ErrResetTokenInvalid)

	// old sessions are revoked
	_, err = svc.Refresh(ctx, session.RefreshToken, "", "")
	assert.ErrorIs(t, err, entities.ErrSessionNotFound)

	_, err = svc.Login(ctx, LoginInput{Username: "alice", Password: "hunter22"})
	assert.ErrorIs(t, err, entities.ErrInvalidCredentials)
	_, err = svc.Login(ctx, LoginInput{Username: "alice", Password: "new-secret9"})
	assert.NoError(t, err)
}

func TestCleanupSessions(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	register(t, svc, "alice")

	_, err := svc.Login(ctx, LoginInput{Username: "alice", Password: "hunter22"})
	require.NoError(t, err)

	n, err := svc.CleanupSessions(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}
