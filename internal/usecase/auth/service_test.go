package auth

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"logitrack/internal/config"
	domainUser "logitrack/internal/domain/user"
	appErrors "logitrack/pkg/errors"
	"logitrack/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domainUser.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*domainUser.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *domainUser.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return domainUser.ErrUserAlreadyExists
		}
	}
	u.ID = uuid.New()
	u.CreatedAt = time.Now()
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domainUser.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domainUser.ErrUserNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, userID uuid.UUID) (*domainUser.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return nil, domainUser.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) ListByRole(_ context.Context, role domainUser.Role) ([]*domainUser.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*domainUser.User
	for _, u := range r.users {
		if u.Role == role {
			result = append(result, u)
		}
	}
	return result, nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, userID uuid.UUID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return domainUser.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

type fakeRefreshTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]*domainUser.RefreshToken
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{tokens: make(map[string]*domainUser.RefreshToken)}
}

func (r *fakeRefreshTokenRepo) Create(_ context.Context, token *domainUser.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	token.ID = uuid.New()
	token.CreatedAt = time.Now()
	r.tokens[token.Token] = token
	return nil
}

func (r *fakeRefreshTokenRepo) GetByToken(_ context.Context, token string) (*domainUser.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.tokens[token]
	if !ok {
		return nil, domainUser.ErrTokenInvalid
	}
	return stored, nil
}

func (r *fakeRefreshTokenRepo) Revoke(_ context.Context, tokenID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stored := range r.tokens {
		if stored.ID == tokenID {
			now := time.Now()
			stored.Revoked = true
			stored.RevokedAt = &now
			return nil
		}
	}
	return domainUser.ErrTokenInvalid
}

func (r *fakeRefreshTokenRepo) RevokeAllForUser(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stored := range r.tokens {
		if stored.UserID == userID {
			stored.Revoked = true
		}
	}
	return nil
}

func (r *fakeRefreshTokenRepo) DeleteExpired(_ context.Context, _ time.Duration) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var deleted int64
	for key, stored := range r.tokens {
		if stored.IsExpired() || stored.Revoked {
			delete(r.tokens, key)
			deleted++
		}
	}
	return deleted, nil
}

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:             "test-secret",
			ExpiryHours:        1,
			RefreshExpiryHours: 24,
		},
	}
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *appErrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
}

func validRegister() *RegisterRequest {
	return &RegisterRequest{
		Name:     "Admin User",
		Email:    "admin@logitrack.com",
		Password: "logi12345",
	}
}

func TestRegisterIssuesTokensAndAdminRole(t *testing.T) {
	svc := NewService(newFakeUserRepo(), newFakeRefreshTokenRepo(), testConfig())

	resp, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	assert.Equal(t, "admin", resp.User.Role)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	claims, err := utils.ValidateToken(resp.AccessToken, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	svc := NewService(newFakeUserRepo(), newFakeRefreshTokenRepo(), testConfig())

	_, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), validRegister())
	assertAppErrorCode(t, err, appErrors.CodeConflict)
}

func TestRegisterWeakPasswordRejected(t *testing.T) {
	svc := NewService(newFakeUserRepo(), newFakeRefreshTokenRepo(), testConfig())

	req := validRegister()
	req.Password = "password" // no digit
	_, err := svc.Register(context.Background(), req)
	assertAppErrorCode(t, err, appErrors.CodeValidation)
}

func TestLoginVerifiesCredentials(t *testing.T) {
	svc := NewService(newFakeUserRepo(), newFakeRefreshTokenRepo(), testConfig())

	_, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "admin@logitrack.com",
		Password: "logi12345",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	_, err = svc.Login(context.Background(), &LoginRequest{
		Email:    "admin@logitrack.com",
		Password: "wrong12345",
	})
	assertAppErrorCode(t, err, appErrors.CodeUnauthenticated)

	_, err = svc.Login(context.Background(), &LoginRequest{
		Email:    "ghost@logitrack.com",
		Password: "logi12345",
	})
	assertAppErrorCode(t, err, appErrors.CodeUnauthenticated)
}

func TestRefreshRotatesToken(t *testing.T) {
	svc := NewService(newFakeUserRepo(), newFakeRefreshTokenRepo(), testConfig())

	registered, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), registered.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, registered.RefreshToken, refreshed.RefreshToken)

	// The old token was revoked by the rotation.
	_, err = svc.Refresh(context.Background(), registered.RefreshToken)
	assertAppErrorCode(t, err, appErrors.CodeUnauthenticated)

	// The new one still works.
	_, err = svc.Refresh(context.Background(), refreshed.RefreshToken)
	require.NoError(t, err)
}

func TestRefreshRejectsUnknownToken(t *testing.T) {
	svc := NewService(newFakeUserRepo(), newFakeRefreshTokenRepo(), testConfig())

	_, err := svc.Refresh(context.Background(), "not-a-token")
	assertAppErrorCode(t, err, appErrors.CodeUnauthenticated)

	_, err = svc.Refresh(context.Background(), "")
	assertAppErrorCode(t, err, appErrors.CodeUnauthenticated)
}

func TestLogoutRevokesAndIsIdempotent(t *testing.T) {
	svc := NewService(newFakeUserRepo(), newFakeRefreshTokenRepo(), testConfig())

	registered, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), registered.RefreshToken))

	_, err = svc.Refresh(context.Background(), registered.RefreshToken)
	assertAppErrorCode(t, err, appErrors.CodeUnauthenticated)

	// Logging out twice, or with garbage, is fine.
	require.NoError(t, svc.Logout(context.Background(), registered.RefreshToken))
	require.NoError(t, svc.Logout(context.Background(), "garbage"))
	require.NoError(t, svc.Logout(context.Background(), ""))
}

func TestRefreshTokenNeverInJSONBody(t *testing.T) {
	resp := &AuthResponse{RefreshToken: "super-secret"}

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "super-secret")
}
