package services

import (
	"encoding/json"
	"testing"
	"time"

	"campusops/config"
	"campusops/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUserStore struct {
	byID    map[string]*model.User
	byEmail map[string]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		byID:    make(map[string]*model.User),
		byEmail: make(map[string]*model.User),
	}
}

func (s *fakeUserStore) Create(user *model.User, roleIDs []int) error {
	if user.UserID == "" {
		user.UserID = uuid.NewString()
	}
	s.byID[user.UserID] = user
	s.byEmail[user.Email] = user
	return nil
}

// Reads skip soft-deleted rows, matching the repository's deleted_at filter.
func (s *fakeUserStore) FindByEmail(email string) (*model.User, error) {
	user, ok := s.byEmail[email]
	if !ok || user.DeletedAt != nil {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (s *fakeUserStore) FindByID(id string) (*model.User, error) {
	user, ok := s.byID[id]
	if !ok || user.DeletedAt != nil {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (s *fakeUserStore) UpdatePassword(id, passwordHash string) error {
	user, ok := s.byID[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.PasswordHash = passwordHash
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-access-secret",
		JWTRefreshSecret: "test-refresh-secret",
		AccessTokenTTL:   time.Minute,
		RefreshTokenTTL:  time.Hour,
		BcryptCost:       bcrypt.MinCost,
	}
}

func TestRegisterAndLogin(t *testing.T) {
	auth := NewAuthService(newFakeUserStore(), testConfig())

	user, tokens, err := auth.Register("Ana", "ana@campus.edu", "secret-password", nil)
	require.NoError(t, err)
	require.NotNil(t, tokens)
	assert.NotEmpty(t, user.UserID)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "secret-password", user.PasswordHash)

	logged, pair, err := auth.Login("ana@campus.edu", "secret-password")
	require.NoError(t, err)
	assert.Equal(t, user.UserID, logged.UserID)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	auth := NewAuthService(newFakeUserStore(), testConfig())

	_, _, err := auth.Register("Ana", "ana@campus.edu", "secret-password", nil)
	require.NoError(t, err)

	_, _, err = auth.Register("Other", "ana@campus.edu", "another-password", nil)
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestRegisterReusesSoftDeletedEmail(t *testing.T) {
	store := newFakeUserStore()
	auth := NewAuthService(store, testConfig())

	old, _, err := auth.Register("Ana", "ana@campus.edu", "secret-password", nil)
	require.NoError(t, err)

	now := time.Now()
	store.byID[old.UserID].DeletedAt = &now

	// The email of a soft-deleted account is free again.
	replacement, _, err := auth.Register("Ana v2", "ana@campus.edu", "another-password", nil)
	require.NoError(t, err)
	assert.NotEqual(t, old.UserID, replacement.UserID)
}

func TestLoginWrongPassword(t *testing.T) {
	auth := NewAuthService(newFakeUserStore(), testConfig())

	_, _, err := auth.Register("Ana", "ana@campus.edu", "secret-password", nil)
	require.NoError(t, err)

	_, _, err = auth.Login("ana@campus.edu", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = auth.Login("nobody@campus.edu", "secret-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginInactiveAccount(t *testing.T) {
	store := newFakeUserStore()
	auth := NewAuthService(store, testConfig())

	user, _, err := auth.Register("Ana", "ana@campus.edu", "secret-password", nil)
	require.NoError(t, err)

	store.byID[user.UserID].IsActive = false

	_, _, err = auth.Login("ana@campus.edu", "secret-password")
	assert.ErrorIs(t, err, ErrInactiveAccount)
}

func TestValidateToken(t *testing.T) {
	auth := NewAuthService(newFakeUserStore(), testConfig())

	user, tokens, err := auth.Register("Ana", "ana@campus.edu", "secret-password", nil)
	require.NoError(t, err)

	resolved := auth.ValidateToken(tokens.AccessToken)
	require.NotNil(t, resolved)
	assert.Equal(t, user.UserID, resolved.UserID)

	assert.Nil(t, auth.ValidateToken("not-a-token"))
	assert.Nil(t, auth.ValidateToken(tokens.AccessToken+"x"))

	// A refresh token must not pass as an access token.
	assert.Nil(t, auth.ValidateToken(tokens.RefreshToken))
}

func TestValidateTokenExpired(t *testing.T) {
	cfg := testConfig()
	cfg.AccessTokenTTL = -time.Minute
	auth := NewAuthService(newFakeUserStore(), cfg)

	_, tokens, err := auth.Register("Ana", "ana@campus.edu", "secret-password", nil)
	require.NoError(t, err)

	assert.Nil(t, auth.ValidateToken(tokens.AccessToken))
}

func TestRefreshTokenRotation(t *testing.T) {
	auth := NewAuthService(newFakeUserStore(), testConfig())

	user, tokens, err := auth.Register("Ana", "ana@campus.edu", "secret-password", nil)
	require.NoError(t, err)

	refreshed, pair, err := auth.RefreshToken(tokens.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, user.UserID, refreshed.UserID)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	// The new access token resolves to the same user.
	resolved := auth.ValidateToken(pair.AccessToken)
	require.NotNil(t, resolved)
	assert.Equal(t, user.UserID, resolved.UserID)
}

func TestRefreshTokenInvalid(t *testing.T) {
	store := newFakeUserStore()
	auth := NewAuthService(store, testConfig())

	user, tokens, err := auth.Register("Ana", "ana@campus.edu", "secret-password", nil)
	require.NoError(t, err)

	_, _, err = auth.RefreshToken(tokens.RefreshToken + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)

	// An access token must not pass as a refresh token.
	_, _, err = auth.RefreshToken(tokens.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// A deactivated user cannot refresh.
	store.byID[user.UserID].IsActive = false
	_, _, err = auth.RefreshToken(tokens.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogoutStateless(t *testing.T) {
	auth := NewAuthService(newFakeUserStore(), testConfig())

	user, tokens, err := auth.Register("Ana", "ana@campus.edu", "secret-password", nil)
	require.NoError(t, err)

	auth.Logout(user.UserID)

	// No server-side revocation: outstanding tokens survive a logout.
	assert.NotNil(t, auth.ValidateToken(tokens.AccessToken))
	_, _, err = auth.RefreshToken(tokens.RefreshToken)
	assert.NoError(t, err)
}

func TestChangePassword(t *testing.T) {
	auth := NewAuthService(newFakeUserStore(), testConfig())

	_, _, err := auth.Register("Ana", "ana@campus.edu", "secret-password", nil)
	require.NoError(t, err)
	user, _, err := auth.Login("ana@campus.edu", "secret-password")
	require.NoError(t, err)

	err = auth.ChangePassword(user.UserID, "wrong-password", "new-password-1")
	assert.ErrorIs(t, err, ErrIncorrectPassword)

	err = auth.ChangePassword("missing-id", "secret-password", "new-password-1")
	assert.ErrorIs(t, err, ErrUserNotFound)

	require.NoError(t, auth.ChangePassword(user.UserID, "secret-password", "new-password-1"))

	_, _, err = auth.Login("ana@campus.edu", "secret-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = auth.Login("ana@campus.edu", "new-password-1")
	assert.NoError(t, err)
}

func TestUserJSONHidesPasswordHash(t *testing.T) {
	auth := NewAuthService(newFakeUserStore(), testConfig())

	user, _, err := auth.Register("Ana", "ana@campus.edu", "secret-password", nil)
	require.NoError(t, err)

	raw, err := json.Marshal(user)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), user.PasswordHash)
	assert.NotContains(t, string(raw), "passwordHash")
}
