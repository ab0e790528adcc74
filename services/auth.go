package services

import (
	"errors"
	"time"

	"campusops/config"
	"campusops/model"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserStore is the persistence surface the auth service needs.
type UserStore interface {
	Create(user *model.User, roleIDs []int) error
	FindByEmail(email string) (*model.User, error)
	FindByID(id string) (*model.User, error)
	UpdatePassword(id, passwordHash string) error
}

// TokenPair is an access/refresh token set. Tokens are signed, not
// encrypted; the two secrets are distinct configuration values.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type AuthService struct {
	users UserStore
	cfg   *config.Config
}

func NewAuthService(users UserStore, cfg *config.Config) *AuthService {
	return &AuthService{users: users, cfg: cfg}
}

// Register hashes the password, persists the user with its roles and issues
// a token pair. The duplicate-email precondition lives here so every caller
// gets it.
func (s *AuthService) Register(name, email, password string, roleIDs []int) (*model.User, *TokenPair, error) {
	_, err := s.users.FindByEmail(email)
	if err == nil {
		return nil, nil, ErrDuplicateEmail
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		return nil, nil, err
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		IsActive:     true,
	}
	if err := s.users.Create(user, roleIDs); err != nil {
		return nil, nil, err
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

func (s *AuthService) Login(email, password string) (*model.User, *TokenPair, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, nil, ErrInactiveAccount
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// RefreshToken verifies a refresh token and issues a fresh pair (rotation,
// not reuse). Any verification failure, or a missing/inactive user, yields
// ErrInvalidToken.
func (s *AuthService) RefreshToken(tokenString string) (*model.User, *TokenPair, error) {
	claims := &model.RefreshClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.cfg.JWTRefreshSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, nil, ErrInvalidToken
	}

	user, err := s.users.FindByID(claims.UserID)
	if err != nil || !user.IsActive {
		return nil, nil, ErrInvalidToken
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// ValidateToken resolves an access token to its user, or nil when the token
// is invalid or expired. It never returns a verification error to the
// caller; the request-auth middleware treats nil as "no user".
func (s *AuthService) ValidateToken(tokenString string) *model.User {
	claims := &model.AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil
	}

	user, err := s.users.FindByID(claims.UserID)
	if err != nil || !user.IsActive {
		return nil
	}
	return user
}

func (s *AuthService) ChangePassword(userID, currentPassword, newPassword string) error {
	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrIncorrectPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.cfg.BcryptCost)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(userID, string(hashed))
}

// Logout is a stateless no-op: there is no server-side revocation list, so
// an outstanding refresh token stays valid until natural expiry.
func (s *AuthService) Logout(userID string) {
}

func (s *AuthService) issueTokens(user *model.User) (*TokenPair, error) {
	now := time.Now()

	accessClaims := &model.AccessClaims{
		UserID: user.UserID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "campusops",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.AccessTokenTTL)),
		},
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).
		SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, err
	}

	refreshClaims := &model.RefreshClaims{
		UserID: user.UserID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "campusops",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.RefreshTokenTTL)),
		},
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).
		SignedString([]byte(s.cfg.JWTRefreshSecret))
	if err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
