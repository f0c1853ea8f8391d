package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/veyralabs/veyra/app/models"
	"github.com/veyralabs/veyra/pkg/auth"
	"github.com/veyralabs/veyra/pkg/orm"
)

// ErrInvalidCredentials covers both an unknown email and a wrong password,
// so login failures don't reveal which one it was.
var ErrInvalidCredentials = errors.New("services: invalid credentials")

// AuthService signs admins in and issues their tokens.
type AuthService struct {
	q *orm.Query
}

// NewAuthService wires the service against the application database.
func NewAuthService() *AuthService {
	return &AuthService{q: orm.DB()}
}

// NewAuthServiceWith builds a service over an explicit query handle.
func NewAuthServiceWith(q *orm.Query) *AuthService {
	return &AuthService{q: q}
}

// TokenPair is the login result.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Login verifies the credentials and returns a fresh token pair.
func (s *AuthService) Login(email, password string) (TokenPair, error) {
	var user models.User
	err := s.q.Model(&models.User{}).Where("email = ?", email).First(&user)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return TokenPair{}, ErrInvalidCredentials
	}
	if err != nil {
		return TokenPair{}, err
	}

	if !auth.CheckPassword(user.Password, password) {
		return TokenPair{}, ErrInvalidCredentials
	}

	access, err := auth.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := auth.GenerateRefreshToken(user.ID, user.Email, user.Role)
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh exchanges a valid refresh token for a new token pair.
func (s *AuthService) Refresh(token string) (TokenPair, error) {
	claims, err := auth.ValidateToken(token)
	if err != nil {
		return TokenPair{}, ErrInvalidCredentials
	}

	access, err := auth.GenerateToken(claims.UserID, claims.Email, claims.Role)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := auth.GenerateRefreshToken(claims.UserID, claims.Email, claims.Role)
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
