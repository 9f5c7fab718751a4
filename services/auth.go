package services

import (
	"errors"

	"github.com/watchable/watchable/models"
	"github.com/watchable/watchable/utils"
)

// UserFinder is the slice of the user store the auth layer needs.
type UserFinder interface {
	UserByID(id uint) (*models.User, error)
	UserByUsername(username string) (*models.User, error)
}

// AuthService verifies credentials and resolves bearer tokens to live user
// records.
type AuthService struct {
	tokens *TokenService
	users  UserFinder
}

// NewAuthService creates an AuthService.
func NewAuthService(tokens *TokenService, users UserFinder) *AuthService {
	return &AuthService{tokens: tokens, users: users}
}

// Authenticate checks a username/password pair against the credential store.
// Unknown users and wrong passwords are indistinguishable to the caller.
func (a *AuthService) Authenticate(username, password string) (*models.User, error) {
	user, err := a.users.UserByUsername(username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !utils.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Login authenticates and issues a session token in one step.
func (a *AuthService) Login(username, password string) (string, *models.User, error) {
	user, err := a.Authenticate(username, password)
	if err != nil {
		return "", nil, err
	}
	token, err := a.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// ResolveToken turns a raw bearer token into the authenticated user record.
// Failures are three-way: ErrTokenMissing for an empty token, ErrTokenInvalid
// for signature/expiry problems, ErrSubjectNotFound when the token checks out
// but the referenced user no longer exists.
func (a *AuthService) ResolveToken(raw string) (*models.User, error) {
	if raw == "" {
		return nil, ErrTokenMissing
	}
	claims, err := a.tokens.Verify(raw)
	if err != nil {
		return nil, err
	}
	user, err := a.users.UserByID(claims.UserID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrSubjectNotFound
		}
		return nil, err
	}
	return user, nil
}
