package services

import (
	"errors"

	"github.com/watchable/watchable/models"
	"github.com/watchable/watchable/utils"
)

// UserStore is the persistence surface for account management.
type UserStore interface {
	UserFinder
	UserByEmail(email string) (*models.User, error)
	CreateUser(u *models.User) error
	SaveUser(u *models.User) error
	SearchUsers(query string) ([]models.User, error)
}

// ProfileUpdate carries optional profile fields; empty values keep the
// current ones (matching partial updates at the API surface).
type ProfileUpdate struct {
	FullName    string
	Username    string
	Email       string
	Description string
}

// UserService manages registration and profile lifecycle. Concurrent profile
// updates are last-write-wins; no optimistic locking.
type UserService struct {
	store UserStore
}

// NewUserService creates a UserService.
func NewUserService(store UserStore) *UserService {
	return &UserService{store: store}
}

// Register creates an account after checking username and email uniqueness.
// The unique indexes on both columns back these checks under races.
func (s *UserService) Register(fullName, username, email, password string) (*models.User, error) {
	if _, err := s.store.UserByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if _, err := s.store.UserByUsername(username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		FullName:     fullName,
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.store.CreateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies the non-empty fields, re-checking uniqueness when
// username or email change.
func (s *UserService) UpdateProfile(userID uint, in ProfileUpdate) (*models.User, error) {
	user, err := s.store.UserByID(userID)
	if err != nil {
		return nil, err
	}

	if in.Email != "" && in.Email != user.Email {
		if _, err := s.store.UserByEmail(in.Email); err == nil {
			return nil, ErrEmailTaken
		} else if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		user.Email = in.Email
	}
	if in.Username != "" && in.Username != user.Username {
		if _, err := s.store.UserByUsername(in.Username); err == nil {
			return nil, ErrUsernameTaken
		} else if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		user.Username = in.Username
	}
	if in.FullName != "" {
		user.FullName = in.FullName
	}
	if in.Description != "" {
		user.Description = in.Description
	}

	if err := s.store.SaveUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword verifies the current password before storing the new hash.
// Outstanding session tokens stay valid until expiry (stateless sessions).
func (s *UserService) ChangePassword(userID uint, current, updated string) error {
	user, err := s.store.UserByID(userID)
	if err != nil {
		return err
	}
	if !utils.CheckPassword(user.PasswordHash, current) {
		return ErrInvalidCredentials
	}
	hash, err := utils.HashPassword(updated)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return s.store.SaveUser(user)
}

// SetProfilePicture records the stored file path on the user.
func (s *UserService) SetProfilePicture(userID uint, path string) (*models.User, error) {
	user, err := s.store.UserByID(userID)
	if err != nil {
		return nil, err
	}
	user.ProfilePicture = path
	if err := s.store.SaveUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Search finds users by case-insensitive username substring.
func (s *UserService) Search(query string) ([]models.User, error) {
	return s.store.SearchUsers(query)
}
