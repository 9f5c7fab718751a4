package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/watchable/watchable/models"
	"github.com/watchable/watchable/utils"
)

type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) UserByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserStore) UserByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserStore) UserByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserStore) CreateUser(u *models.User) error {
	return m.Called(u).Error(0)
}

func (m *mockUserStore) SaveUser(u *models.User) error {
	return m.Called(u).Error(0)
}

func (m *mockUserStore) SearchUsers(query string) ([]models.User, error) {
	args := m.Called(query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func TestRegisterEmailTaken(t *testing.T) {
	store := new(mockUserStore)
	store.On("UserByEmail", "taken@example.com").Return(&models.User{ID: 1}, nil)

	_, err := NewUserService(store).Register("Alice A", "alice", "taken@example.com", "longpassword")
	assert.ErrorIs(t, err, ErrEmailTaken)
	store.AssertNotCalled(t, "CreateUser", mock.Anything)
}

func TestRegisterUsernameTaken(t *testing.T) {
	store := new(mockUserStore)
	store.On("UserByEmail", "alice@example.com").Return(nil, ErrNotFound)
	store.On("UserByUsername", "alice").Return(&models.User{ID: 1}, nil)

	_, err := NewUserService(store).Register("Alice A", "alice", "alice@example.com", "longpassword")
	assert.ErrorIs(t, err, ErrUsernameTaken)
	store.AssertNotCalled(t, "CreateUser", mock.Anything)
}

func TestRegisterHashesPassword(t *testing.T) {
	store := new(mockUserStore)
	store.On("UserByEmail", "alice@example.com").Return(nil, ErrNotFound)
	store.On("UserByUsername", "alice").Return(nil, ErrNotFound)
	store.On("CreateUser", mock.Anything).Return(nil)

	user, err := NewUserService(store).Register("Alice A", "alice", "alice@example.com", "longpassword")
	require.NoError(t, err)

	assert.NotEqual(t, "longpassword", user.PasswordHash)
	assert.True(t, utils.CheckPassword(user.PasswordHash, "longpassword"))
}

func TestUpdateProfileKeepsEmptyFields(t *testing.T) {
	store := new(mockUserStore)
	store.On("UserByID", uint(1)).Return(&models.User{
		ID: 1, FullName: "Alice A", Username: "alice",
		Email: "alice@example.com", Description: "hi",
	}, nil)
	store.On("SaveUser", mock.Anything).Return(nil)

	user, err := NewUserService(store).UpdateProfile(1, ProfileUpdate{Description: "updated"})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "updated", user.Description)
}

func TestUpdateProfileNewEmailTaken(t *testing.T) {
	store := new(mockUserStore)
	store.On("UserByID", uint(1)).Return(&models.User{ID: 1, Username: "alice", Email: "alice@example.com"}, nil)
	store.On("UserByEmail", "bob@example.com").Return(&models.User{ID: 2}, nil)

	_, err := NewUserService(store).UpdateProfile(1, ProfileUpdate{Email: "bob@example.com"})
	assert.ErrorIs(t, err, ErrEmailTaken)
	store.AssertNotCalled(t, "SaveUser", mock.Anything)
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	hash, err := utils.HashPassword("oldpassword")
	require.NoError(t, err)

	store := new(mockUserStore)
	store.On("UserByID", uint(1)).Return(&models.User{ID: 1, PasswordHash: hash}, nil)

	err = NewUserService(store).ChangePassword(1, "not the password", "newpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	store.AssertNotCalled(t, "SaveUser", mock.Anything)
}

func TestChangePasswordStoresNewHash(t *testing.T) {
	hash, err := utils.HashPassword("oldpassword")
	require.NoError(t, err)

	user := &models.User{ID: 1, PasswordHash: hash}
	store := new(mockUserStore)
	store.On("UserByID", uint(1)).Return(user, nil)
	store.On("SaveUser", user).Return(nil)

	require.NoError(t, NewUserService(store).ChangePassword(1, "oldpassword", "newpassword"))
	assert.True(t, utils.CheckPassword(user.PasswordHash, "newpassword"))
	assert.False(t, utils.CheckPassword(user.PasswordHash, "oldpassword"))
}

func TestSetProfilePicture(t *testing.T) {
	user := &models.User{ID: 1}
	store := new(mockUserStore)
	store.On("UserByID", uint(1)).Return(user, nil)
	store.On("SaveUser", user).Return(nil)

	updated, err := NewUserService(store).SetProfilePicture(1, "profile/abc.png")
	require.NoError(t, err)
	assert.Equal(t, "profile/abc.png", updated.ProfilePicture)
}
