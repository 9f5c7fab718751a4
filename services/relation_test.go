package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/watchable/watchable/models"
)

type mockRelationStore struct {
	mock.Mock
}

func (m *mockRelationStore) PostByID(id uint) (*models.Post, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *mockRelationStore) PostExists(id uint) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

func (m *mockRelationStore) CreatePost(p *models.Post) error {
	return m.Called(p).Error(0)
}

func (m *mockRelationStore) SavePost(p *models.Post) error {
	return m.Called(p).Error(0)
}

func (m *mockRelationStore) DeletePost(p *models.Post) error {
	return m.Called(p).Error(0)
}

func (m *mockRelationStore) CommentByID(id uint) (*models.Comment, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *mockRelationStore) CommentsByPost(postID uint) ([]models.Comment, error) {
	args := m.Called(postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *mockRelationStore) CreateComment(c *models.Comment) error {
	return m.Called(c).Error(0)
}

func (m *mockRelationStore) DeleteComment(c *models.Comment) error {
	return m.Called(c).Error(0)
}

func (m *mockRelationStore) LikeByUserPost(userID, postID uint) (*models.Like, error) {
	args := m.Called(userID, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Like), args.Error(1)
}

func (m *mockRelationStore) LikeByID(id uint) (*models.Like, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Like), args.Error(1)
}

func (m *mockRelationStore) CreateLike(l *models.Like) error {
	return m.Called(l).Error(0)
}

func (m *mockRelationStore) DeleteLike(l *models.Like) error {
	return m.Called(l).Error(0)
}

func TestUpdatePostOnlyTouchesBody(t *testing.T) {
	store := new(mockRelationStore)
	store.On("PostByID", uint(3)).Return(&models.Post{ID: 3, Title: "keep", Body: "old", UserID: 1}, nil)
	store.On("SavePost", mock.Anything).Return(nil)

	post, err := NewRelationGuard(store).UpdatePost(1, 3, "new body")
	require.NoError(t, err)
	assert.Equal(t, "keep", post.Title)
	assert.Equal(t, "new body", post.Body)
}

func TestUpdatePostByNonOwner(t *testing.T) {
	store := new(mockRelationStore)
	store.On("PostByID", uint(3)).Return(&models.Post{ID: 3, UserID: 1}, nil)

	_, err := NewRelationGuard(store).UpdatePost(2, 3, "new body")
	assert.ErrorIs(t, err, ErrNotFound)
	store.AssertNotCalled(t, "SavePost", mock.Anything)
}

func TestUpdateMissingPost(t *testing.T) {
	store := new(mockRelationStore)
	store.On("PostByID", uint(99)).Return(nil, ErrNotFound)

	_, err := NewRelationGuard(store).UpdatePost(1, 99, "new body")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeletePostByNonOwner(t *testing.T) {
	store := new(mockRelationStore)
	store.On("PostByID", uint(3)).Return(&models.Post{ID: 3, UserID: 1}, nil)

	err := NewRelationGuard(store).DeletePost(2, 3)
	assert.ErrorIs(t, err, ErrNotFound)
	store.AssertNotCalled(t, "DeletePost", mock.Anything)
}

func TestCreateCommentOnMissingPost(t *testing.T) {
	store := new(mockRelationStore)
	store.On("PostExists", uint(99)).Return(false, nil)

	_, err := NewRelationGuard(store).CreateComment(1, 99, "hello")
	assert.ErrorIs(t, err, ErrNotFound)
	store.AssertNotCalled(t, "CreateComment", mock.Anything)
}

func TestDeleteCommentByNonAuthor(t *testing.T) {
	store := new(mockRelationStore)
	store.On("CommentByID", uint(4)).Return(&models.Comment{ID: 4, UserID: 1, PostID: 3}, nil)

	_, err := NewRelationGuard(store).DeleteComment(2, 4)
	assert.ErrorIs(t, err, ErrNotFound)
	store.AssertNotCalled(t, "DeleteComment", mock.Anything)
}

func TestDeleteCommentReturnsRemovedComment(t *testing.T) {
	store := new(mockRelationStore)
	store.On("CommentByID", uint(4)).Return(&models.Comment{ID: 4, UserID: 1, PostID: 3}, nil)
	store.On("DeleteComment", mock.Anything).Return(nil)

	comment, err := NewRelationGuard(store).DeleteComment(1, 4)
	require.NoError(t, err)
	assert.Equal(t, uint(3), comment.PostID)
}

func TestLikeMissingPost(t *testing.T) {
	store := new(mockRelationStore)
	store.On("PostExists", uint(99)).Return(false, nil)

	_, err := NewRelationGuard(store).Like(1, 99)
	assert.ErrorIs(t, err, ErrNotFound)
	store.AssertNotCalled(t, "CreateLike", mock.Anything)
}

func TestLikeTwiceRejected(t *testing.T) {
	store := new(mockRelationStore)
	store.On("PostExists", uint(3)).Return(true, nil)
	store.On("LikeByUserPost", uint(1), uint(3)).Return(&models.Like{ID: 10, UserID: 1, PostID: 3}, nil)

	_, err := NewRelationGuard(store).Like(1, 3)
	assert.ErrorIs(t, err, ErrDuplicateLike)
	store.AssertNotCalled(t, "CreateLike", mock.Anything)
}

func TestLikeRaceLosesToUniqueIndex(t *testing.T) {
	// Pre-check sees nothing, but the insert collides with a concurrent like.
	store := new(mockRelationStore)
	store.On("PostExists", uint(3)).Return(true, nil)
	store.On("LikeByUserPost", uint(1), uint(3)).Return(nil, ErrNotFound)
	store.On("CreateLike", mock.Anything).Return(ErrDuplicateLike)

	_, err := NewRelationGuard(store).Like(1, 3)
	assert.ErrorIs(t, err, ErrDuplicateLike)
}

func TestLikeSuccess(t *testing.T) {
	store := new(mockRelationStore)
	store.On("PostExists", uint(3)).Return(true, nil)
	store.On("LikeByUserPost", uint(1), uint(3)).Return(nil, ErrNotFound)
	store.On("CreateLike", mock.Anything).Return(nil)

	like, err := NewRelationGuard(store).Like(1, 3)
	require.NoError(t, err)
	assert.Equal(t, uint(1), like.UserID)
	assert.Equal(t, uint(3), like.PostID)
}

func TestUnlikeByNonOwner(t *testing.T) {
	store := new(mockRelationStore)
	store.On("LikeByID", uint(10)).Return(&models.Like{ID: 10, UserID: 1, PostID: 3}, nil)

	err := NewRelationGuard(store).Unlike(2, 10)
	assert.ErrorIs(t, err, ErrNotFound)
	store.AssertNotCalled(t, "DeleteLike", mock.Anything)
}
