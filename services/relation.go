package services

import (
	"errors"

	"github.com/watchable/watchable/models"
)

// RelationStore is the mutation surface guarded by ownership and uniqueness
// checks. CreateLike must surface ErrDuplicateLike when the composite unique
// index rejects the row, so the guard's pre-check losing a race still cannot
// create a second like.
type RelationStore interface {
	PostByID(id uint) (*models.Post, error)
	PostExists(id uint) (bool, error)
	CreatePost(p *models.Post) error
	SavePost(p *models.Post) error
	DeletePost(p *models.Post) error

	CommentByID(id uint) (*models.Comment, error)
	CommentsByPost(postID uint) ([]models.Comment, error)
	CreateComment(c *models.Comment) error
	DeleteComment(c *models.Comment) error

	LikeByUserPost(userID, postID uint) (*models.Like, error)
	LikeByID(id uint) (*models.Like, error)
	CreateLike(l *models.Like) error
	DeleteLike(l *models.Like) error
}

// RelationGuard gates entity mutation on the acting identity. Ownership
// mismatches are reported as ErrNotFound, same as true absence, so
// non-owners learn nothing about hidden records.
type RelationGuard struct {
	store RelationStore
}

// NewRelationGuard creates a RelationGuard.
func NewRelationGuard(store RelationStore) *RelationGuard {
	return &RelationGuard{store: store}
}

// CreatePost persists a new post owned by the actor.
func (g *RelationGuard) CreatePost(actorID uint, title, body, imagePath string) (*models.Post, error) {
	post := &models.Post{Title: title, Body: body, Image: imagePath, UserID: actorID}
	if err := g.store.CreatePost(post); err != nil {
		return nil, err
	}
	return post, nil
}

// UpdatePost replaces the post body. Only the owner may update.
func (g *RelationGuard) UpdatePost(actorID, postID uint, body string) (*models.Post, error) {
	post, err := g.store.PostByID(postID)
	if err != nil {
		return nil, err
	}
	if post.UserID != actorID {
		return nil, ErrNotFound
	}
	post.Body = body
	if err := g.store.SavePost(post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes a post together with its comments and likes. Only the
// owner may delete.
func (g *RelationGuard) DeletePost(actorID, postID uint) error {
	post, err := g.store.PostByID(postID)
	if err != nil {
		return err
	}
	if post.UserID != actorID {
		return ErrNotFound
	}
	return g.store.DeletePost(post)
}

// CreateComment attaches a comment to an existing post. A missing post yields
// ErrNotFound before any write happens.
func (g *RelationGuard) CreateComment(actorID, postID uint, body string) (*models.Comment, error) {
	exists, err := g.store.PostExists(postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound
	}
	comment := &models.Comment{Body: body, UserID: actorID, PostID: postID}
	if err := g.store.CreateComment(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// CommentsForPost lists a post's comments, newest first, with authors.
func (g *RelationGuard) CommentsForPost(postID uint) ([]models.Comment, error) {
	return g.store.CommentsByPost(postID)
}

// DeleteComment removes a comment and returns it. Only the author may delete.
func (g *RelationGuard) DeleteComment(actorID, commentID uint) (*models.Comment, error) {
	comment, err := g.store.CommentByID(commentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != actorID {
		return nil, ErrNotFound
	}
	if err := g.store.DeleteComment(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Like records that the actor liked a post, at most once per (actor, post).
func (g *RelationGuard) Like(actorID, postID uint) (*models.Like, error) {
	exists, err := g.store.PostExists(postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound
	}
	if _, err := g.store.LikeByUserPost(actorID, postID); err == nil {
		return nil, ErrDuplicateLike
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	like := &models.Like{UserID: actorID, PostID: postID}
	if err := g.store.CreateLike(like); err != nil {
		return nil, err
	}
	return like, nil
}

// Unlike removes a like by id. Only its owner may remove it.
func (g *RelationGuard) Unlike(actorID, likeID uint) error {
	like, err := g.store.LikeByID(likeID)
	if err != nil {
		return err
	}
	if like.UserID != actorID {
		return ErrNotFound
	}
	return g.store.DeleteLike(like)
}
