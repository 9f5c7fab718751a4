package stores

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/watchable/watchable/models"
	"github.com/watchable/watchable/services"
)

// GormStore implements every store interface the service layer declares on
// top of a single gorm connection. gorm errors are translated to service
// sentinels at this boundary so nothing above it imports gorm.
type GormStore struct {
	db *gorm.DB
}

// New creates a GormStore.
func New(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Snapshot runs fn against a transaction-scoped store so a whole feed read
// observes one consistent state.
func (s *GormStore) Snapshot(fn func(services.FeedStore) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return services.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return services.ErrConflict
	default:
		return err
	}
}

// ---- users ----

func (s *GormStore) UserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *GormStore) UserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *GormStore) UserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *GormStore) CreateUser(u *models.User) error {
	return translate(s.db.Create(u).Error)
}

func (s *GormStore) SaveUser(u *models.User) error {
	return translate(s.db.Save(u).Error)
}

func (s *GormStore) SearchUsers(query string) ([]models.User, error) {
	var users []models.User
	pattern := "%" + strings.TrimSpace(query) + "%"
	if err := s.db.Where("username LIKE ?", pattern).Find(&users).Error; err != nil {
		return nil, translate(err)
	}
	return users, nil
}

func (s *GormStore) UserExists(id uint) (bool, error) {
	var n int64
	if err := s.db.Model(&models.User{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, translate(err)
	}
	return n > 0, nil
}

// ---- posts ----

const feedOrder = "create_date DESC, id DESC"

func (s *GormStore) PostByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := s.db.First(&post, id).Error; err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

func (s *GormStore) PostExists(id uint) (bool, error) {
	var n int64
	if err := s.db.Model(&models.Post{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, translate(err)
	}
	return n > 0, nil
}

func (s *GormStore) CreatePost(p *models.Post) error {
	return translate(s.db.Create(p).Error)
}

func (s *GormStore) SavePost(p *models.Post) error {
	return translate(s.db.Save(p).Error)
}

// DeletePost removes the post and its dependent comments and likes in one
// transaction so a failed step leaves no orphans.
func (s *GormStore) DeletePost(p *models.Post) error {
	return translate(s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", p.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", p.ID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(p).Error
	}))
}

func (s *GormStore) PostsByOthers(viewerID uint) ([]models.Post, error) {
	var posts []models.Post
	err := s.db.Preload("Author").
		Where("user_id <> ?", viewerID).
		Order(feedOrder).
		Find(&posts).Error
	if err != nil {
		return nil, translate(err)
	}
	return posts, nil
}

func (s *GormStore) PostsByAuthor(authorID uint) ([]models.Post, error) {
	var posts []models.Post
	err := s.db.Preload("Author").
		Where("user_id = ?", authorID).
		Order(feedOrder).
		Find(&posts).Error
	if err != nil {
		return nil, translate(err)
	}
	return posts, nil
}

// ---- comments ----

func (s *GormStore) CommentByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := s.db.First(&comment, id).Error; err != nil {
		return nil, translate(err)
	}
	return &comment, nil
}

func (s *GormStore) CommentsByPost(postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.Preload("Author").
		Where("post_id = ?", postID).
		Order("create_date DESC, id DESC").
		Find(&comments).Error
	if err != nil {
		return nil, translate(err)
	}
	return comments, nil
}

func (s *GormStore) CreateComment(c *models.Comment) error {
	return translate(s.db.Create(c).Error)
}

func (s *GormStore) DeleteComment(c *models.Comment) error {
	return translate(s.db.Delete(c).Error)
}

// ---- likes ----

func (s *GormStore) LikeByID(id uint) (*models.Like, error) {
	var like models.Like
	if err := s.db.First(&like, id).Error; err != nil {
		return nil, translate(err)
	}
	return &like, nil
}

func (s *GormStore) LikeByUserPost(userID, postID uint) (*models.Like, error) {
	var like models.Like
	err := s.db.Where("user_id = ? AND post_id = ?", userID, postID).First(&like).Error
	if err != nil {
		return nil, translate(err)
	}
	return &like, nil
}

// CreateLike inserts a like; the uix_user_post unique index turns a racing
// duplicate into ErrDuplicateLike instead of a second row.
func (s *GormStore) CreateLike(l *models.Like) error {
	err := s.db.Create(l).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return services.ErrDuplicateLike
	}
	return translate(err)
}

func (s *GormStore) DeleteLike(l *models.Like) error {
	return translate(s.db.Delete(l).Error)
}

// ---- derived counters ----

type postCount struct {
	PostID uint  `gorm:"column:post_id"`
	N      int64 `gorm:"column:n"`
}

func (s *GormStore) LikeCounts(postIDs []uint) (map[uint]int64, error) {
	return s.countByPost(&models.Like{}, postIDs)
}

func (s *GormStore) CommentCounts(postIDs []uint) (map[uint]int64, error) {
	return s.countByPost(&models.Comment{}, postIDs)
}

func (s *GormStore) countByPost(model interface{}, postIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}
	var rows []postCount
	err := s.db.Model(model).
		Select("post_id, COUNT(*) AS n").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	for _, r := range rows {
		counts[r.PostID] = r.N
	}
	return counts, nil
}

func (s *GormStore) LikedByViewer(viewerID uint, postIDs []uint) (map[uint]bool, error) {
	liked := make(map[uint]bool, len(postIDs))
	if len(postIDs) == 0 {
		return liked, nil
	}
	var ids []uint
	err := s.db.Model(&models.Like{}).
		Where("user_id = ? AND post_id IN ?", viewerID, postIDs).
		Pluck("post_id", &ids).Error
	if err != nil {
		return nil, translate(err)
	}
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}
