package services

import "github.com/watchable/watchable/models"

// FeedStore is the read surface the aggregator consumes. Post queries must
// return rows ordered by create_date descending with id descending as the
// tiebreak; the counter queries are batched over the page's post ids so the
// store can answer each with a single grouped query.
type FeedStore interface {
	PostsByOthers(viewerID uint) ([]models.Post, error)
	PostsByAuthor(authorID uint) ([]models.Post, error)
	UserExists(id uint) (bool, error)
	LikeCounts(postIDs []uint) (map[uint]int64, error)
	CommentCounts(postIDs []uint) (map[uint]int64, error)
	LikedByViewer(viewerID uint, postIDs []uint) (map[uint]bool, error)
}

// Snapshotter is implemented by stores that can serve a whole feed read from
// one consistent snapshot. When available the aggregator runs inside it so
// counters cannot drift from the post rows mid-read.
type Snapshotter interface {
	Snapshot(fn func(FeedStore) error) error
}

// PostCounters holds the viewer-relative values derived at read time. They
// are never persisted on the post row.
type PostCounters struct {
	LikeCount      int64 `json:"like_count"`
	ViewerHasLiked bool  `json:"viewer_has_liked"`
	CommentCount   int64 `json:"comment_count"`
}

// PostView is a feed entry: the post plus its derived counters.
type PostView struct {
	models.Post
	PostCounters
}

// FeedAggregator assembles viewer-scoped post listings.
type FeedAggregator struct {
	store FeedStore
}

// NewFeedAggregator creates a FeedAggregator over the given store.
func NewFeedAggregator(store FeedStore) *FeedAggregator {
	return &FeedAggregator{store: store}
}

// GlobalFeed returns every post not owned by the viewer, newest first.
func (f *FeedAggregator) GlobalFeed(viewerID uint) ([]PostView, error) {
	var views []PostView
	err := f.read(func(fs FeedStore) error {
		posts, err := fs.PostsByOthers(viewerID)
		if err != nil {
			return err
		}
		views, err = attachCounters(fs, viewerID, posts)
		return err
	})
	return views, err
}

// UserFeed returns the target user's posts, newest first. A missing target
// yields ErrNotFound.
func (f *FeedAggregator) UserFeed(viewerID, targetID uint) ([]PostView, error) {
	var views []PostView
	err := f.read(func(fs FeedStore) error {
		exists, err := fs.UserExists(targetID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
		posts, err := fs.PostsByAuthor(targetID)
		if err != nil {
			return err
		}
		views, err = attachCounters(fs, viewerID, posts)
		return err
	})
	return views, err
}

func (f *FeedAggregator) read(fn func(FeedStore) error) error {
	if s, ok := f.store.(Snapshotter); ok {
		return s.Snapshot(fn)
	}
	return fn(f.store)
}

func attachCounters(fs FeedStore, viewerID uint, posts []models.Post) ([]PostView, error) {
	views := make([]PostView, 0, len(posts))
	if len(posts) == 0 {
		return views, nil
	}

	ids := make([]uint, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}

	likes, err := fs.LikeCounts(ids)
	if err != nil {
		return nil, err
	}
	comments, err := fs.CommentCounts(ids)
	if err != nil {
		return nil, err
	}
	liked, err := fs.LikedByViewer(viewerID, ids)
	if err != nil {
		return nil, err
	}

	for _, p := range posts {
		views = append(views, PostView{
			Post: p,
			PostCounters: PostCounters{
				LikeCount:      likes[p.ID],
				ViewerHasLiked: liked[p.ID],
				CommentCount:   comments[p.ID],
			},
		})
	}
	return views, nil
}
