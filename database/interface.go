package database

import (
	"context"

	"github.com/inkwell-app/inkwell-backend/models"
)

// Page sizes are fixed; clients page with a 1-based page number.
const (
	PageSize        = 5
	TrendingLimit   = 5
	UserSearchLimit = 50
)

// StartOffset translates a 1-based page number into the store offset.
// Pages below 1 are clamped to the first page.
func StartOffset(page int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * PageSize
}

// PostFilter narrows post listings. At most one of Tag, Query and Author is
// honored per request; ExcludeBlogID drops a single post from the results,
// used by the "similar posts" view.
type PostFilter struct {
	Tag           string
	Query         string
	Author        models.UserID
	ExcludeBlogID string
}

// UserStore is the user slice of the content store access layer.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	UsernameTaken(ctx context.Context, username string) (bool, error)
	Search(ctx context.Context, query string, limit int) ([]models.User, error)
	AddReads(ctx context.Context, id models.UserID, delta int64) error
	RegisterPost(ctx context.Context, userID models.UserID, postID models.PostID, published bool) error
}

// PostStore is the post slice of the content store access layer.
type PostStore interface {
	Create(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, post *models.Post) error
	FindByBlogID(ctx context.Context, blogID string) (*models.Post, error)
	List(ctx context.Context, filter PostFilter, page int) ([]models.Post, error)
	Count(ctx context.Context, filter PostFilter) (int64, error)
	Trending(ctx context.Context) ([]models.Post, error)
	AddReads(ctx context.Context, id models.PostID, delta int64) error
	AddLikes(ctx context.Context, id models.PostID, delta int64) error
	RegisterComment(ctx context.Context, postID models.PostID, commentID models.CommentID, parent bool) error
}

// CommentStore persists comments and reply threading.
type CommentStore interface {
	Create(ctx context.Context, comment *models.Comment) error
	AddChild(ctx context.Context, parent, child models.CommentID) error
}

// NotificationStore persists activity notifications. Like notifications
// double as the like markers consulted by the toggle.
type NotificationStore interface {
	Create(ctx context.Context, notification *models.Notification) error
	LikeExists(ctx context.Context, user models.UserID, post models.PostID) (bool, error)
	DeleteLike(ctx context.Context, user models.UserID, post models.PostID) error
}
