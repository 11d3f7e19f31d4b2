package api

import (
	"context"
	"strings"

	"github.com/inkwell-app/inkwell-backend/database"
	"github.com/inkwell-app/inkwell-backend/models"
)

// In-memory stores backing the handler tests. They mirror the repository
// semantics closely enough for handler behavior: lookups return nil when
// nothing matches and listings honor the fixed page size.

type fakeUserStore struct {
	users     []*models.User
	reads     map[string]int64
	createErr error

	registeredPosts []models.PostID
	publishedCount  int
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	return &fakeUserStore{users: users, reads: map[string]int64{}}
}

func (s *fakeUserStore) Create(_ context.Context, user *models.User) error {
	if s.createErr != nil {
		return s.createErr
	}
	if user.ID.IsZero() {
		user.ID = models.NewUserID()
	}
	s.users = append(s.users, user)
	return nil
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range s.users {
		if user.PersonalInfo.Email == strings.ToLower(email) {
			return user, nil
		}
	}
	return nil, nil
}

func (s *fakeUserStore) FindByUsername(_ context.Context, username string) (*models.User, error) {
	for _, user := range s.users {
		if user.PersonalInfo.Username == username {
			return user, nil
		}
	}
	return nil, nil
}

func (s *fakeUserStore) UsernameTaken(ctx context.Context, username string) (bool, error) {
	user, err := s.FindByUsername(ctx, username)
	return user != nil, err
}

func (s *fakeUserStore) Search(_ context.Context, query string, limit int) ([]models.User, error) {
	var matches []models.User
	for _, user := range s.users {
		if strings.Contains(strings.ToLower(user.PersonalInfo.Username), strings.ToLower(query)) {
			matches = append(matches, *user)
		}
		if len(matches) == limit {
			break
		}
	}
	return matches, nil
}

func (s *fakeUserStore) AddReads(_ context.Context, id models.UserID, delta int64) error {
	s.reads[id.String()] += delta
	return nil
}

func (s *fakeUserStore) RegisterPost(_ context.Context, _ models.UserID, postID models.PostID, published bool) error {
	s.registeredPosts = append(s.registeredPosts, postID)
	if published {
		s.publishedCount++
	}
	return nil
}

type fakePostStore struct {
	posts []*models.Post

	lastFilter database.PostFilter
	lastPage   int
	updated    []*models.Post
}

func newFakePostStore(posts ...*models.Post) *fakePostStore {
	return &fakePostStore{posts: posts}
}

func (s *fakePostStore) Create(_ context.Context, post *models.Post) error {
	if post.ID.IsZero() {
		post.ID = models.NewPostID()
	}
	s.posts = append(s.posts, post)
	return nil
}

func (s *fakePostStore) Update(_ context.Context, post *models.Post) error {
	s.updated = append(s.updated, post)
	for i, existing := range s.posts {
		if existing.ID == post.ID {
			s.posts[i] = post
			return nil
		}
	}
	return nil
}

// FindByBlogID returns a copy, like the repository decoding a fresh
// document.
func (s *fakePostStore) FindByBlogID(_ context.Context, blogID string) (*models.Post, error) {
	for _, post := range s.posts {
		if post.BlogID == blogID {
			found := *post
			return &found, nil
		}
	}
	return nil, nil
}

func (s *fakePostStore) published(filter database.PostFilter) []models.Post {
	var matches []models.Post
	for _, post := range s.posts {
		if post.Draft {
			continue
		}
		switch {
		case filter.Tag != "":
			if !containsTag(post.Tags, filter.Tag) {
				continue
			}
		case filter.Query != "":
			if !strings.Contains(strings.ToLower(post.Title), strings.ToLower(filter.Query)) {
				continue
			}
		case !filter.Author.IsZero():
			if post.Author != filter.Author {
				continue
			}
		}
		if filter.ExcludeBlogID != "" && post.BlogID == filter.ExcludeBlogID {
			continue
		}
		matches = append(matches, *post)
	}
	return matches
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

func (s *fakePostStore) List(_ context.Context, filter database.PostFilter, page int) ([]models.Post, error) {
	s.lastFilter = filter
	s.lastPage = page

	matches := s.published(filter)
	start := database.StartOffset(page)
	if start >= len(matches) {
		return nil, nil
	}
	end := start + database.PageSize
	if end > len(matches) {
		end = len(matches)
	}
	return matches[start:end], nil
}

func (s *fakePostStore) Count(_ context.Context, filter database.PostFilter) (int64, error) {
	s.lastFilter = filter
	return int64(len(s.published(filter))), nil
}

func (s *fakePostStore) Trending(_ context.Context) ([]models.Post, error) {
	matches := s.published(database.PostFilter{})
	if len(matches) > database.TrendingLimit {
		matches = matches[:database.TrendingLimit]
	}
	return matches, nil
}

func (s *fakePostStore) AddReads(_ context.Context, id models.PostID, delta int64) error {
	for _, post := range s.posts {
		if post.ID == id {
			post.Activity.TotalReads += delta
		}
	}
	return nil
}

func (s *fakePostStore) AddLikes(_ context.Context, id models.PostID, delta int64) error {
	for _, post := range s.posts {
		if post.ID == id {
			post.Activity.TotalLikes += delta
		}
	}
	return nil
}

func (s *fakePostStore) RegisterComment(_ context.Context, postID models.PostID, commentID models.CommentID, parent bool) error {
	for _, post := range s.posts {
		if post.ID == postID {
			post.Comments = append(post.Comments, commentID)
			post.Activity.TotalComments++
			if parent {
				post.Activity.TotalParentComments++
			}
		}
	}
	return nil
}

type fakeCommentStore struct {
	comments []*models.Comment
	children map[string][]models.CommentID
}

func newFakeCommentStore() *fakeCommentStore {
	return &fakeCommentStore{children: map[string][]models.CommentID{}}
}

func (s *fakeCommentStore) Create(_ context.Context, comment *models.Comment) error {
	if comment.ID.IsZero() {
		comment.ID = models.NewCommentID()
	}
	s.comments = append(s.comments, comment)
	return nil
}

func (s *fakeCommentStore) AddChild(_ context.Context, parent, child models.CommentID) error {
	s.children[parent.String()] = append(s.children[parent.String()], child)
	return nil
}

type likeKey struct {
	user string
	post string
}

type fakeNotificationStore struct {
	notifications []*models.Notification
	likes         map[likeKey]bool
}

func newFakeNotificationStore() *fakeNotificationStore {
	return &fakeNotificationStore{likes: map[likeKey]bool{}}
}

func (s *fakeNotificationStore) Create(_ context.Context, notification *models.Notification) error {
	if notification.ID.IsZero() {
		notification.ID = models.NewNotificationID()
	}
	s.notifications = append(s.notifications, notification)
	if notification.Type == models.NotificationLike {
		s.likes[likeKey{notification.User.String(), notification.Blog.String()}] = true
	}
	return nil
}

func (s *fakeNotificationStore) LikeExists(_ context.Context, user models.UserID, post models.PostID) (bool, error) {
	return s.likes[likeKey{user.String(), post.String()}], nil
}

func (s *fakeNotificationStore) DeleteLike(_ context.Context, user models.UserID, post models.PostID) error {
	delete(s.likes, likeKey{user.String(), post.String()})
	return nil
}
