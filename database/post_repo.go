package database

import (
	"context"
	"strings"
	"time"

	surrealdb "github.com/surrealdb/surrealdb.go"
	surrealdb_models "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/inkwell-app/inkwell-backend/models"
)

type PostRepo struct {
	db *surrealdb.DB
}

func NewPostRepo(db *surrealdb.DB) *PostRepo {
	return &PostRepo{db}
}

// clauses builds the WHERE fragment and bind variables for a listing.
// Only non-draft posts are ever listed; the filters are mutually exclusive
// and checked in tag, query, author order.
func listClauses(filter PostFilter) (string, map[string]any) {
	where := "draft = false"
	vars := map[string]any{}
	switch {
	case filter.Tag != "":
		where += " AND tags CONTAINS $tag"
		vars["tag"] = strings.ToLower(filter.Tag)
	case filter.Query != "":
		where += " AND string::contains(string::lowercase(title), string::lowercase($query))"
		vars["query"] = filter.Query
	case !filter.Author.IsZero():
		where += " AND author = $author"
		vars["author"] = filter.Author.RecordID()
	}
	if filter.ExcludeBlogID != "" {
		where += " AND blog_id != $exclude"
		vars["exclude"] = filter.ExcludeBlogID
	}
	return where, vars
}

func (r *PostRepo) Create(ctx context.Context, post *models.Post) error {
	if post.ID.IsZero() {
		post.ID = models.NewPostID()
	}
	if post.PublishedAt.IsZero() {
		post.PublishedAt = surrealdb_models.CustomDateTime{Time: time.Now()}
	}
	_, err := surrealdb.Create[models.Post](ctx, r.db, post.ID.RecordID(), post)
	return err
}

func (r *PostRepo) Update(ctx context.Context, post *models.Post) error {
	_, err := surrealdb.Update[models.Post](ctx, r.db, post.ID.RecordID(), post)
	return err
}

func (r *PostRepo) FindByBlogID(ctx context.Context, blogID string) (*models.Post, error) {
	res, err := surrealdb.Query[[]models.Post](ctx, r.db,
		`SELECT * FROM posts WHERE blog_id = $blog_id LIMIT 1`,
		map[string]any{"blog_id": blogID})
	if err != nil {
		return nil, err
	}
	return firstRow(res), nil
}

// List returns one page of non-draft posts, newest first.
func (r *PostRepo) List(ctx context.Context, filter PostFilter, page int) ([]models.Post, error) {
	where, vars := listClauses(filter)
	vars["limit"] = PageSize
	vars["start"] = StartOffset(page)

	res, err := surrealdb.Query[[]models.Post](ctx, r.db,
		`SELECT * FROM posts WHERE `+where+` ORDER BY published_at DESC LIMIT $limit START $start`,
		vars)
	if err != nil {
		return nil, err
	}
	return allRows(res), nil
}

// Count returns the total number of posts the filter matches, for
// client-side pagination.
func (r *PostRepo) Count(ctx context.Context, filter PostFilter) (int64, error) {
	where, vars := listClauses(filter)

	res, err := surrealdb.Query[[]countRow](ctx, r.db,
		`SELECT count() AS count FROM posts WHERE `+where+` GROUP ALL`,
		vars)
	if err != nil {
		return 0, err
	}
	if row := firstRow(res); row != nil {
		return row.Count, nil
	}
	return 0, nil
}

// Trending ranks non-draft posts by engagement: reads, then likes, then
// recency.
func (r *PostRepo) Trending(ctx context.Context) ([]models.Post, error) {
	res, err := surrealdb.Query[[]models.Post](ctx, r.db,
		`SELECT * FROM posts WHERE draft = false
		ORDER BY activity.total_reads DESC, activity.total_likes DESC, published_at DESC
		LIMIT $limit`,
		map[string]any{"limit": TrendingLimit})
	if err != nil {
		return nil, err
	}
	return allRows(res), nil
}

func (r *PostRepo) AddReads(ctx context.Context, id models.PostID, delta int64) error {
	_, err := surrealdb.Query[any](ctx, r.db,
		`UPDATE $post SET activity.total_reads += $delta`,
		map[string]any{"post": id.RecordID(), "delta": delta})
	return err
}

func (r *PostRepo) AddLikes(ctx context.Context, id models.PostID, delta int64) error {
	_, err := surrealdb.Query[any](ctx, r.db,
		`UPDATE $post SET activity.total_likes += $delta`,
		map[string]any{"post": id.RecordID(), "delta": delta})
	return err
}

// RegisterComment appends the comment to the post and bumps the comment
// counters; parent marks a top-level comment rather than a reply.
func (r *PostRepo) RegisterComment(ctx context.Context, postID models.PostID, commentID models.CommentID, parent bool) error {
	parentInc := 0
	if parent {
		parentInc = 1
	}
	_, err := surrealdb.Query[any](ctx, r.db,
		`UPDATE $post SET comments += $comment,
			activity.total_comments += 1,
			activity.total_parent_comments += $parent_inc`,
		map[string]any{
			"post":       postID.RecordID(),
			"comment":    commentID.RecordID(),
			"parent_inc": parentInc,
		})
	return err
}
