package database

import (
	"context"
	"strings"
	"time"

	surrealdb "github.com/surrealdb/surrealdb.go"
	surrealdb_models "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/inkwell-app/inkwell-backend/models"
)

type UserRepo struct {
	db *surrealdb.DB
}

func NewUserRepo(db *surrealdb.DB) *UserRepo {
	return &UserRepo{db}
}

// Create inserts a new user document. The id and join timestamp are
// assigned here when the caller left them zero.
func (r *UserRepo) Create(ctx context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = models.NewUserID()
	}
	if user.JoinedAt.IsZero() {
		user.JoinedAt = surrealdb_models.CustomDateTime{Time: time.Now()}
	}
	_, err := surrealdb.Create[models.User](ctx, r.db, user.ID.RecordID(), user)
	return err
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	res, err := surrealdb.Query[[]models.User](ctx, r.db,
		`SELECT * FROM users WHERE personal_info.email = $email LIMIT 1`,
		map[string]any{"email": strings.ToLower(email)})
	if err != nil {
		return nil, err
	}
	return firstRow(res), nil
}

func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	res, err := surrealdb.Query[[]models.User](ctx, r.db,
		`SELECT * FROM users WHERE personal_info.username = $username LIMIT 1`,
		map[string]any{"username": username})
	if err != nil {
		return nil, err
	}
	return firstRow(res), nil
}

func (r *UserRepo) UsernameTaken(ctx context.Context, username string) (bool, error) {
	res, err := surrealdb.Query[[]countRow](ctx, r.db,
		`SELECT count() AS count FROM users WHERE personal_info.username = $username GROUP ALL`,
		map[string]any{"username": username})
	if err != nil {
		return false, err
	}
	row := firstRow(res)
	return row != nil && row.Count > 0, nil
}

// Search matches usernames by case-insensitive substring, capped at limit.
func (r *UserRepo) Search(ctx context.Context, query string, limit int) ([]models.User, error) {
	res, err := surrealdb.Query[[]models.User](ctx, r.db,
		`SELECT * FROM users
		WHERE string::contains(string::lowercase(personal_info.username), string::lowercase($query))
		LIMIT $limit`,
		map[string]any{"query": query, "limit": limit})
	if err != nil {
		return nil, err
	}
	return allRows(res), nil
}

// AddReads bumps the user's aggregate read counter by delta.
func (r *UserRepo) AddReads(ctx context.Context, id models.UserID, delta int64) error {
	_, err := surrealdb.Query[any](ctx, r.db,
		`UPDATE $user SET account_info.total_reads += $delta`,
		map[string]any{"user": id.RecordID(), "delta": delta})
	return err
}

// RegisterPost appends the post to the user's ownership list and, for a
// published post, bumps the post counter.
func (r *UserRepo) RegisterPost(ctx context.Context, userID models.UserID, postID models.PostID, published bool) error {
	inc := 0
	if published {
		inc = 1
	}
	_, err := surrealdb.Query[any](ctx, r.db,
		`UPDATE $user SET posts += $post, account_info.total_posts += $inc`,
		map[string]any{
			"user": userID.RecordID(),
			"post": postID.RecordID(),
			"inc":  inc,
		})
	return err
}
