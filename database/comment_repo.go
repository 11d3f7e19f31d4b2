package database

import (
	"context"
	"time"

	surrealdb "github.com/surrealdb/surrealdb.go"
	surrealdb_models "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/inkwell-app/inkwell-backend/models"
)

type CommentRepo struct {
	db *surrealdb.DB
}

func NewCommentRepo(db *surrealdb.DB) *CommentRepo {
	return &CommentRepo{db}
}

func (r *CommentRepo) Create(ctx context.Context, comment *models.Comment) error {
	if comment.ID.IsZero() {
		comment.ID = models.NewCommentID()
	}
	if comment.CommentedAt.IsZero() {
		comment.CommentedAt = surrealdb_models.CustomDateTime{Time: time.Now()}
	}
	_, err := surrealdb.Create[models.Comment](ctx, r.db, comment.ID.RecordID(), comment)
	return err
}

// AddChild links a reply into its parent's thread.
func (r *CommentRepo) AddChild(ctx context.Context, parent, child models.CommentID) error {
	_, err := surrealdb.Query[any](ctx, r.db,
		`UPDATE $parent SET children += $child`,
		map[string]any{"parent": parent.RecordID(), "child": child.RecordID()})
	return err
}
