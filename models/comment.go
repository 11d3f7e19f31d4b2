package models

import (
	surrealdb_models "github.com/surrealdb/surrealdb.go/pkg/models"
)

// Comment belongs to exactly one post and one authoring user. A reply
// references its parent comment and is collected in the parent's Children
// list.
type Comment struct {
	ID          CommentID                       `json:"id"`
	Blog        PostID                          `json:"blog"`
	BlogAuthor  UserID                          `json:"blog_author"`
	CommentedBy UserID                          `json:"commented_by"`
	Comment     string                          `json:"comment"`
	Parent      *CommentID                      `json:"parent,omitempty"`
	Children    []CommentID                     `json:"children"`
	IsReply     bool                            `json:"is_reply"`
	CommentedAt surrealdb_models.CustomDateTime `json:"commented_at"`
}
