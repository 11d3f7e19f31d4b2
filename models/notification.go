package models

import (
	surrealdb_models "github.com/surrealdb/surrealdb.go/pkg/models"
)

// Notification types.
const (
	NotificationLike    = "like"
	NotificationComment = "comment"
	NotificationReply   = "reply"
)

// Notification ties an action on a post to the recipient user. A like
// notification doubles as the like marker for its (user, post) pair:
// deleting it retracts the like.
type Notification struct {
	ID              NotificationID                  `json:"id"`
	Type            string                          `json:"type"`
	Blog            PostID                          `json:"blog"`
	NotificationFor UserID                          `json:"notification_for"`
	User            UserID                          `json:"user"`
	Comment         *CommentID                      `json:"comment,omitempty"`
	Seen            bool                            `json:"seen"`
	CreatedAt       surrealdb_models.CustomDateTime `json:"created_at"`
}
