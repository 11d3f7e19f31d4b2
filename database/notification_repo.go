package database

import (
	"context"
	"time"

	surrealdb "github.com/surrealdb/surrealdb.go"
	surrealdb_models "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/inkwell-app/inkwell-backend/models"
)

type NotificationRepo struct {
	db *surrealdb.DB
}

func NewNotificationRepo(db *surrealdb.DB) *NotificationRepo {
	return &NotificationRepo{db}
}

func (r *NotificationRepo) Create(ctx context.Context, notification *models.Notification) error {
	if notification.ID.IsZero() {
		notification.ID = models.NewNotificationID()
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = surrealdb_models.CustomDateTime{Time: time.Now()}
	}
	_, err := surrealdb.Create[models.Notification](ctx, r.db, notification.ID.RecordID(), notification)
	return err
}

// LikeExists reports whether the (user, post) pair already carries a like
// marker.
func (r *NotificationRepo) LikeExists(ctx context.Context, user models.UserID, post models.PostID) (bool, error) {
	res, err := surrealdb.Query[[]countRow](ctx, r.db,
		`SELECT count() AS count FROM notifications
		WHERE type = $type AND user = $user AND blog = $blog GROUP ALL`,
		map[string]any{
			"type": models.NotificationLike,
			"user": user.RecordID(),
			"blog": post.RecordID(),
		})
	if err != nil {
		return false, err
	}
	row := firstRow(res)
	return row != nil && row.Count > 0, nil
}

// DeleteLike removes the like marker, retracting the like.
func (r *NotificationRepo) DeleteLike(ctx context.Context, user models.UserID, post models.PostID) error {
	_, err := surrealdb.Query[any](ctx, r.db,
		`DELETE notifications WHERE type = $type AND user = $user AND blog = $blog`,
		map[string]any{
			"type": models.NotificationLike,
			"user": user.RecordID(),
			"blog": post.RecordID(),
		})
	return err
}
