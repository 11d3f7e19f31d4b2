package database

import (
	"context"
	"fmt"
	"net/url"

	surrealdb "github.com/surrealdb/surrealdb.go"
	"github.com/surrealdb/surrealdb.go/pkg/connection"
	"github.com/surrealdb/surrealdb.go/pkg/connection/gorillaws"
	"github.com/surrealdb/surrealdb.go/surrealcbor"
)

type Database struct {
	userRepo         *UserRepo
	postRepo         *PostRepo
	commentRepo      *CommentRepo
	notificationRepo *NotificationRepo
}

// New initializes a new Database struct with each repository using a shared
// SurrealDB connection.
func New(db *surrealdb.DB) Database {
	return Database{
		userRepo:         NewUserRepo(db),
		postRepo:         NewPostRepo(db),
		commentRepo:      NewCommentRepo(db),
		notificationRepo: NewNotificationRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) PostRepo() *PostRepo {
	return d.postRepo
}

func (d Database) CommentRepo() *CommentRepo {
	return d.commentRepo
}

func (d Database) NotificationRepo() *NotificationRepo {
	return d.notificationRepo
}

// Email, username and blog id uniqueness is enforced by the store, not by
// handler pre-checks: two concurrent signups racing the same email both
// pass a read-then-write check, but only one survives these indexes. The
// loser's "is not unique" error surfaces as a 409 through NewDatabaseError.
const schema = `
DEFINE INDEX IF NOT EXISTS user_email ON TABLE users FIELDS personal_info.email UNIQUE;
DEFINE INDEX IF NOT EXISTS user_username ON TABLE users FIELDS personal_info.username UNIQUE;
DEFINE INDEX IF NOT EXISTS post_blog_id ON TABLE posts FIELDS blog_id UNIQUE;
`

// DefineSchema applies the index definitions. Safe to run on every startup.
func DefineSchema(ctx context.Context, db *surrealdb.DB) error {
	if _, err := surrealdb.Query[any](ctx, db, schema, nil); err != nil {
		return fmt.Errorf("failed to define indexes: %w", err)
	}
	return nil
}

// Connect dials SurrealDB over WebSocket, signs in, selects the namespace
// and database, and applies the schema. The surrealcbor codec is
// mandatory: SurrealDB speaks CBOR internally and default marshaling
// mangles time.Time values and record ids.
func Connect(ctx context.Context, wsURL, namespace, dbName, user, pass string) (*surrealdb.DB, error) {
	u, err := url.Parse(wsURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SurrealDB URL: %w", err)
	}

	conf := connection.NewConfig(u)
	codec := surrealcbor.New()
	conf.Marshaler = codec
	conf.Unmarshaler = codec

	conn := gorillaws.New(conf)

	db, err := surrealdb.FromConnection(ctx, conn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SurrealDB: %w", err)
	}

	if user != "" && pass != "" {
		if _, err := db.SignIn(ctx, surrealdb.Auth{Username: user, Password: pass}); err != nil {
			return nil, fmt.Errorf("failed to authenticate with SurrealDB: %w", err)
		}
	}

	if err := db.Use(ctx, namespace, dbName); err != nil {
		return nil, fmt.Errorf("failed to select namespace %q database %q: %w", namespace, dbName, err)
	}

	if err := DefineSchema(ctx, db); err != nil {
		return nil, err
	}

	return db, nil
}
