package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Uniqueness of emails, usernames and blog ids is a store-level invariant.
// The index definitions are what settle write races, so their shape is
// pinned here.
func TestSchemaDefinesUniqueIndexes(t *testing.T) {
	for _, definition := range []string{
		"DEFINE INDEX IF NOT EXISTS user_email ON TABLE users FIELDS personal_info.email UNIQUE",
		"DEFINE INDEX IF NOT EXISTS user_username ON TABLE users FIELDS personal_info.username UNIQUE",
		"DEFINE INDEX IF NOT EXISTS post_blog_id ON TABLE posts FIELDS blog_id UNIQUE",
	} {
		assert.Contains(t, schema, definition)
	}
}
