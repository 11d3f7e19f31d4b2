package database

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inkwell-app/inkwell-backend/models"
)

func TestStartOffset(t *testing.T) {
	assert.Equal(t, 0, StartOffset(1))
	assert.Equal(t, PageSize, StartOffset(2))
	assert.Equal(t, 4*PageSize, StartOffset(5))

	// Pages below 1 clamp to the first page.
	assert.Equal(t, 0, StartOffset(0))
	assert.Equal(t, 0, StartOffset(-3))
}

func TestListClauses(t *testing.T) {
	t.Run("no filter lists published posts", func(t *testing.T) {
		where, vars := listClauses(PostFilter{})
		assert.Equal(t, "draft = false", where)
		assert.Empty(t, vars)
	})

	t.Run("tag filter", func(t *testing.T) {
		where, vars := listClauses(PostFilter{Tag: "Nature"})
		assert.Equal(t, "draft = false AND tags CONTAINS $tag", where)
		assert.Equal(t, "nature", vars["tag"])
	})

	t.Run("query filter", func(t *testing.T) {
		where, vars := listClauses(PostFilter{Query: "ravens"})
		assert.Contains(t, where, "string::contains(string::lowercase(title)")
		assert.Equal(t, "ravens", vars["query"])
	})

	t.Run("author filter", func(t *testing.T) {
		author := models.NewUserID()
		where, vars := listClauses(PostFilter{Author: author})
		assert.Equal(t, "draft = false AND author = $author", where)
		assert.Equal(t, author.RecordID(), vars["author"])
	})

	t.Run("tag wins over query and author", func(t *testing.T) {
		where, vars := listClauses(PostFilter{Tag: "nature", Query: "ravens", Author: models.NewUserID()})
		assert.Equal(t, "draft = false AND tags CONTAINS $tag", where)
		assert.NotContains(t, vars, "query")
		assert.NotContains(t, vars, "author")
	})

	t.Run("exclusion composes with any filter", func(t *testing.T) {
		where, vars := listClauses(PostFilter{Tag: "nature", ExcludeBlogID: "why-ravens-remember-1a2b3c4d"})
		assert.Equal(t, "draft = false AND tags CONTAINS $tag AND blog_id != $exclude", where)
		assert.Equal(t, "why-ravens-remember-1a2b3c4d", vars["exclude"])
	})
}
