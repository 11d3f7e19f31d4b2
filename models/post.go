package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	surrealdb_models "github.com/surrealdb/surrealdb.go/pkg/models"
)

const (
	// DescriptionLimit caps the short description of a published post.
	DescriptionLimit = 200
	// TagLimit caps the tag set of a published post.
	TagLimit = 10
)

type Activity struct {
	TotalReads          int64 `json:"total_reads"`
	TotalLikes          int64 `json:"total_likes"`
	TotalComments       int64 `json:"total_comments"`
	TotalParentComments int64 `json:"total_parent_comments"`
}

// Post is a content record. BlogID is the unique human-readable identifier
// derived from the title; Author and Comments are record links.
type Post struct {
	ID          PostID                          `json:"id"`
	BlogID      string                          `json:"blog_id"`
	Title       string                          `json:"title"`
	Description string                          `json:"des"`
	Banner      string                          `json:"banner"`
	Content     []map[string]any                `json:"content"`
	Tags        []string                        `json:"tags"`
	Draft       bool                            `json:"draft"`
	Activity    Activity                        `json:"activity"`
	Author      UserID                          `json:"author"`
	Comments    []CommentID                     `json:"comments"`
	PublishedAt surrealdb_models.CustomDateTime `json:"published_at"`
}

// Validate checks the publishing rules. A draft only needs a title; a
// published post must carry a description, banner, content blocks and at
// least one tag.
func (p *Post) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return errors.New("title is required")
	}
	if p.Draft {
		return nil
	}
	if strings.TrimSpace(p.Description) == "" {
		return errors.New("description is required to publish")
	}
	if len(p.Description) > DescriptionLimit {
		return fmt.Errorf("description must be at most %d characters", DescriptionLimit)
	}
	if strings.TrimSpace(p.Banner) == "" {
		return errors.New("banner image is required to publish")
	}
	if len(p.Content) == 0 {
		return errors.New("content is required to publish")
	}
	if len(p.Tags) == 0 {
		return errors.New("at least one tag is required to publish")
	}
	if len(p.Tags) > TagLimit {
		return fmt.Errorf("at most %d tags are allowed", TagLimit)
	}
	return nil
}

// NormalizeTags lower-cases and trims a tag set, dropping empties and
// duplicates while preserving order.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	normalized := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		normalized = append(normalized, tag)
	}
	return normalized
}

// NewBlogID derives the unique post identifier from a title: the slugified
// title plus a random suffix, so identical titles never collide.
func NewBlogID(title string) string {
	slug := Slugify(title)
	if slug == "" {
		slug = "untitled"
	}
	return slug + "-" + uuid.NewString()[:8]
}

// Slugify lowers a title and replaces every run of non-alphanumeric
// characters with a single hyphen.
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(title) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteRune('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
