package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	surrealdb_models "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/inkwell-app/inkwell-backend/database"
	"github.com/inkwell-app/inkwell-backend/errs"
	"github.com/inkwell-app/inkwell-backend/models"
)

type postHandler struct {
	posts     database.PostStore
	users     database.UserStore
	responder Responder
}

func newPostHandler(posts database.PostStore, users database.UserStore) postHandler {
	logger := log.With().Str("handlerName", "postHandler").Logger()
	return postHandler{
		posts:     posts,
		users:     users,
		responder: NewResponder(logger),
	}
}

// searchRequest carries the listing filters. At most one of Tag, Query and
// Author is honored; Author is the author's username, resolved to a record
// id before filtering.
type searchRequest struct {
	Tag           string `json:"tag"`
	Query         string `json:"query"`
	Author        string `json:"author"`
	Page          int    `json:"page"`
	EliminateBlog string `json:"eliminate_blog"`
}

func (h postHandler) resolveFilter(r *http.Request, body searchRequest) (database.PostFilter, error) {
	filter := database.PostFilter{
		Tag:           strings.ToLower(strings.TrimSpace(body.Tag)),
		Query:         strings.TrimSpace(body.Query),
		ExcludeBlogID: body.EliminateBlog,
	}
	if body.Author != "" {
		author, err := h.users.FindByUsername(r.Context(), body.Author)
		if err != nil {
			return database.PostFilter{}, wrapDatabaseError("look up", "user", err)
		}
		if author == nil {
			return database.PostFilter{}, errs.NewNotFound("user")
		}
		filter.Author = author.ID
	}
	return filter, nil
}

func (h postHandler) latestPosts() http.HandlerFunc {
	type request struct {
		Page int `json:"page"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var body request
		if !h.responder.DecodeJSON(w, r, &body) {
			return
		}

		posts, err := h.posts.List(r.Context(), database.PostFilter{}, body.Page)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "posts", err))
			return
		}
		h.responder.WriteJSON(w, map[string]any{"blogs": posts})
	}
}

func (h postHandler) latestPostsCount() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		total, err := h.posts.Count(r.Context(), database.PostFilter{})
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count", "posts", err))
			return
		}
		h.responder.WriteJSON(w, map[string]any{"total_docs": total})
	}
}

func (h postHandler) trendingPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		posts, err := h.posts.Trending(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "trending posts", err))
			return
		}
		h.responder.WriteJSON(w, map[string]any{"blogs": posts})
	}
}

func (h postHandler) searchPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body searchRequest
		if !h.responder.DecodeJSON(w, r, &body) {
			return
		}

		filter, err := h.resolveFilter(r, body)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		posts, err := h.posts.List(r.Context(), filter, body.Page)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("search", "posts", err))
			return
		}
		h.responder.WriteJSON(w, map[string]any{"blogs": posts})
	}
}

func (h postHandler) searchPostsCount() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body searchRequest
		if !h.responder.DecodeJSON(w, r, &body) {
			return
		}

		filter, err := h.resolveFilter(r, body)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		total, err := h.posts.Count(r.Context(), filter)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count", "posts", err))
			return
		}
		h.responder.WriteJSON(w, map[string]any{"total_docs": total})
	}
}

func (h postHandler) getPost() http.HandlerFunc {
	type request struct {
		BlogID string `json:"blog_id"`
		Draft  bool   `json:"draft"`
		Mode   string `json:"mode"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var body request
		if !h.responder.DecodeJSON(w, r, &body) {
			return
		}
		if body.BlogID == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("blog_id"))
			return
		}

		post, err := h.posts.FindByBlogID(r.Context(), body.BlogID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("look up", "post", err))
			return
		}
		if post == nil {
			h.responder.WriteError(w, errs.NewNotFound("post"))
			return
		}

		// Drafts are only served when the caller asks for one explicitly.
		if post.Draft && !body.Draft {
			h.responder.WriteError(w, errs.NewForbiddenError("you can not access draft blogs"))
			return
		}

		// Reads count only for published posts outside the editor.
		if body.Mode != "edit" && !post.Draft {
			if err := h.posts.AddReads(r.Context(), post.ID, 1); err != nil {
				h.responder.WriteError(w, wrapDatabaseError("update reads of", "post", err))
				return
			}
			if err := h.users.AddReads(r.Context(), post.Author, 1); err != nil {
				h.responder.WriteError(w, wrapDatabaseError("update reads of", "user", err))
				return
			}
			post.Activity.TotalReads++
		}

		h.responder.WriteJSON(w, map[string]any{"blog": post})
	}
}

func (h postHandler) createPost() http.HandlerFunc {
	type request struct {
		Title       string           `json:"title"`
		Description string           `json:"des"`
		Banner      string           `json:"banner"`
		Content     []map[string]any `json:"content"`
		Tags        []string         `json:"tags"`
		Draft       bool             `json:"draft"`
		ID          string           `json:"id"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var body request
		if !h.responder.DecodeJSON(w, r, &body) {
			return
		}

		post := models.Post{
			Title:       strings.TrimSpace(body.Title),
			Description: body.Description,
			Banner:      body.Banner,
			Content:     body.Content,
			Tags:        models.NormalizeTags(body.Tags),
			Draft:       body.Draft,
			Author:      userID,
		}
		if err := post.Validate(); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError(err.Error()))
			return
		}

		// A blog id in the payload means an edit of an existing post.
		if body.ID != "" {
			existing, err := h.posts.FindByBlogID(r.Context(), body.ID)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("look up", "post", err))
				return
			}
			if existing == nil {
				h.responder.WriteError(w, errs.NewNotFound("post"))
				return
			}
			if existing.Author != userID {
				h.responder.WriteError(w, errs.NewForbiddenError("you can only edit your own blogs"))
				return
			}

			post.ID = existing.ID
			post.BlogID = existing.BlogID
			post.Activity = existing.Activity
			post.Comments = existing.Comments
			post.PublishedAt = existing.PublishedAt

			if err := h.posts.Update(r.Context(), &post); err != nil {
				h.responder.WriteError(w, wrapDatabaseError("update", "post", err))
				return
			}
			h.responder.WriteJSON(w, map[string]any{"id": post.BlogID})
			return
		}

		post.BlogID = models.NewBlogID(post.Title)
		post.PublishedAt = surrealdb_models.CustomDateTime{Time: time.Now()}

		if err := h.posts.Create(r.Context(), &post); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "post", err))
			return
		}
		if err := h.users.RegisterPost(r.Context(), userID, post.ID, !post.Draft); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("register post for", "user", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{"id": post.BlogID})
	}
}
