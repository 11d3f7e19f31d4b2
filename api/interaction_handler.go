package api

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/inkwell-app/inkwell-backend/database"
	"github.com/inkwell-app/inkwell-backend/errs"
	"github.com/inkwell-app/inkwell-backend/models"
)

type interactionHandler struct {
	posts         database.PostStore
	comments      database.CommentStore
	notifications database.NotificationStore
	responder     Responder
}

func newInteractionHandler(posts database.PostStore, comments database.CommentStore, notifications database.NotificationStore) interactionHandler {
	logger := log.With().Str("handlerName", "interactionHandler").Logger()
	return interactionHandler{
		posts:         posts,
		comments:      comments,
		notifications: notifications,
		responder:     NewResponder(logger),
	}
}

func (h interactionHandler) findPost(w http.ResponseWriter, r *http.Request, blogID string) *models.Post {
	if blogID == "" {
		h.responder.WriteError(w, errs.NewMissingRequiredFieldError("blog_id"))
		return nil
	}
	post, err := h.posts.FindByBlogID(r.Context(), blogID)
	if err != nil {
		h.responder.WriteError(w, wrapDatabaseError("look up", "post", err))
		return nil
	}
	if post == nil {
		h.responder.WriteError(w, errs.NewNotFound("post"))
		return nil
	}
	return post
}

// likePost toggles the caller's like on a post. The like notification is the
// persistent marker; retracting the like deletes it.
func (h interactionHandler) likePost() http.HandlerFunc {
	type request struct {
		BlogID string `json:"blog_id"`
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

		post := h.findPost(w, r, body.BlogID)
		if post == nil {
			return
		}

		liked, err := h.notifications.LikeExists(r.Context(), userID, post.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("look up", "like", err))
			return
		}

		if liked {
			if err := h.posts.AddLikes(r.Context(), post.ID, -1); err != nil {
				h.responder.WriteError(w, wrapDatabaseError("update likes of", "post", err))
				return
			}
			if err := h.notifications.DeleteLike(r.Context(), userID, post.ID); err != nil {
				h.responder.WriteError(w, wrapDatabaseError("delete", "like notification", err))
				return
			}
			h.responder.WriteJSON(w, map[string]any{"liked_by_user": false})
			return
		}

		if err := h.posts.AddLikes(r.Context(), post.ID, 1); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update likes of", "post", err))
			return
		}
		notification := models.Notification{
			Type:            models.NotificationLike,
			Blog:            post.ID,
			NotificationFor: post.Author,
			User:            userID,
		}
		if err := h.notifications.Create(r.Context(), &notification); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "like notification", err))
			return
		}
		h.responder.WriteJSON(w, map[string]any{"liked_by_user": true})
	}
}

func (h interactionHandler) isLiked() http.HandlerFunc {
	type request struct {
		BlogID string `json:"blog_id"`
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

		post := h.findPost(w, r, body.BlogID)
		if post == nil {
			return
		}

		liked, err := h.notifications.LikeExists(r.Context(), userID, post.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("look up", "like", err))
			return
		}
		h.responder.WriteJSON(w, map[string]any{"result": liked})
	}
}

func (h interactionHandler) addComment() http.HandlerFunc {
	type request struct {
		BlogID     string `json:"blog_id"`
		Comment    string `json:"comment"`
		ReplyingTo string `json:"replying_to"`
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
		if strings.TrimSpace(body.Comment) == "" {
			h.responder.WriteError(w, errs.NewInvalidFieldError("comment", "write something to leave a comment"))
			return
		}

		post := h.findPost(w, r, body.BlogID)
		if post == nil {
			return
		}

		comment := models.Comment{
			Blog:        post.ID,
			BlogAuthor:  post.Author,
			CommentedBy: userID,
			Comment:     body.Comment,
		}

		notificationType := models.NotificationComment
		if body.ReplyingTo != "" {
			parent, err := models.ParseCommentID(body.ReplyingTo)
			if err != nil {
				h.responder.WriteError(w, errs.NewInvalidFieldError("replying_to", "must be a comment id"))
				return
			}
			comment.Parent = &parent
			comment.IsReply = true
			notificationType = models.NotificationReply
		}

		if err := h.comments.Create(r.Context(), &comment); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "comment", err))
			return
		}

		// Replies bump the comment total only; top-level comments also bump
		// the parent-comment total.
		if err := h.posts.RegisterComment(r.Context(), post.ID, comment.ID, !comment.IsReply); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("register comment on", "post", err))
			return
		}

		if comment.IsReply {
			if err := h.comments.AddChild(r.Context(), *comment.Parent, comment.ID); err != nil {
				h.responder.WriteError(w, wrapDatabaseError("thread reply under", "comment", err))
				return
			}
		}

		notification := models.Notification{
			Type:            notificationType,
			Blog:            post.ID,
			NotificationFor: post.Author,
			User:            userID,
			Comment:         &comment.ID,
		}
		if err := h.notifications.Create(r.Context(), &notification); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "comment notification", err))
			return
		}

		h.responder.WriteJSON(w, comment)
	}
}
