package api

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/inkwell-app/inkwell-backend/database"
	"github.com/inkwell-app/inkwell-backend/errs"
	"github.com/inkwell-app/inkwell-backend/models"
)

type userHandler struct {
	users     database.UserStore
	responder Responder
}

func newUserHandler(users database.UserStore) userHandler {
	logger := log.With().Str("handlerName", "userHandler").Logger()
	return userHandler{
		users:     users,
		responder: NewResponder(logger),
	}
}

func (h userHandler) searchUsers() http.HandlerFunc {
	type request struct {
		Query string `json:"query"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var body request
		if !h.responder.DecodeJSON(w, r, &body) {
			return
		}

		users, err := h.users.Search(r.Context(), strings.TrimSpace(body.Query), database.UserSearchLimit)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("search", "users", err))
			return
		}

		profiles := make([]models.PublicProfile, 0, len(users))
		for _, user := range users {
			profiles = append(profiles, user.PublicProfile())
		}
		h.responder.WriteJSON(w, map[string]any{"users": profiles})
	}
}

func (h userHandler) getProfile() http.HandlerFunc {
	type request struct {
		Username string `json:"username"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var body request
		if !h.responder.DecodeJSON(w, r, &body) {
			return
		}
		if body.Username == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("username"))
			return
		}

		user, err := h.users.FindByUsername(r.Context(), body.Username)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("look up", "user", err))
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewNotFound("user"))
			return
		}

		h.responder.WriteJSON(w, user.PublicProfile())
	}
}
