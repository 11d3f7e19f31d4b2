package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/inkwell-app/inkwell-backend/auth"
	"github.com/inkwell-app/inkwell-backend/database"
	"github.com/inkwell-app/inkwell-backend/errs"
	"github.com/inkwell-app/inkwell-backend/models"
)

// identityVerifier is what the handler needs from the federated auth
// provider.
type identityVerifier interface {
	Verify(ctx context.Context, token string) (auth.GoogleIdentity, error)
}

type authHandler struct {
	users     database.UserStore
	tokens    auth.TokenIssuer
	google    identityVerifier
	responder Responder
}

func newAuthHandler(users database.UserStore, tokens auth.TokenIssuer, google identityVerifier) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()
	return authHandler{
		users:     users,
		tokens:    tokens,
		google:    google,
		responder: NewResponder(logger),
	}
}

// sessionResponse is the body returned after any successful authentication.
type sessionResponse struct {
	AccessToken string `json:"access_token"`
	Username    string `json:"username"`
	Fullname    string `json:"fullname"`
	ProfileImg  string `json:"profile_img"`
}

func (h authHandler) session(user *models.User) (sessionResponse, error) {
	token, err := h.tokens.Issue(user.ID.String())
	if err != nil {
		return sessionResponse{}, err
	}
	return sessionResponse{
		AccessToken: token,
		Username:    user.PersonalInfo.Username,
		Fullname:    user.PersonalInfo.Fullname,
		ProfileImg:  user.PersonalInfo.ProfileImg,
	}, nil
}

func (h authHandler) signup() http.HandlerFunc {
	type request struct {
		Fullname string `json:"fullname"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var body request
		if !h.responder.DecodeJSON(w, r, &body) {
			return
		}

		if !auth.ValidFullname(body.Fullname) {
			h.responder.WriteError(w, errs.NewInvalidFieldError("fullname", "must be at least 3 characters"))
			return
		}
		if !auth.ValidEmail(body.Email) {
			h.responder.WriteError(w, errs.NewInvalidFieldError("email", "must be a valid email address"))
			return
		}
		if !auth.ValidPassword(body.Password) {
			h.responder.WriteError(w, errs.NewInvalidFieldError("password",
				"must be 6 to 20 characters with a digit, a lowercase and an uppercase letter"))
			return
		}

		email := strings.ToLower(body.Email)

		existing, err := h.users.FindByEmail(r.Context(), email)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("look up", "user", err))
			return
		}
		if existing != nil {
			h.responder.WriteError(w, errs.NewDuplicateEmailError())
			return
		}

		username, err := auth.UniqueUsername(r.Context(), email, h.users.UsernameTaken)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("derive username for", "user", err))
			return
		}

		hashed, err := auth.HashPassword(body.Password)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		user := models.User{
			PersonalInfo: models.PersonalInfo{
				Fullname:   strings.TrimSpace(body.Fullname),
				Email:      email,
				Password:   hashed,
				Username:   username,
				ProfileImg: models.DefaultAvatar(username),
			},
		}
		if err := h.users.Create(r.Context(), &user); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "user", err))
			return
		}

		session, err := h.session(&user)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, session)
	}
}

func (h authHandler) signin() http.HandlerFunc {
	type request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var body request
		if !h.responder.DecodeJSON(w, r, &body) {
			return
		}

		user, err := h.users.FindByEmail(r.Context(), strings.ToLower(body.Email))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("look up", "user", err))
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewEmailNotFoundError())
			return
		}

		// Accounts registered through Google carry no password hash.
		if user.GoogleAuth {
			h.responder.WriteError(w, errs.NewWrongProviderError(
				"Account was created using Google. Try logging in with Google."))
			return
		}

		if !auth.CheckPassword(user.PersonalInfo.Password, body.Password) {
			h.responder.WriteError(w, errs.NewInvalidCredentialsError())
			return
		}

		session, err := h.session(user)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, session)
	}
}

func (h authHandler) googleAuth() http.HandlerFunc {
	type request struct {
		AccessToken string `json:"access_token"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var body request
		if !h.responder.DecodeJSON(w, r, &body) {
			return
		}

		identity, err := h.google.Verify(r.Context(), body.AccessToken)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		email := strings.ToLower(identity.Email)

		user, err := h.users.FindByEmail(r.Context(), email)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("look up", "user", err))
			return
		}

		if user != nil {
			if !user.GoogleAuth {
				h.responder.WriteError(w, errs.NewWrongProviderError(
					"This email was signed up without Google. Log in with a password to access the account."))
				return
			}
			session, err := h.session(user)
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			h.responder.WriteJSON(w, session)
			return
		}

		// First federated sign-in creates the account.
		username, err := auth.UniqueUsername(r.Context(), email, h.users.UsernameTaken)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("derive username for", "user", err))
			return
		}

		profileImg := identity.Picture
		if profileImg == "" {
			profileImg = models.DefaultAvatar(username)
		}

		created := models.User{
			PersonalInfo: models.PersonalInfo{
				Fullname:   identity.Name,
				Email:      email,
				Username:   username,
				ProfileImg: profileImg,
			},
			GoogleAuth: true,
		}
		if err := h.users.Create(r.Context(), &created); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "user", err))
			return
		}

		session, err := h.session(&created)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, session)
	}
}
