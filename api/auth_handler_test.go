package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-app/inkwell-backend/auth"
	"github.com/inkwell-app/inkwell-backend/errs"
	"github.com/inkwell-app/inkwell-backend/models"
)

const testSecret = "handler-test-secret"

// doJSON runs a handler against a JSON body, optionally with an
// authenticated user in the request context.
func doJSON(t *testing.T, handler http.HandlerFunc, body any, userID *models.UserID) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(payload))
	if userID != nil {
		req = req.WithContext(ctxWithUserID(req.Context(), *userID))
	}

	recorder := httptest.NewRecorder()
	handler(recorder, req)
	return recorder
}

func decodeBody[T any](t *testing.T, recorder *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&out))
	return out
}

type stubGoogle struct {
	identity auth.GoogleIdentity
	err      error
}

func (s stubGoogle) Verify(context.Context, string) (auth.GoogleIdentity, error) {
	return s.identity, s.err
}

func passwordUser(t *testing.T, email, username, password string) *models.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	return &models.User{
		ID: models.NewUserID(),
		PersonalInfo: models.PersonalInfo{
			Fullname: "Reader Example",
			Email:    email,
			Password: hash,
			Username: username,
		},
	}
}

func TestSignup(t *testing.T) {
	tokens := auth.NewTokenIssuer(testSecret)

	t.Run("creates account and returns session", func(t *testing.T) {
		users := newFakeUserStore()
		handler := newAuthHandler(users, tokens, stubGoogle{})

		recorder := doJSON(t, handler.signup(), map[string]any{
			"fullname": "Reader Example",
			"email":    "Reader@example.com",
			"password": "Abcde1",
		}, nil)
		require.Equal(t, http.StatusOK, recorder.Code)

		session := decodeBody[sessionResponse](t, recorder)
		assert.Equal(t, "reader", session.Username)
		assert.Equal(t, "Reader Example", session.Fullname)
		assert.NotEmpty(t, session.ProfileImg)

		subject, err := tokens.Verify(session.AccessToken)
		require.NoError(t, err)

		require.Len(t, users.users, 1)
		created := users.users[0]
		assert.Equal(t, created.ID.String(), subject)
		assert.Equal(t, "reader@example.com", created.PersonalInfo.Email)
		assert.False(t, created.GoogleAuth)
		assert.NotEqual(t, "Abcde1", created.PersonalInfo.Password)
		assert.True(t, auth.CheckPassword(created.PersonalInfo.Password, "Abcde1"))
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		users := newFakeUserStore(passwordUser(t, "reader@example.com", "reader", "Abcde1"))
		handler := newAuthHandler(users, tokens, stubGoogle{})

		recorder := doJSON(t, handler.signup(), map[string]any{
			"fullname": "Reader Example",
			"email":    "reader@example.com",
			"password": "Abcde1",
		}, nil)
		assert.Equal(t, http.StatusConflict, recorder.Code)
	})

	t.Run("losing a signup race on the email index is a conflict", func(t *testing.T) {
		// Two concurrent signups with the same email can both pass the
		// duplicate pre-check; the store's unique index rejects the second
		// insert and that rejection must reach the client as a 409.
		users := newFakeUserStore()
		users.createErr = errors.New("Database index `user_email` already contains 'reader@example.com': is not unique")
		handler := newAuthHandler(users, tokens, stubGoogle{})

		recorder := doJSON(t, handler.signup(), map[string]any{
			"fullname": "Reader Example",
			"email":    "reader@example.com",
			"password": "Abcde1",
		}, nil)
		assert.Equal(t, http.StatusConflict, recorder.Code)
		assert.Empty(t, users.users)
	})

	t.Run("disambiguates a taken username", func(t *testing.T) {
		users := newFakeUserStore(passwordUser(t, "reader@other.org", "reader", "Abcde1"))
		handler := newAuthHandler(users, tokens, stubGoogle{})

		recorder := doJSON(t, handler.signup(), map[string]any{
			"fullname": "Reader Example",
			"email":    "reader@example.com",
			"password": "Abcde1",
		}, nil)
		require.Equal(t, http.StatusOK, recorder.Code)

		session := decodeBody[sessionResponse](t, recorder)
		assert.True(t, strings.HasPrefix(session.Username, "reader-"))
		assert.NotEqual(t, "reader", session.Username)
	})

	t.Run("rejects weak password", func(t *testing.T) {
		handler := newAuthHandler(newFakeUserStore(), tokens, stubGoogle{})

		recorder := doJSON(t, handler.signup(), map[string]any{
			"fullname": "Reader Example",
			"email":    "reader@example.com",
			"password": "alllowercase1",
		}, nil)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		body := decodeBody[ErrorResponse](t, recorder)
		assert.Equal(t, "password", body.Field)
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		handler := newAuthHandler(newFakeUserStore(), tokens, stubGoogle{})

		recorder := doJSON(t, handler.signup(), map[string]any{
			"fullname": "Reader Example",
			"email":    "not-an-email",
			"password": "Abcde1",
		}, nil)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestSignin(t *testing.T) {
	tokens := auth.NewTokenIssuer(testSecret)

	t.Run("returns session for correct credentials", func(t *testing.T) {
		user := passwordUser(t, "reader@example.com", "reader", "Abcde1")
		handler := newAuthHandler(newFakeUserStore(user), tokens, stubGoogle{})

		recorder := doJSON(t, handler.signin(), map[string]any{
			"email":    "reader@example.com",
			"password": "Abcde1",
		}, nil)
		require.Equal(t, http.StatusOK, recorder.Code)

		session := decodeBody[sessionResponse](t, recorder)
		subject, err := tokens.Verify(session.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, user.ID.String(), subject)
	})

	t.Run("rejects unknown email", func(t *testing.T) {
		handler := newAuthHandler(newFakeUserStore(), tokens, stubGoogle{})

		recorder := doJSON(t, handler.signin(), map[string]any{
			"email":    "nobody@example.com",
			"password": "Abcde1",
		}, nil)
		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		user := passwordUser(t, "reader@example.com", "reader", "Abcde1")
		handler := newAuthHandler(newFakeUserStore(user), tokens, stubGoogle{})

		recorder := doJSON(t, handler.signin(), map[string]any{
			"email":    "reader@example.com",
			"password": "Wrong1",
		}, nil)
		assert.Equal(t, http.StatusForbidden, recorder.Code)
		body := decodeBody[ErrorResponse](t, recorder)
		assert.Equal(t, "password", body.Field)
	})

	t.Run("rejects password login on a google account", func(t *testing.T) {
		user := &models.User{
			ID: models.NewUserID(),
			PersonalInfo: models.PersonalInfo{
				Email:    "reader@example.com",
				Username: "reader",
			},
			GoogleAuth: true,
		}
		handler := newAuthHandler(newFakeUserStore(user), tokens, stubGoogle{})

		recorder := doJSON(t, handler.signin(), map[string]any{
			"email":    "reader@example.com",
			"password": "Abcde1",
		}, nil)
		assert.Equal(t, http.StatusForbidden, recorder.Code)
		body := decodeBody[ErrorResponse](t, recorder)
		assert.Contains(t, body.Details, "Google")
	})
}

func TestGoogleAuth(t *testing.T) {
	tokens := auth.NewTokenIssuer(testSecret)
	identity := auth.GoogleIdentity{
		Email:   "reader@example.com",
		Name:    "Reader Example",
		Picture: "https://lh3.googleusercontent.com/a/photo=s384-c",
	}

	t.Run("creates federated account on first sign in", func(t *testing.T) {
		users := newFakeUserStore()
		handler := newAuthHandler(users, tokens, stubGoogle{identity: identity})

		recorder := doJSON(t, handler.googleAuth(), map[string]any{"access_token": "token"}, nil)
		require.Equal(t, http.StatusOK, recorder.Code)

		require.Len(t, users.users, 1)
		created := users.users[0]
		assert.True(t, created.GoogleAuth)
		assert.Empty(t, created.PersonalInfo.Password)
		assert.Equal(t, identity.Picture, created.PersonalInfo.ProfileImg)

		session := decodeBody[sessionResponse](t, recorder)
		assert.Equal(t, "reader", session.Username)
	})

	t.Run("signs in an existing federated account", func(t *testing.T) {
		user := &models.User{
			ID: models.NewUserID(),
			PersonalInfo: models.PersonalInfo{
				Email:    "reader@example.com",
				Username: "reader",
			},
			GoogleAuth: true,
		}
		users := newFakeUserStore(user)
		handler := newAuthHandler(users, tokens, stubGoogle{identity: identity})

		recorder := doJSON(t, handler.googleAuth(), map[string]any{"access_token": "token"}, nil)
		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Len(t, users.users, 1)
	})

	t.Run("rejects google sign in on a password account", func(t *testing.T) {
		user := passwordUser(t, "reader@example.com", "reader", "Abcde1")
		handler := newAuthHandler(newFakeUserStore(user), tokens, stubGoogle{identity: identity})

		recorder := doJSON(t, handler.googleAuth(), map[string]any{"access_token": "token"}, nil)
		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})

	t.Run("propagates token verification failure", func(t *testing.T) {
		handler := newAuthHandler(newFakeUserStore(), tokens, stubGoogle{err: errs.NewInvalidTokenError()})

		recorder := doJSON(t, handler.googleAuth(), map[string]any{"access_token": "bad"}, nil)
		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})
}
