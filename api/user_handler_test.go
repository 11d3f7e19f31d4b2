package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-app/inkwell-backend/models"
)

func TestSearchUsers(t *testing.T) {
	users := newFakeUserStore(
		passwordUser(t, "reader@example.com", "reader", "Abcde1"),
		passwordUser(t, "readerly@example.com", "readerly", "Abcde1"),
		passwordUser(t, "writer@example.com", "writer", "Abcde1"),
	)
	handler := newUserHandler(users)

	recorder := doJSON(t, handler.searchUsers(), map[string]any{"query": "read"}, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	type response struct {
		Users []models.PublicProfile `json:"users"`
	}
	body := decodeBody[response](t, recorder)
	require.Len(t, body.Users, 2)
	for _, profile := range body.Users {
		assert.Empty(t, profile.PersonalInfo.Password)
	}
}

func TestGetProfile(t *testing.T) {
	handler := newUserHandler(newFakeUserStore(
		passwordUser(t, "reader@example.com", "reader", "Abcde1"),
	))

	t.Run("returns the public profile", func(t *testing.T) {
		recorder := doJSON(t, handler.getProfile(), map[string]any{"username": "reader"}, nil)
		require.Equal(t, http.StatusOK, recorder.Code)

		profile := decodeBody[models.PublicProfile](t, recorder)
		assert.Equal(t, "reader", profile.PersonalInfo.Username)
		assert.Empty(t, profile.PersonalInfo.Password)
	})

	t.Run("unknown username is a 404", func(t *testing.T) {
		recorder := doJSON(t, handler.getProfile(), map[string]any{"username": "nobody"}, nil)
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("missing username is a 400", func(t *testing.T) {
		recorder := doJSON(t, handler.getProfile(), map[string]any{}, nil)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}
