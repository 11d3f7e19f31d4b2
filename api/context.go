package api

import (
	"context"
	"errors"

	"github.com/inkwell-app/inkwell-backend/models"
)

type keyType string

const userIDKey keyType = "userID"

// ctxWithUserID adds the authenticated user's id to the context
func ctxWithUserID(ctx context.Context, userID models.UserID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// ctxGetUserID retrieves the authenticated user's id from the context
func ctxGetUserID(ctx context.Context) (models.UserID, error) {
	value := ctx.Value(userIDKey)
	if value == nil {
		return models.UserID{}, errors.New("user id not found in context")
	}
	userID, ok := value.(models.UserID)
	if !ok {
		return models.UserID{}, errors.New("user id in context has unexpected type")
	}
	return userID, nil
}
