package api

import (
	"github.com/inkwell-app/inkwell-backend/auth"
	"github.com/inkwell-app/inkwell-backend/database"
	"github.com/inkwell-app/inkwell-backend/storage"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, tokens auth.TokenIssuer, google auth.GoogleVerifier, uploader storage.URLIssuer) *routeHandlers {
	return &routeHandlers{
		authHandler:        newAuthHandler(db.UserRepo(), tokens, google),
		postHandler:        newPostHandler(db.PostRepo(), db.UserRepo()),
		userHandler:        newUserHandler(db.UserRepo()),
		interactionHandler: newInteractionHandler(db.PostRepo(), db.CommentRepo(), db.NotificationRepo()),
		uploadHandler:      newUploadHandler(uploader),
	}
}
