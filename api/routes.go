package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes wires the public and session-protected endpoint groups.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	// Public routes
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Post("/signup", handlers.authHandler.signup())
		r.Post("/signin", handlers.authHandler.signin())
		r.Post("/google-auth", handlers.authHandler.googleAuth())

		r.Post("/latest-blogs", handlers.postHandler.latestPosts())
		r.Post("/all-latest-blogs-count", handlers.postHandler.latestPostsCount())
		r.Get("/trending-blogs", handlers.postHandler.trendingPosts())
		r.Post("/search-blogs", handlers.postHandler.searchPosts())
		r.Post("/search-blogs-count", handlers.postHandler.searchPostsCount())
		r.Post("/get-blog", handlers.postHandler.getPost())

		r.Post("/search-users", handlers.userHandler.searchUsers())
		r.Post("/get-profile", handlers.userHandler.getProfile())
	})

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(authMiddleware.authenticate)

		r.Get("/get-upload-url", handlers.uploadHandler.getUploadURL())
		r.Post("/create-blog", handlers.postHandler.createPost())
		r.Post("/like-blog", handlers.interactionHandler.likePost())
		r.Post("/isliked-by-user", handlers.interactionHandler.isLiked())
		r.Post("/add-comment", handlers.interactionHandler.addComment())
	})
}
