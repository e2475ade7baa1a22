// Package router wires the HTTP routes to their handlers.
package router

import (
	"github.com/gin-gonic/gin"

	authhandler "jobtrack_backend/internal/feature/auth/transport/handler"
	trackerhandler "jobtrack_backend/internal/feature/tracker/transport/handler"
	"jobtrack_backend/internal/platform/authmw"
	"jobtrack_backend/internal/platform/http/handler"
)

// NewRouter builds the Gin engine with all routes registered.
// Routes under the auth group require a valid session cookie or bearer token.
func NewRouter(authH *authhandler.AuthHandler, trackerH *trackerhandler.TrackerHandler,
	sessions authmw.SessionResolver) *gin.Engine {
	r := gin.Default()

	// No auth required
	r.GET("/healthz", handler.Health)
	r.POST("/signup", authH.Signup)
	r.POST("/login", authH.Login)
	r.POST("/logout", authH.Logout)

	// Authenticated routes
	auth := r.Group("/")
	auth.Use(authmw.AuthRequired(sessions))
	{
		auth.GET("/profile", authH.Profile)
		auth.PUT("/profile", authH.UpdateProfile)
		auth.PUT("/profile/password", authH.ChangePassword)

		auth.GET("/applications", trackerH.List)
		auth.POST("/applications", trackerH.Create)
		auth.PUT("/applications/:id", trackerH.Update)
		auth.DELETE("/applications/:id", trackerH.Delete)
	}

	return r
}
