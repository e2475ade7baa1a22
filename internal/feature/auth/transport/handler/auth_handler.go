// Package handler provides the HTTP handlers for the auth feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"jobtrack_backend/internal/api"
	"jobtrack_backend/internal/feature/auth/domain/entity"
	"jobtrack_backend/internal/feature/auth/transport/http/dto"
	"jobtrack_backend/internal/feature/auth/usecase"
	trackerusecase "jobtrack_backend/internal/feature/tracker/usecase"
	"jobtrack_backend/internal/platform/authmw"
)

// AuthUsecase defines the authentication operations the handler depends on.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type AuthUsecase interface {
	// Register creates a new user with the given credentials.
	Register(ctx context.Context, email, password, name string) error
	// Login authenticates a user and returns a session plus an API token.
	Login(ctx context.Context, in usecase.LoginInput) (*entity.Session, string, error)
	// Logout revokes the session with the given token.
	Logout(ctx context.Context, sessionID string) error
	// CurrentUser returns the user with the given ID.
	CurrentUser(ctx context.Context, userID uint) (*entity.User, error)
	// UpdateProfile updates the user's display name and email.
	UpdateProfile(ctx context.Context, userID uint, name, email string) (*entity.User, error)
	// ChangePassword replaces the user's password after verifying the current one.
	ChangePassword(ctx context.Context, userID uint, current, newPassword string) error
}

// StatsProvider supplies the application statistics shown on the profile.
type StatsProvider interface {
	Stats(ctx context.Context, userID uint) (*trackerusecase.ProfileStats, error)
}

// AuthHandler handles HTTP requests for authentication and profile operations.
type AuthHandler struct {
	auth  AuthUsecase
	stats StatsProvider
}

// NewAuthHandler creates a new instance of AuthHandler.
func NewAuthHandler(auth AuthUsecase, stats StatsProvider) *AuthHandler {
	return &AuthHandler{auth: auth, stats: stats}
}

// secureCookies reports whether session cookies carry the Secure flag.
// Set COOKIE_SECURE=true behind TLS so cookies never travel over plain HTTP.
func secureCookies() bool {
	return os.Getenv("COOKIE_SECURE") == "true"
}

// Signup handles the user registration endpoint.
// - 400 on validation errors
// - 409 when the user cannot be created (duplicate email etc.)
// - 201 on success
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("signup validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	if err := h.auth.Register(c.Request.Context(), req.Email, req.Password, req.Name); err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmailAlreadyExists):
			// Do not expose the real error, to prevent user enumeration.
			slog.Warn("signup failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "signup failed"})
		case errors.Is(err, usecase.ErrPasswordTooShort):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		default:
			slog.Error("signup store failure", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		}
		return
	}
	slog.Info("user signup successful", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, api.MessageResponse{Message: "ok"})
}

// Login handles the user login endpoint.
// On success it sets the session cookie and returns an API token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	session, token, err := h.auth.Login(c.Request.Context(), usecase.LoginInput{
		Email:     req.Email,
		Password:  req.Password,
		Remember:  req.Remember,
		UserAgent: c.Request.UserAgent(),
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			// Unified message for unknown email and wrong password.
			slog.Warn("login failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid email or password"})
			return
		}
		slog.Error("login store failure", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		return
	}

	maxAge := int(session.ExpiresAt.Sub(session.CreatedAt).Seconds())
	c.SetCookie(authmw.SessionCookie, session.ID, maxAge, "/", "", secureCookies(), true)

	slog.Info("user login successful", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.TokenResponse{Token: token})
}

// Logout revokes the current session and clears the cookie.
// It succeeds even without a valid session.
func (h *AuthHandler) Logout(c *gin.Context) {
	if cookie, err := c.Cookie(authmw.SessionCookie); err == nil && cookie != "" {
		if err := h.auth.Logout(c.Request.Context(), cookie); err != nil {
			slog.Warn("logout revoke failed", "error", err, "remote_addr", c.ClientIP())
		}
	}
	c.SetCookie(authmw.SessionCookie, "", -1, "/", "", secureCookies(), true)
	c.JSON(http.StatusOK, api.MessageResponse{Message: "logged out"})
}

// Profile returns the current user's account info and application statistics.
func (h *AuthHandler) Profile(c *gin.Context) {
	userID, ok := authmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "authentication required"})
		return
	}

	user, err := h.auth.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		slog.Error("profile lookup failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		return
	}

	stats, err := h.stats.Stats(c.Request.Context(), userID)
	if err != nil {
		slog.Error("profile stats failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		return
	}

	c.JSON(http.StatusOK, dto.ProfileRes{
		ID:          user.ID,
		Email:       user.Email,
		Name:        user.Name,
		MemberSince: user.CreatedAt.Format("January 2, 2006"),
		Total:       stats.Total,
		Active:      stats.Active,
		SuccessRate: stats.SuccessRate,
	})
}

// UpdateProfile updates the current user's display name and email.
// - 409 when the new email belongs to another user
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, ok := authmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "authentication required"})
		return
	}

	var req dto.UpdateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	user, err := h.auth.UpdateProfile(c.Request.Context(), userID, req.Name, req.Email)
	if err != nil {
		if errors.Is(err, usecase.ErrEmailInUse) {
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Email already in use"})
			return
		}
		slog.Error("profile update failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		return
	}

	slog.Info("profile updated", "user_id", userID)
	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"name":    user.Name,
		"email":   user.Email,
	})
}

// ChangePassword replaces the current user's password.
// - 401 when the current password does not verify
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := authmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "authentication required"})
		return
	}

	var req dto.ChangePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	if err := h.auth.ChangePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Current password is incorrect"})
		case errors.Is(err, usecase.ErrPasswordTooShort):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		default:
			slog.Error("password change failed", "error", err, "user_id", userID)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		}
		return
	}

	slog.Info("password changed", "user_id", userID)
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Password changed successfully"})
}
