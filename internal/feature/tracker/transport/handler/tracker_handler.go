// Package handler provides the HTTP handlers for the tracker feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"jobtrack_backend/internal/api"
	"jobtrack_backend/internal/feature/tracker/domain/entity"
	"jobtrack_backend/internal/feature/tracker/transport/http/dto"
	"jobtrack_backend/internal/feature/tracker/usecase"
	"jobtrack_backend/internal/platform/authmw"
)

// TrackerUsecase defines the application-tracking operations the handler depends on.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type TrackerUsecase interface {
	// List returns the user's applications, newest application date first.
	List(ctx context.Context, userID uint) ([]entity.Application, error)
	// Create validates and persists a new application.
	Create(ctx context.Context, userID uint, company, role, dateApplied, status, notes string) (*entity.Application, error)
	// Update applies a partial update and returns the full resulting record.
	Update(ctx context.Context, userID, id uint, patch usecase.ApplicationPatch) (*entity.Application, error)
	// Delete permanently removes an application.
	Delete(ctx context.Context, userID, id uint) error
}

// TrackerHandler handles HTTP requests for job application CRUD.
type TrackerHandler struct {
	tracker TrackerUsecase
}

// NewTrackerHandler creates a new instance of TrackerHandler.
func NewTrackerHandler(tracker TrackerUsecase) *TrackerHandler {
	return &TrackerHandler{tracker: tracker}
}

// notFoundBody is the merged "absent or foreign" error body. The wording never
// reveals whether the row exists for another user.
var notFoundBody = api.ErrorResponse{Error: "Application not found or access denied"}

// pathID parses the :id path parameter. A malformed ID reports the same
// merged not-found error as a missing row.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// List handles GET /applications.
func (h *TrackerHandler) List(c *gin.Context) {
	userID, ok := authmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "authentication required"})
		return
	}

	apps, err := h.tracker.List(c.Request.Context(), userID)
	if err != nil {
		slog.Error("application list failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		return
	}

	res := make([]dto.ApplicationRes, 0, len(apps))
	for i := range apps {
		res = append(res, dto.ApplicationResFromEntity(&apps[i]))
	}
	c.JSON(http.StatusOK, res)
}

// Create handles POST /applications.
// - 400 with "Missing required fields" when a required field is absent or empty
// - 201 with the created record on success
func (h *TrackerHandler) Create(c *gin.Context) {
	userID, ok := authmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "authentication required"})
		return
	}

	var req dto.CreateApplicationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("application create validation failed", "error", err, "user_id", userID)
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Missing required fields"})
		return
	}

	app, err := h.tracker.Create(c.Request.Context(), userID, req.Company, req.Role, req.DateApplied, req.Status, req.Notes)
	if err != nil {
		if errors.Is(err, usecase.ErrMissingFields) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Missing required fields"})
			return
		}
		slog.Error("application create failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		return
	}

	slog.Info("application created", "user_id", userID, "application_id", app.ID)
	c.JSON(http.StatusCreated, dto.ApplicationResFromEntity(app))
}

// Update handles PUT /applications/:id.
// - 400 when the body is empty or malformed
// - 404 when the row is absent or owned by another user
// - 200 with the full updated record on success
func (h *TrackerHandler) Update(c *gin.Context) {
	userID, ok := authmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "authentication required"})
		return
	}

	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusNotFound, notFoundBody)
		return
	}

	var req dto.UpdateApplicationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "No data provided"})
		return
	}

	patch := usecase.ApplicationPatch{
		Company:     req.Company,
		Role:        req.Role,
		DateApplied: req.DateApplied,
		Status:      req.Status,
		Notes:       req.Notes,
	}

	app, err := h.tracker.Update(c.Request.Context(), userID, id, patch)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmptyUpdate):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "No data provided"})
		case errors.Is(err, usecase.ErrNotFoundOrForbidden):
			c.JSON(http.StatusNotFound, notFoundBody)
		default:
			slog.Error("application update failed", "error", err, "user_id", userID, "application_id", id)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ApplicationResFromEntity(app))
}

// Delete handles DELETE /applications/:id.
// - 404 when the row is absent or owned by another user
// - 200 on success
func (h *TrackerHandler) Delete(c *gin.Context) {
	userID, ok := authmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "authentication required"})
		return
	}

	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusNotFound, notFoundBody)
		return
	}

	if err := h.tracker.Delete(c.Request.Context(), userID, id); err != nil {
		if errors.Is(err, usecase.ErrNotFoundOrForbidden) {
			c.JSON(http.StatusNotFound, notFoundBody)
			return
		}
		slog.Error("application delete failed", "error", err, "user_id", userID, "application_id", id)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		return
	}

	slog.Info("application deleted", "user_id", userID, "application_id", id)
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Application deleted successfully"})
}
