// Package dto defines data transfer objects for the tracker feature's HTTP transport layer.
package dto

import "jobtrack_backend/internal/feature/tracker/domain/entity"

// CreateApplicationReq represents the request body for POST /applications.
// All fields except notes are required; date_applied must be a YYYY-MM-DD date.
type CreateApplicationReq struct {
	Company     string `json:"company" binding:"required"`
	Role        string `json:"role" binding:"required"`
	DateApplied string `json:"date_applied" binding:"required,datetime=2006-01-02"`
	Status      string `json:"status" binding:"required"`
	Notes       string `json:"notes"`
}

// UpdateApplicationReq represents the request body for PUT /applications/:id.
// Every field is optional; absent fields keep their stored value.
type UpdateApplicationReq struct {
	Company     *string `json:"company"`
	Role        *string `json:"role"`
	DateApplied *string `json:"date_applied" binding:"omitempty,datetime=2006-01-02"`
	Status      *string `json:"status"`
	Notes       *string `json:"notes"`
}

// ApplicationRes is the JSON shape of one application record.
type ApplicationRes struct {
	ID          uint   `json:"id"`
	Company     string `json:"company"`
	Role        string `json:"role"`
	DateApplied string `json:"date_applied"`
	Status      string `json:"status"`
	Notes       string `json:"notes"`
}

// ApplicationResFromEntity converts a domain entity to its response shape.
func ApplicationResFromEntity(app *entity.Application) ApplicationRes {
	return ApplicationRes{
		ID:          app.ID,
		Company:     app.Company,
		Role:        app.Role,
		DateApplied: app.DateApplied,
		Status:      app.Status,
		Notes:       app.Notes,
	}
}
