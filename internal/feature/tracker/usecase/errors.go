// Package usecase implements the business logic for the tracker feature.
package usecase

import "errors"

var (
	// ErrMissingFields is returned when company, role, date_applied or status
	// is missing or empty.
	ErrMissingFields = errors.New("missing required fields")

	// ErrNotFoundOrForbidden is returned when no application with the given ID
	// is owned by the requesting user. "Does not exist" and "owned by someone
	// else" are deliberately indistinguishable so non-owners learn nothing
	// about which IDs exist.
	ErrNotFoundOrForbidden = errors.New("application not found or access denied")

	// ErrEmptyUpdate is returned when a partial update supplies no fields.
	ErrEmptyUpdate = errors.New("no data provided")
)
