// Package api defines the shared JSON response envelopes used by all HTTP handlers.
package api

// ErrorResponse is the body returned for any failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the body returned for successful requests that carry no
// resource payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse is returned by /login and carries the API access token.
type TokenResponse struct {
	Token string `json:"token"`
}
