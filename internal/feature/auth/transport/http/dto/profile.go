package dto

// UpdateProfileReq represents the request body for PUT /profile.
type UpdateProfileReq struct {
	Name  string `json:"name"`
	Email string `json:"email" binding:"required,email"`
}

// ChangePasswordReq represents the request body for PUT /profile/password.
type ChangePasswordReq struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// ProfileRes is the response body for GET /profile.
type ProfileRes struct {
	ID          uint   `json:"id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	MemberSince string `json:"member_since"`
	Total       int64  `json:"total_applications"`
	Active      int64  `json:"active_applications"`
	SuccessRate string `json:"success_rate"`
}
