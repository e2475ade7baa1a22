package dto

// LoginReq represents the request body for the /login endpoint.
// Remember selects the long-lived session variant.
type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Remember bool   `json:"remember"`
}
