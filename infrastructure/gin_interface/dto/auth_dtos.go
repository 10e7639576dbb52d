package dto

type SignupRequest struct {
	Username    string `json:"username" binding:"required"`
	DisplayName string `json:"display_name"`
	Bio         string `json:"bio"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
}

type SessionResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
}
