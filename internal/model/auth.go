package model

import "time"

type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresAt   int64  `json:"expires_at"`
}

type PasswordHintResponse struct {
	Hint string `json:"hint"`
}

type VerifyTokenResponse struct {
	Valid     bool   `json:"valid"`
	Subject   string `json:"subject"`
	Username  string `json:"username"`
	Timestamp string `json:"timestamp"`
}

// AuthUser is the identity recovered from a validated bearer token.
type AuthUser struct {
	Subject   string
	TokenID   string
	ExpiresAt time.Time
}
