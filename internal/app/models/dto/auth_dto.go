package dto

import "github.com/oguzk/acadrecord/internal/app/models"

// LoginRequest is the credential payload for POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"a.hossain@univ.edu"`
	Password string `json:"password" binding:"required" example:"s3cret"`
}

// LoginResponse carries the authenticated teacher and a bearer token
// for clients that cannot hold the session cookie.
type LoginResponse struct {
	Teacher     *models.Teacher `json:"teacher"`
	AccessToken string          `json:"accessToken"`
	ExpiresIn   int             `json:"expiresIn"`
}
