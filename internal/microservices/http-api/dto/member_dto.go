package dto

import (
	"time"

	"perfumism/internal/microservices/http-api/models"
)

// JoinRequest: payload for member registration
type JoinRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8,max=64"`
	Username string `json:"username" binding:"required,min=2,max=20"`
}

type EmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type UsernameRequest struct {
	Username string `json:"username" binding:"required"`
}

// LoginRequest: payload for email/password login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	Password string `json:"password" binding:"required,min=8,max=64"`
}

// TokenResponse carries the access token; the refresh token travels in a cookie
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"` // seconds
}

type MemberInfoResponse struct {
	ID         int64     `json:"id"`
	Email      string    `json:"email"`
	Username   string    `json:"username"`
	ImageURL   *string   `json:"image_url"`
	SocialType string    `json:"social_type"`
	CreatedAt  time.Time `json:"created_at"`
}

func FromModelToMemberInfoResponse(member *models.Member) *MemberInfoResponse {
	return &MemberInfoResponse{
		ID:         member.ID,
		Email:      member.Email,
		Username:   member.Username,
		ImageURL:   member.ImageURL,
		SocialType: member.SocialType,
		CreatedAt:  member.CreatedAt,
	}
}

type ImageResponse struct {
	URL string `json:"url"`
}
