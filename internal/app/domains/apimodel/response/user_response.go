package response

import "time"

// UserResponse 用户响应
type UserResponse struct {
	ID         int64  `json:"id" example:"1"`
	Name       string `json:"name" example:"Ana Pérez"`
	Email      string `json:"email" example:"ana@example.com"`
	Role       string `json:"role" example:"cliente"`
	Department string `json:"department,omitempty"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	User      *UserResponse `json:"user"`
}
