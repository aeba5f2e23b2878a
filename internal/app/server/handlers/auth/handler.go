package auth

import "tourshop/internal/app/domains/services/svuser"

// AuthHandler 登录 HTTP 处理器
type AuthHandler struct {
	userService *svuser.UserService
}

// NewAuthHandler 创建登录处理器实例
func NewAuthHandler(userService *svuser.UserService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
	}
}
