package auth

import (
	"github.com/gin-gonic/gin"

	"tourshop/internal/app/domains/apimodel/request"
	"tourshop/internal/app/domains/apimodel/response"
	"tourshop/internal/app/pkg/ginx"
)

// Login godoc
// @Summary      登录
// @Description  校验邮箱密码，返回 HS256 JWT（userId、role、exp）
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body request.LoginRequest true "登录请求"
// @Success      200 {object} ginx.Response{data=response.LoginResponse} "登录成功"
// @Failure      400 {object} ginx.Response "参数错误"
// @Failure      401 {object} ginx.Response "InvalidCredentials"
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	result, err := h.userService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		_ = c.Error(err)
		return
	}

	ginx.Success(c, response.FromLoginResult(result))
}
