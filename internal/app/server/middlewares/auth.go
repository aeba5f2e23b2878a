package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"

	"tourshop/internal/app/pkg/ginx"
	"tourshop/internal/app/pkg/jwtx"
	"tourshop/internal/app/pkg/logger"
)

// AuthGuard 校验 Bearer 令牌并注入操作者身份
func AuthGuard(issuer *jwtx.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader("Authorization"))
		if raw == "" {
			ginx.Unauthenticated(c, "missing token")
			return
		}

		parts := strings.Fields(raw)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			ginx.Unauthenticated(c, "invalid token")
			return
		}

		actor, err := issuer.Parse(parts[1])
		if err != nil {
			ginx.Unauthenticated(c, "invalid token")
			return
		}

		ginx.SetActor(c, actor)
		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), actor.UserID))
		c.Next()
	}
}

// AdminOnly 仅允许管理员访问（需在 AuthGuard 之后使用）
// 服务层仍会独立校验角色
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ginx.ActorFrom(c)
		if !ok || !actor.IsAdmin() {
			ginx.Forbidden(c, "administrator role required")
			return
		}
		c.Next()
	}
}
