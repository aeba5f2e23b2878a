package ginx

import (
	"github.com/gin-gonic/gin"

	"tourshop/internal/app/domains/entity/etprimitive"
)

const actorKey = "tourshop.actor"

// SetActor 保存当前请求的操作者身份（鉴权中间件调用）
func SetActor(c *gin.Context, actor etprimitive.Actor) {
	c.Set(actorKey, actor)
}

// ActorFrom 读取当前请求的操作者身份
func ActorFrom(c *gin.Context) (etprimitive.Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return etprimitive.Actor{}, false
	}
	actor, ok := v.(etprimitive.Actor)
	return actor, ok
}
