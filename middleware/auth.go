package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// UserIDKey 游戏动作接口从 context 里取玩家身份用的 key
const UserIDKey = "userID"

// UserID 玩家身份中间件：动作类接口必须带 X-User-ID 请求头。
// 身份本身由外部会话层签发，这里只要求带上，不做校验。
func UserID() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "缺少 X-User-ID 请求头"})
			c.Abort()
			return
		}
		c.Set(UserIDKey, userID)
		c.Next()
	}
}
