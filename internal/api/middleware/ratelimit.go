package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/Lio2412/recipe_go_server/internal/pkg/response"
)

// RateLimit 基于 Redis 固定窗口的 IP 限流。
// limit 为每分钟允许的请求数，0 表示不限制。
// Redis 不可用时放行而不是拒绝，限流属于保护措施而非功能依赖。
func RateLimit(rdb *redis.Client, scope string, limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit <= 0 || rdb == nil {
			c.Next()
			return
		}

		ctx := context.Background()
		key := fmt.Sprintf("ratelimit:%s:%s", scope, c.ClientIP())

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			c.Next()
			return
		}
		if count == 1 {
			rdb.Expire(ctx, key, time.Minute)
		}

		if count > int64(limit) {
			response.RateLimitError(c, "")
			c.Abort()
			return
		}

		c.Next()
	}
}
