package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Rohitprj/QuoteVault/internal/infra/cache"
	"github.com/Rohitprj/QuoteVault/internal/utils"
)

// RateLimitMiddleware caps per-user calls of one action inside a fixed
// window. Redis failures fail open.
func RateLimitMiddleware(rdb *cache.RedisCache, action string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		userID, err := utils.GetUserID(c)
		if err != nil {
			utils.Error(c, http.StatusUnauthorized, err.Error())
			return
		}
		key := fmt.Sprintf("rate:limit:%s:%s", userID, action)

		allowed, err := rdb.AllowRequest(c, key, limit, window)
		if err != nil {
			zap.L().Warn("rate limit check failed", zap.String("key", key), zap.Error(err))
			c.Next()
			return
		}

		if !allowed {
			utils.Error(c, http.StatusTooManyRequests, "too many requests, slow down")
			return
		}

		c.Next()
	}
}
