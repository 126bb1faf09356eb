package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/007-sistemas/Sistema-Web-sub000/pkg/redis"
	"github.com/007-sistemas/Sistema-Web-sub000/pkg/response"
)

// RateLimit limitação de taxa por janela fixa no Redis.
// limit: máximo de requisições dentro da janela
// window: duração da janela
// rdb nil degrada liberando tudo (mesma política do JWTAuth)
func RateLimit(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("rate_limit:%s:%s", c.ClientIP(), c.FullPath())
		allowed, err := rdb.CheckRateLimit(c.Request.Context(), key, limit, window)
		if err != nil {
			// Redis fora do ar não derruba a API
			c.Next()
			return
		}

		if !allowed {
			response.Error(c, http.StatusTooManyRequests, 10004, "muitas requisições, tente novamente em instantes")
			c.Abort()
			return
		}

		c.Next()
	}
}
