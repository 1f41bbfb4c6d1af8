package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"turnout/backend/pkg/jwt"
	"turnout/backend/pkg/redis"
	"turnout/backend/pkg/response"
)

// BrigadeAuth extracts and verifies the brigade token from
// Authorization: Bearer <token>. The stream endpoint also accepts the
// token as a query parameter because EventSource cannot set headers.
// rdb may be nil; the blacklist check then degrades to allow.
func BrigadeAuth(jwtMgr *jwt.Manager, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			token = c.Query("token")
		}
		if token == "" {
			response.Unauthorized(c, 10002, "missing credentials")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(token)
		if err != nil {
			response.Unauthorized(c, 10002, "token invalid or expired")
			c.Abort()
			return
		}

		if claims.TokenType != "access" {
			response.Unauthorized(c, 10002, "invalid token type")
			c.Abort()
			return
		}

		if rdb != nil {
			if blacklisted, err := rdb.IsBlacklisted(c.Request.Context(), claims.ID); err == nil && blacklisted {
				response.Unauthorized(c, 10002, "token revoked")
				c.Abort()
				return
			}
		}

		c.Set("brigade_id", claims.BrigadeID)
		c.Set("brigade_slug", claims.BrigadeSlug)
		c.Set("token_jti", claims.ID)
		if claims.ExpiresAt != nil {
			c.Set("token_expires_at", claims.ExpiresAt.Time)
		}

		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
