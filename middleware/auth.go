// middleware/auth.go
package middleware

import (
	"context"
	"net/http"
	"strings"

	"cupid/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// JWTAuthMiddleware validates the bearer token and checks its hash against
// the auth cache; a cache miss means the session was signed out or revoked.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		userID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		authCache := utils.GetAuthCacheClient()
		cached, err := authCache.Get(ctx, utils.AuthCachePrefix+userID).Result()
		if err != nil || cached != utils.HashToken(tokenString) {
			if err != nil {
				zap.L().Warn("Auth cache miss", zap.String("userID", userID), zap.Error(err))
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session expired, sign in again"})
			return
		}

		// Sliding expiration.
		if err := authCache.Expire(ctx, utils.AuthCachePrefix+userID, utils.AuthCacheTTL).Err(); err != nil {
			zap.L().Error("Failed to refresh auth cache TTL", zap.Error(err))
		}

		c.Set("userID", userID)
		c.Set("token", tokenString)
		c.Next()
	}
}
