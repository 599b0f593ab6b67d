package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	providerRepo "inkbook/database/repository/provider"
	"inkbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	authCachePrefix = "auth:provider:"
	authCacheTTL    = 10 * time.Minute
)

// JWTAuthProviderMiddleware validates the JWT token for providers with Redis caching.
// On success the provider ID is placed in the gin context under "providerID".
func JWTAuthProviderMiddleware(repo providerRepo.ProviderRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := zap.L()
		ctx := context.Background()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		// Extract the provider ID from the token.
		providerID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || providerID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		cacheKey := authCachePrefix + providerID

		// Check the authorization cache.
		authCache := utils.GetCacheClient()
		if cached, err := authCache.Get(ctx, cacheKey).Result(); err == nil && cached == "1" {
			// Refresh TTL (sliding expiration) and proceed.
			if err := authCache.Expire(ctx, cacheKey, authCacheTTL).Err(); err != nil {
				logger.Error("Failed to refresh auth cache TTL", zap.Error(err))
			}
			c.Set("providerID", providerID)
			c.Next()
			return
		} else if err != nil && err != redis.Nil {
			logger.Error("Error checking auth cache", zap.Error(err))
		}

		// Cache miss: confirm the provider exists.
		if _, err := repo.GetByID(ctx, providerID); err != nil {
			logger.Error("Provider not found when validating token", zap.String("providerID", providerID), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Provider not found"})
			return
		}

		// Successful validation: cache the result.
		if err := authCache.Set(ctx, cacheKey, "1", authCacheTTL).Err(); err != nil {
			logger.Error("Failed to set auth cache", zap.Error(err))
		}

		c.Set("providerID", providerID)
		c.Next()
	}
}
