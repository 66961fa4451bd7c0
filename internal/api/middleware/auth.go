package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/domain"
	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/repository"
)

const adminKeyContextKey = "admin_key"

// AuthMiddleware admits requests carrying an active admin API key as a bearer token
func AuthMiddleware(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		apiKey, ok := strings.CutPrefix(header, "Bearer ")
		apiKey = strings.TrimSpace(apiKey)
		if !ok || apiKey == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing API key"})
			return
		}

		key, err := repos.AdminKey.GetByAPIKey(c.Request.Context(), apiKey)
		if err != nil {
			logger.Warn("Rejected admin request",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid API key"})
			return
		}

		c.Set(adminKeyContextKey, key)
		c.Next()
	}
}

// GetAdminFromContext returns the admin key the request authenticated with
func GetAdminFromContext(c *gin.Context) (*domain.AdminKey, bool) {
	v, ok := c.Get(adminKeyContextKey)
	if !ok {
		return nil, false
	}
	key, ok := v.(*domain.AdminKey)
	return key, ok
}
