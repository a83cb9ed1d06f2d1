package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sparetrack/sparetrack-api/internal/domain/enum"
	infraRepo "github.com/sparetrack/sparetrack-api/internal/infrastructure/repository"
	"github.com/sparetrack/sparetrack-api/internal/presentation/http/dto/response"
	"github.com/sparetrack/sparetrack-api/pkg/utils"
)

// AuthMiddleware creates a JWT authentication middleware. Besides the Gin
// context keys, it injects the user and shop into the request context so the
// repository layer's shop scoping applies to every query downstream.
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("shop_id", claims.ShopID)
		c.Set("user_role", claims.Role)

		ctx := infraRepo.WithShop(c.Request.Context(), claims.ShopID)
		ctx = infraRepo.WithUser(ctx, claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireRole creates a middleware that requires one of the given roles.
func RequireRole(roles ...enum.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get("user_role")
		if !exists {
			response.Forbidden(c, "Access denied")
			c.Abort()
			return
		}

		userRole, ok := roleVal.(string)
		if !ok {
			response.Forbidden(c, "Access denied")
			c.Abort()
			return
		}

		for _, required := range roles {
			if enum.UserRole(userRole) == required {
				c.Next()
				return
			}
		}

		response.Forbidden(c, "Insufficient role privileges")
		c.Abort()
	}
}
