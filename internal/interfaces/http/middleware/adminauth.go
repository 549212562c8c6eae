// Package middleware holds the gin middleware for the HTTP layer.
package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/adepa-shop/adepa/internal/shared/logger"
	"github.com/adepa-shop/adepa/internal/shared/utils"
)

// AdminAuthMiddleware guards the provider admin routes with an HS256 bearer
// token carrying an admin role claim.
type AdminAuthMiddleware struct {
	jwtSecret []byte
	logger    logger.Interface
}

func NewAdminAuthMiddleware(jwtSecret string, logger logger.Interface) *AdminAuthMiddleware {
	return &AdminAuthMiddleware{
		jwtSecret: []byte(jwtSecret),
		logger:    logger,
	}
}

type adminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func (m *AdminAuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid authorization header format")
			c.Abort()
			return
		}

		claims := &adminClaims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.jwtSecret, nil
		})
		if err != nil || !token.Valid {
			m.logger.Warnw("failed to verify admin token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		if claims.Role != "admin" {
			utils.ErrorResponse(c, http.StatusForbidden, "admin access required")
			c.Abort()
			return
		}

		c.Set("admin_subject", claims.Subject)
		c.Next()
	}
}
