package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"shiftgy-backend/internal/models"
	"shiftgy-backend/internal/utils"
)

const ContextIdentity = "callerIdentity"

// IdentityRequired extracts the caller identity from a bearer token. It does
// not authorize anything; the identity is only the backend-routing signal.
func IdentityRequired(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization"})
			return
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization"})
			return
		}

		token, err := jwt.ParseWithClaims(parts[1], &utils.IdentityClaims{}, func(token *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		claims, ok := token.Claims.(*utils.IdentityClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid claims"})
			return
		}

		c.Set(ContextIdentity, &models.CallerIdentity{
			Identifier: claims.Subject,
			Email:      claims.Email,
		})
		c.Next()
	}
}

// IdentityFrom returns the caller identity set by IdentityRequired, or nil.
func IdentityFrom(c *gin.Context) *models.CallerIdentity {
	value, ok := c.Get(ContextIdentity)
	if !ok {
		return nil
	}
	identity, ok := value.(*models.CallerIdentity)
	if !ok {
		return nil
	}
	return identity
}
