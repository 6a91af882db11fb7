package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/fspruce/helpful-living/internal/config"
)

const (
	ContextUserID  = "userID"
	ContextIsStaff = "isStaff"
)

func parseBearer(c *gin.Context, cfg *config.Config) (uint, bool, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return 0, false, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return 0, false, false
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, false, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false, false
	}

	userID, ok := claims["sub"].(float64)
	if !ok {
		return 0, false, false
	}
	isStaff, _ := claims["staff"].(bool)

	return uint(userID), isStaff, true
}

// AuthRequired rejects requests without a valid bearer token.
func AuthRequired(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, isStaff, ok := parseBearer(c, cfg)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextIsStaff, isStaff)
		c.Next()
	}
}

// AuthOptional resolves the caller's identity when a valid bearer token is
// present and lets the request through either way. Booking and autocomplete
// endpoints serve guests too, so they must never reject anonymous callers.
func AuthOptional(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, isStaff, ok := parseBearer(c, cfg); ok {
			c.Set(ContextUserID, userID)
			c.Set(ContextIsStaff, isStaff)
		}
		c.Next()
	}
}

// StaffOnly must run after AuthRequired.
func StaffOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if isStaff, ok := c.Get(ContextIsStaff); !ok || isStaff != true {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "staff_only"})
			return
		}
		c.Next()
	}
}

// SessionUserID returns the authenticated user's id, or nil for guests.
func SessionUserID(c *gin.Context) *uint {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return nil
	}
	id, ok := v.(uint)
	if !ok {
		return nil
	}
	return &id
}
