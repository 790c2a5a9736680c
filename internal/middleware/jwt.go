package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenTTL  = 72 * time.Hour
	userIDKey = "user_id"
)

var secret = []byte("supersecret")

// SetSecret replaces the signing key. Call once at startup.
func SetSecret(s string) {
	if s != "" {
		secret = []byte(s)
	}
}

func GenerateToken(userID uint) (string, error) {
	claims := jwt.MapClaims{
		userIDKey: userID,
		"exp":     time.Now().Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func ValidateToken(tokenStr string) (*jwt.Token, error) {
	return jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
}

// RequireAuth ensures a valid JWT is present
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}

		token, err := ValidateToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}
		// JSON numbers decode as float64.
		id, ok := claims[userIDKey].(float64)
		if !ok || id <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}
		c.Set(userIDKey, uint(id))

		c.Next()
	}
}

var errNoUser = errors.New("no authenticated user")

// UserID returns the id stored by RequireAuth.
func UserID(c *gin.Context) (uint, error) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return 0, errNoUser
	}
	id, ok := v.(uint)
	if !ok {
		return 0, errNoUser
	}
	return id, nil
}
