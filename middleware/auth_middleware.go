package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const ContextUserIDKey = "userID"

type sessionClaims struct {
	jwt.RegisteredClaims
}

type AuthHandler interface {
	AuthMiddleware() gin.HandlerFunc
	IssueToken(userID string) (string, error)
}

type authHandler struct {
	secret []byte
	ttl    time.Duration
}

// NewAuthHandler builds the session-token handler. Tokens are HMAC-signed
// locally; there is no external identity provider.
func NewAuthHandler(secret string, ttl time.Duration) AuthHandler {
	return &authHandler{secret: []byte(secret), ttl: ttl}
}

func (h *authHandler) IssueToken(userID string) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(h.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.secret)
}

func (h *authHandler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if path == "/health" || strings.HasPrefix(path, "/auth/") {
			c.Next()
			return
		}
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header is required"})
			return
		}
		tokenString = strings.TrimPrefix(tokenString, "Bearer ")

		var claims sessionClaims
		token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
			return h.secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(ContextUserIDKey, claims.Subject)
		c.Next()
	}
}
