package jwtmw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ContextSubject is the gin context key holding the verified token subject.
const ContextSubject = "subject"

// AuthRequired returns a Gin middleware that accepts only requests carrying a
// valid HS256 bearer token signed with secret.
func AuthRequired(secret string) gin.HandlerFunc {
	key := []byte(secret)
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		if len(key) == 0 {
			// JWT secret が未設定のサーバー設定ミス
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "server misconfigured"})
			return
		}

		var claims jwt.RegisteredClaims
		token, err := jwt.ParseWithClaims(strings.TrimPrefix(auth, "Bearer "), &claims,
			func(t *jwt.Token) (interface{}, error) { return key, nil },
			// HMAC 以外（none など）は拒否する
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
		)
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(ContextSubject, claims.Subject)
		c.Next()
	}
}
