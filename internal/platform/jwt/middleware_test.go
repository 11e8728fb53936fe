package jwtmw

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMain はテスト実行前にGinをテストモードに設定します。
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

const testSecret = "test-secret"

func run(secret, authHeader string) (*httptest.ResponseRecorder, *gin.Context) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/watchlist", nil)
	if authHeader != "" {
		c.Request.Header.Set("Authorization", authHeader)
	}
	AuthRequired(secret)(c)
	return w, c
}

func signed(t *testing.T, secret string, expiration time.Duration) string {
	t.Helper()
	gen, err := NewGenerator(secret, expiration)
	require.NoError(t, err)
	tok, err := gen.GenerateToken("ops")
	require.NoError(t, err)
	return tok
}

// TestAuthRequired_Rejects は不正なリクエストが401で中断されることを検証します。
func TestAuthRequired_Rejects(t *testing.T) {
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "ops",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "ops"}).
		SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name       string
		authHeader string
	}{
		{"no header", ""},
		{"basic auth", "Basic dXNlcjpwYXNz"},
		{"bearer lowercase", "bearer token123"},
		{"malformed token", "Bearer not.a.token"},
		{"wrong secret", "Bearer " + signed(t, "other-secret", time.Hour)},
		{"expired", "Bearer " + signed(t, testSecret, -time.Hour)},
		{"unsigned", "Bearer " + none},
		{"no expiry", "Bearer " + noExp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, c := run(testSecret, tt.authHeader)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.True(t, c.IsAborted())
		})
	}
}

// TestAuthRequired_MissingSecret はシークレット未設定時に500が返されることを検証します。
func TestAuthRequired_MissingSecret(t *testing.T) {
	w, c := run("", "Bearer sometoken")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.True(t, c.IsAborted())
}

// TestAuthRequired_ValidToken は有効なトークンでリクエストが通過し、subject が設定されることを検証します。
func TestAuthRequired_ValidToken(t *testing.T) {
	w, c := run(testSecret, "Bearer "+signed(t, testSecret, time.Hour))

	assert.False(t, c.IsAborted(), w.Body.String())
	assert.Equal(t, "ops", c.GetString(ContextSubject))
}
