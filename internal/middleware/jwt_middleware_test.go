package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"foodgram/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_jwt_secret"

func TestExtractToken(t *testing.T) {
	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Token abc.def.ghi", "abc.def.ghi", true},
		{"Bearer abc.def.ghi", "abc.def.ghi", true},
		{"Basic abc", "", false},
		{"Token", "", false},
		{"Token ", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		token, ok := extractToken(tt.header)
		assert.Equal(t, tt.ok, ok, tt.header)
		assert.Equal(t, tt.token, token, tt.header)
	}
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func newAuthApp() *fiber.App {
	auth := services.NewAuthService(nil, testSecret, time.Hour)
	app := fiber.New()
	whoami := func(c *fiber.Ctx) error { return c.SendString("user=" + UserID(c)) }
	app.Get("/private", AuthRequired(auth), whoami)
	app.Get("/public", AuthOptional(auth), whoami)
	return app
}

func get(t *testing.T, app *fiber.App, path, authorization string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestAuthRequired(t *testing.T) {
	app := newAuthApp()
	valid := signToken(t, jwt.MapClaims{"user_id": "user-1", "username": "cook", "exp": time.Now().Add(time.Hour).Unix()})
	expired := signToken(t, jwt.MapClaims{"user_id": "user-1", "exp": time.Now().Add(-time.Hour).Unix()})
	noSubject := signToken(t, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})

	status, body := get(t, app, "/private", "Token "+valid)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "user=user-1", body)

	status, body = get(t, app, "/private", "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Contains(t, body, "credentials were not provided")

	for _, header := range []string{"Token " + expired, "Token " + noSubject, "Basic abc", "Token garbage"} {
		status, _ = get(t, app, "/private", header)
		assert.Equal(t, http.StatusUnauthorized, status, header)
	}
}

func TestAuthOptional(t *testing.T) {
	app := newAuthApp()
	valid := signToken(t, jwt.MapClaims{"user_id": "user-1", "exp": time.Now().Add(time.Hour).Unix()})

	status, body := get(t, app, "/public", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "user=", body)

	status, body = get(t, app, "/public", "Bearer "+valid)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "user=user-1", body)

	status, _ = get(t, app, "/public", "Token garbage")
	assert.Equal(t, http.StatusUnauthorized, status)
}
