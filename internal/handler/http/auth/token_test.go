package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authservice "clinton-lexicon/internal/service/auth"
)

func tokenTestHandler(t *testing.T) http.HandlerFunc {
	t.Helper()
	t.Setenv("ADMIN_USER", "wjc")
	t.Setenv("ADMIN_USER_PASSWORD", "a-long-unguessable-pass")
	t.Setenv("JWT_SECRET", testSecret)

	svc := authservice.NewAuthService(NewBasicAuthProvider(12))
	return TokenHandler(svc)
}

func TestTokenHandler_IssuesAdminToken(t *testing.T) {
	handler := tokenTestHandler(t)

	body := `{"username":"wjc","password":"a-long-unguessable-pass"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotEmpty(t, resp.Token)

	tok, err := jwt.Parse(resp.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	require.True(t, tok.Valid)

	claims, ok := tok.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "wjc", claims["sub"])
	assert.Equal(t, RoleAdmin, claims["role"])

	exp, ok := claims["exp"].(float64)
	require.True(t, ok)
	assert.InDelta(t, time.Now().Add(tokenTTL).Unix(), int64(exp), 5)
}

func TestTokenHandler_RejectsBadCredentials(t *testing.T) {
	handler := tokenTestHandler(t)

	body := `{"username":"wjc","password":"wrong-password-entirely"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NotContains(t, rec.Body.String(), "token")
}

func TestTokenHandler_RejectsMalformedBody(t *testing.T) {
	handler := tokenTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
