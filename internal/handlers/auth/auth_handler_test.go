package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	domain "github.com/tomraj007/txnportal/internal/domain/auth"
	"github.com/tomraj007/txnportal/internal/pkg/token"
	"github.com/tomraj007/txnportal/internal/repository/memory"
	authService "github.com/tomraj007/txnportal/internal/service/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens, err := token.NewManager(token.Config{
		Secret:   "test-secret-at-least-long-enough",
		Issuer:   "txnportal-gateway",
		Audience: "txnportal",
		TTL:      time.Hour,
	})
	require.NoError(t, err)

	accounts := memory.NewAccountRepository()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, accounts.Create(context.Background(), &domain.Account{
		Email:        "test@example.com",
		UserName:     "Test User",
		CompanyID:    "c1",
		PasswordHash: string(hash),
		Roles:        []string{"USER"},
	}))

	handler := NewAuthHandler(authService.NewAuthService(accounts, tokens, zap.NewNop()), zap.NewNop())

	r := gin.New()
	r.POST("/api/gateway/usermgt/UserAccountManager/login", handler.Login)
	return r
}

func postLogin(t *testing.T, r *gin.Engine, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/gateway/usermgt/UserAccountManager/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLoginHandler_Success(t *testing.T) {
	r := setupRouter(t)

	w := postLogin(t, r, domain.EncodeCredentials("test@example.com", "secret123"))
	require.Equal(t, http.StatusOK, w.Code)

	var resp domain.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.CSRFToken)
	assert.Equal(t, "Test User", resp.UserName)
	assert.Equal(t, []string{"USER"}, resp.Roles)

	_, err := time.Parse(time.RFC3339, resp.ExpiryDate)
	assert.NoError(t, err)
}

func TestLoginHandler_InvalidCredentials(t *testing.T) {
	r := setupRouter(t)

	tests := []struct {
		name string
		body interface{}
	}{
		{name: "wrong password", body: domain.EncodeCredentials("test@example.com", "nope-nope")},
		{name: "unknown account", body: domain.EncodeCredentials("other@example.com", "secret123")},
		{name: "raw unencoded credentials", body: domain.EncodedCredentials{Username: "test@example.com!", Password: "secret123!"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			w := postLogin(t, r, test.body)
			require.Equal(t, http.StatusUnauthorized, w.Code)

			var wire map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &wire))
			assert.Equal(t, "Invalid username or password", wire["message"])
		})
	}
}

func TestLoginHandler_MalformedBody(t *testing.T) {
	r := setupRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/gateway/usermgt/UserAccountManager/login", bytes.NewReader([]byte("{")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginHandler_MissingFields(t *testing.T) {
	r := setupRouter(t)

	w := postLogin(t, r, map[string]string{"username": "dGVzdA=="})
	assert.Equal(t, http.StatusBadRequest, w.Code, "binding requires both fields")
}
