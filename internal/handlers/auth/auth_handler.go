// internal/handlers/auth/auth_handler.go
package auth

import (
	"errors"
	"net/http"

	domain "github.com/tomraj007/txnportal/internal/domain/auth"
	xerrors "github.com/tomraj007/txnportal/internal/pkg/errors"
	authService "github.com/tomraj007/txnportal/internal/service/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *authService.AuthService
	logger      *zap.Logger
}

func NewAuthHandler(svc *authService.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: svc,
		logger:      logger,
	}
}

// Login handles the portal login. The body carries base64 obfuscated
// credentials; the response is the bare session body the portal stores.
func (h *AuthHandler) Login(c *gin.Context) {
	var req domain.EncodedCredentials
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, xerrors.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid username or password"})
			return
		}
		h.logger.Error("login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "login failed"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
