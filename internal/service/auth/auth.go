// internal/service/auth/auth.go
package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	domain "github.com/tomraj007/txnportal/internal/domain/auth"
	xerrors "github.com/tomraj007/txnportal/internal/pkg/errors"
	"github.com/tomraj007/txnportal/internal/pkg/token"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AccountStore is what the auth service needs from account storage.
type AccountStore interface {
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, account *domain.Account) error
	MarkLoggedIn(ctx context.Context, id int64) error
}

type AuthService struct {
	accounts AccountStore
	tokens   *token.Manager
	logger   *zap.Logger
}

func NewAuthService(accounts AccountStore, tokens *token.Manager, logger *zap.Logger) *AuthService {
	return &AuthService{
		accounts: accounts,
		tokens:   tokens,
		logger:   logger,
	}
}

// Login verifies base64 obfuscated credentials and issues a token. All
// credential failures collapse into ErrInvalidCredentials so the response
// never reveals whether the account exists.
func (s *AuthService) Login(ctx context.Context, enc domain.EncodedCredentials) (*domain.LoginResponse, error) {
	username, password, err := domain.DecodeCredentials(enc)
	if err != nil {
		return nil, xerrors.ErrInvalidCredentials
	}

	account, err := s.accounts.FindByEmail(ctx, username)
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, xerrors.ErrInvalidCredentials
	}

	accessToken, expiry, err := s.tokens.Generate(account.ID, account.CompanyID, account.Roles)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	csrfToken, err := generateCSRFToken()
	if err != nil {
		return nil, fmt.Errorf("failed to issue csrf token: %w", err)
	}

	resp := &domain.LoginResponse{
		AccessToken:      accessToken,
		ExpiryDate:       expiry.Format(time.RFC3339),
		CSRFToken:        csrfToken,
		UserName:         account.UserName,
		Email:            account.Email,
		CompanyID:        account.CompanyID,
		IsFirstTimeLogin: account.IsFirstTimeLogin,
		Roles:            account.Roles,
		RolePermissions:  rolePermissionsFor(account.Roles),
	}

	if account.IsFirstTimeLogin {
		if err := s.accounts.MarkLoggedIn(ctx, account.ID); err != nil {
			s.logger.Error("failed to clear first-time-login flag",
				zap.Int64("account_id", account.ID),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("account logged in",
		zap.Int64("account_id", account.ID),
		zap.String("email", account.Email),
	)
	return resp, nil
}

// EnsureAdminAccount creates the bootstrap admin when it does not exist.
func (s *AuthService) EnsureAdminAccount(ctx context.Context, email, password, name, companyID string) error {
	exists, err := s.accounts.ExistsByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to check admin account: %w", err)
	}
	if exists {
		return nil
	}

	if len(password) < 8 {
		return fmt.Errorf("admin password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	account := &domain.Account{
		Email:            email,
		UserName:         name,
		CompanyID:        companyID,
		PasswordHash:     string(hash),
		Roles:            []string{"ADMIN"},
		IsFirstTimeLogin: true,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	s.logger.Info("admin account created", zap.String("email", email))
	return nil
}

// rolePermissionsFor maps roles onto page permissions. The portal only has
// the report page, so every role reads it and admins get the full flags.
func rolePermissionsFor(roles []string) []domain.RolePermission {
	perms := make([]domain.RolePermission, 0, len(roles))
	for _, role := range roles {
		write := 0
		if role == "ADMIN" {
			write = 1
		}
		perms = append(perms, domain.RolePermission{
			RoleID:   role,
			RoleName: role,
			Permissions: []domain.Permission{
				{
					PageID:     "transaction-report",
					PageName:   "Transaction Report",
					SortBy:     1,
					IsRead:     1,
					IsWrite:    write,
					IsModify:   write,
					IsDownload: 1,
					IsDelete:   write,
				},
			},
		})
	}
	return perms
}

func generateCSRFToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
