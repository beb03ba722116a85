// internal/repository/postgres/account_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tomraj007/txnportal/internal/domain/auth"
	xerrors "github.com/tomraj007/txnportal/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type AccountRepository struct {
	db *pgxpool.Pool
}

func NewAccountRepository(db *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{db: db}
}

// FindByEmail retrieves an account by email
func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*auth.Account, error) {
	query := `
		SELECT id, email, user_name, company_id, password_hash,
		       roles, is_first_time_login, created_at, updated_at
		FROM accounts
		WHERE LOWER(email) = LOWER($1)
	`

	var account auth.Account
	var roles []string
	err := r.db.QueryRow(ctx, query, email).Scan(
		&account.ID, &account.Email, &account.UserName, &account.CompanyID,
		&account.PasswordHash, pq.Array(&roles), &account.IsFirstTimeLogin,
		&account.CreatedAt, &account.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find account: %w", err)
	}

	account.Roles = roles
	return &account, nil
}

// ExistsByEmail checks whether an account with the email exists
func (r *AccountRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM accounts WHERE LOWER(email) = LOWER($1))`,
		email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check account: %w", err)
	}
	return exists, nil
}

// Create inserts a new account
func (r *AccountRepository) Create(ctx context.Context, account *auth.Account) error {
	query := `
		INSERT INTO accounts (email, user_name, company_id, password_hash,
		                      roles, is_first_time_login, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		RETURNING id
	`

	now := time.Now()
	err := r.db.QueryRow(ctx, query,
		account.Email, account.UserName, account.CompanyID, account.PasswordHash,
		pq.Array(account.Roles), account.IsFirstTimeLogin, now,
	).Scan(&account.ID)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	account.CreatedAt = now
	account.UpdatedAt = now
	return nil
}

// MarkLoggedIn clears the first-time-login flag after a successful login
func (r *AccountRepository) MarkLoggedIn(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx,
		`UPDATE accounts SET is_first_time_login = FALSE, updated_at = $1 WHERE id = $2`,
		time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}
