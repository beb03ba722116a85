// Package memory holds in-process repository implementations, used by
// service and handler tests in place of Postgres.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/tomraj007/txnportal/internal/domain/auth"
	"github.com/tomraj007/txnportal/internal/domain/report"
	xerrors "github.com/tomraj007/txnportal/internal/pkg/errors"
)

type AccountRepository struct {
	mu       sync.Mutex
	accounts map[string]*auth.Account
	nextID   int64
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{accounts: make(map[string]*auth.Account), nextID: 1}
}

func (r *AccountRepository) FindByEmail(_ context.Context, email string) (*auth.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[strings.ToLower(email)]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	copied := *account
	return &copied, nil
}

func (r *AccountRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.accounts[strings.ToLower(email)]
	return ok, nil
}

func (r *AccountRepository) Create(_ context.Context, account *auth.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := strings.ToLower(account.Email)
	if _, ok := r.accounts[key]; ok {
		return xerrors.ErrInvalidInput
	}
	account.ID = r.nextID
	r.nextID++
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt
	copied := *account
	r.accounts[key] = &copied
	return nil
}

func (r *AccountRepository) MarkLoggedIn(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, account := range r.accounts {
		if account.ID == id {
			account.IsFirstTimeLogin = false
			account.UpdatedAt = time.Now()
			return nil
		}
	}
	return xerrors.ErrNotFound
}

type storedTransaction struct {
	row       report.Transaction
	createdOn time.Time
}

type TransactionRepository struct {
	mu   sync.Mutex
	rows []storedTransaction
}

func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{}
}

func (r *TransactionRepository) Insert(_ context.Context, t *report.Transaction, createdOn time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row := *t
	row.CreatedOn = createdOn.Format(time.RFC3339)
	r.rows = append(r.rows, storedTransaction{row: row, createdOn: createdOn})
	return nil
}

func (r *TransactionRepository) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows), nil
}

// List mirrors the Postgres repository: equality filters, inclusive date
// bounds on the created-on day, newest first, then pagination.
func (r *TransactionRepository) List(_ context.Context, req *report.Request) ([]report.Transaction, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	matched := []storedTransaction{}
	for _, st := range r.rows {
		if !matches(&st, req) {
			continue
		}
		matched = append(matched, st)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].createdOn.After(matched[j].createdOn)
	})

	total := len(matched)

	page := req.PageNumber
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	start := (page - 1) * pageSize
	if start >= total {
		return []report.Transaction{}, total, nil
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	items := make([]report.Transaction, 0, end-start)
	for _, st := range matched[start:end] {
		items = append(items, st.row)
	}
	return items, total, nil
}

func matches(st *storedTransaction, req *report.Request) bool {
	t := &st.row
	if req.AgentID != "" && t.AgentID != req.AgentID {
		return false
	}
	if req.LocationID != "" && t.LocationID != req.LocationID {
		return false
	}
	if req.TransactionType != "" && t.Service != req.TransactionType {
		return false
	}
	if req.Status != "" && t.Status != req.Status {
		return false
	}
	if req.ProfRisk != "" && t.ProfRisk != req.ProfRisk {
		return false
	}
	if req.CountryRisk != "" && t.CountryRisk != req.CountryRisk {
		return false
	}

	day := st.createdOn.Format("2006-01-02")
	if req.FromDate != "" && day < req.FromDate {
		return false
	}
	if req.ToDate != "" && day > req.ToDate {
		return false
	}
	return true
}
