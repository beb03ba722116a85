// internal/repository/postgres/transaction_repo.go
package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tomraj007/txnportal/internal/domain/report"

	"github.com/jackc/pgx/v5/pgxpool"
)

type TransactionRepository struct {
	db *pgxpool.Pool
}

func NewTransactionRepository(db *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionColumns = `
	id, status, created_on, created_by, principle, principle_id, service,
	ref_num, amount, sender_name, receiver_name, agent_name, agent_id,
	location, location_id, customer_number, id_type, id_number, dob,
	first_name, last_name, fee, total_payable_amount, country, is_alert,
	mg_ref_num, country_risk, prof_risk, country_id, suspicious_note,
	service_name
`

// List retrieves a report page with filters. Returns the rows and the
// total record count across all pages.
func (r *TransactionRepository) List(ctx context.Context, req *report.Request) ([]report.Transaction, int, error) {
	// Build WHERE clause
	conditions := []string{"1=1"}
	args := []interface{}{}
	argPos := 1

	addEq := func(column, value string) {
		if value == "" {
			return
		}
		conditions = append(conditions, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}

	addEq("agent_id", req.AgentID)
	addEq("location_id", req.LocationID)
	addEq("service", req.TransactionType)
	addEq("status", req.Status)
	addEq("prof_risk", req.ProfRisk)
	addEq("country_risk", req.CountryRisk)

	if req.FromDate != "" {
		conditions = append(conditions, fmt.Sprintf("created_on::date >= $%d::date", argPos))
		args = append(args, req.FromDate)
		argPos++
	}
	if req.ToDate != "" {
		conditions = append(conditions, fmt.Sprintf("created_on::date <= $%d::date", argPos))
		args = append(args, req.ToDate)
		argPos++
	}

	whereClause := strings.Join(conditions, " AND ")

	// Count total
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM transactions WHERE %s", whereClause)
	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	// Pagination
	page := req.PageNumber
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	query := fmt.Sprintf(`
		SELECT %s
		FROM transactions
		WHERE %s
		ORDER BY created_on DESC
		LIMIT $%d OFFSET $%d
	`, transactionColumns, whereClause, argPos, argPos+1)

	args = append(args, pageSize, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	transactions := []report.Transaction{}
	for rows.Next() {
		var t report.Transaction
		var createdOn time.Time
		err := rows.Scan(
			&t.ID, &t.Status, &createdOn, &t.CreatedBy, &t.Principle,
			&t.PrincipleID, &t.Service, &t.RefNum, &t.Amount, &t.SenderName,
			&t.ReceiverName, &t.AgentName, &t.AgentID, &t.Location,
			&t.LocationID, &t.CustomerNumber, &t.IDType, &t.IDNumber, &t.DOB,
			&t.FirstName, &t.LastName, &t.Fee, &t.TotalPayableAmount,
			&t.Country, &t.IsAlert, &t.MGRefNum, &t.CountryRisk, &t.ProfRisk,
			&t.CountryID, &t.SuspiciousNote, &t.ServiceName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan transaction: %w", err)
		}
		t.CreatedOn = createdOn.Format(time.RFC3339)
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read transactions: %w", err)
	}

	return transactions, total, nil
}

// Count returns the number of stored transactions.
func (r *TransactionRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return total, nil
}

// Insert stores one transaction row.
func (r *TransactionRepository) Insert(ctx context.Context, t *report.Transaction, createdOn time.Time) error {
	query := fmt.Sprintf(`
		INSERT INTO transactions (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		        $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26,
		        $27, $28, $29, $30, $31)
	`, transactionColumns)

	_, err := r.db.Exec(ctx, query,
		t.ID, t.Status, createdOn, t.CreatedBy, t.Principle, t.PrincipleID,
		t.Service, t.RefNum, t.Amount, t.SenderName, t.ReceiverName,
		t.AgentName, t.AgentID, t.Location, t.LocationID, t.CustomerNumber,
		t.IDType, t.IDNumber, t.DOB, t.FirstName, t.LastName, t.Fee,
		t.TotalPayableAmount, t.Country, t.IsAlert, t.MGRefNum,
		t.CountryRisk, t.ProfRisk, t.CountryID, t.SuspiciousNote,
		t.ServiceName,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}
