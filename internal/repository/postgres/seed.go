// internal/repository/postgres/seed.go
package postgres

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/tomraj007/txnportal/internal/domain/report"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"
)

// EnsureSchema creates the gateway tables when they do not exist yet.
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS accounts (
			id                  BIGSERIAL PRIMARY KEY,
			email               TEXT NOT NULL UNIQUE,
			user_name           TEXT NOT NULL,
			company_id          TEXT NOT NULL,
			password_hash       TEXT NOT NULL,
			roles               TEXT[] NOT NULL DEFAULT '{}',
			is_first_time_login BOOLEAN NOT NULL DEFAULT TRUE,
			created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS transactions (
			id                   TEXT PRIMARY KEY,
			status               TEXT NOT NULL,
			created_on           TIMESTAMPTZ NOT NULL,
			created_by           TEXT NOT NULL DEFAULT '',
			principle            TEXT NOT NULL DEFAULT '',
			principle_id         TEXT NOT NULL DEFAULT '',
			service              TEXT NOT NULL DEFAULT '',
			ref_num              TEXT NOT NULL DEFAULT '',
			amount               TEXT NOT NULL DEFAULT '0,00',
			sender_name          TEXT NOT NULL DEFAULT '',
			receiver_name        TEXT NOT NULL DEFAULT '',
			agent_name           TEXT NOT NULL DEFAULT '',
			agent_id             TEXT NOT NULL DEFAULT '',
			location             TEXT NOT NULL DEFAULT '',
			location_id          TEXT NOT NULL DEFAULT '',
			customer_number      TEXT NOT NULL DEFAULT '',
			id_type              TEXT NOT NULL DEFAULT '',
			id_number            TEXT NOT NULL DEFAULT '',
			dob                  TEXT NOT NULL DEFAULT '',
			first_name           TEXT NOT NULL DEFAULT '',
			last_name            TEXT NOT NULL DEFAULT '',
			fee                  DOUBLE PRECISION NOT NULL DEFAULT 0,
			total_payable_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
			country              TEXT NOT NULL DEFAULT '',
			is_alert             INT NOT NULL DEFAULT 0,
			mg_ref_num           TEXT,
			country_risk         TEXT NOT NULL DEFAULT 'Low',
			prof_risk            TEXT NOT NULL DEFAULT 'Low',
			country_id           TEXT NOT NULL DEFAULT '',
			suspicious_note      TEXT,
			service_name         TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_created_on ON transactions (created_on DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_agent ON transactions (agent_id)`,
	}

	for _, stmt := range ddl {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}

var (
	seedStatuses  = []string{"OK", "PENDING", "ERROR", "REJECTED"}
	seedServices  = []string{"SM", "SB"}
	seedRisks     = []string{"Low", "Medium", "High"}
	seedCountries = []string{"Germany", "Netherlands", "Spain", "Italy"}
)

// SeedTransactions fills an empty transactions table with n sample rows so
// a fresh development database serves report pages immediately.
func (r *TransactionRepository) SeedTransactions(ctx context.Context, n int) (int, error) {
	existing, err := r.Count(ctx)
	if err != nil {
		return 0, err
	}
	if existing > 0 {
		return 0, nil
	}

	agentID := ulid.Make().String()
	locationID := ulid.Make().String()

	for i := 0; i < n; i++ {
		createdOn := time.Now().Add(-time.Duration(rand.Intn(30*24)) * time.Hour)
		amount := float64(rand.Intn(99000)+1000) / 100
		fee := amount * 0.02

		t := &report.Transaction{
			ID:                 ulid.Make().String(),
			Status:             seedStatuses[rand.Intn(len(seedStatuses))],
			CreatedBy:          "seed",
			Principle:          "MoneyTransfer",
			PrincipleID:        "MT-01",
			Service:            seedServices[rand.Intn(len(seedServices))],
			RefNum:             fmt.Sprintf("REF-%s", ulid.Make().String()[:10]),
			Amount:             fmt.Sprintf("%.2f", amount),
			SenderName:         fmt.Sprintf("Sender %d", i+1),
			ReceiverName:       fmt.Sprintf("Receiver %d", i+1),
			AgentName:          "Sample Agency",
			AgentID:            agentID,
			Location:           "Main Branch",
			LocationID:         locationID,
			CustomerNumber:     fmt.Sprintf("CUST-%04d", i+1),
			IDType:             "passport",
			IDNumber:           fmt.Sprintf("P%08d", rand.Intn(100000000)),
			DOB:                "1985-04-12",
			FirstName:          "Jane",
			LastName:           "Doe",
			Fee:                fee,
			TotalPayableAmount: amount + fee,
			Country:            seedCountries[rand.Intn(len(seedCountries))],
			IsAlert:            rand.Intn(10) / 9, // roughly 1 in 10
			CountryRisk:        seedRisks[rand.Intn(len(seedRisks))],
			ProfRisk:           seedRisks[rand.Intn(len(seedRisks))],
			CountryID:          "DE",
		}
		if err := r.Insert(ctx, t, createdOn); err != nil {
			return i, err
		}
	}
	return n, nil
}
