// internal/service/report/report.go
package report

import (
	"context"
	"fmt"

	domain "github.com/tomraj007/txnportal/internal/domain/report"
	xerrors "github.com/tomraj007/txnportal/internal/pkg/errors"

	"go.uber.org/zap"
)

// TransactionStore is what the report service needs from storage.
type TransactionStore interface {
	List(ctx context.Context, req *domain.Request) ([]domain.Transaction, int, error)
}

type ReportService struct {
	store  TransactionStore
	logger *zap.Logger
}

func NewReportService(store TransactionStore, logger *zap.Logger) *ReportService {
	return &ReportService{store: store, logger: logger}
}

var riskLevels = map[string]bool{"Low": true, "Medium": true, "High": true}

// TransactionReport serves one report page.
func (s *ReportService) TransactionReport(ctx context.Context, req *domain.Request) (*domain.Response, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	if req.PageNumber < 1 {
		req.PageNumber = 1
	}
	if req.PageSize < 1 || req.PageSize > 100 {
		req.PageSize = 20
	}

	items, total, err := s.store.List(ctx, req)
	if err != nil {
		s.logger.Error("transaction report query failed", zap.Error(err))
		return nil, fmt.Errorf("failed to load transaction report: %w", err)
	}

	if items == nil {
		items = []domain.Transaction{}
	}
	return &domain.Response{Items: items, TotalCount: total}, nil
}

func validate(req *domain.Request) error {
	if req.TransactionType != "" && req.TransactionType != "SM" && req.TransactionType != "SB" {
		return fmt.Errorf("unknown transaction type %q: %w", req.TransactionType, xerrors.ErrInvalidInput)
	}
	if req.ProfRisk != "" && !riskLevels[req.ProfRisk] {
		return fmt.Errorf("unknown profile risk %q: %w", req.ProfRisk, xerrors.ErrInvalidInput)
	}
	if req.CountryRisk != "" && !riskLevels[req.CountryRisk] {
		return fmt.Errorf("unknown country risk %q: %w", req.CountryRisk, xerrors.ErrInvalidInput)
	}
	return nil
}
