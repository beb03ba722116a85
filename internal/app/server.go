// internal/app/server.go
package app

import (
	"context"
	"fmt"

	"github.com/tomraj007/txnportal/internal/config"
	authHandler "github.com/tomraj007/txnportal/internal/handlers/auth"
	reportHandler "github.com/tomraj007/txnportal/internal/handlers/report"
	"github.com/tomraj007/txnportal/internal/middleware"
	"github.com/tomraj007/txnportal/internal/pkg/token"
	"github.com/tomraj007/txnportal/internal/repository/postgres"
	authService "github.com/tomraj007/txnportal/internal/service/auth"
	reportService "github.com/tomraj007/txnportal/internal/service/report"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
}

func NewServer(cfg config.AppConfig, logger *zap.Logger) *Server {
	return &Server{
		cfg:    cfg,
		engine: gin.New(),
		logger: logger,
	}
}

func (s *Server) Start() error {
	ctx := context.Background()

	// ----- PostgreSQL -----
	pool, err := postgres.Connect(ctx, s.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		return err
	}

	// ----- Token manager -----
	tokens, err := token.NewManager(token.Config{
		Secret:   s.cfg.TokenSecret,
		Issuer:   "txnportal-gateway",
		Audience: "txnportal",
		TTL:      s.cfg.TokenTTL,
	})
	if err != nil {
		return fmt.Errorf("failed to build token manager: %w", err)
	}

	// ----- Repositories -----
	accountRepo := postgres.NewAccountRepository(pool)
	transactionRepo := postgres.NewTransactionRepository(pool)

	// ----- Services -----
	authSvc := authService.NewAuthService(accountRepo, tokens, s.logger)
	reportSvc := reportService.NewReportService(transactionRepo, s.logger)

	// ----- Bootstrap -----
	if s.cfg.AdminPassword != "" {
		if err := authSvc.EnsureAdminAccount(ctx, s.cfg.AdminEmail, s.cfg.AdminPassword, s.cfg.AdminName, s.cfg.AdminCompany); err != nil {
			s.logger.Error("failed to ensure admin account", zap.Error(err))
		}
	} else {
		s.logger.Warn("ADMIN_PASSWORD not set, skipping admin bootstrap")
	}

	if n, err := transactionRepo.SeedTransactions(ctx, 120); err != nil {
		s.logger.Error("failed to seed transactions", zap.Error(err))
	} else if n > 0 {
		s.logger.Info("seeded sample transactions", zap.Int("count", n))
	}

	// ----- Handlers & middleware -----
	handlers := &Handlers{
		AuthHandler:    authHandler.NewAuthHandler(authSvc, s.logger),
		ReportHandler:  reportHandler.NewReportHandler(reportSvc, s.logger),
		AuthMiddleware: middleware.NewAuthMiddleware(tokens),
	}

	s.engine.Use(
		middleware.RecoveryMiddleware(s.logger),
		middleware.LoggingMiddleware(s.logger),
	)
	SetupRouter(s.engine, handlers)

	// ----- Start HTTP -----
	s.logger.Info("gateway listening", zap.String("addr", s.cfg.HTTPAddr))
	return s.engine.Run(s.cfg.HTTPAddr)
}
