package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/tomraj007/txnportal/internal/client"
	"github.com/tomraj007/txnportal/internal/config"
	"github.com/tomraj007/txnportal/internal/domain/report"
	"github.com/tomraj007/txnportal/internal/export"
	"github.com/tomraj007/txnportal/internal/kvstore"
	"github.com/tomraj007/txnportal/internal/notify"
	"github.com/tomraj007/txnportal/internal/pager"
	"github.com/tomraj007/txnportal/internal/session"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// The headless portal run: login (or resume a persisted session), page
// through the transaction report and export the rows to CSV.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("[MAIN] No .env file found, relying on system env vars")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	cfg := config.Load()
	ctx := context.Background()

	kv, err := openSessionStorage(cfg)
	if err != nil {
		logger.Fatal("failed to open session storage", zap.Error(err))
	}

	notifier := notify.NewLogger(logger)
	store := session.NewStore(kv, logger)
	watcher := session.NewWatcher(store, notifier, logger)
	watcher.Start(ctx)
	defer watcher.Stop()

	onUnauthorized := func() {
		notifier.Notify(notify.KindError, "Your session is no longer valid. Please login again.")
	}
	gw := client.New(client.Config{BaseURL: cfg.GatewayBaseURL}, store, watcher, onUnauthorized, logger)

	if store.IsAuthenticated(ctx) {
		if user, ok := store.User(ctx); ok {
			logger.Info("resuming persisted session", zap.String("user", user.UserName))
		}
	} else {
		if cfg.PortalUsername == "" || cfg.PortalPassword == "" {
			logger.Fatal("PORTAL_USERNAME and PORTAL_PASSWORD must be set when no session is stored")
		}
		if _, err := gw.Login(ctx, cfg.PortalUsername, cfg.PortalPassword); err != nil {
			notifier.Notify(notify.KindError, notify.ErrorMessage(err))
			os.Exit(1)
		}
		notifier.Notify(notify.KindSuccess, "Login successful!")
	}

	p := pager.New(
		pager.Config{PageSize: cfg.PageSize},
		gw.FetchReport,
		notifier,
		logger,
	)
	p.SetFilters(report.Filters{
		AgentID:         os.Getenv("FILTER_AGENT_ID"),
		LocationID:      os.Getenv("FILTER_LOCATION_ID"),
		FromDate:        os.Getenv("FILTER_FROM_DATE"),
		ToDate:          os.Getenv("FILTER_TO_DATE"),
		TransactionType: os.Getenv("FILTER_TRANSACTION_TYPE"),
		Status:          os.Getenv("FILTER_STATUS"),
		ProfRisk:        os.Getenv("FILTER_PROF_RISK"),
		CountryRisk:     os.Getenv("FILTER_COUNTRY_RISK"),
	})

	if err := p.Search(ctx); err != nil {
		os.Exit(1)
	}
	// Emulate the scroll-to-bottom gesture until every page is in.
	for p.HasMore() {
		if err := p.OnNearBottomScroll(ctx); err != nil {
			break
		}
		time.Sleep(350 * time.Millisecond)
	}

	items := p.Items()
	if len(items) == 0 {
		logger.Info("nothing to export")
		return
	}

	if err := export.ExportFile(cfg.ExportPath, items); err != nil {
		notifier.Notify(notify.KindError, notify.ErrorMessage(err))
		os.Exit(1)
	}
	notifier.Notify(notify.KindSuccess, "Transactions exported successfully")
	logger.Info("export written",
		zap.String("path", cfg.ExportPath),
		zap.Int("rows", len(items)),
		zap.Int("total", p.TotalRecords()),
	)
}

func openSessionStorage(cfg config.AppConfig) (kvstore.Store, error) {
	switch cfg.SessionBackend {
	case "redis":
		return kvstore.NewRedis(kvstore.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			PoolSize: 10,
			Prefix:   "txnportal:session",
		})
	case "memory":
		return kvstore.NewMemory(), nil
	default:
		return kvstore.NewFile(cfg.SessionFile)
	}
}
