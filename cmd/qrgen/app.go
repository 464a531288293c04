package qrgen

import (
	"context"
	"sync"

	"gorm.io/gorm"

	"github.com/Badsnus/qrgen-studio/internal/adapters/config"
	"github.com/Badsnus/qrgen-studio/internal/adapters/database/postgres"
	redisStorage "github.com/Badsnus/qrgen-studio/internal/adapters/database/redis"
	"github.com/Badsnus/qrgen-studio/internal/adapters/payment"
	"github.com/Badsnus/qrgen-studio/internal/domain/service"
	"github.com/Badsnus/qrgen-studio/pkg/logger"
	"github.com/Badsnus/qrgen-studio/pkg/logger/types"
	"github.com/Badsnus/qrgen-studio/pkg/smtp"
)

// App wires services for commands. Postgres and redis are connected on first use, so
// commands that only render never need them.
type App struct {
	Config *config.Config
	Logger *types.Logger

	mu    sync.Mutex
	db    *gorm.DB
	redis *redisStorage.Client
}

func (a *App) Database(ctx context.Context) (*gorm.DB, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.db != nil {
		return a.db, nil
	}
	db, err := config.OpenDatabase(ctx)
	if err != nil {
		return nil, err
	}
	a.Logger.Debug("connected to the database")
	a.db = db
	return db, nil
}

func (a *App) Redis(ctx context.Context) (*redisStorage.Client, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.redis != nil {
		return a.redis, nil
	}
	client, err := redisStorage.New(ctx, a.Config.Redis)
	if err != nil {
		return nil, err
	}
	a.Logger.Debug("connected to redis")
	a.redis = client
	return client, nil
}

func (a *App) Renderer() service.Renderer {
	return service.NewQRRenderer(logger.MustNamed("render"))
}

func (a *App) History(ctx context.Context) (*service.HistoryService, error) {
	db, err := a.Database(ctx)
	if err != nil {
		return nil, err
	}
	return service.NewHistoryService(
		postgres.NewQRCodeStorage(db),
		postgres.NewEventStorage(db),
		logger.MustNamed("history"),
	), nil
}

// Exporter returns an export generator. Downloads are recorded only when withHistory is set.
func (a *App) Exporter(ctx context.Context, withHistory bool) (*service.ExportGenerator, error) {
	log := logger.MustNamed("export")
	if !withHistory {
		return service.NewExportGenerator(a.Renderer(), nil, log, a.Config.Export), nil
	}
	history, err := a.History(ctx)
	if err != nil {
		return nil, err
	}
	return service.NewExportGenerator(a.Renderer(), history, log, a.Config.Export), nil
}

func (a *App) Checkout(ctx context.Context) (*service.CheckoutService, error) {
	rdb, err := a.Redis(ctx)
	if err != nil {
		return nil, err
	}
	db, err := a.Database(ctx)
	if err != nil {
		return nil, err
	}
	return service.NewCheckoutService(
		payment.NewClient(a.Config.Payment),
		rdb.Entitlements,
		rdb.Drafts,
		postgres.NewEventStorage(db),
		logger.MustNamed("checkout"),
		a.Config.Checkout,
	), nil
}

func (a *App) Capture(ctx context.Context) (*service.CaptureService, error) {
	history, err := a.History(ctx)
	if err != nil {
		return nil, err
	}
	db, err := a.Database(ctx)
	if err != nil {
		return nil, err
	}
	return service.NewCaptureService(
		postgres.NewSessionStorage(db),
		history,
		a.Mailer(),
		postgres.NewEventStorage(db),
		logger.MustNamed("capture"),
		a.Config.Capture,
	), nil
}

func (a *App) Mailer() *smtp.Client {
	return smtp.NewClient(a.Config.SMTP, logger.MustNamed("smtp"))
}

func (a *App) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.Logger.Warnf("failed to close redis: %v", err)
		}
		a.redis = nil
	}
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
		a.db = nil
	}
}
