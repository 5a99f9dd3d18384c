package app

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	_ "github.com/lib/pq"
	"github.com/linemk/shop-api/internal/config"
	"github.com/linemk/shop-api/internal/service"
	"github.com/linemk/shop-api/internal/storage"
	"github.com/pkg/errors"
)

const pingTimeout = 5 * time.Second

type App struct {
	Config *config.Config
	Logger *slog.Logger
	DB     *sql.DB
}

// NewApp создаёт новый экземпляр App и проверяет подключение к БД
func NewApp(log *slog.Logger, cfg *config.Config) (*App, error) {
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to ping database")
	}

	return &App{
		Config: cfg,
		Logger: log,
		DB:     db,
	}, nil
}

// Services собирает репозитории и сервисы поверх подключения к БД
func (a *App) Services() Services {
	userRepo := storage.NewUserRepository(a.DB)
	tokenRepo := storage.NewTokenRepository(a.DB)
	categoryRepo := storage.NewCategoryRepository(a.DB)
	productRepo := storage.NewProductRepository(a.DB)
	orderRepo := storage.NewOrderRepository(a.DB)

	return Services{
		Auth:       service.NewAuthService(a.Logger, userRepo, tokenRepo, a.Config.JWT.Secret, a.Config.JWT.TTL()),
		Categories: service.NewCategoryService(a.Logger, categoryRepo),
		Products:   service.NewProductService(a.Logger, productRepo, categoryRepo),
		Orders:     service.NewOrderService(a.Logger, userRepo, productRepo, orderRepo),
	}
}

// Close закрывает подключение к БД
func (a *App) Close() error {
	return a.DB.Close()
}
