package repositories

import (
	"context"
	"fmt"
	"log/slog"

	"sceneboard/internal/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Repository — хранилище площадок и событий поверх Postgres.
type Repository struct {
	logger *slog.Logger
	DB     *sqlx.DB
}

// New открывает подключение к базе и проверяет его пингом.
func New(logger *slog.Logger, cfg *config.Config) (*Repository, error) {
	op := "repositories.New()"
	log := logger.With(slog.String("op", op))

	dsn := fmt.Sprintf(
		"host=%s port=%s dbname=%s user=%s password=%s sslmode=%s",
		cfg.DBConfig.Host,
		cfg.DBConfig.Port,
		cfg.DBConfig.Name,
		cfg.DBConfig.User,
		cfg.DBConfig.Password,
		cfg.DBConfig.SSLMode,
	)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("connected to database",
		slog.String("host", cfg.DBConfig.Host),
		slog.String("name", cfg.DBConfig.Name),
	)

	return &Repository{
		logger: logger,
		DB:     db,
	}, nil
}

// Shutdown корректно закрывает подключение к базе.
func (r *Repository) Shutdown(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("force exit repository: %w", ctx.Err())
	default:
		return r.DB.Close()
	}
}
