// Package config содержит инициализацию подключения к базе данных сервера
// и доступ к глобальному экземпляру *sql.DB.
//
// Пакет выполняет:
//   - открытие соединения с PostgreSQL (через драйвер pgx) и настройку пула;
//   - проверку доступности базы (Ping);
//   - запуск миграций (golang-migrate) при старте сервера.
//
// Примечание: пакет использует глобальную переменную DB. Инициализация должна
// выполняться один раз при запуске сервера.
package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"go.uber.org/zap"

	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v4/stdlib"

	"github.com/IvanChernomyrdin/go-todolist/internal/shared/logger"
)

// DB: глобальный экземпляр подключения к базе данных.
//
// Инициализируется функцией Init и используется другими пакетами через GetDB.
var DB *sql.DB

// Init открывает подключение к базе данных по cfg.DB, проверяет его доступность
// и (если включено) применяет миграции из cfg.Migrations.Path.
//
// Если миграции уже применены, ошибка migrate.ErrNoChange не считается ошибкой.
func Init(ctx context.Context, cfg *Config, log *logger.HTTPLogger) error {
	db, err := sql.Open("pgx", cfg.DB.DSN)
	if err != nil {
		log.Error("error to connect db", zap.Error(err))
		return fmt.Errorf("open db: %w", err)
	}

	db.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	db.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.DB.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.DB.ConnMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.DB.ConnectTimeout)
	defer cancel()

	if err = db.PingContext(pingCtx); err != nil {
		log.Error("error check db connection", zap.Error(err))
		db.Close()
		return fmt.Errorf("ping db: %w", err)
	}
	DB = db

	if !cfg.Migrations.Enabled {
		log.Info("migrations disabled")
		return nil
	}
	if err := Migrate(db, cfg.Migrations.Path); err != nil {
		log.Error("error applying migrations", zap.Error(err))
		return err
	}

	log.Info("migrations applied successfully", zap.String("path", cfg.Migrations.Path))
	return nil
}

// Migrate применяет все up-миграции из sourceURL (например file://migrations/postgres).
func Migrate(db *sql.DB, sourceURL string) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("creating migration driver: %w", err)
	}

	// создаём миграции с выбранным драйвером
	m, err := migrate.NewWithDatabaseInstance(sourceURL, "postgres", driver)
	if err != nil {
		return fmt.Errorf("creating migrations: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("applying migrations: %w", err)
	}
	return nil
}

// GetDB возвращает текущий глобальный экземпляр *sql.DB.
//
// Возвращаемое значение может быть nil, если Init ещё не вызывался
// или завершился ошибкой.
func GetDB() *sql.DB {
	return DB
}

// Close закрывает пул соединений, если он был открыт.
func Close() error {
	if DB == nil {
		return nil
	}
	err := DB.Close()
	DB = nil
	return err
}
