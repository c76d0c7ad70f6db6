// @title           Todo List API
// @version         1.0
// @description     Multi-tenant todo list backend.
// @description     Provides user registration, login with bearer tokens and per-user todo CRUD.

// @contact.name   Ivan Chernomyrdin
// @contact.url    https://github.com/IvanChernomyrdin

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
//
// Package main содержит точку входа сервера todo-листа.
//
// Пакет отвечает за инициализацию и жизненный цикл HTTP-сервера, а именно:
//   - загрузку переменных окружения из файла .env (если он присутствует);
//   - загрузку конфигурации сервера из ./configs/server.yaml (путь можно переопределить CONFIG_PATH);
//   - инициализацию логгера, подключения к базе данных и миграций;
//   - создание репозиториев, сервисов, middleware и HTTP-обработчиков;
//   - запуск HTTP(S)-сервера с таймаутами из конфига;
//   - обработку системных сигналов завершения (SIGINT, SIGTERM, SIGQUIT);
//   - корректное (graceful) завершение работы с закрытием пула бд.
//
// Пакет не содержит бизнес-логики и не предназначен для unit-тестирования.
package main

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/IvanChernomyrdin/go-todolist/internal/server/api"
	"github.com/IvanChernomyrdin/go-todolist/internal/server/config"
	"github.com/IvanChernomyrdin/go-todolist/internal/server/middleware"
	h "github.com/IvanChernomyrdin/go-todolist/internal/server/net/http"
	"github.com/IvanChernomyrdin/go-todolist/internal/server/repository"
	"github.com/IvanChernomyrdin/go-todolist/internal/server/service"
	"github.com/IvanChernomyrdin/go-todolist/internal/shared/logger"

	_ "github.com/IvanChernomyrdin/go-todolist/swagger/docs"
)

// buildVersion передаётся при сборке через -ldflags.
var buildVersion = "dev"

func main() {
	// до загрузки конфига пишем в логгер по умолчанию
	boot := logger.NewHTTPLogger().Sugar()

	if err := godotenv.Load(); err != nil {
		boot.Warnf("no .env file loaded, error: %v", err)
	}

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "./configs/server.yaml"
	}
	cfg, err := config.Load(path)
	if err != nil {
		boot.Fatal(err)
	}

	httpLogger, err := logger.New(cfg.LoggerOptions())
	if err != nil {
		boot.Fatal(err)
	}
	defer httpLogger.Sync()
	sugar := httpLogger.Sugar()

	// создаём контекст и errgroup
	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	// подключаем базу данных и накатываем миграции
	if err := config.Init(ctx, cfg, httpLogger); err != nil {
		sugar.Fatal(err)
	}
	// делаем отложенное закрытие бд
	defer func() {
		if err := config.Close(); err != nil {
			sugar.Warnf("close db: %v", err)
		}
	}()
	db := config.GetDB()

	// складываем репы
	repos := service.Repositories{
		Users:  repository.NewUsersRepository(db),
		Todos:  repository.NewTodosRepository(db),
		Health: repository.NewHealthRepository(db),
	}
	svc, err := service.NewServices(repos, cfg, buildVersion)
	if err != nil {
		sugar.Fatal(err)
	}

	var limiter *middleware.RateLimiter
	if cfg.Security.RateLimit.Enabled {
		rl := cfg.Security.RateLimit
		limiter = middleware.NewRateLimiter(rl.RPS, rl.Burst, rl.Key)
	}

	handler := api.NewHandler(svc, httpLogger)
	router := h.NewRouter(handler, cfg, limiter)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		MaxHeaderBytes:    cfg.Server.MaxHeaderBytes,
	}
	if cfg.TLS.Enabled {
		server.TLSConfig = &tls.Config{MinVersion: tlsVersion(cfg.TLS.MinVersion)}
	}

	g, ctx := errgroup.WithContext(ctx)

	// запускаем сервер
	g.Go(func() error {
		httpLogger.Info("server started",
			zap.String("addr", cfg.Addr()),
			zap.String("env", cfg.Env),
			zap.Bool("tls", cfg.TLS.Enabled),
			zap.String("version", buildVersion),
		)

		var err error
		if cfg.TLS.Enabled {
			err = server.ListenAndServeTLS(cfg.TLS.CertFile, cfg.TLS.KeyFile)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// чистим неактивные ключи лимитера
	if limiter != nil {
		g.Go(func() error {
			limiter.Run(ctx.Done(), 5*time.Minute)
			return nil
		})
	}

	// graceful shutdown с таймаутом из конфига
	g.Go(func() error {
		<-ctx.Done()

		sugar.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			cfg.Server.ShutdownTimeout,
		)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	// ожидание и единная обработка ошибок
	if err := g.Wait(); err != nil {
		sugar.Errorf("server stopped with error: %v", err)
		return
	}
	sugar.Info("server gracefully stopped")
}

func tlsVersion(v string) uint16 {
	if v == "1.3" {
		return tls.VersionTLS13
	}
	return tls.VersionTLS12
}
