// Package http реализует маршрутизацию HTTP-слоя сервера.
//
// Пакет отвечает за:
//   - регистрацию HTTP-маршрутов и настройку роутера (chi);
//   - подключение общих middleware (request id, логирование, recover, CORS, лимиты, gzip);
//   - проверку Bearer-токена на защищённых маршрутах.
package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/IvanChernomyrdin/go-todolist/internal/server/api"
	"github.com/IvanChernomyrdin/go-todolist/internal/server/config"
	"github.com/IvanChernomyrdin/go-todolist/internal/server/middleware"
	"github.com/IvanChernomyrdin/go-todolist/internal/server/response"
)

// NewRouter создаёт и настраивает HTTP-роутер сервера.
//
// API монтируется под каждым префиксом из cfg.Server.BasePaths ("/" и "/api/v1").
// limiter может быть nil, тогда лимит запросов выключен.
func NewRouter(h *api.Handler, cfg *config.Config, limiter *middleware.RateLimiter) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	if cfg.Server.TrustProxy {
		r.Use(chimw.RealIP)
	}
	// логирование всех запросов
	r.Use(middleware.Logger(h.Log))
	r.Use(middleware.Recoverer(h.Log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	}))
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))
	r.Use(middleware.Timeout(cfg.Server.RequestTimeout))
	r.Use(chimw.Compress(5))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusNotFound, response.MsgNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, response.MsgMethodNotAllow)
	})

	// добавляем swagger
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	routes := apiRoutes(h, limiter)
	for _, base := range cfg.Server.BasePaths {
		base = strings.TrimRight(base, "/")
		if base == "" {
			routes(r)
			continue
		}
		r.Route(base, routes)
	}

	return r
}

func apiRoutes(h *api.Handler, limiter *middleware.RateLimiter) func(r chi.Router) {
	limit := func(r chi.Router) {
		if limiter != nil {
			r.Use(limiter.Middleware)
		}
	}

	return func(r chi.Router) {
		// Публичные пути
		r.Group(func(r chi.Router) {
			limit(r)
			r.Get("/health", h.Health)
			r.Route("/auth", func(r chi.Router) {
				r.Post("/register", h.Register)
				r.Post("/login", h.Login)
			})
		})
		// защищены пути, лимит после auth чтобы ключом мог быть пользователь
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(h.Svc.Auth, h.Log))
			limit(r)
			r.Route("/todos", func(r chi.Router) {
				r.Post("/", h.CreateTodo)
				r.Get("/", h.ListTodos)
				r.Get("/{id}", h.GetTodo)
				r.Patch("/{id}", h.UpdateTodo)
				r.Delete("/{id}", h.DeleteTodo)
			})
		})
	}
}
