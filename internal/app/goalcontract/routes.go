// Package goalcontract предоставляет маршруты приложения.
package goalcontract

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/bizzytext/goalcontract/internal/http/handlers/health"
	"github.com/bizzytext/goalcontract/internal/http/handlers/simulation/simulateday"
	"github.com/bizzytext/goalcontract/internal/http/handlers/simulation/testemail"
	"github.com/bizzytext/goalcontract/internal/http/handlers/user/logs"
	"github.com/bizzytext/goalcontract/internal/http/handlers/user/read"
	"github.com/bizzytext/goalcontract/internal/http/handlers/user/signup"
	"github.com/bizzytext/goalcontract/internal/http/middlewarectx"
	simulationservice "github.com/bizzytext/goalcontract/internal/services/simulation"
	userservice "github.com/bizzytext/goalcontract/internal/services/user"
	"github.com/bizzytext/goalcontract/internal/storage"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, db *storage.Storage,
	userService *userservice.UserService, simulationService *simulationservice.SimulationService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", health.New(logger, db).ServeHTTP)
		r.Post("/signup", signup.New(logger, userService).ServeHTTP)
		r.Get("/users/{id}", read.New(logger, userService).ServeHTTP)
		r.Get("/users/{id}/logs", logs.New(logger, userService).ServeHTTP)

		// Прогоны и отправки ограничены по частоте
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Post("/simulate-day/{id}", simulateday.New(logger, simulationService).ServeHTTP)
			r.Post("/send-test-email/{id}", testemail.New(logger, simulationService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
