// Package goalcontract собирает приложение: хранилище, кеш, провайдеров
// доставки, генератор текста, сервисы и HTTP-сервер.
package goalcontract

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/bizzytext/goalcontract/internal/cache"
	"github.com/bizzytext/goalcontract/internal/config"
	"github.com/bizzytext/goalcontract/internal/emailprovider"
	"github.com/bizzytext/goalcontract/internal/generation"
	"github.com/bizzytext/goalcontract/internal/lib/rabbitmq"
	"github.com/bizzytext/goalcontract/internal/lib/sl"
	"github.com/bizzytext/goalcontract/internal/migrations"
	simulationservice "github.com/bizzytext/goalcontract/internal/services/simulation"
	userservice "github.com/bizzytext/goalcontract/internal/services/user"
	"github.com/bizzytext/goalcontract/internal/smsprovider"
	"github.com/bizzytext/goalcontract/internal/storage"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage
	amqp   *amqp.Connection // nil — публикация событий отключена
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	generator, err := generation.NewClient(ctx, cfg.GenAPIKey, cfg.GenModel, cfg.GenTimeout)
	if err != nil {
		return nil, err
	}

	smsClient := smsprovider.NewClient(cfg.SMSAccountSID, cfg.SMSAuthToken,
		cfg.SMSFromNumber, cfg.SMSSimulate, cfg.SMSTimeout)
	emailClient := emailprovider.NewClient(cfg.EmailAPIKey, cfg.EmailFromAddress, cfg.EmailTimeout)

	var amqpConn *amqp.Connection
	var events simulationservice.EventPublisher
	if cfg.RabbitURL != "" {
		amqpConn, err = rabbitmq.Connect(cfg.RabbitURL, 5, 3*time.Second)
		if err != nil {
			return nil, err
		}
		ch, err := rabbitmq.SetupChannel(amqpConn, rabbitmq.GetMessageQueues())
		if err != nil {
			return nil, err
		}
		events = simulationservice.NewAMQPPublisher(ch)
	} else {
		logger.Info("rabbit_url is empty, dispatched events disabled")
	}

	userService := userservice.NewUserService(db, cacheRedis, logger)
	simulationService := simulationservice.NewSimulationService(
		db, generator, smsClient, emailClient, events, cfg.DemoPause, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, db, userService, simulationService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		amqp:   amqpConn,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if closeErr := a.db.DB.Close(); closeErr != nil {
			a.logger.Error("failed to close database", sl.Err(closeErr))
		}
		if a.amqp != nil {
			if closeErr := a.amqp.Close(); closeErr != nil {
				a.logger.Error("failed to close amqp connection", sl.Err(closeErr))
			}
		}
		return err
	}
}
