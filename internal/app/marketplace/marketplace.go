// Package marketplace собирает основное HTTP-приложение маркетплейса:
// подключения к MongoDB, redis и RabbitMQ, бизнес-сервисы и маршруты.
package marketplace

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/business-marketplace/internal/cache"
	"github.com/magabrotheeeer/business-marketplace/internal/config"
	"github.com/magabrotheeeer/business-marketplace/internal/lib/jwt"
	"github.com/magabrotheeeer/business-marketplace/internal/rabbitmq"
	authservice "github.com/magabrotheeeer/business-marketplace/internal/services/auth"
	documentservice "github.com/magabrotheeeer/business-marketplace/internal/services/document"
	listingservice "github.com/magabrotheeeer/business-marketplace/internal/services/listing"
	metaservice "github.com/magabrotheeeer/business-marketplace/internal/services/meta"
	notifyservice "github.com/magabrotheeeer/business-marketplace/internal/services/notify"
	paymentservice "github.com/magabrotheeeer/business-marketplace/internal/services/payment"
	"github.com/magabrotheeeer/business-marketplace/internal/storage"
	"github.com/magabrotheeeer/business-marketplace/internal/storage/repository"
)

// App объединяет HTTP-сервер и внешние подключения маркетплейса.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage
	conn   *amqp.Connection
	ch     *amqp.Channel
}

// New создает приложение маркетплейса: подключается к внешним системам,
// собирает сервисы, регистрирует маршруты и при пустой коллекции
// заполняет каталог примерами листингов.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(ctx, cfg.MongoConnection)
	if err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}
	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
	if err != nil {
		conn.Close()
		return nil, err
	}

	repo := repository.New(db.Db)
	notifier := notifyservice.New(ch)
	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	authService := authservice.New(repo, jwtMaker, notifier, logger)
	listingService := listingservice.New(repo, notifier, logger)
	paymentService := paymentservice.New(repo, repo,
		paymentservice.NewRandomDecider(cfg.Payments.SuccessRate),
		cfg.Payments.SubscriptionTerm, logger)
	documentService := documentservice.New(repo, cfg.Documents, logger)
	metaService := metaservice.New(cacheRedis, logger)

	if err := seedSampleListings(ctx, repo, logger); err != nil {
		return nil, err
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg,
		authService, listingService, paymentService, documentService, metaService)

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
		conn:   conn,
		ch:     ch,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его по отмене контекста.
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
		if closeErr := a.ch.Close(); closeErr != nil {
			a.logger.Error("failed to close rabbitmq channel", slog.Any("err", closeErr))
		}
		if closeErr := a.conn.Close(); closeErr != nil {
			a.logger.Error("failed to close rabbitmq connection", slog.Any("err", closeErr))
		}
		if closeErr := a.db.Close(timeoutCtx); closeErr != nil {
			a.logger.Error("failed to close mongodb connection", slog.Any("err", closeErr))
		}
		return err
	}
}
