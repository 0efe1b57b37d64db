package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/techshop/catalog/internal/config"
	"github.com/techshop/catalog/internal/engine"
	esengine "github.com/techshop/catalog/internal/engine/elasticsearch"
	memengine "github.com/techshop/catalog/internal/engine/memory"
	"github.com/techshop/catalog/internal/event"
	handler "github.com/techshop/catalog/internal/handler/http"
	mongorepo "github.com/techshop/catalog/internal/repository/mongo"
	"github.com/techshop/catalog/internal/service"
	"github.com/techshop/catalog/internal/syncer"
	"github.com/techshop/catalog/pkg/database"
	"github.com/techshop/catalog/pkg/health"
	pkgkafka "github.com/techshop/catalog/pkg/kafka"
)

// App wires together all dependencies and runs the catalog service.
type App struct {
	cfg         *config.Config
	logger      *slog.Logger
	mongoClient *mongo.Client
	cache       *redis.Client
	consumers   []*pkgkafka.Consumer
	httpServer  *http.Server
	sync        *syncer.Synchronizer
}

// NewApp creates the application, connecting to every backing service. An
// unreachable primary store or search engine is a startup failure: serving
// queries against a missing index would only produce confusing empty
// results later.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	mongoClient, err := database.NewMongoClient(ctx, database.MongoConfig{
		URI:      cfg.MongoURI,
		Database: cfg.MongoDatabase,
	})
	if err != nil {
		return nil, fmt.Errorf("init mongodb: %w", err)
	}
	db := mongoClient.Database(cfg.MongoDatabase)
	products := mongorepo.NewProductRepository(db)
	categories := mongorepo.NewCategoryRepository(db)
	logger.Info("mongodb connected", slog.String("database", cfg.MongoDatabase))

	var eng engine.SearchEngine
	var esEng *esengine.Engine
	switch cfg.SearchEngine {
	case "elasticsearch":
		esEng, err = esengine.New(cfg.ElasticsearchURL, cfg.ElasticsearchIndex, logger)
		if err != nil {
			return nil, fmt.Errorf("init elasticsearch engine: %w", err)
		}
		if err := esEng.Ping(ctx); err != nil {
			return nil, fmt.Errorf("elasticsearch unreachable: %w", err)
		}
		eng = esEng
		logger.Info("elasticsearch engine initialized",
			slog.String("url", cfg.ElasticsearchURL),
			slog.String("index", cfg.ElasticsearchIndex),
		)
	default:
		eng = memengine.New()
		logger.Info("in-memory search engine initialized")
	}

	sync := syncer.New(products, categories, eng, logger)

	// The category cache is optional; a missing Redis degrades to direct
	// store reads instead of failing startup.
	var cache *redis.Client
	if cfg.RedisAddr != "" {
		cache, err = database.NewRedisClient(ctx, database.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			logger.Warn("redis unavailable, category caching disabled", slog.String("error", err.Error()))
			cache = nil
		} else {
			logger.Info("redis cache connected", slog.String("addr", cfg.RedisAddr))
		}
	}

	catalog := service.New(eng, products, categories, cache, logger)

	var consumers []*pkgkafka.Consumer
	if len(cfg.KafkaBrokers) > 0 {
		eventConsumer := event.NewConsumer(sync, logger)
		topics := []string{
			event.TypeProductCreated,
			event.TypeProductUpdated,
			event.TypeProductDeleted,
		}
		for _, topic := range topics {
			consumers = append(consumers, pkgkafka.NewConsumer(pkgkafka.ConsumerConfig{
				Brokers:  cfg.KafkaBrokers,
				GroupID:  cfg.KafkaGroupID,
				Topic:    topic,
				MinBytes: 1,
				MaxBytes: 10e6,
			}, eventConsumer.Handle, logger))
		}
		logger.Info("kafka consumers initialized",
			slog.Any("brokers", cfg.KafkaBrokers),
			slog.Int("topic_count", len(topics)),
		)
	}

	healthHandler := health.NewHandler()
	healthHandler.Register("mongodb", func(ctx context.Context) error {
		return mongoClient.Ping(ctx, readpref.Primary())
	})
	if esEng != nil {
		healthHandler.Register("elasticsearch", esEng.Ping)
	}
	if len(cfg.KafkaBrokers) > 0 {
		healthHandler.Register("kafka", func(ctx context.Context) error {
			return pkgkafka.PingBrokers(ctx, cfg.KafkaBrokers)
		})
	}

	router := handler.NewRouter(catalog, sync, healthHandler, logger)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:         cfg,
		logger:      logger,
		mongoClient: mongoClient,
		cache:       cache,
		consumers:   consumers,
		httpServer:  httpServer,
		sync:        sync,
	}, nil
}

// Run rebuilds the search index, then starts the HTTP server and Kafka
// consumers, blocking until the context is canceled. A failed schema reset
// aborts startup; a resync that merely skipped documents does not.
func (a *App) Run(ctx context.Context) error {
	if err := a.sync.Run(ctx); err != nil {
		return fmt.Errorf("initial index build: %w", err)
	}

	errCh := make(chan error, 1+len(a.consumers))

	for _, c := range a.consumers {
		go func() {
			if err := c.Start(ctx); err != nil {
				errCh <- fmt.Errorf("kafka consumer: %w", err)
			}
		}()
	}

	go func() {
		a.logger.Info("starting HTTP server", slog.String("addr", a.httpServer.Addr))
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	for _, c := range a.consumers {
		if err := c.Close(); err != nil {
			a.logger.Error("kafka consumer close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	if err := a.mongoClient.Disconnect(shutdownCtx); err != nil {
		a.logger.Error("mongodb disconnect error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}
