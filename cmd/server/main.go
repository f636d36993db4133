package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bazaar-be/internal/api"
	"bazaar-be/internal/cart"
	"bazaar-be/internal/checkout"
	"bazaar-be/internal/config"
	"bazaar-be/internal/db"
	"bazaar-be/internal/docstore"
	"bazaar-be/internal/inventory"
	"bazaar-be/internal/logger"
	"bazaar-be/internal/order"
	"bazaar-be/internal/pricing"
	"bazaar-be/internal/settings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

var (
	initDBFunc      = db.InitDB
	initMongoFunc   = docstore.InitMongo
	startServerFunc = startServer
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	mongoClient := initMongoFunc(cfg)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(ctx)
	}()
	orders := docstore.Database(mongoClient, cfg).Collection(order.CollectionName)

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
	}

	handler := newServer(cfg, database, orders, rdb)

	logger.L().Info("checkout service starting", zap.String("port", cfg.AppPort))
	return startServerFunc(":"+cfg.AppPort, handler)
}

// newServer wires the stores and services behind the HTTP router. Redis
// is optional; without it settings are read from Postgres on every load.
func newServer(cfg *config.Config, database *sql.DB, orders *mongo.Collection, rdb *redis.Client) http.Handler {
	var (
		source  settings.Source = settings.NewRepository(database)
		apiOpts []api.HandlerOption
	)
	if rdb != nil {
		cache := settings.NewRedisCache(rdb, source, settings.WithTTL(cfg.SettingsCacheTTL))
		source = cache
		apiOpts = append(apiOpts, api.WithSettingsCache(cache))
	}

	defaults := settings.DefaultsFromConfig(cfg)
	provider := settings.NewProvider(source, defaults, cfg.CollaboratorTimeout)
	guard := inventory.NewGuard(inventory.NewRepository(database), cfg.StockCASMaxAttempts, cfg.CollaboratorTimeout)
	orderRepo := order.NewRepository(orders)

	checkoutSvc := checkout.NewService(
		provider,
		pricing.NewEngine(defaults),
		guard,
		orderRepo,
		checkout.WithTimeout(cfg.CollaboratorTimeout),
	)

	h := api.NewHandler(cart.NewStore(), checkoutSvc, order.NewService(orderRepo), apiOpts...)
	return setupRouter(h)
}

func setupRouter(h *api.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Mount("/", api.NewRouter(h))
	return r
}

// startServer serves until SIGINT or SIGTERM, then drains in-flight
// requests.
func startServer(addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.L().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
