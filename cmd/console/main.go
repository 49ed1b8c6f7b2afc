package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"business-console/internal/api"
	"business-console/internal/config"
	"business-console/internal/consumer"
	"business-console/internal/kv"
	"business-console/internal/repository"
	"business-console/internal/service"
	"business-console/internal/sharding"
	"business-console/migrations"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

func connectDBEnv(db config.DBConfig) (*sql.DB, error) {
	var conn *sql.DB
	var err error
	for i := 0; i < 10; i++ {
		conn, err = sql.Open("mysql", db.DSN())
		if err == nil {
			err = conn.Ping()
			if err == nil {
				logger.Info().Msgf("Connected to DB %s", db.Name)
				return conn, nil
			}
		}
		logger.Warn().Msgf("Retry %d: Failed to connect to DB %s (%s:%s): %v", i+1, db.Name, db.Host, db.Port, err)
		time.Sleep(3 * time.Second)
	}
	return nil, fmt.Errorf("failed to connect to DB %s at %s:%s after retries: %v", db.Name, db.Host, db.Port, err)
}

// openStore builds the configured backend. The returned func releases it.
func openStore(cfg *config.Config, rdb *redis.Client) (kv.Store, func(), error) {
	switch cfg.StoreBackend {
	case "memory":
		return kv.NewMemoryStore(cfg.StoreQuota), func() {}, nil
	case "redis":
		return kv.NewRedisStore(rdb), func() {}, nil
	case "mysql":
		var shards []*sql.DB
		closeAll := func() {
			for _, db := range shards {
				_ = db.Close()
			}
		}
		for _, dbCfg := range cfg.DBShards {
			db, err := connectDBEnv(dbCfg)
			if err != nil {
				closeAll()
				return nil, nil, err
			}
			shards = append(shards, db)
		}
		if err := migrations.AutoMigrateKV(3, shards...); err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("failed to migrate kv_entries table: %w", err)
		}
		return kv.NewMySQLStore(shards, sharding.NewShardRouter(len(shards))), closeAll, nil
	default:
		fs, err := kv.OpenFileStore(cfg.StorePath, cfg.StoreQuota)
		if err != nil {
			return nil, nil, err
		}
		return fs, func() { _ = fs.Close() }, nil
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("Invalid configuration")
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
		})
		defer rdb.Close()
	}

	store, closeStore, err := openStore(cfg, rdb)
	if err != nil {
		logger.Fatal().Err(err).Msgf("Failed to open %s store", cfg.StoreBackend)
	}
	defer closeStore()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	profileRepo := repository.NewProfileRepository(store)
	tenantRepo := repository.NewTenantRepository(store, profileRepo)
	cartRepo := repository.NewCartRepository(store)
	tourRepo := repository.NewOnboardingRepository(store)

	notifier := service.LogNotifier{}
	authService := service.NewAuthService(profileRepo, []byte(cfg.JWTSecret))
	cartService := service.NewCartService(ctx, cartRepo, notifier)

	var orderService *service.OrderService
	if cfg.KafkaEnabled() {
		kafkaWriter := config.NewKafkaWriter(cfg.KafkaBrokers, cfg.OrderTopic)
		defer kafkaWriter.Close()
		orderService = service.NewOrderService(tenantRepo, kafkaWriter, rdb)

		reader := config.NewKafkaReader(cfg.KafkaBrokers, cfg.OrderTopic, cfg.OrderGroupID)
		defer reader.Close()
		go consumer.NewConsumer(notifier).Start(ctx, reader)
	} else {
		orderService = service.NewOrderService(tenantRepo, nil, rdb)
	}

	// Checkout goes to another console instance when one is configured.
	var creator service.OrderCreator = orderService
	if cfg.OrderServiceURL != "" {
		creator = service.NewOrderClient(cfg.OrderServiceURL, 10*time.Second)
	}
	checkoutService := service.NewCheckoutService(creator, cartService)

	e := api.NewRouter(api.Deps{
		Auth:      authService,
		Tenants:   tenantRepo,
		Cart:      cartService,
		Checkout:  checkoutService,
		Orders:    orderService,
		Tour:      tourRepo,
		JWTSecret: []byte(cfg.JWTSecret),
		RateLimit: rate.Limit(1),
		RateBurst: 3,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Server stopped")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Error shutting down server")
	}
}
