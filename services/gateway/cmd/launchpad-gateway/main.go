package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"launchpad/pkg/bus"
	"launchpad/pkg/cache"
	"launchpad/pkg/db"
	"launchpad/pkg/mulearn"
	"launchpad/pkg/telemetry"
	"launchpad/services/gateway"
	"launchpad/services/hiredesk"
)

const serviceName = "launchpad-gateway"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := gateway.LoadConfig(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	shutdownTelemetry, requestMiddleware, err := telemetry.Init(ctx, serviceName)
	if err != nil {
		log.Fatal().Err(err).Msg("init telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	pool, err := db.Open(ctx, cfg.DBDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	orm, err := gorm.Open(gormpostgres.Open(cfg.DBDSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("open orm")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	defer rdb.Close()

	var responseCache *cache.Cache
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Msg("redis unreachable, serving without cache")
	} else {
		responseCache, err = cache.New(rdb, cfg.CacheTTL)
		if err != nil {
			log.Fatal().Err(err).Msg("init cache")
		}
	}

	var publisher hiredesk.Publisher
	if cfg.NATSURL != "" {
		eventBus, err := bus.Connect(cfg.NATSURL)
		if err != nil {
			log.Warn().Err(err).Msg("nats unreachable, skipping event publishing")
		} else {
			defer eventBus.Close()
			publisher = eventBus
		}
	}

	upstream, err := mulearn.New(cfg.UpstreamBaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("init upstream client")
	}

	store := &gateway.Store{
		DB:    pool,
		ORM:   orm,
		Redis: rdb,
		Bus:   publisher,
	}

	gw, err := gateway.New(store, upstream, responseCache, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("init gateway")
	}

	sweeper := cron.New()
	if _, err := sweeper.AddFunc("@every 1h", func() {
		if dropped := gw.SweepLedgers(); dropped > 0 {
			log.Info().Int("dropped", dropped).Msg("swept idle ledgers")
		}
	}); err != nil {
		log.Fatal().Err(err).Msg("schedule ledger sweep")
	}
	sweeper.Start()
	defer sweeper.Stop()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           requestMiddleware(gw.Routes()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr).Msg("starting launchpad-gateway")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown server")
	}
}
