package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/trogers1052/stock-journal/internal/api"
	"github.com/trogers1052/stock-journal/internal/auth"
	"github.com/trogers1052/stock-journal/internal/cache"
	"github.com/trogers1052/stock-journal/internal/config"
	"github.com/trogers1052/stock-journal/internal/database"
	"github.com/trogers1052/stock-journal/internal/journal"
	"github.com/trogers1052/stock-journal/internal/kafka"
	"github.com/trogers1052/stock-journal/internal/logger"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	lg, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer lg.Sync()

	jwt := auth.JWT{Secret: []byte(cfg.Auth.JWTSecret), Issuer: cfg.Auth.Issuer, TokenTTL: cfg.Auth.TokenTTL}
	if len(os.Args) > 1 && os.Args[1] == "token" {
		if err := printToken(os.Stdout, jwt, os.Args[2:]); err != nil {
			lg.Fatal("failed to issue token", zap.Error(err))
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewWithOptions(cfg.Database.ConnectionString(), database.PoolOptions{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		lg.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := db.Migrate(); err != nil {
			lg.Fatal("failed to migrate database", zap.Error(err))
		}
	}

	var store cache.Store
	if cfg.Redis.Enabled {
		rs, err := cache.NewRedisStore(ctx, &redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			lg.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer rs.Close()
		store = rs
	} else {
		lg.Info("redis disabled, sign-outs are kept in memory")
		store = cache.NewMemoryStore()
	}
	revocations := auth.NewRevocations(store)

	instanceID := uuid.NewString()
	var events journal.EventPublisher
	if cfg.Kafka.Enabled {
		producer := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, instanceID)
		defer producer.Close()
		events = producer
	}

	registry := journal.NewRegistry(db, events, lg)

	if cfg.Kafka.Enabled {
		consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.Topic,
			cfg.Kafka.GroupID+"-"+instanceID, instanceID, registry, lg)
		go func() {
			if err := consumer.Start(ctx); err != nil {
				lg.Error("journal event consumer stopped", zap.Error(err))
			}
		}()
	}

	handler := api.NewHandler(registry, revocations, db, lg)
	router := api.SetupRoutes(handler, auth.Middleware(jwt, revocations, lg))

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		lg.Info("stock journal listening",
			zap.String("addr", srv.Addr),
			zap.String("instance_id", instanceID),
			zap.Bool("kafka", cfg.Kafka.Enabled),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal("listen", zap.Error(err))
		}
	}()

	<-ctx.Done()
	lg.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("graceful shutdown failed", zap.Error(err))
	}
}
