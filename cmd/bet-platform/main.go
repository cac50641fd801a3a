package main

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/mpoulain/f1-bet-platform/internal/betting"
	"github.com/mpoulain/f1-bet-platform/internal/catalog"
	"github.com/mpoulain/f1-bet-platform/internal/httpapi"
	"github.com/mpoulain/f1-bet-platform/internal/ledger"
	"github.com/mpoulain/f1-bet-platform/internal/producer"
	"github.com/mpoulain/f1-bet-platform/internal/shared/cache"
	"github.com/mpoulain/f1-bet-platform/internal/shared/config"
	"github.com/mpoulain/f1-bet-platform/internal/shared/db"
	"github.com/mpoulain/f1-bet-platform/internal/shared/kafka"
	"github.com/mpoulain/f1-bet-platform/internal/shared/logger"
	"github.com/mpoulain/f1-bet-platform/internal/shared/metrics"
	"github.com/mpoulain/f1-bet-platform/internal/stats"
)

func main() {
	cfg := config.Load()
	log, _ := logger.New(cfg.ServiceName, cfg.Env)
	defer log.Sync()

	// Postgres
	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("pg", zap.Error(err))
	}
	defer pg.Close()

	// Redis
	rdb, err := cache.ConnectRedis(cfg.RedisAddr)
	if err != nil {
		log.Fatal("redis", zap.Error(err))
	}

	// Kafka writers (eventos de ciclo de vida)
	placedWriter := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicBetPlaced)
	defer placedWriter.Close()
	settledWriter := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicBetSettled)
	defer settledWriter.Close()

	// deps
	accounts := ledger.NewPostgres(pg)
	store := betting.NewPostgres(pg)
	cat := catalog.NewPostgres(pg)
	odds := catalog.NewCached(cat, rdb)
	publ := producer.NewKafkaPublisher(placedWriter, settledWriter)

	agg := &stats.Aggregator{
		Accounts: accounts,
		Bets:     store,
		Races:    cat,
		Cache:    stats.NewCache(rdb),
	}

	// HTTP público
	api := httpapi.NewServer(log, store, odds, cat, agg, publ)
	apiSrv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler: api.Router(),
	}

	// metrics/health em porta separada
	metricsSrv := metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		if err := pg.PingContext(ctx); err != nil {
			return err
		}
		return rdb.Ping(ctx).Err()
	})
	defer metricsSrv.Close()
	log.Info("metrics/health", zap.String("addr", metricsSrv.Addr))

	log.Info("bet-platform listening", zap.String("addr", apiSrv.Addr))
	if err := apiSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("api", zap.Error(err))
	}
}
