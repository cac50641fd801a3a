package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/mpoulain/f1-bet-platform/internal/shared/config"
	"github.com/mpoulain/f1-bet-platform/internal/shared/db"
	"github.com/mpoulain/f1-bet-platform/internal/shared/kafka"
	"github.com/mpoulain/f1-bet-platform/internal/shared/logger"
	"github.com/mpoulain/f1-bet-platform/internal/shared/metrics"
	ev "github.com/mpoulain/f1-bet-platform/pkg/contracts/events"
)

// audit-worker consome os eventos de ciclo de vida das apostas e grava
// a trilha de auditoria. Só observa fatos já commitados; a liquidação
// em si é síncrona no serviço principal.
func main() {
	cfg := config.Load()
	log, err := logger.New("audit-worker", cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("pg connect", zap.Error(err))
	}
	defer pg.Close()

	placedReader := kafka.NewReader(cfg.KafkaBrokers, cfg.TopicBetPlaced, "bet-audit")
	defer placedReader.Close()

	settledReader := kafka.NewReader(cfg.KafkaBrokers, cfg.TopicBetSettled, "bet-audit")
	defer settledReader.Close()

	metricsSrv := metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		return pg.PingContext(ctx)
	})
	defer metricsSrv.Close()

	log.Info("audit-worker started",
		zap.String("consume", cfg.TopicBetPlaced+","+cfg.TopicBetSettled),
	)

	ctx := context.Background()

	go consumePlaced(ctx, log, pg, placedReader)
	consumeSettled(ctx, log, pg, settledReader)
}

func consumePlaced(ctx context.Context, log *zap.Logger, pg *sql.DB, r *kafka.Reader) {
	for {
		_, value, err := kafka.ReadNext(ctx, r)
		if err != nil {
			log.Warn("kafka read placed", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}
		var e ev.BetPlaced
		if jerr := json.Unmarshal(value, &e); jerr != nil {
			log.Error("unmarshal bet_placed", zap.Error(jerr))
			continue
		}
		if err := insertAudit(ctx, pg, e.BetID, "", "pending", "placed"); err != nil {
			log.Error("audit insert", zap.String("betId", e.BetID), zap.Error(err))
		}
	}
}

func consumeSettled(ctx context.Context, log *zap.Logger, pg *sql.DB, r *kafka.Reader) {
	for {
		_, value, err := kafka.ReadNext(ctx, r)
		if err != nil {
			log.Warn("kafka read settled", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}
		var e ev.BetSettled
		if jerr := json.Unmarshal(value, &e); jerr != nil {
			log.Error("unmarshal bet_settled", zap.Error(jerr))
			continue
		}
		reason := "settled"
		if e.Payout != "" {
			reason = "settled payout=" + e.Payout
		}
		if err := insertAudit(ctx, pg, e.BetID, "pending", e.Status, reason); err != nil {
			log.Error("audit insert", zap.String("betId", e.BetID), zap.Error(err))
		}
	}
}

func insertAudit(ctx context.Context, pg *sql.DB, betID, oldStatus, newStatus, reason string) error {
	_, err := pg.ExecContext(ctx, `
		INSERT INTO bet_audit (bet_id, old_status, new_status, reason, created_at)
		VALUES ($1,$2,$3,$4,NOW())`, betID, oldStatus, newStatus, reason)
	return err
}
