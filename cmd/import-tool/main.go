package main

import (
	"context"
	"flag"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mpoulain/f1-bet-platform/internal/catalog"
	"github.com/mpoulain/f1-bet-platform/internal/ledger"
	"github.com/mpoulain/f1-bet-platform/internal/shared/config"
	"github.com/mpoulain/f1-bet-platform/internal/shared/db"
	"github.com/mpoulain/f1-bet-platform/internal/shared/logger"
)

// import-tool é o colaborador administrativo de carga em massa.
// Apaga e recarrega o catálogo inteiro; o núcleo do ledger nunca depende
// dessa estabilidade e trata referência pendurada como NotFound comum.
//
// Uso: import-tool -step=clean|drivers|races|odds|all
func main() {
	step := flag.String("step", "all", "clean | drivers | races | odds | all")
	resetBalance := flag.String("reset-balance", "1000.00", "saldo aplicado a todas as contas no clean")
	flag.Parse()

	cfg := config.Load()
	log, _ := logger.New("import-tool", cfg.Env)
	defer log.Sync()

	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("pg", zap.Error(err))
	}
	defer pg.Close()

	imp := catalog.NewImporter(pg)
	accounts := ledger.NewPostgres(pg)
	ctx := context.Background()

	runClean := func() {
		counts, err := imp.Clean(ctx)
		if err != nil {
			log.Fatal("clean", zap.Error(err))
		}
		bal, err := decimal.NewFromString(*resetBalance)
		if err != nil {
			log.Fatal("reset-balance", zap.Error(err))
		}
		n, err := accounts.ResetBalances(ctx, bal)
		if err != nil {
			log.Fatal("reset balances", zap.Error(err))
		}
		log.Info("clean done",
			zap.Int64("bets", counts.Bets),
			zap.Int64("raceOdds", counts.RaceOdds),
			zap.Int64("races", counts.Races),
			zap.Int64("drivers", counts.Drivers),
			zap.Int64("accountsReset", n),
		)
	}
	runDrivers := func() {
		n, err := imp.ImportDrivers(ctx)
		if err != nil {
			log.Fatal("import drivers", zap.Error(err))
		}
		log.Info("drivers imported", zap.Int("count", n))
	}
	runRaces := func() {
		n, err := imp.ImportRaces(ctx)
		if err != nil {
			log.Fatal("import races", zap.Error(err))
		}
		log.Info("races imported", zap.Int("count", n))
	}
	runOdds := func() {
		n, err := imp.LinkOdds(ctx)
		if err != nil {
			log.Fatal("link odds", zap.Error(err))
		}
		log.Info("odds linked", zap.Int("count", n))
	}

	switch *step {
	case "clean":
		runClean()
	case "drivers":
		runDrivers()
	case "races":
		runRaces()
	case "odds":
		runOdds()
	case "all":
		runClean()
		runDrivers()
		runRaces()
		runOdds()
	default:
		log.Fatal("unknown step", zap.String("step", *step))
	}
}
