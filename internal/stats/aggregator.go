package stats

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/mpoulain/f1-bet-platform/internal/betting"
	"github.com/mpoulain/f1-bet-platform/internal/ledger"
)

// AccountSource é a leitura de contas consumida pelo agregador
type AccountSource interface {
	Get(ctx context.Context, accountID string) (ledger.Account, error)
	List(ctx context.Context) ([]ledger.Account, error)
}

// BetSource é a leitura do histórico de apostas já commitado
type BetSource interface {
	ListByAccount(ctx context.Context, accountID string) ([]betting.Bet, error)
	ListAll(ctx context.Context) ([]betting.Bet, error)
}

// RaceCounter conta as corridas do catálogo (só pros totais administrativos)
type RaceCounter interface {
	CountRaces(ctx context.Context) (int, error)
}

// Aggregator computa os resumos financeiros sob demanda.
// Só lê; não guarda estado próprio além do cache opcional do ranking.
type Aggregator struct {
	Accounts AccountSource
	Bets     BetSource
	Races    RaceCounter
	Cache    *Cache // nil desliga o cache
}

func (a *Aggregator) AccountStats(ctx context.Context, accountID string) (AccountStats, error) {
	if _, err := a.Accounts.Get(ctx, accountID); err != nil {
		return AccountStats{}, err
	}
	bets, err := a.Bets.ListByAccount(ctx, accountID)
	if err != nil {
		return AccountStats{}, err
	}
	return Compute(bets), nil
}

func (a *Aggregator) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if a.Cache != nil {
		var cached []LeaderboardEntry
		if ok, _ := a.Cache.GetLeaderboard(ctx, &cached); ok {
			return truncate(cached, limit), nil
		}
	}

	accounts, err := a.Accounts.List(ctx)
	if err != nil {
		return nil, err
	}
	bets, err := a.Bets.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	full := Leaderboard(accounts, bets, 0)
	if a.Cache != nil {
		_ = a.Cache.SetLeaderboard(ctx, full)
	}
	return truncate(full, limit), nil
}

func (a *Aggregator) Platform(ctx context.Context) (PlatformStats, error) {
	accounts, err := a.Accounts.List(ctx)
	if err != nil {
		return PlatformStats{}, err
	}
	bets, err := a.Bets.ListAll(ctx)
	if err != nil {
		return PlatformStats{}, err
	}

	s := PlatformStats{
		TotalUsers:  len(accounts),
		TotalVolume: decimal.Zero,
	}
	if a.Races != nil {
		if s.TotalRaces, err = a.Races.CountRaces(ctx); err != nil {
			return PlatformStats{}, err
		}
	}
	for _, b := range bets {
		if b.Status == betting.StatusPending {
			s.ActiveBets++
		}
		s.TotalVolume = s.TotalVolume.Add(b.Amount)
	}
	return s, nil
}

func truncate(entries []LeaderboardEntry, limit int) []LeaderboardEntry {
	if limit > 0 && len(entries) > limit {
		return entries[:limit]
	}
	return entries
}
