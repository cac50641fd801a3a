package stats

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mpoulain/f1-bet-platform/internal/betting"
	"github.com/mpoulain/f1-bet-platform/internal/ledger"
)

// AccountStats é o resumo financeiro read-only de uma conta.
// Apostas pendentes contam em PendingBets e TotalStaked, mas não entram
// em Profit: o desfecho delas ainda é indeterminado.
type AccountStats struct {
	TotalBets    int
	WonBets      int
	LostBets     int
	PendingBets  int
	TotalStaked  decimal.Decimal
	Profit       decimal.Decimal
	ROI          decimal.Decimal // percentual; 0 quando TotalStaked == 0
	AverageStake decimal.Decimal // 0 quando TotalBets == 0
	BestWin      *betting.Bet    // nil quando não há vitória
}

// Compute dobra sobre o histórico de apostas de uma conta.
// Função pura: não toca estado mutável nenhum.
func Compute(bets []betting.Bet) AccountStats {
	s := AccountStats{
		TotalStaked:  decimal.Zero,
		Profit:       decimal.Zero,
		ROI:          decimal.Zero,
		AverageStake: decimal.Zero,
	}

	wonAmount := decimal.Zero
	lostAmount := decimal.Zero

	for i := range bets {
		b := bets[i]
		s.TotalBets++
		s.TotalStaked = s.TotalStaked.Add(b.Amount)

		switch b.Status {
		case betting.StatusWon:
			s.WonBets++
			wonAmount = wonAmount.Add(b.PotentialWin)
			if s.BestWin == nil || betterWin(b, *s.BestWin) {
				cp := b
				s.BestWin = &cp
			}
		case betting.StatusLost:
			s.LostBets++
			lostAmount = lostAmount.Add(b.Amount)
		default:
			s.PendingBets++
		}
	}

	s.Profit = wonAmount.Sub(lostAmount)
	if s.TotalStaked.IsPositive() {
		s.ROI = s.Profit.Div(s.TotalStaked).Mul(decimal.NewFromInt(100))
	}
	if s.TotalBets > 0 {
		s.AverageStake = s.TotalStaked.Div(decimal.NewFromInt(int64(s.TotalBets)))
	}
	return s
}

// betterWin desempata pelo maior prêmio; empate vai pra criação mais antiga
func betterWin(a, b betting.Bet) bool {
	if !a.PotentialWin.Equal(b.PotentialWin) {
		return a.PotentialWin.GreaterThan(b.PotentialWin)
	}
	return a.CreatedAt.Before(b.CreatedAt)
}

// LeaderboardEntry é a linha do ranking global
type LeaderboardEntry struct {
	AccountID   string
	Name        string
	Email       string
	TotalBets   int
	TotalWins   int
	TotalLosses int
	WinRate     float64 // percentual 0-100, duas casas
	Profit      decimal.Decimal
	Balance     decimal.Decimal
}

// Leaderboard ranqueia todas as contas por lucro decrescente.
// Empates usam o id da conta como critério fixo: mesma entrada sempre
// sai na mesma posição pra o mesmo dado. limit <= 0 retorna tudo.
func Leaderboard(accounts []ledger.Account, bets []betting.Bet, limit int) []LeaderboardEntry {
	byAccount := make(map[string][]betting.Bet)
	for _, b := range bets {
		byAccount[b.AccountID] = append(byAccount[b.AccountID], b)
	}

	out := make([]LeaderboardEntry, 0, len(accounts))
	for _, acc := range accounts {
		s := Compute(byAccount[acc.ID])

		winRate := 0.0
		if s.TotalBets > 0 {
			winRate = math.Round(float64(s.WonBets)/float64(s.TotalBets)*100*100) / 100
		}

		out = append(out, LeaderboardEntry{
			AccountID:   acc.ID,
			Name:        acc.Name,
			Email:       acc.Email,
			TotalBets:   s.TotalBets,
			TotalWins:   s.WonBets,
			TotalLosses: s.LostBets,
			WinRate:     winRate,
			Profit:      s.Profit,
			Balance:     acc.Balance,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Profit.Equal(out[j].Profit) {
			return out[i].Profit.GreaterThan(out[j].Profit)
		}
		return out[i].AccountID < out[j].AccountID
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// PlatformStats são os totais administrativos da plataforma
type PlatformStats struct {
	TotalUsers  int
	TotalRaces  int
	ActiveBets  int
	TotalVolume decimal.Decimal
}
