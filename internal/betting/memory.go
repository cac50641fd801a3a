package betting

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mpoulain/f1-bet-platform/internal/catalog"
	"github.com/mpoulain/f1-bet-platform/internal/ledger"
)

// Memory implementa Store em memória sobre o ledger e o catálogo em memória.
// Todas as operações mutadoras seguram m.mu, então débito+criação e
// transição+crédito são unidades atômicas também aqui.
type Memory struct {
	mu      sync.Mutex
	ledger  *ledger.Memory
	catalog *catalog.Memory
	bets    map[string]*Bet
	order   map[string]uint64 // ordem de criação, pra listagem estável
	seq     uint64
}

func NewMemory(l *ledger.Memory, c *catalog.Memory) *Memory {
	return &Memory{
		ledger:  l,
		catalog: c,
		bets:    make(map[string]*Bet),
		order:   make(map[string]uint64),
	}
}

func (m *Memory) PlaceBet(ctx context.Context, p PlaceParams) (Bet, error) {
	if err := p.Validate(); err != nil {
		return Bet{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.catalog.HasRace(p.RaceID) {
		return Bet{}, catalog.ErrRaceNotFound
	}

	if _, err := m.ledger.Debit(ctx, p.AccountID, p.Amount); err != nil {
		return Bet{}, err
	}

	now := time.Now()
	b := Bet{
		ID:           uuid.NewString(),
		AccountID:    p.AccountID,
		RaceID:       p.RaceID,
		Market:       p.Market,
		Selection:    p.Selection,
		Amount:       p.Amount,
		Odds:         p.Odds,
		PotentialWin: PotentialWin(p.Amount, p.Odds),
		Status:       StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	m.seq++
	m.bets[b.ID] = &b
	m.order[b.ID] = m.seq
	return b, nil
}

func (m *Memory) Settle(ctx context.Context, betID string, outcome Status) (Bet, error) {
	if !ValidOutcome(outcome) {
		return Bet{}, ErrInvalidOutcome
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.bets[betID]
	if !ok {
		return Bet{}, ErrBetNotFound
	}
	if b.Status != StatusPending {
		return Bet{}, ErrAlreadySettled
	}

	// Credita antes da transição; se o crédito falhar nada mudou
	if outcome == StatusWon {
		if _, err := m.ledger.Credit(ctx, b.AccountID, b.PotentialWin); err != nil {
			return Bet{}, err
		}
	}
	b.Status = outcome
	b.UpdatedAt = time.Now()
	return *b, nil
}

func (m *Memory) GetBet(_ context.Context, betID string) (Bet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bets[betID]
	if !ok {
		return Bet{}, ErrBetNotFound
	}
	return *b, nil
}

func (m *Memory) ListByAccount(_ context.Context, accountID string) ([]Bet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Bet
	for _, b := range m.bets {
		if b.AccountID == accountID {
			out = append(out, *b)
		}
	}
	m.sortNewestFirst(out)
	return out, nil
}

func (m *Memory) ListAll(_ context.Context) ([]Bet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Bet, 0, len(m.bets))
	for _, b := range m.bets {
		out = append(out, *b)
	}
	m.sortNewestFirst(out)
	return out, nil
}

func (m *Memory) sortNewestFirst(bets []Bet) {
	sort.Slice(bets, func(i, j int) bool {
		return m.order[bets[i].ID] > m.order[bets[j].ID]
	})
}
