package ledger

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Memory guarda contas em memória com um lock exclusivo por conta.
// O lock por conta serializa a sequência lê-valida-escreve do saldo,
// deixando contas diferentes livres pra operar em paralelo.
type Memory struct {
	mu       sync.RWMutex
	accounts map[string]*memAccount
}

type memAccount struct {
	mu  sync.Mutex
	acc Account
}

func NewMemory() *Memory {
	return &Memory{accounts: make(map[string]*memAccount)}
}

// CreateAccount registra uma conta nova com o saldo inicial informado
func (m *Memory) CreateAccount(email, name string, balance decimal.Decimal) Account {
	m.mu.Lock()
	defer m.mu.Unlock()

	acc := Account{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      name,
		Balance:   balance,
		Role:      "user",
		CreatedAt: time.Now(),
	}
	m.accounts[acc.ID] = &memAccount{acc: acc}
	return acc
}

func (m *Memory) lookup(accountID string) (*memAccount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ma, ok := m.accounts[accountID]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return ma, nil
}

func (m *Memory) Get(_ context.Context, accountID string) (Account, error) {
	ma, err := m.lookup(accountID)
	if err != nil {
		return Account{}, err
	}
	ma.mu.Lock()
	defer ma.mu.Unlock()
	return ma.acc, nil
}

func (m *Memory) List(_ context.Context) ([]Account, error) {
	m.mu.RLock()
	out := make([]Account, 0, len(m.accounts))
	for _, ma := range m.accounts {
		ma.mu.Lock()
		out = append(out, ma.acc)
		ma.mu.Unlock()
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// SetBanned marca/desmarca o ban da conta
func (m *Memory) SetBanned(accountID string, banned bool) error {
	ma, err := m.lookup(accountID)
	if err != nil {
		return err
	}
	ma.mu.Lock()
	defer ma.mu.Unlock()
	ma.acc.Banned = banned
	return nil
}

// Locked executa fn segurando o lock exclusivo da conta.
// fn recebe uma cópia; a escrita só acontece quando fn retorna nil,
// então uma falha nunca deixa mutação parcial.
func (m *Memory) Locked(accountID string, fn func(acc *Account) error) error {
	ma, err := m.lookup(accountID)
	if err != nil {
		return err
	}
	ma.mu.Lock()
	defer ma.mu.Unlock()

	cp := ma.acc
	if err := fn(&cp); err != nil {
		return err
	}
	ma.acc = cp
	return nil
}

// Debit debita o saldo; mesma pré-condição da versão Postgres
func (m *Memory) Debit(_ context.Context, accountID string, amount decimal.Decimal) (decimal.Decimal, error) {
	var newBal decimal.Decimal
	err := m.Locked(accountID, func(acc *Account) error {
		if acc.Banned {
			return ErrAccountBanned
		}
		if acc.Balance.LessThan(amount) {
			return ErrInsufficientFunds
		}
		acc.Balance = acc.Balance.Sub(amount)
		newBal = acc.Balance
		return nil
	})
	if err != nil {
		return decimal.Zero, err
	}
	return newBal, nil
}

// Credit credita o saldo; nunca recusa para conta existente
func (m *Memory) Credit(_ context.Context, accountID string, amount decimal.Decimal) (decimal.Decimal, error) {
	var newBal decimal.Decimal
	err := m.Locked(accountID, func(acc *Account) error {
		acc.Balance = acc.Balance.Add(amount)
		newBal = acc.Balance
		return nil
	})
	if err != nil {
		return decimal.Zero, err
	}
	return newBal, nil
}

// ResetBalances volta o saldo de todas as contas ao valor informado
func (m *Memory) ResetBalances(_ context.Context, balance decimal.Decimal) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var n int64
	for _, ma := range m.accounts {
		ma.mu.Lock()
		ma.acc.Balance = balance
		ma.mu.Unlock()
		n++
	}
	return n, nil
}
