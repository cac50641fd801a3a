package ledger

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Account é o modelo persistido de uma conta com saldo monetário.
// O saldo só muda via Debit/Credit (ou reset administrativo do import-tool).
type Account struct {
	ID        string
	Email     string
	Name      string
	Balance   decimal.Decimal
	Role      string // "user" | "admin"
	Banned    bool
	CreatedAt time.Time
}

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrAccountBanned     = errors.New("account banned")
	ErrAccountNotFound   = errors.New("account not found")
)
