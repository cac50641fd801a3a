package betting

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Market é a categoria de resultado apostado
type Market string

const (
	MarketWinner Market = "winner"
	MarketPodium Market = "podium"
	MarketPole   Market = "pole"
)

func (m Market) Valid() bool {
	switch m {
	case MarketWinner, MarketPodium, MarketPole:
		return true
	}
	return false
}

// Status é o estado do ciclo de vida da aposta.
// Máquina de um sentido só: pending -> won | lost, ambos terminais.
type Status string

const (
	StatusPending Status = "pending"
	StatusWon     Status = "won"
	StatusLost    Status = "lost"
)

// ValidOutcome diz se o status é um desfecho terminal de liquidação
func ValidOutcome(s Status) bool { return s == StatusWon || s == StatusLost }

// Bet é o modelo persistido de uma aposta.
// Odds é a cotação capturada na hora do palpite; edições posteriores do
// catálogo nunca mudam o prêmio de uma aposta já feita.
type Bet struct {
	ID           string
	AccountID    string
	RaceID       int64
	Market       Market
	Selection    string
	Amount       decimal.Decimal
	Odds         decimal.Decimal
	PotentialWin decimal.Decimal
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PotentialWin deriva o prêmio potencial: função pura de (amount, odds),
// calculada na construção e nunca recalculada na liquidação.
func PotentialWin(amount, odds decimal.Decimal) decimal.Decimal {
	return amount.Mul(odds)
}

var (
	ErrValidation     = errors.New("invalid bet")
	ErrBetNotFound    = errors.New("bet not found")
	ErrAlreadySettled = errors.New("bet already settled")
	ErrInvalidOutcome = errors.New("invalid outcome")
)

// PlaceParams são os dados de entrada de um palpite
type PlaceParams struct {
	AccountID string
	RaceID    int64
	Market    Market
	Selection string
	Amount    decimal.Decimal
	Odds      decimal.Decimal // cotação capturada
}

// Validate checa os campos antes de qualquer mutação durável
func (p PlaceParams) Validate() error {
	if p.AccountID == "" {
		return fmt.Errorf("%w: accountId required", ErrValidation)
	}
	if p.RaceID <= 0 {
		return fmt.Errorf("%w: raceId required", ErrValidation)
	}
	if !p.Market.Valid() {
		return fmt.Errorf("%w: unknown market %q", ErrValidation, p.Market)
	}
	if p.Selection == "" {
		return fmt.Errorf("%w: selection required", ErrValidation)
	}
	if !p.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	if !p.Odds.IsPositive() {
		return fmt.Errorf("%w: odds must be positive", ErrValidation)
	}
	return nil
}
