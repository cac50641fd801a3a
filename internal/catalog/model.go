package catalog

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Race é um Grande Prêmio do calendário
type Race struct {
	ID       int64
	Name     string
	Circuit  string
	City     string
	Country  string
	Flag     string
	Date     time.Time
	Laps     int
	Distance decimal.Decimal // km
}

// Driver é um piloto do grid
type Driver struct {
	ID      int64
	Name    string
	Team    string
	Country string
	Flag    string
	Number  int
}

// RaceEntry associa um piloto a uma corrida com as três cotações do momento.
// As cotações são dados de catálogo mutáveis; a aposta captura o valor na hora.
type RaceEntry struct {
	RaceID     int64
	DriverID   int64
	DriverName string
	Team       string
	WinnerOdds decimal.Decimal
	PodiumOdds decimal.Decimal
	PoleOdds   decimal.Decimal
}

var (
	ErrRaceNotFound   = errors.New("race not found")
	ErrDriverNotFound = errors.New("driver not found")
	ErrOddsNotFound   = errors.New("odds not found")
)
