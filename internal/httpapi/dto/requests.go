package dto

import "github.com/shopspring/decimal"

type PlaceBetRequest struct {
	AccountID string          `json:"accountId"`
	RaceID    int64           `json:"raceId"`
	Market    string          `json:"market"`    // "winner" | "podium" | "pole"
	Selection string          `json:"selection"` // nome do piloto
	Amount    decimal.Decimal `json:"amount"`
	Odds      decimal.Decimal `json:"odds"` // cotação que o cliente viu
}

type SettleBetRequest struct {
	Result string `json:"result"` // "won" | "lost"
}
