package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type BetResponse struct {
	BetID        string          `json:"betId"`
	AccountID    string          `json:"accountId"`
	RaceID       int64           `json:"raceId"`
	Market       string          `json:"market"`
	Selection    string          `json:"selection"`
	Amount       decimal.Decimal `json:"amount"`
	Odds         decimal.Decimal `json:"odds"`
	PotentialWin decimal.Decimal `json:"potentialWin"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

type BetListResponse struct {
	Bets []BetResponse `json:"bets"`
}

type AccountStatsResponse struct {
	TotalBets    int             `json:"totalBets"`
	WonBets      int             `json:"wonBets"`
	LostBets     int             `json:"lostBets"`
	PendingBets  int             `json:"pendingBets"`
	TotalStaked  decimal.Decimal `json:"totalStaked"`
	Profit       decimal.Decimal `json:"profit"`
	ROI          decimal.Decimal `json:"roi"`
	AverageStake decimal.Decimal `json:"averageStake"`
	BestWin      *BetResponse    `json:"bestWin,omitempty"`
}

type LeaderboardEntryResponse struct {
	AccountID   string          `json:"accountId"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	TotalBets   int             `json:"totalBets"`
	TotalWins   int             `json:"totalWins"`
	TotalLosses int             `json:"totalLosses"`
	WinRate     float64         `json:"winRate"`
	Profit      decimal.Decimal `json:"profit"`
	Balance     decimal.Decimal `json:"balance"`
}

type LeaderboardResponse struct {
	Leaderboard []LeaderboardEntryResponse `json:"leaderboard"`
}

type PlatformStatsResponse struct {
	TotalUsers  int             `json:"totalUsers"`
	TotalRaces  int             `json:"totalRaces"`
	ActiveBets  int             `json:"activeBets"`
	TotalVolume decimal.Decimal `json:"totalVolume"`
}

type RaceResponse struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Circuit  string          `json:"circuit"`
	City     string          `json:"city"`
	Country  string          `json:"country"`
	Flag     string          `json:"flag"`
	Date     string          `json:"date"` // YYYY-MM-DD
	Laps     int             `json:"laps"`
	Distance decimal.Decimal `json:"distance"`
}

type RaceListResponse struct {
	Races []RaceResponse `json:"races"`
}

type RaceDriverResponse struct {
	DriverID   int64           `json:"driverId"`
	Name       string          `json:"name"`
	Team       string          `json:"team"`
	WinnerOdds decimal.Decimal `json:"winnerOdds"`
	PodiumOdds decimal.Decimal `json:"podiumOdds"`
	PoleOdds   decimal.Decimal `json:"poleOdds"`
}

type RaceDriverListResponse struct {
	Drivers []RaceDriverResponse `json:"drivers"`
}
