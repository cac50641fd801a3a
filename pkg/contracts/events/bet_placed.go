package events

// Evento publicado no tópico "bet_placed" após o commit da aposta.
type BetPlaced struct {
	BetID        string `json:"bet_id"`
	AccountID    string `json:"account_id"`
	RaceID       int64  `json:"race_id"`
	Market       string `json:"market"`
	Selection    string `json:"selection"`
	Amount       string `json:"amount"`        // decimal com 2 casas, ex: "100.00"
	Odds         string `json:"odds"`          // cotação capturada na hora do palpite
	PotentialWin string `json:"potential_win"` // amount * odds
	TsUnixMs     int64  `json:"ts_unix_ms"`
}
