package events

// Evento publicado no tópico "bet_settled" após a liquidação de uma aposta.
type BetSettled struct {
	BetID     string `json:"bet_id"`
	AccountID string `json:"account_id"`
	Status    string `json:"status"` // "won" | "lost"
	Payout    string `json:"payout,omitempty"`
	TsUnixMs  int64  `json:"ts_unix_ms"`
}
