package betting

import "context"

// Store é o contrato do registro de apostas + motor de liquidação.
//
// PlaceBet e Settle são unidades atômicas: o débito e a criação da aposta
// (ou a transição de status e o crédito) acontecem juntos ou não acontecem.
type Store interface {
	// PlaceBet valida, debita a conta e cria a aposta pendente.
	PlaceBet(ctx context.Context, p PlaceParams) (Bet, error)

	// Settle resolve uma aposta pendente para won|lost e credita o
	// potential_win capturado quando o desfecho é won. Segunda tentativa
	// falha com ErrAlreadySettled; nunca é silenciosamente idempotente.
	Settle(ctx context.Context, betID string, outcome Status) (Bet, error)

	GetBet(ctx context.Context, betID string) (Bet, error)

	// ListByAccount retorna as apostas da conta, mais recente primeiro.
	ListByAccount(ctx context.Context, accountID string) ([]Bet, error)

	// ListAll é a listagem administrativa, ordem estável.
	ListAll(ctx context.Context) ([]Bet, error)
}
