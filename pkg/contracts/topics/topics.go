package topics

const (
	// Ciclo de vida das apostas
	BetPlaced  = "bet_placed"
	BetSettled = "bet_settled"
)
