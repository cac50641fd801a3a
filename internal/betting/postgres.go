package betting

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/mpoulain/f1-bet-platform/internal/catalog"
	"github.com/mpoulain/f1-bet-platform/internal/ledger"
)

// Postgres implementa o registro de apostas e a liquidação em banco Postgres.
// Cada operação mutadora é uma transação única: o lock pessimista da conta
// (FOR UPDATE dentro do ledger) serializa o check-and-mutate do saldo.
type Postgres struct{ db *sql.DB }

func NewPostgres(db *sql.DB) *Postgres { return &Postgres{db: db} }

const betColumns = `id, account_id, race_id, market, selection, amount, odds, potential_win, status, created_at, updated_at`

// PlaceBet debita a conta e insere a aposta pendente na mesma transação.
// Falha antes de qualquer mutação durável ou desfaz a unidade inteira:
// não existe débito órfão nem aposta sem débito correspondente.
func (p *Postgres) PlaceBet(ctx context.Context, params PlaceParams) (Bet, error) {
	if err := params.Validate(); err != nil {
		return Bet{}, err
	}

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return Bet{}, err
	}
	defer tx.Rollback()

	// Referência pendurada de corrida é NotFound comum, sem confiar em cascade
	if err := catalog.RaceExists(ctx, tx, params.RaceID); err != nil {
		return Bet{}, err
	}

	if _, err := ledger.DebitTx(ctx, tx, params.AccountID, params.Amount); err != nil {
		return Bet{}, err
	}

	b := Bet{
		ID:           uuid.NewString(),
		AccountID:    params.AccountID,
		RaceID:       params.RaceID,
		Market:       params.Market,
		Selection:    params.Selection,
		Amount:       params.Amount,
		Odds:         params.Odds,
		PotentialWin: PotentialWin(params.Amount, params.Odds),
		Status:       StatusPending,
	}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO bets (id, account_id, race_id, market, selection, amount, odds, potential_win, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,'pending')
		RETURNING created_at, updated_at`,
		b.ID, b.AccountID, b.RaceID, b.Market, b.Selection, b.Amount, b.Odds, b.PotentialWin,
	).Scan(&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return Bet{}, err
	}

	if err = tx.Commit(); err != nil {
		return Bet{}, err
	}
	return b, nil
}

// Settle faz a transição terminal e credita o prêmio na mesma transação.
// O lock da linha da aposta garante crédito no máximo uma vez mesmo com
// liquidações concorrentes do mesmo betID.
func (p *Postgres) Settle(ctx context.Context, betID string, outcome Status) (Bet, error) {
	if !ValidOutcome(outcome) {
		return Bet{}, ErrInvalidOutcome
	}

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return Bet{}, err
	}
	defer tx.Rollback()

	var b Bet
	err = tx.QueryRowContext(ctx, `
		SELECT `+betColumns+` FROM bets WHERE id=$1 FOR UPDATE`, betID).
		Scan(&b.ID, &b.AccountID, &b.RaceID, &b.Market, &b.Selection,
			&b.Amount, &b.Odds, &b.PotentialWin, &b.Status, &b.CreatedAt, &b.UpdatedAt)
	if err == sql.ErrNoRows {
		return Bet{}, ErrBetNotFound
	}
	if err != nil {
		return Bet{}, err
	}

	if b.Status != StatusPending {
		return Bet{}, ErrAlreadySettled
	}

	err = tx.QueryRowContext(ctx, `
		UPDATE bets SET status=$1, updated_at=NOW() WHERE id=$2
		RETURNING updated_at`, outcome, betID).Scan(&b.UpdatedAt)
	if err != nil {
		return Bet{}, err
	}
	b.Status = outcome

	// Pagamento é sempre o potential_win capturado, nunca cotação ao vivo
	if outcome == StatusWon {
		if _, err := ledger.CreditTx(ctx, tx, b.AccountID, b.PotentialWin); err != nil {
			return Bet{}, err
		}
	}

	if err = tx.Commit(); err != nil {
		return Bet{}, err
	}
	return b, nil
}

func (p *Postgres) GetBet(ctx context.Context, betID string) (Bet, error) {
	var b Bet
	err := p.db.QueryRowContext(ctx, `
		SELECT `+betColumns+` FROM bets WHERE id=$1`, betID).
		Scan(&b.ID, &b.AccountID, &b.RaceID, &b.Market, &b.Selection,
			&b.Amount, &b.Odds, &b.PotentialWin, &b.Status, &b.CreatedAt, &b.UpdatedAt)
	if err == sql.ErrNoRows {
		return Bet{}, ErrBetNotFound
	}
	if err != nil {
		return Bet{}, err
	}
	return b, nil
}

func (p *Postgres) ListByAccount(ctx context.Context, accountID string) ([]Bet, error) {
	return p.list(ctx, `
		SELECT `+betColumns+` FROM bets
		WHERE account_id=$1
		ORDER BY created_at DESC, id`, accountID)
}

func (p *Postgres) ListAll(ctx context.Context) ([]Bet, error) {
	return p.list(ctx, `
		SELECT `+betColumns+` FROM bets
		ORDER BY created_at DESC, id`)
}

func (p *Postgres) list(ctx context.Context, q string, args ...any) ([]Bet, error) {
	rows, err := p.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Bet
	for rows.Next() {
		var b Bet
		if err := rows.Scan(&b.ID, &b.AccountID, &b.RaceID, &b.Market, &b.Selection,
			&b.Amount, &b.Odds, &b.PotentialWin, &b.Status, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
