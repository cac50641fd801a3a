package ledger

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Postgres implementa as operações de conta/saldo em banco Postgres
type Postgres struct{ db *sql.DB }

func NewPostgres(db *sql.DB) *Postgres { return &Postgres{db: db} }

// Get retorna a conta pelo id
func (p *Postgres) Get(ctx context.Context, accountID string) (Account, error) {
	var a Account
	err := p.db.QueryRowContext(ctx, `
		SELECT id, email, name, balance, role, banned, created_at
		FROM accounts WHERE id=$1`, accountID).
		Scan(&a.ID, &a.Email, &a.Name, &a.Balance, &a.Role, &a.Banned, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return Account{}, ErrAccountNotFound
	}
	if err != nil {
		return Account{}, err
	}
	return a, nil
}

// List retorna todas as contas, ordenadas por data de criação
func (p *Postgres) List(ctx context.Context) ([]Account, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, email, name, balance, role, banned, created_at
		FROM accounts ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Account
	for rows.Next() {
		var a Account
		if err := rows.Scan(&a.ID, &a.Email, &a.Name, &a.Balance, &a.Role, &a.Banned, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Create insere uma conta nova (usada pelo import-tool para contas de demonstração)
func (p *Postgres) Create(ctx context.Context, email, name string, balance decimal.Decimal) (Account, error) {
	id := uuid.NewString()
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO accounts(id, email, name, balance, role, banned)
		VALUES($1,$2,$3,$4,'user',false)`,
		id, email, name, balance)
	if err != nil {
		return Account{}, err
	}
	return p.Get(ctx, id)
}

// Debit debita o saldo da conta em transação própria.
// Falha com ErrInsufficientFunds ou ErrAccountBanned sem alterar nada.
func (p *Postgres) Debit(ctx context.Context, accountID string, amount decimal.Decimal) (decimal.Decimal, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return decimal.Zero, err
	}
	defer tx.Rollback()

	newBal, err := DebitTx(ctx, tx, accountID, amount)
	if err != nil {
		return decimal.Zero, err
	}

	if err = tx.Commit(); err != nil {
		return decimal.Zero, err
	}
	return newBal, nil
}

// Credit credita o saldo da conta em transação própria.
// Crédito nunca é recusado para conta válida: ban bloqueia apostas novas, não pagamentos.
func (p *Postgres) Credit(ctx context.Context, accountID string, amount decimal.Decimal) (decimal.Decimal, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return decimal.Zero, err
	}
	defer tx.Rollback()

	newBal, err := CreditTx(ctx, tx, accountID, amount)
	if err != nil {
		return decimal.Zero, err
	}

	if err = tx.Commit(); err != nil {
		return decimal.Zero, err
	}
	return newBal, nil
}

// ResetBalances volta o saldo de todas as contas ao valor informado (operação administrativa)
func (p *Postgres) ResetBalances(ctx context.Context, balance decimal.Decimal) (int64, error) {
	res, err := p.db.ExecContext(ctx, `UPDATE accounts SET balance=$1`, balance)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DebitTx debita dentro de uma transação do chamador.
// Garante lock pessimista na linha da conta; a pré-condição de saldo impede
// qualquer saldo negativo (nunca há clamp depois do fato).
func DebitTx(ctx context.Context, tx *sql.Tx, accountID string, amount decimal.Decimal) (decimal.Decimal, error) {
	var balance decimal.Decimal
	var banned bool
	err := tx.QueryRowContext(ctx,
		`SELECT balance, banned FROM accounts WHERE id=$1 FOR UPDATE`, accountID).
		Scan(&balance, &banned)
	if err == sql.ErrNoRows {
		return decimal.Zero, ErrAccountNotFound
	}
	if err != nil {
		return decimal.Zero, err
	}

	if banned {
		return decimal.Zero, ErrAccountBanned
	}
	if balance.LessThan(amount) {
		return decimal.Zero, ErrInsufficientFunds
	}

	var newBal decimal.Decimal
	err = tx.QueryRowContext(ctx,
		`UPDATE accounts SET balance = balance - $1 WHERE id=$2 RETURNING balance`,
		amount, accountID).Scan(&newBal)
	if err != nil {
		return decimal.Zero, err
	}
	return newBal, nil
}

// CreditTx credita dentro de uma transação do chamador
func CreditTx(ctx context.Context, tx *sql.Tx, accountID string, amount decimal.Decimal) (decimal.Decimal, error) {
	var exists string
	err := tx.QueryRowContext(ctx, `SELECT id FROM accounts WHERE id=$1 FOR UPDATE`, accountID).Scan(&exists)
	if err == sql.ErrNoRows {
		return decimal.Zero, ErrAccountNotFound
	}
	if err != nil {
		return decimal.Zero, err
	}

	var newBal decimal.Decimal
	err = tx.QueryRowContext(ctx,
		`UPDATE accounts SET balance = balance + $1 WHERE id=$2 RETURNING balance`,
		amount, accountID).Scan(&newBal)
	if err != nil {
		return decimal.Zero, err
	}
	return newBal, nil
}
