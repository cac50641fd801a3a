package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
)

// Postgres implementa as consultas de catálogo (corridas, pilotos, cotações)
type Postgres struct{ DB *sql.DB }

func NewPostgres(db *sql.DB) *Postgres { return &Postgres{DB: db} }

func (p *Postgres) ListRaces(ctx context.Context) ([]Race, error) {
	const q = `
		SELECT id, name, circuit, city, country, flag, date, laps, distance
		FROM races
		ORDER BY date, id;
	`
	rows, err := p.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Race
	for rows.Next() {
		var r Race
		if err := rows.Scan(&r.ID, &r.Name, &r.Circuit, &r.City, &r.Country, &r.Flag, &r.Date, &r.Laps, &r.Distance); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (p *Postgres) GetRace(ctx context.Context, raceID int64) (Race, error) {
	var r Race
	err := p.DB.QueryRowContext(ctx, `
		SELECT id, name, circuit, city, country, flag, date, laps, distance
		FROM races WHERE id=$1`, raceID).
		Scan(&r.ID, &r.Name, &r.Circuit, &r.City, &r.Country, &r.Flag, &r.Date, &r.Laps, &r.Distance)
	if err == sql.ErrNoRows {
		return Race{}, ErrRaceNotFound
	}
	if err != nil {
		return Race{}, err
	}
	return r, nil
}

// RaceExists valida a referência da corrida dentro de uma transação do chamador
func RaceExists(ctx context.Context, tx *sql.Tx, raceID int64) error {
	var one int
	err := tx.QueryRowContext(ctx, `SELECT 1 FROM races WHERE id=$1`, raceID).Scan(&one)
	if err == sql.ErrNoRows {
		return ErrRaceNotFound
	}
	return err
}

// RaceEntries lista os pilotos de uma corrida com as cotações correntes
func (p *Postgres) RaceEntries(ctx context.Context, raceID int64) ([]RaceEntry, error) {
	if _, err := p.GetRace(ctx, raceID); err != nil {
		return nil, err
	}
	const q = `
		SELECT ro.race_id, ro.driver_id, d.name, d.team, ro.winner_odds, ro.podium_odds, ro.pole_odds
		FROM race_odds ro
		JOIN drivers d ON d.id = ro.driver_id
		WHERE ro.race_id = $1
		ORDER BY ro.winner_odds, d.name;
	`
	rows, err := p.DB.QueryContext(ctx, q, raceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []RaceEntry
	for rows.Next() {
		var e RaceEntry
		if err := rows.Scan(&e.RaceID, &e.DriverID, &e.DriverName, &e.Team, &e.WinnerOdds, &e.PodiumOdds, &e.PoleOdds); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// CurrentOdds retorna a cotação corrente de (corrida, piloto, mercado).
// É o valor capturado pela aposta na hora do palpite; edições posteriores
// do catálogo nunca mudam apostas já feitas.
func (p *Postgres) CurrentOdds(ctx context.Context, raceID int64, driverName, market string) (decimal.Decimal, error) {
	col, err := oddsColumn(market)
	if err != nil {
		return decimal.Zero, err
	}
	q := fmt.Sprintf(`
		SELECT ro.%s
		FROM race_odds ro
		JOIN drivers d ON d.id = ro.driver_id
		WHERE ro.race_id = $1 AND d.name = $2`, col)

	var odds decimal.Decimal
	err = p.DB.QueryRowContext(ctx, q, raceID, driverName).Scan(&odds)
	if err == sql.ErrNoRows {
		return decimal.Zero, ErrOddsNotFound
	}
	if err != nil {
		return decimal.Zero, err
	}
	return odds, nil
}

func (p *Postgres) CountRaces(ctx context.Context) (int, error) {
	var n int
	err := p.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM races`).Scan(&n)
	return n, err
}

// oddsColumn mapeia o mercado pra coluna; whitelist evita injeção via market
func oddsColumn(market string) (string, error) {
	switch market {
	case "winner":
		return "winner_odds", nil
	case "podium":
		return "podium_odds", nil
	case "pole":
		return "pole_odds", nil
	}
	return "", fmt.Errorf("unknown market %q", market)
}
