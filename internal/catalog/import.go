package catalog

import (
	"context"
	"database/sql"
	"errors"
)

// Importer executa as cargas administrativas de catálogo.
// São operações de "re-seed" em massa, fora do núcleo do ledger:
// o ledger nunca assume que o catálogo é estável e trata referência
// pendurada como NotFound comum.
type Importer struct{ DB *sql.DB }

func NewImporter(db *sql.DB) *Importer { return &Importer{DB: db} }

// CleanCounts reporta o que foi apagado por tabela
type CleanCounts struct {
	Bets     int64
	RaceOdds int64
	Races    int64
	Drivers  int64
}

// Clean apaga apostas, cotações, corridas e pilotos, nessa ordem
func (i *Importer) Clean(ctx context.Context) (CleanCounts, error) {
	tx, err := i.DB.BeginTx(ctx, nil)
	if err != nil {
		return CleanCounts{}, err
	}
	defer tx.Rollback()

	var c CleanCounts
	for _, step := range []struct {
		table string
		dst   *int64
	}{
		{"bets", &c.Bets},
		{"race_odds", &c.RaceOdds},
		{"races", &c.Races},
		{"drivers", &c.Drivers},
	} {
		res, err := tx.ExecContext(ctx, `DELETE FROM `+step.table)
		if err != nil {
			return CleanCounts{}, err
		}
		*step.dst, _ = res.RowsAffected()
	}

	if err = tx.Commit(); err != nil {
		return CleanCounts{}, err
	}
	return c, nil
}

// ImportDrivers recarrega o grid a partir do seed
func (i *Importer) ImportDrivers(ctx context.Context) (int, error) {
	tx, err := i.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, `DELETE FROM drivers`); err != nil {
		return 0, err
	}
	for _, d := range Drivers2025 {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO drivers(name, team, country, flag, number)
			VALUES($1,$2,$3,$4,$5)`,
			d.Name, d.Team, d.Country, d.Flag, d.Number); err != nil {
			return 0, err
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return len(Drivers2025), nil
}

// ImportRaces recarrega o calendário a partir do seed
func (i *Importer) ImportRaces(ctx context.Context) (int, error) {
	tx, err := i.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, `DELETE FROM races`); err != nil {
		return 0, err
	}
	for _, r := range Races2025 {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO races(name, circuit, city, country, flag, date, laps, distance)
			VALUES($1,$2,$3,$4,$5,$6,$7,$8)`,
			r.Name, r.Circuit, r.City, r.Country, r.Flag, r.Date, r.Laps, r.Distance); err != nil {
			return 0, err
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return len(Races2025), nil
}

// LinkOdds monta a grade de cotações: cada corrida x cada piloto.
// Usa ON CONFLICT pra poder rodar de novo sem duplicar.
func (i *Importer) LinkOdds(ctx context.Context) (int, error) {
	drivers, err := i.driverIDsByName(ctx)
	if err != nil {
		return 0, err
	}
	raceIDs, err := i.raceIDs(ctx)
	if err != nil {
		return 0, err
	}
	if len(drivers) == 0 || len(raceIDs) == 0 {
		return 0, errors.New("import drivers and races first")
	}

	tx, err := i.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	created := 0
	for _, raceID := range raceIDs {
		for _, sd := range Drivers2025 {
			driverID, ok := drivers[sd.Name]
			if !ok {
				continue
			}
			winner, podium, pole := DeriveOdds(sd.BaseOdds)
			if _, err = tx.ExecContext(ctx, `
				INSERT INTO race_odds(race_id, driver_id, winner_odds, podium_odds, pole_odds)
				VALUES($1,$2,$3,$4,$5)
				ON CONFLICT (race_id, driver_id) DO UPDATE SET
				  winner_odds = EXCLUDED.winner_odds,
				  podium_odds = EXCLUDED.podium_odds,
				  pole_odds   = EXCLUDED.pole_odds`,
				raceID, driverID, winner, podium, pole); err != nil {
				return 0, err
			}
			created++
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return created, nil
}

func (i *Importer) driverIDsByName(ctx context.Context) (map[string]int64, error) {
	rows, err := i.DB.QueryContext(ctx, `SELECT id, name FROM drivers`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[string]int64)
	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		out[name] = id
	}
	return out, rows.Err()
}

func (i *Importer) raceIDs(ctx context.Context) ([]int64, error) {
	rows, err := i.DB.QueryContext(ctx, `SELECT id FROM races ORDER BY date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
